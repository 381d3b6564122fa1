package cmd

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	grpchealth "google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	calendarserver "github.com/msto63/chronik/internal/calendar/server"
	"github.com/msto63/chronik/internal/zones"
	pkggrpc "github.com/msto63/chronik/pkg/core/grpc"
	"github.com/msto63/chronik/pkg/core/health"
	"github.com/msto63/chronik/pkg/core/logging"
	"github.com/msto63/chronik/pkg/core/version"
)

// healthInterval is the period of the published health checks
const healthInterval = 15 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Startet den gRPC-Dienst chronik.v1.Calendar",
		Long: `Startet den gRPC-Dienst chronik.v1.Calendar mit den Methoden
ResolveDay, ResolveWeek, AddPeriod, PeriodOffset und ListZones.

Der Dienst meldet seinen Zustand über grpc.health.v1.Health. Geprüft
werden der Zonenspeicher und die Standardzone.

Beispiele:
  chronik serve
  chronik serve --listen 0.0.0.0:9310`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				host, port, err := net.SplitHostPort(listen)
				if err != nil {
					return fmt.Errorf("ungültige Adresse %q: %w", listen, err)
				}
				if opts.cfg.Server.Port, err = strconv.Atoi(port); err != nil {
					return fmt.Errorf("ungültiger Port %q: %w", port, err)
				}
				opts.cfg.Server.Host = host
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, opts, nil, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Adresse host:port (default: server.host und server.port)")
	return cmd
}

// runServer serves until ctx is done. A nil listener listens on the
// configured server address.
func runServer(ctx context.Context, opts *rootOptions, lis net.Listener, out io.Writer) error {
	logger := logging.New("serve")

	env, err := opts.openCalendar(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	scfg := pkggrpc.DefaultServerConfig()
	scfg.Host = opts.cfg.Server.Host
	scfg.Port = opts.cfg.Server.Port
	scfg.EnableReflection = opts.cfg.Server.EnableReflection
	scfg.Logger = logging.New("grpc")
	srv := pkggrpc.NewServer(scfg)

	calendarserver.RegisterCalendarServer(srv.GRPCServer(),
		calendarserver.New(env.svc, env.registry, logging.New("calendar-server")))

	healthServer := grpchealth.NewServer()
	grpc_health_v1.RegisterHealthServer(srv.GRPCServer(), healthServer)

	checks := health.NewRegistry("chronik", version.Application)
	if env.store != nil {
		checks.Register(health.PingCheck("zone-store", env.store))
	}
	checks.Register(zonesCheck(env.registry, env.svc.DefaultZone()))

	healthCtx, cancelHealth := context.WithCancel(ctx)
	defer cancelHealth()
	go checks.Publish(healthCtx, healthServer, calendarserver.ServiceName, healthInterval)

	if lis == nil {
		if lis, err = net.Listen("tcp", opts.cfg.ServerAddress()); err != nil {
			return fmt.Errorf("failed to listen on %s: %w", opts.cfg.ServerAddress(), err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(lis)
	}()
	fmt.Fprintf(out, "chronik %s lauscht auf %s\n", version.Application, lis.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", opts.cfg.Server.ShutdownTimeout.String())
	cancelHealth()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.cfg.Server.ShutdownTimeout.Duration)
	defer cancel()
	srv.StopWithTimeout(shutdownCtx)
	return nil
}

// zonesCheck fails when the default zone no longer resolves
func zonesCheck(registry *zones.Registry, defaultZone string) health.Checker {
	return health.NewChecker("zones", func(ctx context.Context) health.CheckResult {
		result := health.CheckResult{
			Name:    "zones",
			Details: map[string]interface{}{"default_zone": defaultZone, "custom": registry.Len()},
		}
		if _, err := registry.Resolve(defaultZone); err != nil {
			result.Status = health.StatusUnhealthy
			result.Message = err.Error()
			return result
		}
		result.Status = health.StatusHealthy
		result.Message = fmt.Sprintf("%d custom zones", registry.Len())
		return result
	})
}
