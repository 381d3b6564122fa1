package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/chronik/internal/calendar/server"
	pkggrpc "github.com/msto63/chronik/pkg/core/grpc"
	"github.com/msto63/chronik/pkg/core/health"
	"github.com/msto63/chronik/pkg/core/logging"
)

type remoteOptions struct {
	target  string
	timeout time.Duration
}

func newRemoteCmd(opts *rootOptions) *cobra.Command {
	ro := &remoteOptions{}

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Fragt einen laufenden chronik-Dienst ab",
		Long: `Führt day, week, add, offset und zones gegen einen entfernten
chronik.v1.Calendar-Dienst aus. Zeitzonen werden auf dem Server
aufgelöst.

Beispiele:
  chronik remote day 2021-08-26 --target localhost:9310
  chronik remote health`,
	}

	cmd.PersistentFlags().StringVar(&ro.target, "target", "", "Adresse des Dienstes (default: client.target)")
	cmd.PersistentFlags().DurationVar(&ro.timeout, "timeout", 0, "Timeout je Aufruf (default: client.timeout)")

	open := func(ctx context.Context) (backend, func() error, error) {
		client, conn, err := server.Dial(ro.clientConfig(opts))
		if err != nil {
			return nil, nil, err
		}
		return client, conn.Close, nil
	}

	zonesCmd := newZonesListCmd(opts, open)
	zonesCmd.Use = "zones"

	cmd.AddCommand(
		newDayCmd(opts, open),
		newWeekCmd(opts, open),
		newAddCmd(opts, open),
		newOffsetCmd(opts, open),
		zonesCmd,
		newRemoteHealthCmd(opts, ro),
	)
	return cmd
}

func (ro *remoteOptions) clientConfig(opts *rootOptions) pkggrpc.ClientConfig {
	target := ro.target
	if target == "" {
		target = opts.cfg.Client.Target
	}
	cfg := pkggrpc.DefaultClientConfig(target)
	cfg.Timeout = opts.cfg.Client.Timeout.Duration
	if ro.timeout > 0 {
		cfg.Timeout = ro.timeout
	}
	cfg.Logger = logging.New("grpc-client")
	return cfg
}

func newRemoteHealthCmd(opts *rootOptions, ro *remoteOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Prüft den Zustand des Dienstes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ro.clientConfig(opts)
			conn, err := pkggrpc.Dial(cfg)
			if err != nil {
				return err
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()

			checks := health.NewRegistry("chronik-remote", "")
			checks.Register(health.GRPCCheck(cfg.Target, conn, server.ServiceName))
			report := checks.Check(ctx)

			if err := opts.render(cmd.OutOrStdout(), report, func(w io.Writer) { writeHealth(w, report) }); err != nil {
				return err
			}
			if report.Status != health.StatusHealthy {
				return fmt.Errorf("%s ist nicht bereit: %s", cfg.Target, report.Status)
			}
			return nil
		},
	}
}
