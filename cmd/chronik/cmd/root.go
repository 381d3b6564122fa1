package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/chronik/internal/calendar/service"
	"github.com/msto63/chronik/internal/zones"
	"github.com/msto63/chronik/pkg/core/config"
	"github.com/msto63/chronik/pkg/core/logging"
)

// rootOptions holds the persistent flags and the loaded configuration
type rootOptions struct {
	configPath string
	zone       string
	format     string
	verbose    bool

	cfg *config.Config
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "chronik",
		Short: "chronik - Zeitzonenbewusste Kalenderarithmetik",
		Long: `chronik rechnet mit Kalendertagen, Wochen und Perioden in Zeitzonen
mit Sommerzeit.

Tage dauern 23, 24 oder 25 Stunden, Ortszeiten in der Zeitumstellung
werden erkannt, Perioden werden kalendarisch addiert.

Zonen:
  UTC, Z            - koordinierte Weltzeit
  UTC+01:00         - feste Abweichung
  Europe/Berlin     - IANA-Zone der Zeitzonendatenbank des Hosts
  eigene Zonen      - [[zones]] in der Config oder "chronik zones add"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config-Datei (default: CHRONIK_CONFIG oder Suche nach chronik.toml)")
	root.PersistentFlags().StringVarP(&opts.zone, "zone", "z", "", "Zeitzone (default: calendar.default_zone)")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", "text", "Ausgabeformat: text, json oder yaml")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose Output")

	root.AddCommand(
		newDayCmd(opts, opts.openLocal),
		newWeekCmd(opts, opts.openLocal),
		newAddCmd(opts, opts.openLocal),
		newOffsetCmd(opts, opts.openLocal),
		newZonesCmd(opts),
		newServeCmd(opts),
		newRemoteCmd(opts),
		newTUICmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI
func Execute() error {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		printError(root, err)
		return err
	}
	return nil
}

func printError(cmd *cobra.Command, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Fehler: %v\n", err)
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	switch o.format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unbekanntes Ausgabeformat %q (text, json, yaml)", o.format)
	}

	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := cfg.General.LogLevel
	if o.verbose {
		level = "debug"
	}
	if err := logging.Configure(logging.LoggerConfig{
		ServiceName: "chronik",
		Level:       level,
		Format:      cfg.General.LogFormat,
		File:        cfg.General.LogFile,
		Output:      cmd.ErrOrStderr(),
	}); err != nil {
		return err
	}

	o.cfg = cfg
	logging.New("cli").Debug("configuration loaded", "source", cfg.Source(), "command", cmd.Name())
	return nil
}

// calendarEnv bundles the zone registry, its optional store and the
// calendar service of one command run
type calendarEnv struct {
	store    *zones.Store
	registry *zones.Registry
	svc      *service.Service
}

func (o *rootOptions) openCalendar(ctx context.Context) (*calendarEnv, error) {
	env := &calendarEnv{}
	if o.cfg.Store.Enabled {
		store, err := zones.OpenStore(zones.StoreConfig{Path: o.cfg.Store.Path})
		if err != nil {
			return nil, err
		}
		env.store = store
	}

	env.registry = zones.NewRegistry(env.store, logging.New("zones"))
	defs := make([]zones.Definition, 0, len(o.cfg.Zones))
	for _, zc := range o.cfg.Zones {
		def, err := zones.DefinitionFromConfig(zc)
		if err != nil {
			env.Close()
			return nil, err
		}
		defs = append(defs, def)
	}
	if err := env.registry.Add(defs...); err != nil {
		env.Close()
		return nil, err
	}
	if err := env.registry.LoadStore(ctx); err != nil {
		env.Close()
		return nil, err
	}

	env.svc = service.New(env.registry, service.Options{
		DefaultZone: o.cfg.Calendar.DefaultZone,
		WeekStart:   o.cfg.WeekStart(),
		Logger:      logging.New("calendar"),
	})
	return env, nil
}

func (e *calendarEnv) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}
