package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/chronik/foundation/core/error"
	mdwerrors "github.com/msto63/chronik/foundation/core/errors"
	"github.com/msto63/chronik/internal/zones"
	"github.com/msto63/chronik/pkg/core/config"
)

func newZonesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zones",
		Short: "Verwaltet eigene Zeitzonen",
		Long: `Eigene Zonen bestehen aus einer Basisabweichung und Regeln für die
Sommerzeit. Zonen aus der Config sind schreibgeschützt, mit "zones add"
angelegte Zonen werden im Zonenspeicher (store.path) abgelegt.`,
	}
	cmd.AddCommand(
		newZonesListCmd(opts, opts.openLocal),
		newZonesAddCmd(opts),
		newZonesRemoveCmd(opts),
		newZonesExportCmd(opts),
	)
	return cmd
}

func newZonesListCmd(opts *rootOptions, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Listet die eigenen Zonen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			list, err := b.ListZones(cmd.Context())
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), list, func(w io.Writer) { writeZones(w, list) })
		},
	}
}

func newZonesAddCmd(opts *rootOptions) *cobra.Command {
	var (
		base  string
		rules []string
	)

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Legt eine Zone im Zonenspeicher an oder ersetzt sie",
		Long: `Legt eine Zone im Zonenspeicher an. Eine vorhandene Zone mit derselben
Id wird ersetzt.

Regeln haben die Form "[von-bis;]delta;beginn;ende". Übergänge sind feste
Tage ("08-26 02:00") oder Wochentage ("last Sunday of March 02:00").

Beispiele:
  chronik zones add Test/Scenario --base +01:00 --rule "1h;08-26 02:00;10-26 03:00"
  chronik zones add Custom/Berlin --base +01:00 \
    --rule "1996-2099;1h;last Sunday of March 02:00;last Sunday of October 03:00"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zc := config.ZoneConfig{ID: args[0], BaseOffset: base}
			for _, raw := range rules {
				rc, err := parseRuleFlag(raw)
				if err != nil {
					return err
				}
				zc.Rules = append(zc.Rules, rc)
			}
			def, err := zones.DefinitionFromConfig(zc)
			if err != nil {
				return err
			}
			def.Source = zones.SourceStore

			env, err := opts.openCalendar(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()
			if env.store == nil {
				return storeDisabled("add")
			}

			if err := env.registry.Define(cmd.Context(), def); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Zone %s gespeichert (%d Regeln)\n", def.ID, len(def.Rules))
			return nil
		},
	}

	cmd.Flags().StringVar(&base, "base", "+00:00", "Basisabweichung von UTC (±HH:mm)")
	cmd.Flags().StringArrayVar(&rules, "rule", nil, `Sommerzeitregel "[von-bis;]delta;beginn;ende" (mehrfach möglich)`)
	return cmd
}

func newZonesRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Entfernt eine Zone aus dem Zonenspeicher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.openCalendar(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()
			if env.store == nil {
				return storeDisabled("remove")
			}

			if err := env.registry.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Zone %s entfernt\n", args[0])
			return nil
		},
	}
}

// exportFile is the TOML layout of "zones export", ready to paste into
// the config
type exportFile struct {
	Zones []config.ZoneConfig `toml:"zones"`
}

func newZonesExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [id...]",
		Short: "Schreibt Zonen als [[zones]]-Abschnitte im TOML-Format",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.openCalendar(cmd.Context())
			if err != nil {
				return err
			}
			defer env.Close()

			wanted := make(map[string]bool, len(args))
			for _, id := range args {
				wanted[id] = true
			}

			var out exportFile
			for _, def := range env.registry.Definitions() {
				if len(wanted) > 0 && !wanted[def.ID] {
					continue
				}
				delete(wanted, def.ID)
				out.Zones = append(out.Zones, def.Config())
			}
			for _, id := range args {
				if wanted[id] {
					return mdwerrors.NotFound(mdwerrors.ModuleZones, "Export", id)
				}
			}

			return toml.NewEncoder(cmd.OutOrStdout()).Encode(out)
		},
	}
}

// parseRuleFlag reads "[from-to;]delta;start;end"
func parseRuleFlag(raw string) (config.RuleConfig, error) {
	parts := strings.Split(raw, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var rc config.RuleConfig
	switch len(parts) {
	case 3:
	case 4:
		from, to, ok := strings.Cut(parts[0], "-")
		if !ok {
			return rc, mdwerrors.InvalidFormat(mdwerrors.ModuleZones, "parseRuleFlag", parts[0], "from-to")
		}
		var err error
		if rc.FromYear, err = strconv.Atoi(from); err != nil {
			return rc, mdwerrors.InvalidFormat(mdwerrors.ModuleZones, "parseRuleFlag", from, "year")
		}
		if rc.ToYear, err = strconv.Atoi(to); err != nil {
			return rc, mdwerrors.InvalidFormat(mdwerrors.ModuleZones, "parseRuleFlag", to, "year")
		}
		parts = parts[1:]
	default:
		return rc, mdwerrors.InvalidFormat(mdwerrors.ModuleZones, "parseRuleFlag", raw, "[from-to;]delta;start;end")
	}

	rc.Delta, rc.Start, rc.End = parts[0], parts[1], parts[2]
	return rc, nil
}

func storeDisabled(op string) error {
	return mdwerrors.StandardError(mdwerrors.ModuleConfig, op, mdwerror.CodeMissingConfig,
		"zone store is disabled, set store.enabled = true")
}
