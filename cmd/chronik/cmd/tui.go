package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/msto63/chronik/internal/calendar/server"
	"github.com/msto63/chronik/internal/tui"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	ro := &remoteOptions{}

	cmd := &cobra.Command{
		Use:   "tui [datum]",
		Short: "Startet den interaktiven Wochenkalender",
		Long: `Zeigt Kalenderwochen mit der Dauer jedes Tages. Tage mit
Zeitumstellung sind hervorgehoben.

Mit --target werden die Wochen von einem laufenden chronik-Dienst
geladen.

Navigation:
  n, →      - Nächste Woche
  p, ←      - Vorige Woche
  t         - Aktuelle Woche
  Ctrl+R    - Neu laden
  q, Esc    - Beenden`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ro.clientConfig(opts)
			var source tui.WeekSource

			if ro.target != "" {
				client, conn, err := server.Dial(cfg)
				if err != nil {
					return err
				}
				defer conn.Close()
				source = client
			} else {
				env, err := opts.openCalendar(cmd.Context())
				if err != nil {
					return err
				}
				defer env.Close()
				source = tui.LocalSource{Service: env.svc}
			}

			p := tea.NewProgram(
				tui.NewModel(tui.Config{
					Source:  source,
					Zone:    opts.zone,
					Date:    firstArg(args),
					Timeout: cfg.Timeout,
				}),
				tea.WithAltScreen(),
			)
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&ro.target, "target", "", "Adresse eines chronik-Dienstes")
	return cmd
}
