package cmd

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/chronik/internal/calendar/service"
)

func newDayCmd(opts *rootOptions, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "day [datum]",
		Short: "Zeigt Beginn, Ende und Dauer eines Kalendertags",
		Long: `Zeigt einen Kalendertag in einer Zeitzone.

Tage mit Zeitumstellung dauern 23 oder 25 Stunden. Der ungültige oder
mehrdeutige Bereich der Ortszeit wird mit ausgegeben.

Beispiele:
  chronik day                          # heute
  chronik day 2021-08-26 -z Europe/Berlin
  chronik day 26.08.2021 -f json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			view, err := b.ResolveDay(cmd.Context(), opts.zone, firstArg(args))
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), view, func(w io.Writer) { writeDay(w, view) })
		},
	}
}

func newWeekCmd(opts *rootOptions, open opener) *cobra.Command {
	var year, week int

	cmd := &cobra.Command{
		Use:   "week [datum]",
		Short: "Zeigt eine Kalenderwoche",
		Long: `Zeigt eine Kalenderwoche mit allen Tagen und ihrer Dauer.

Ohne Angaben wird die aktuelle Woche gezeigt, mit Datum die Woche, die
das Datum enthält, mit --year und --week die Woche nach Nummer. Der
Wochenbeginn kommt aus calendar.week_start.

Beispiele:
  chronik week
  chronik week 2021-08-26
  chronik week --year 2021 --week 34`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			var view service.WeekView
			if year != 0 || week != 0 {
				view, err = b.ResolveWeek(cmd.Context(), opts.zone, year, week)
			} else {
				view, err = b.ResolveWeekOf(cmd.Context(), opts.zone, firstArg(args))
			}
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), view, func(w io.Writer) { writeWeek(w, view) })
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Jahr der Woche")
	cmd.Flags().IntVar(&week, "week", 0, "Wochennummer (1-53)")
	return cmd
}

func newAddCmd(opts *rootOptions, open opener) *cobra.Command {
	var preferDaylight bool

	cmd := &cobra.Command{
		Use:   "add <start> <periode>",
		Short: "Addiert eine Periode zu einem Zeitpunkt",
		Long: `Addiert eine Periode kalendarisch zu einem Zeitpunkt.

Monate werden am Monatsende abgeschnitten, Tage behalten die Uhrzeit
auch über eine Zeitumstellung. Landet das Ergebnis in einer Lücke der
Ortszeit, ist das ein Fehler. Ein mehrdeutiger Start gilt als
Normalzeit, mit --prefer-daylight als Sommerzeit.

Beispiele:
  chronik add 2021-08-31 1 month
  chronik add "2021-08-25 12:00" "1 day"
  chronik add now 2 hours -z Europe/Berlin`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			view, err := b.AddPeriod(cmd.Context(), service.AddRequest{
				Zone:           opts.zone,
				Start:          args[0],
				Period:         strings.Join(args[1:], " "),
				PreferDaylight: preferDaylight,
			})
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), view, func(w io.Writer) { writeAdd(w, view) })
		},
	}

	cmd.Flags().BoolVar(&preferDaylight, "prefer-daylight", false, "Mehrdeutigen Start als Sommerzeit lesen")
	return cmd
}

func newOffsetCmd(opts *rootOptions, open opener) *cobra.Command {
	var (
		units  string
		greedy bool
	)

	cmd := &cobra.Command{
		Use:   "offset <start> <ende>",
		Short: "Berechnet die Periode zwischen zwei Zeitpunkten",
		Long: `Berechnet die Periode zwischen zwei Zeitpunkten in den gewählten
Einheiten, z.B. "months|days|hours". Ohne --units werden alle Einheiten
verwendet. Mit --greedy zählt jeder Monat, dessen Addition (mit Kürzung
auf das Monatsende) das Ende nicht überschreitet: 31.01. bis 28.02. ist
dann ein Monat statt 28 Tage.

Beispiele:
  chronik offset 2021-01-31 2021-03-15 --units "months|days"
  chronik offset "2021-08-25 12:00" "2021-08-26 12:00" --units hours`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			view, err := b.PeriodOffset(cmd.Context(), service.OffsetRequest{
				Zone:   opts.zone,
				Start:  args[0],
				End:    args[1],
				Units:  units,
				Greedy: greedy,
			})
			if err != nil {
				return err
			}
			return opts.render(cmd.OutOrStdout(), view, func(w io.Writer) { writeOffset(w, view) })
		},
	}

	cmd.Flags().StringVarP(&units, "units", "u", "", `Einheiten, z.B. "months|days|hours"`)
	cmd.Flags().BoolVar(&greedy, "greedy", false, "Monate mit Kürzung auf das Monatsende zählen")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
