package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/msto63/chronik/internal/calendar/server"
	"github.com/msto63/chronik/internal/calendar/service"
	"github.com/msto63/chronik/pkg/core/health"
)

// render writes v in the selected format. text is used for "text".
func (o *rootOptions) render(w io.Writer, v interface{}, text func(io.Writer)) error {
	switch o.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(w)
		return nil
	}
}

func writeDay(w io.Writer, d service.DayView) {
	fmt.Fprintf(w, "%s (%s)\n", d.Label, d.Weekday)
	fmt.Fprintf(w, "  Beginn:  %s\n", d.Start)
	fmt.Fprintf(w, "  Ende:    %s\n", d.End)
	fmt.Fprintf(w, "  Dauer:   %s (%g h)\n", d.Duration, d.Hours)
	if d.StartCorrection != "" {
		fmt.Fprintf(w, "  Beginn korrigiert um %s\n", d.StartCorrection)
	}
	if d.EndCorrection != "" {
		fmt.Fprintf(w, "  Ende korrigiert um %s\n", d.EndCorrection)
	}
	if d.Gap != nil {
		fmt.Fprintf(w, "  Ungültig: %s bis %s\n", d.Gap.Start, d.Gap.End)
	}
	if d.Overlap != nil {
		fmt.Fprintf(w, "  Mehrdeutig: %s bis %s\n", d.Overlap.Start, d.Overlap.End)
	}
}

func writeWeek(w io.Writer, wk service.WeekView) {
	fmt.Fprintf(w, "%s, Wochenbeginn %s\n", wk.Label, wk.WeekStart)
	fmt.Fprintf(w, "  Dauer: %s (%g h)\n\n", wk.Duration, wk.Hours)
	for _, d := range wk.Days {
		mark := ""
		switch {
		case d.Gap != nil:
			mark = "  Sommerzeit beginnt"
		case d.Overlap != nil:
			mark = "  Sommerzeit endet"
		}
		fmt.Fprintf(w, "  %s %-10s %5.1f h%s\n", d.Date, d.Weekday, d.Hours, mark)
	}
}

func writeAdd(w io.Writer, a service.AddView) {
	fmt.Fprintf(w, "%s + %s\n", a.Start, a.Period)
	fmt.Fprintf(w, "  = %s\n", a.Result)
	daylight := "nein"
	if a.Daylight {
		daylight = "ja"
	}
	fmt.Fprintf(w, "  Verstrichen: %s, Sommerzeit: %s\n", a.Elapsed, daylight)
}

func writeOffset(w io.Writer, o service.OffsetView) {
	fmt.Fprintf(w, "%s bis %s\n", o.Start, o.End)
	fmt.Fprintf(w, "  Periode (%s): %s\n", o.Units, o.Period)
	fmt.Fprintf(w, "  Dauer: %s\n", o.Duration)
}

func writeZones(w io.Writer, list server.ZoneList) {
	fmt.Fprintf(w, "Standardzone: %s\n", list.DefaultZone)
	if len(list.Zones) == 0 {
		fmt.Fprintln(w, "Keine eigenen Zonen definiert.")
		return
	}
	for _, z := range list.Zones {
		fmt.Fprintf(w, "\n%s  UTC%s  [%s]\n", z.ID, z.BaseOffset, z.Source)
		for _, r := range z.Rules {
			years := "alle Jahre"
			if r.FromYear != 0 || r.ToYear != 0 {
				years = fmt.Sprintf("%d-%d", r.FromYear, r.ToYear)
			}
			fmt.Fprintf(w, "  %-12s +%s  %s bis %s\n", years, r.Delta, r.Start, r.End)
		}
	}
}

func writeHealth(w io.Writer, r *health.Report) {
	fmt.Fprintf(w, "Status: %s\n", r.Status)
	for _, c := range r.Checks {
		fmt.Fprintf(w, "  %-24s %-9s %s\n", c.Name, c.Status, c.Message)
	}
}
