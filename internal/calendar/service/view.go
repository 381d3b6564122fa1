package service

import (
	"github.com/msto63/chronik/foundation/utils/timex"
)

// Range is a civil range rendered as text
type Range struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// DayView is the printable form of a ZonedDay
type DayView struct {
	Date            string  `json:"date" yaml:"date"`
	Weekday         string  `json:"weekday" yaml:"weekday"`
	Zone            string  `json:"zone" yaml:"zone"`
	Label           string  `json:"label" yaml:"label"`
	Start           string  `json:"start" yaml:"start"`
	End             string  `json:"end" yaml:"end"`
	Duration        string  `json:"duration" yaml:"duration"`
	Hours           float64 `json:"hours" yaml:"hours"`
	StartCorrection string  `json:"start_correction,omitempty" yaml:"start_correction,omitempty"`
	EndCorrection   string  `json:"end_correction,omitempty" yaml:"end_correction,omitempty"`
	Transition      bool    `json:"transition" yaml:"transition"`
	Gap             *Range  `json:"gap,omitempty" yaml:"gap,omitempty"`
	Overlap         *Range  `json:"overlap,omitempty" yaml:"overlap,omitempty"`
}

// WeekView is the printable form of a ZonedWeek
type WeekView struct {
	Year      int       `json:"year" yaml:"year"`
	Week      int       `json:"week" yaml:"week"`
	WeekStart string    `json:"week_start" yaml:"week_start"`
	Zone      string    `json:"zone" yaml:"zone"`
	Label     string    `json:"label" yaml:"label"`
	Start     string    `json:"start" yaml:"start"`
	End       string    `json:"end" yaml:"end"`
	Duration  string    `json:"duration" yaml:"duration"`
	Hours     float64   `json:"hours" yaml:"hours"`
	Days      []DayView `json:"days" yaml:"days"`
}

// FormatDuration renders d the way time.Duration does, e.g. "23h0m0s"
func FormatDuration(d timex.Duration) string {
	return d.TimeDuration().String()
}

func hours(d timex.Duration) float64 {
	return float64(d) / float64(timex.Hour)
}

func correction(d timex.Duration) string {
	if d == 0 {
		return ""
	}
	return FormatDuration(d)
}

// DescribeDay renders day
func DescribeDay(day timex.ZonedDay) DayView {
	v := DayView{
		Date:            day.Date().DateString(),
		Weekday:         day.Weekday().String(),
		Zone:            day.Zone().ID(),
		Label:           day.String(),
		Start:           day.Start().String(),
		End:             day.End().String(),
		Duration:        FormatDuration(day.Duration()),
		Hours:           hours(day.Duration()),
		StartCorrection: correction(day.StartCorrection()),
		EndCorrection:   correction(day.EndCorrection()),
		Transition:      day.HasTransition(),
	}
	if r, ok := day.GetIntersectingInvalidityRange(); ok {
		v.Gap = &Range{Start: r.Start.String(), End: r.End.String()}
	}
	if r, ok := day.GetIntersectingAmbiguityRange(); ok {
		v.Overlap = &Range{Start: r.Start.String(), End: r.End.String()}
	}
	return v
}

// DescribeWeek renders week and each of its days
func DescribeWeek(week timex.ZonedWeek) (WeekView, error) {
	days, err := week.Days()
	if err != nil {
		return WeekView{}, err
	}
	v := WeekView{
		Year:      week.Year(),
		Week:      week.WeekOfYear(),
		WeekStart: week.WeekStart().String(),
		Zone:      week.Zone().ID(),
		Label:     week.String(),
		Start:     week.Start().String(),
		End:       week.End().String(),
		Duration:  FormatDuration(week.Duration()),
		Hours:     hours(week.Duration()),
		Days:      make([]DayView, 0, len(days)),
	}
	for _, d := range days {
		v.Days = append(v.Days, DescribeDay(d))
	}
	return v, nil
}

// AddView is the printable form of an AddResult
type AddView struct {
	Start    string `json:"start" yaml:"start"`
	Period   string `json:"period" yaml:"period"`
	Result   string `json:"result" yaml:"result"`
	Elapsed  string `json:"elapsed" yaml:"elapsed"`
	Daylight bool   `json:"daylight" yaml:"daylight"`
}

// DescribeAdd renders r
func DescribeAdd(r AddResult) AddView {
	return AddView{
		Start:    r.Start.String(),
		Period:   r.Period.String(),
		Result:   r.Result.String(),
		Elapsed:  FormatDuration(r.Elapsed),
		Daylight: r.Result.IsInDaylightSavingTime(),
	}
}

// OffsetView is the printable form of an OffsetResult
type OffsetView struct {
	Start    string `json:"start" yaml:"start"`
	End      string `json:"end" yaml:"end"`
	Units    string `json:"units" yaml:"units"`
	Period   string `json:"period" yaml:"period"`
	Duration string `json:"duration" yaml:"duration"`
}

// DescribeOffset renders r
func DescribeOffset(r OffsetResult) OffsetView {
	return OffsetView{
		Start:    r.Start.String(),
		End:      r.End.String(),
		Units:    r.Units.String(),
		Period:   r.Period.String(),
		Duration: FormatDuration(r.Duration),
	}
}
