// Package service turns textual calendar requests into timex results. The
// CLI, the gRPC server and the TUI share it.
package service

import (
	"strings"
	"time"

	mdwerrors "github.com/msto63/chronik/foundation/core/errors"
	"github.com/msto63/chronik/foundation/utils/timex"
	"github.com/msto63/chronik/pkg/core/logging"
)

// ZoneResolver looks up zone rules by id
type ZoneResolver interface {
	Resolve(id string) (timex.TimeZoneRules, error)
}

// Options configures a Service
type Options struct {
	DefaultZone string
	WeekStart   time.Weekday
	Clock       timex.Clock
	Logger      *logging.Logger
}

// Service answers calendar questions in a zone
type Service struct {
	zones       ZoneResolver
	defaultZone string
	weekStart   time.Weekday
	clock       timex.Clock
	logger      *logging.Logger
}

// New creates a service. Empty options fall back to UTC, Monday and the
// system clock.
func New(zones ZoneResolver, opts Options) *Service {
	if opts.DefaultZone == "" {
		opts.DefaultZone = "UTC"
	}
	if opts.Clock == nil {
		opts.Clock = timex.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.New("calendar")
	}
	return &Service{
		zones:       zones,
		defaultZone: opts.DefaultZone,
		weekStart:   opts.WeekStart,
		clock:       opts.Clock,
		logger:      opts.Logger,
	}
}

// WeekStart returns the configured first day of the week
func (s *Service) WeekStart() time.Weekday { return s.weekStart }

// DefaultZone returns the zone used for empty zone ids
func (s *Service) DefaultZone() string { return s.defaultZone }

// Zone resolves id, or the default zone when id is empty
func (s *Service) Zone(id string) (timex.TimeZoneRules, error) {
	if strings.TrimSpace(id) == "" {
		id = s.defaultZone
	}
	zone, err := s.zones.Resolve(id)
	if err != nil {
		s.logger.Debug("zone resolution failed", "zone", id, "error", err)
		return nil, err
	}
	return zone, nil
}

// Day resolves the civil day date in zone. An empty date or "today" means
// the current day of the zone.
func (s *Service) Day(zoneID, date string) (timex.ZonedDay, error) {
	zone, err := s.Zone(zoneID)
	if err != nil {
		return timex.ZonedDay{}, err
	}
	if isToday(date) {
		return timex.TodayZoned(s.clock, zone)
	}
	local, err := timex.ParseLocalDateTime(date)
	if err != nil {
		return timex.ZonedDay{}, err
	}
	return timex.CreateZonedDay(local.Date(), zone)
}

// Week resolves week of year in zone using the configured week start
func (s *Service) Week(zoneID string, year, week int) (timex.ZonedWeek, error) {
	zone, err := s.Zone(zoneID)
	if err != nil {
		return timex.ZonedWeek{}, err
	}
	return timex.CreateZonedWeek(year, week, zone, s.weekStart)
}

// WeekOf resolves the week containing date. An empty date or "today" means
// the current week.
func (s *Service) WeekOf(zoneID, date string) (timex.ZonedWeek, error) {
	day, err := s.Day(zoneID, date)
	if err != nil {
		return timex.ZonedWeek{}, err
	}
	return day.Week(s.weekStart)
}

// AddRequest asks for Start + Period in Zone
type AddRequest struct {
	Zone   string
	Start  string
	Period string

	// PreferDaylight picks the daylight side when Start is ambiguous
	PreferDaylight bool
}

// AddResult is the outcome of AddPeriod
type AddResult struct {
	Start   timex.ZonedDateTime
	Period  timex.Period
	Result  timex.ZonedDateTime
	Elapsed timex.Duration
}

// AddPeriod adds a period to a local start time
func (s *Service) AddPeriod(req AddRequest) (AddResult, error) {
	zone, err := s.Zone(req.Zone)
	if err != nil {
		return AddResult{}, err
	}
	start, err := s.instant(req.Start, zone, req.PreferDaylight)
	if err != nil {
		return AddResult{}, err
	}
	period, err := timex.ParsePeriod(req.Period)
	if err != nil {
		return AddResult{}, err
	}

	result, err := start.AddPeriod(period)
	if err != nil {
		return AddResult{}, err
	}
	return AddResult{
		Start:   start,
		Period:  period,
		Result:  result,
		Elapsed: result.GetDurationOffset(start),
	}, nil
}

// OffsetRequest asks for the period between Start and End in Zone
type OffsetRequest struct {
	Zone  string
	Start string
	End   string
	Units string

	// Greedy counts every month whose clamped addition does not pass End,
	// so Jan 31 -> Feb 28 is one month instead of 28 days
	Greedy bool
}

// OffsetResult is the outcome of PeriodOffset
type OffsetResult struct {
	Start    timex.ZonedDateTime
	End      timex.ZonedDateTime
	Units    timex.PeriodUnits
	Period   timex.Period
	Duration timex.Duration
}

// PeriodOffset computes the calendar period from Start to End. Units
// default to all units.
func (s *Service) PeriodOffset(req OffsetRequest) (OffsetResult, error) {
	const op = "PeriodOffset"

	zone, err := s.Zone(req.Zone)
	if err != nil {
		return OffsetResult{}, err
	}
	if strings.TrimSpace(req.Start) == "" || strings.TrimSpace(req.End) == "" {
		return OffsetResult{}, mdwerrors.InvalidInput(mdwerrors.ModuleCalendar, op, "start and end are required")
	}
	start, err := s.instant(req.Start, zone, false)
	if err != nil {
		return OffsetResult{}, err
	}
	end, err := s.instant(req.End, zone, false)
	if err != nil {
		return OffsetResult{}, err
	}

	units := timex.AllUnits
	if strings.TrimSpace(req.Units) != "" {
		if units, err = timex.ParsePeriodUnits(req.Units); err != nil {
			return OffsetResult{}, err
		}
	}

	var period timex.Period
	if req.Greedy {
		period = end.GetGreedyPeriodOffset(start, units)
	} else {
		period = end.GetPeriodOffset(start, units)
	}
	return OffsetResult{
		Start:    start,
		End:      end,
		Units:    units,
		Period:   period,
		Duration: end.GetDurationOffset(start),
	}, nil
}

// instant parses a local date-time in zone. "now" or an empty value means
// the clock's current instant.
func (s *Service) instant(value string, zone timex.TimeZoneRules, preferDaylight bool) (timex.ZonedDateTime, error) {
	v := strings.TrimSpace(value)
	if v == "" || strings.EqualFold(v, "now") {
		return timex.NowZoned(s.clock, zone), nil
	}
	local, err := timex.ParseLocalDateTime(v)
	if err != nil {
		return timex.ZonedDateTime{}, err
	}
	z, err := timex.CreateZoned(local, zone)
	if err != nil {
		return timex.ZonedDateTime{}, err
	}
	if preferDaylight && z.IsAmbiguous() && !z.IsInDaylightSavingTime() {
		if other, ok := z.GetOppositeAmbiguousDateTime(); ok {
			return other, nil
		}
	}
	return z, nil
}

func isToday(date string) bool {
	d := strings.TrimSpace(date)
	return d == "" || strings.EqualFold(d, "today")
}
