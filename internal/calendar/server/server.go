// Package server exposes the calendar service as chronik.v1.Calendar
package server

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	mdwerror "github.com/msto63/chronik/foundation/core/error"
	mdwerrors "github.com/msto63/chronik/foundation/core/errors"
	"github.com/msto63/chronik/foundation/utils/timex"
	"github.com/msto63/chronik/internal/calendar/service"
	"github.com/msto63/chronik/internal/zones"
	"github.com/msto63/chronik/pkg/core/logging"
)

// Server implements CalendarServer on top of the calendar service
type Server struct {
	svc    *service.Service
	zones  *zones.Registry
	logger *logging.Logger
}

// New creates a server. registry may be nil, ListZones then returns no
// custom zones.
func New(svc *service.Service, registry *zones.Registry, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.New("calendar-server")
	}
	return &Server{svc: svc, zones: registry, logger: logger}
}

// ResolveDay handles {zone, date}
func (s *Server) ResolveDay(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	day, err := s.svc.Day(str(req, "zone"), str(req, "date"))
	if err != nil {
		return nil, err
	}
	return toStruct(service.DescribeDay(day))
}

// ResolveWeek handles {zone, year, week} or {zone, date}
func (s *Server) ResolveWeek(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	year, week := num(req, "year"), num(req, "week")

	var w timex.ZonedWeek
	var err error
	if year != 0 || week != 0 {
		w, err = s.svc.Week(str(req, "zone"), year, week)
	} else {
		w, err = s.svc.WeekOf(str(req, "zone"), str(req, "date"))
	}
	if err != nil {
		return nil, err
	}
	view, err := service.DescribeWeek(w)
	if err != nil {
		return nil, err
	}
	return toStruct(view)
}

// AddPeriod handles {zone, start, period, prefer_daylight}
func (s *Server) AddPeriod(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	res, err := s.svc.AddPeriod(service.AddRequest{
		Zone:           str(req, "zone"),
		Start:          str(req, "start"),
		Period:         str(req, "period"),
		PreferDaylight: flag(req, "prefer_daylight"),
	})
	if err != nil {
		return nil, err
	}
	return toStruct(service.DescribeAdd(res))
}

// PeriodOffset handles {zone, start, end, units, greedy}
func (s *Server) PeriodOffset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	res, err := s.svc.PeriodOffset(service.OffsetRequest{
		Zone:   str(req, "zone"),
		Start:  str(req, "start"),
		End:    str(req, "end"),
		Units:  str(req, "units"),
		Greedy: flag(req, "greedy"),
	})
	if err != nil {
		return nil, err
	}
	return toStruct(service.DescribeOffset(res))
}

// ListZones returns the custom zone definitions
func (s *Server) ListZones(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	list := DescribeZones(s.svc.DefaultZone(), s.zones)
	return toStruct(list)
}

func str(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

func num(req *structpb.Struct, key string) int {
	return int(req.GetFields()[key].GetNumberValue())
}

func flag(req *structpb.Struct, key string) bool {
	return req.GetFields()[key].GetBoolValue()
}

// toStruct converts a JSON tagged value into a Struct
func toStruct(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, mdwerrors.ModuleError(mdwerrors.ModuleCalendar, "toStruct", mdwerror.CodeInternal, err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, mdwerrors.ModuleError(mdwerrors.ModuleCalendar, "toStruct", mdwerror.CodeInternal, err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, mdwerrors.ModuleError(mdwerrors.ModuleCalendar, "toStruct", mdwerror.CodeInternal, err)
	}
	return out, nil
}

// fromStruct decodes a Struct into a JSON tagged value
func fromStruct(s *structpb.Struct, v interface{}) error {
	data, err := json.Marshal(s.AsMap())
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
