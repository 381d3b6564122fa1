package cmd

import (
	"context"

	"github.com/msto63/chronik/internal/calendar/server"
	"github.com/msto63/chronik/internal/calendar/service"
)

// backend answers calendar queries in process or through a remote
// chronik.v1.Calendar service. *server.Client implements it.
type backend interface {
	ResolveDay(ctx context.Context, zone, date string) (service.DayView, error)
	ResolveWeek(ctx context.Context, zone string, year, week int) (service.WeekView, error)
	ResolveWeekOf(ctx context.Context, zone, date string) (service.WeekView, error)
	AddPeriod(ctx context.Context, req service.AddRequest) (service.AddView, error)
	PeriodOffset(ctx context.Context, req service.OffsetRequest) (service.OffsetView, error)
	ListZones(ctx context.Context) (server.ZoneList, error)
}

// opener creates a backend and the function releasing it
type opener func(ctx context.Context) (backend, func() error, error)

var _ backend = (*server.Client)(nil)

func (o *rootOptions) openLocal(ctx context.Context) (backend, func() error, error) {
	env, err := o.openCalendar(ctx)
	if err != nil {
		return nil, nil, err
	}
	return env, env.Close, nil
}

func (e *calendarEnv) ResolveDay(_ context.Context, zone, date string) (service.DayView, error) {
	day, err := e.svc.Day(zone, date)
	if err != nil {
		return service.DayView{}, err
	}
	return service.DescribeDay(day), nil
}

func (e *calendarEnv) ResolveWeek(_ context.Context, zone string, year, week int) (service.WeekView, error) {
	w, err := e.svc.Week(zone, year, week)
	if err != nil {
		return service.WeekView{}, err
	}
	return service.DescribeWeek(w)
}

func (e *calendarEnv) ResolveWeekOf(_ context.Context, zone, date string) (service.WeekView, error) {
	w, err := e.svc.WeekOf(zone, date)
	if err != nil {
		return service.WeekView{}, err
	}
	return service.DescribeWeek(w)
}

func (e *calendarEnv) AddPeriod(_ context.Context, req service.AddRequest) (service.AddView, error) {
	res, err := e.svc.AddPeriod(req)
	if err != nil {
		return service.AddView{}, err
	}
	return service.DescribeAdd(res), nil
}

func (e *calendarEnv) PeriodOffset(_ context.Context, req service.OffsetRequest) (service.OffsetView, error) {
	res, err := e.svc.PeriodOffset(req)
	if err != nil {
		return service.OffsetView{}, err
	}
	return service.DescribeOffset(res), nil
}

func (e *calendarEnv) ListZones(_ context.Context) (server.ZoneList, error) {
	return server.DescribeZones(e.svc.DefaultZone(), e.registry), nil
}
