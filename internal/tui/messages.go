package tui

import (
	"context"

	"github.com/msto63/chronik/internal/calendar/service"
)

// WeekSource resolves weeks for the viewer. *server.Client satisfies it
// directly; LocalSource adapts an in-process service.
type WeekSource interface {
	ResolveWeek(ctx context.Context, zone string, year, week int) (service.WeekView, error)
	ResolveWeekOf(ctx context.Context, zone, date string) (service.WeekView, error)
}

// LocalSource serves weeks from an in-process calendar service
type LocalSource struct {
	Service *service.Service
}

func (s LocalSource) ResolveWeek(_ context.Context, zone string, year, week int) (service.WeekView, error) {
	w, err := s.Service.Week(zone, year, week)
	if err != nil {
		return service.WeekView{}, err
	}
	return service.DescribeWeek(w)
}

func (s LocalSource) ResolveWeekOf(_ context.Context, zone, date string) (service.WeekView, error) {
	w, err := s.Service.WeekOf(zone, date)
	if err != nil {
		return service.WeekView{}, err
	}
	return service.DescribeWeek(w)
}

// weekLoadedMsg is sent when a week has been resolved
type weekLoadedMsg struct {
	week service.WeekView
	err  error
}
