package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/msto63/chronik/internal/calendar/service"
	pkggrpc "github.com/msto63/chronik/pkg/core/grpc"
)

// Client calls a remote chronik.v1.Calendar service
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client on an existing connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Dial connects to target
func Dial(cfg pkggrpc.ClientConfig, opts ...grpc.DialOption) (*Client, *grpc.ClientConn, error) {
	conn, err := pkggrpc.Dial(cfg, opts...)
	if err != nil {
		return nil, nil, err
	}
	return NewClient(conn), conn, nil
}

func (c *Client) call(ctx context.Context, method string, req map[string]interface{}, out interface{}) error {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return err
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, resp); err != nil {
		return pkggrpc.FromStatus(err)
	}
	return fromStruct(resp, out)
}

// ResolveDay resolves date in zone
func (c *Client) ResolveDay(ctx context.Context, zone, date string) (service.DayView, error) {
	var view service.DayView
	err := c.call(ctx, methodResolveDay, map[string]interface{}{"zone": zone, "date": date}, &view)
	return view, err
}

// ResolveWeek resolves week of year in zone
func (c *Client) ResolveWeek(ctx context.Context, zone string, year, week int) (service.WeekView, error) {
	var view service.WeekView
	err := c.call(ctx, methodResolveWeek, map[string]interface{}{"zone": zone, "year": year, "week": week}, &view)
	return view, err
}

// ResolveWeekOf resolves the week containing date
func (c *Client) ResolveWeekOf(ctx context.Context, zone, date string) (service.WeekView, error) {
	var view service.WeekView
	err := c.call(ctx, methodResolveWeek, map[string]interface{}{"zone": zone, "date": date}, &view)
	return view, err
}

// AddPeriod adds a period remotely
func (c *Client) AddPeriod(ctx context.Context, req service.AddRequest) (service.AddView, error) {
	var view service.AddView
	err := c.call(ctx, methodAddPeriod, map[string]interface{}{
		"zone":            req.Zone,
		"start":           req.Start,
		"period":          req.Period,
		"prefer_daylight": req.PreferDaylight,
	}, &view)
	return view, err
}

// PeriodOffset computes a period remotely
func (c *Client) PeriodOffset(ctx context.Context, req service.OffsetRequest) (service.OffsetView, error) {
	var view service.OffsetView
	err := c.call(ctx, methodPeriodOffset, map[string]interface{}{
		"zone":   req.Zone,
		"start":  req.Start,
		"end":    req.End,
		"units":  req.Units,
		"greedy": req.Greedy,
	}, &view)
	return view, err
}

// ListZones lists the custom zones of the server
func (c *Client) ListZones(ctx context.Context) (ZoneList, error) {
	var list ZoneList
	err := c.call(ctx, methodListZones, map[string]interface{}{}, &list)
	return list, err
}
