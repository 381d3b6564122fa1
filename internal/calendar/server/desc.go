package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "chronik.v1.Calendar"

const (
	methodResolveDay   = "/" + ServiceName + "/ResolveDay"
	methodResolveWeek  = "/" + ServiceName + "/ResolveWeek"
	methodAddPeriod    = "/" + ServiceName + "/AddPeriod"
	methodPeriodOffset = "/" + ServiceName + "/PeriodOffset"
	methodListZones    = "/" + ServiceName + "/ListZones"
)

// CalendarServer is the server API of chronik.v1.Calendar. Requests and
// responses are google.protobuf.Struct messages.
type CalendarServer interface {
	ResolveDay(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveWeek(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddPeriod(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PeriodOffset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListZones(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterCalendarServer registers srv on s
func RegisterCalendarServer(s grpc.ServiceRegistrar, srv CalendarServer) {
	s.RegisterService(&calendarServiceDesc, srv)
}

func unaryHandler(fullMethod string, call func(CalendarServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CalendarServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CalendarServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var calendarServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalendarServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ResolveDay", Handler: unaryHandler(methodResolveDay, CalendarServer.ResolveDay)},
		{MethodName: "ResolveWeek", Handler: unaryHandler(methodResolveWeek, CalendarServer.ResolveWeek)},
		{MethodName: "AddPeriod", Handler: unaryHandler(methodAddPeriod, CalendarServer.AddPeriod)},
		{MethodName: "PeriodOffset", Handler: unaryHandler(methodPeriodOffset, CalendarServer.PeriodOffset)},
		{MethodName: "ListZones", Handler: unaryHandler(methodListZones, CalendarServer.ListZones)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "chronik/v1/calendar.proto",
}
