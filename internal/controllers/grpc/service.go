package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "suncalc.v1.SunCalc"

// SunCalcServer is the server API for the SunCalc service
type SunCalcServer interface {
	GetPosition(context.Context, *PositionRequest) (*PositionReply, error)
	GetMoonPosition(context.Context, *PositionRequest) (*PositionReply, error)
	GetMoonIllumination(context.Context, *IlluminationRequest) (*IlluminationReply, error)
	GetTimes(context.Context, *TimesRequest) (*TimesReply, error)
	GetMoonTimes(context.Context, *MoonTimesRequest) (*MoonTimesReply, error)
	GetAlmanac(context.Context, *AlmanacRequest) (*AlmanacReply, error)
	WatchSky(*WatchSkyRequest, SunCalc_WatchSkyServer) error
}

// SunCalc_WatchSkyServer is the server side of a WatchSky stream
type SunCalc_WatchSkyServer interface {
	Send(*SkyUpdate) error
	grpc.ServerStream
}

type sunCalcWatchSkyServer struct {
	grpc.ServerStream
}

func (x *sunCalcWatchSkyServer) Send(m *SkyUpdate) error {
	return x.ServerStream.SendMsg(m)
}

// RegisterSunCalcServer registers srv on s
func RegisterSunCalcServer(s grpc.ServiceRegistrar, srv SunCalcServer) {
	s.RegisterService(&SunCalc_ServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](method string, call func(SunCalcServer, context.Context, *Req) (*Resp, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SunCalcServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SunCalcServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func watchSkyHandler(srv any, stream grpc.ServerStream) error {
	m := new(WatchSkyRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(SunCalcServer).WatchSky(m, &sunCalcWatchSkyServer{stream})
}

// SunCalc_ServiceDesc describes the SunCalc service. Messages are plain Go
// structs encoded with the MessagePack codec.
var SunCalc_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SunCalcServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetPosition", Handler: unaryHandler("GetPosition", SunCalcServer.GetPosition)},
		{MethodName: "GetMoonPosition", Handler: unaryHandler("GetMoonPosition", SunCalcServer.GetMoonPosition)},
		{MethodName: "GetMoonIllumination", Handler: unaryHandler("GetMoonIllumination", SunCalcServer.GetMoonIllumination)},
		{MethodName: "GetTimes", Handler: unaryHandler("GetTimes", SunCalcServer.GetTimes)},
		{MethodName: "GetMoonTimes", Handler: unaryHandler("GetMoonTimes", SunCalcServer.GetMoonTimes)},
		{MethodName: "GetAlmanac", Handler: unaryHandler("GetAlmanac", SunCalcServer.GetAlmanac)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchSky",
			Handler:       watchSkyHandler,
			ServerStreams: true,
		},
	},
	Metadata: "suncalc/v1/suncalc",
}
