package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// Client is a typed client for the SunCalc service. Every call uses the
// MessagePack codec.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps a connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *Client) GetPosition(ctx context.Context, in *PositionRequest, opts ...grpc.CallOption) (*PositionReply, error) {
	out := new(PositionReply)
	if err := c.invoke(ctx, "GetPosition", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMoonPosition(ctx context.Context, in *PositionRequest, opts ...grpc.CallOption) (*PositionReply, error) {
	out := new(PositionReply)
	if err := c.invoke(ctx, "GetMoonPosition", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMoonIllumination(ctx context.Context, in *IlluminationRequest, opts ...grpc.CallOption) (*IlluminationReply, error) {
	out := new(IlluminationReply)
	if err := c.invoke(ctx, "GetMoonIllumination", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTimes(ctx context.Context, in *TimesRequest, opts ...grpc.CallOption) (*TimesReply, error) {
	out := new(TimesReply)
	if err := c.invoke(ctx, "GetTimes", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMoonTimes(ctx context.Context, in *MoonTimesRequest, opts ...grpc.CallOption) (*MoonTimesReply, error) {
	out := new(MoonTimesReply)
	if err := c.invoke(ctx, "GetMoonTimes", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAlmanac(ctx context.Context, in *AlmanacRequest, opts ...grpc.CallOption) (*AlmanacReply, error) {
	out := new(AlmanacReply)
	if err := c.invoke(ctx, "GetAlmanac", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// WatchSky opens a sky update stream. Drain it with Recv until io.EOF.
func (c *Client) WatchSky(ctx context.Context, in *WatchSkyRequest, opts ...grpc.CallOption) (*WatchSkyStream, error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	stream, err := c.cc.NewStream(ctx, &SunCalc_ServiceDesc.Streams[0], "/"+ServiceName+"/WatchSky", opts...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &WatchSkyStream{stream: stream}, nil
}

// WatchSkyStream is the client side of a WatchSky call
type WatchSkyStream struct {
	stream grpc.ClientStream
}

// Recv returns the next update, or io.EOF once the server has finished
func (s *WatchSkyStream) Recv() (*SkyUpdate, error) {
	m := new(SkyUpdate)
	if err := s.stream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
