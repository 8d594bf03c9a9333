package grpc

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/chrissnell/suncalc/internal/almanac"
	"github.com/chrissnell/suncalc/internal/controllers"
	"github.com/chrissnell/suncalc/pkg/lunar"
	"github.com/chrissnell/suncalc/pkg/solar"
	"github.com/chrissnell/suncalc/pkg/suncalc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MinWatchInterval is the shortest WatchSky interval. Shorter requested
// intervals are raised to it.
const MinWatchInterval = 10 * time.Millisecond

// Server implements SunCalcServer on top of a Sky backend
type Server struct {
	sky *controllers.Sky
	now func() time.Time
}

// NewServer creates a SunCalc service implementation
func NewServer(sky *controllers.Sky) *Server {
	return &Server{sky: sky, now: time.Now}
}

// toStatus maps backend errors onto gRPC status codes
func toStatus(err error) error {
	var argErr *controllers.ArgumentError
	switch {
	case errors.As(err, &argErr):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, controllers.ErrUnknownObserver):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func positionReply(p suncalc.Position) *PositionReply {
	return &PositionReply{
		Azimuth:          p.Azimuth,
		Altitude:         p.Altitude,
		Distance:         p.Distance,
		ParallacticAngle: p.ParallacticAngle,
	}
}

func illuminationReply(ill suncalc.Illumination) *IlluminationReply {
	phase := lunar.Describe(ill)
	return &IlluminationReply{
		Fraction:  ill.Fraction,
		Phase:     ill.Phase,
		Angle:     ill.Angle,
		PhaseName: phase.PhaseName,
		AgeDays:   phase.AgeDays,
		IsWaxing:  phase.IsWaxing,
	}
}

func (s *Server) GetPosition(ctx context.Context, req *PositionRequest) (*PositionReply, error) {
	return positionReply(suncalc.GetPosition(req.TimeMs, req.Latitude, req.Longitude)), nil
}

func (s *Server) GetMoonPosition(ctx context.Context, req *PositionRequest) (*PositionReply, error) {
	return positionReply(suncalc.GetMoonPosition(req.TimeMs, req.Latitude, req.Longitude)), nil
}

func (s *Server) GetMoonIllumination(ctx context.Context, req *IlluminationRequest) (*IlluminationReply, error) {
	return illuminationReply(suncalc.GetMoonIllumination(req.TimeMs)), nil
}

func (s *Server) GetTimes(ctx context.Context, req *TimesRequest) (*TimesReply, error) {
	times := suncalc.GetTimes(req.TimeMs, req.Latitude, req.Longitude, req.Height)
	reply := &TimesReply{Times: times, DayLengthMinutes: math.NaN()}
	if d, ok := solar.DayLength(times); ok {
		reply.DayLengthMinutes = d.Minutes()
	}
	return reply, nil
}

func (s *Server) GetMoonTimes(ctx context.Context, req *MoonTimesRequest) (*MoonTimesReply, error) {
	loc, err := controllers.ParseLocation("tz", req.Timezone)
	if err != nil {
		return nil, toStatus(err)
	}
	return &MoonTimesReply{Times: suncalc.GetMoonTimes(req.TimeMs, req.Latitude, req.Longitude, loc)}, nil
}

func (s *Server) GetAlmanac(ctx context.Context, req *AlmanacRequest) (*AlmanacReply, error) {
	obs, err := s.sky.Observer(req.Observer)
	if err != nil {
		return nil, toStatus(err)
	}
	loc := obs.Location
	if loc == nil {
		loc = time.UTC
	}

	now := s.now()
	from, err := controllers.ParseDate("from", req.From, loc, now)
	if err != nil {
		return nil, toStatus(err)
	}
	to := from
	if req.To != "" {
		if to, err = controllers.ParseDate("to", req.To, loc, now); err != nil {
			return nil, toStatus(err)
		}
	}

	days, err := s.sky.Days(ctx, obs, from, to)
	if err != nil {
		return nil, toStatus(err)
	}
	return &AlmanacReply{Observer: obs.Name, Days: days}, nil
}

func skyUpdate(obs almanac.Observer, t time.Time) *SkyUpdate {
	ms := t.UnixMilli()
	return &SkyUpdate{
		Observer:     obs.Name,
		TimeMs:       ms,
		Sun:          *positionReply(suncalc.GetPosition(ms, obs.Latitude, obs.Longitude)),
		Moon:         *positionReply(suncalc.GetMoonPosition(ms, obs.Latitude, obs.Longitude)),
		Illumination: *illuminationReply(suncalc.GetMoonIllumination(ms)),
	}
}

func (s *Server) WatchSky(req *WatchSkyRequest, stream SunCalc_WatchSkyServer) error {
	obs, err := s.sky.Observer(req.Observer)
	if err != nil {
		return toStatus(err)
	}
	interval := time.Duration(req.IntervalMs) * time.Millisecond
	if interval < MinWatchInterval {
		interval = MinWatchInterval
	}
	if req.Count < 0 {
		return status.Error(codes.InvalidArgument, "count must not be negative")
	}

	ctx := stream.Context()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for sent := 0; req.Count == 0 || sent < req.Count; sent++ {
		if sent > 0 {
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return toStatus(ctx.Err())
			}
		}
		if err := stream.Send(skyUpdate(obs, s.now())); err != nil {
			return err
		}
	}
	return nil
}
