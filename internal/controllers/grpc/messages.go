package grpc

import (
	"github.com/chrissnell/suncalc/internal/almanac"
	"github.com/chrissnell/suncalc/pkg/suncalc"
)

// Times are epoch milliseconds. Event timestamps are NaN when the event does
// not occur.

type PositionRequest struct {
	TimeMs    int64   `msgpack:"time_ms"`
	Latitude  float64 `msgpack:"lat"`
	Longitude float64 `msgpack:"lon"`
}

type PositionReply struct {
	Azimuth          float64 `msgpack:"azimuth"`
	Altitude         float64 `msgpack:"altitude"`
	Distance         float64 `msgpack:"distance,omitempty"`
	ParallacticAngle float64 `msgpack:"parallactic_angle,omitempty"`
}

type IlluminationRequest struct {
	TimeMs int64 `msgpack:"time_ms"`
}

type IlluminationReply struct {
	Fraction  float64 `msgpack:"fraction"`
	Phase     float64 `msgpack:"phase"`
	Angle     float64 `msgpack:"angle"`
	PhaseName string  `msgpack:"phase_name"`
	AgeDays   float64 `msgpack:"age_days"`
	IsWaxing  bool    `msgpack:"is_waxing"`
}

type TimesRequest struct {
	TimeMs    int64   `msgpack:"time_ms"`
	Latitude  float64 `msgpack:"lat"`
	Longitude float64 `msgpack:"lon"`
	Height    float64 `msgpack:"height"`
}

type TimesReply struct {
	Times            suncalc.SunTimes `msgpack:"times"`
	DayLengthMinutes float64          `msgpack:"day_length_minutes"`
}

type MoonTimesRequest struct {
	TimeMs    int64   `msgpack:"time_ms"`
	Latitude  float64 `msgpack:"lat"`
	Longitude float64 `msgpack:"lon"`
	Timezone  string  `msgpack:"tz"`
}

type MoonTimesReply struct {
	Times suncalc.MoonTimes `msgpack:"times"`
}

// AlmanacRequest asks for a configured observer's days. From and To are
// calendar dates (2006-01-02) in the observer's timezone, inclusive.
type AlmanacRequest struct {
	Observer string `msgpack:"observer"`
	From     string `msgpack:"from"`
	To       string `msgpack:"to"`
}

type AlmanacReply struct {
	Observer string        `msgpack:"observer"`
	Days     []almanac.Day `msgpack:"days"`
}

// WatchSkyRequest starts a stream of sky updates for a configured observer
// every IntervalMs. Count limits the number of updates; zero streams until
// the client cancels.
type WatchSkyRequest struct {
	Observer   string `msgpack:"observer"`
	IntervalMs int64  `msgpack:"interval_ms"`
	Count      int    `msgpack:"count"`
}

type SkyUpdate struct {
	Observer     string            `msgpack:"observer"`
	TimeMs       int64             `msgpack:"time_ms"`
	Sun          PositionReply     `msgpack:"sun"`
	Moon         PositionReply     `msgpack:"moon"`
	Illumination IlluminationReply `msgpack:"illumination"`
}
