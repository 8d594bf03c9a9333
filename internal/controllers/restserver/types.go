package restserver

// Angles are reported in radians with a degrees companion. Event times are
// RFC3339 strings, null when the event does not occur.

// PositionResponse is the body of the sun and moon position endpoints.
// Distance and parallactic angle are only set for the Moon.
type PositionResponse struct {
	Time                string   `json:"time"`
	Latitude            float64  `json:"latitude"`
	Longitude           float64  `json:"longitude"`
	AzimuthRad          float64  `json:"azimuth_rad"`
	AzimuthDeg          float64  `json:"azimuth_deg"`
	AltitudeRad         float64  `json:"altitude_rad"`
	AltitudeDeg         float64  `json:"altitude_deg"`
	DistanceKm          *float64 `json:"distance_km,omitempty"`
	ParallacticAngleRad *float64 `json:"parallactic_angle_rad,omitempty"`
	ParallacticAngleDeg *float64 `json:"parallactic_angle_deg,omitempty"`
}

// SunTimesResponse lists the day's sun events
type SunTimesResponse struct {
	SolarNoon        *string  `json:"solarNoon"`
	Nadir            *string  `json:"nadir"`
	Sunrise          *string  `json:"sunrise"`
	Sunset           *string  `json:"sunset"`
	SunriseEnd       *string  `json:"sunriseEnd"`
	SunsetStart      *string  `json:"sunsetStart"`
	Dawn             *string  `json:"dawn"`
	Dusk             *string  `json:"dusk"`
	NauticalDawn     *string  `json:"nauticalDawn"`
	NauticalDusk     *string  `json:"nauticalDusk"`
	NightEnd         *string  `json:"nightEnd"`
	Night            *string  `json:"night"`
	GoldenHourEnd    *string  `json:"goldenHourEnd"`
	GoldenHour       *string  `json:"goldenHour"`
	DayLengthMinutes *float64 `json:"day_length_minutes"`
}

// IlluminationResponse describes the lit part of the Moon
type IlluminationResponse struct {
	Time      string  `json:"time,omitempty"`
	Fraction  float64 `json:"fraction"`
	Phase     float64 `json:"phase"`
	AngleRad  float64 `json:"angle_rad"`
	AngleDeg  float64 `json:"angle_deg"`
	PhaseName string  `json:"phase_name"`
	AgeDays   float64 `json:"age_days"`
	IsWaxing  bool    `json:"is_waxing"`
}

// MoonTimesResponse holds moonrise and moonset for a local day
type MoonTimesResponse struct {
	Rise       *string `json:"rise"`
	Set        *string `json:"set"`
	AlwaysUp   bool    `json:"always_up"`
	AlwaysDown bool    `json:"always_down"`
}

// ObserverResponse describes a configured observer
type ObserverResponse struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Height    float64 `json:"height"`
	Timezone  string  `json:"timezone"`
}

// SkyResponse is everything known about an observer's sky at one instant
type SkyResponse struct {
	Observer         ObserverResponse     `json:"observer"`
	Time             string               `json:"time"`
	Sun              PositionResponse     `json:"sun"`
	Moon             PositionResponse     `json:"moon"`
	Illumination     IlluminationResponse `json:"illumination"`
	BrightLimbRad    float64              `json:"bright_limb_rad"`
	BrightLimbDeg    float64              `json:"bright_limb_deg"`
	SunTimes         SunTimesResponse     `json:"sun_times"`
	MoonTimes        MoonTimesResponse    `json:"moon_times"`
	SunAboveHorizon  bool                 `json:"sun_above_horizon"`
	MoonAboveHorizon bool                 `json:"moon_above_horizon"`
}

// AlmanacDayResponse is one day of an observer's almanac
type AlmanacDayResponse struct {
	Date         string            `json:"date"`
	SunTimes     SunTimesResponse  `json:"sun_times"`
	MoonFraction float64           `json:"moon_fraction"`
	MoonPhase    float64           `json:"moon_phase"`
	PhaseName    string            `json:"phase_name"`
	MoonTimes    MoonTimesResponse `json:"moon_times"`
}

// AlmanacResponse is the body of the almanac endpoint
type AlmanacResponse struct {
	Observer string               `json:"observer"`
	From     string               `json:"from"`
	To       string               `json:"to"`
	Days     []AlmanacDayResponse `json:"days"`
}

// StatsResponse summarizes day lengths over a range
type StatsResponse struct {
	Observer        string   `json:"observer"`
	From            string   `json:"from"`
	To              string   `json:"to"`
	Days            int      `json:"days"`
	PolarDays       int      `json:"polar_days"`
	MeanDayLength   *float64 `json:"mean_day_length_minutes"`
	StdDevDayLength *float64 `json:"stddev_day_length_minutes"`
	MinDayLength    *float64 `json:"min_day_length_minutes"`
	MaxDayLength    *float64 `json:"max_day_length_minutes"`
}

// HealthResponse is the body of /healthz
type HealthResponse struct {
	Status    string                `json:"status"`
	Observers int                   `json:"observers"`
	Storage   map[string]HealthInfo `json:"storage,omitempty"`
}

// HealthInfo is one storage backend's last health check
type HealthInfo struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	LastCheck string `json:"last_check"`
}
