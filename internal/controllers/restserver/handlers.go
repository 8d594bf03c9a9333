package restserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/chrissnell/suncalc/internal/almanac"
	"github.com/chrissnell/suncalc/internal/controllers"
	"github.com/chrissnell/suncalc/internal/log"
	"github.com/chrissnell/suncalc/internal/storage"
	"github.com/chrissnell/suncalc/pkg/responseformat"
	"github.com/chrissnell/suncalc/pkg/suncalc"
	"github.com/gorilla/mux"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	sky       *controllers.Sky
	formatter *responseformat.Formatter
	now       func() time.Time
}

// NewHandlers creates a new handlers instance
func NewHandlers(sky *controllers.Sky) *Handlers {
	return &Handlers{
		sky:       sky,
		formatter: responseformat.NewFormatter(),
		now:       time.Now,
	}
}

func (h *Handlers) write(w http.ResponseWriter, req *http.Request, data any) {
	if err := h.formatter.WriteResponse(w, req, data, nil); err != nil {
		log.Errorf("error encoding response for %s: %v", req.URL.Path, err)
	}
}

// writeError maps err onto a status code: malformed parameters are 400,
// unknown observers 404 and anything else 500
func (h *Handlers) writeError(w http.ResponseWriter, req *http.Request, err error) {
	status := http.StatusInternalServerError
	var argErr *controllers.ArgumentError
	switch {
	case errors.As(err, &argErr):
		status = http.StatusBadRequest
	case errors.Is(err, controllers.ErrUnknownObserver):
		status = http.StatusNotFound
	default:
		log.Errorf("request %s failed: %v", req.URL.Path, err)
	}

	if werr := h.formatter.WriteError(w, req, status, err); werr != nil {
		log.Errorf("error encoding error response: %v", werr)
	}
}

type coordinates struct {
	lat, lon float64
	at       time.Time
}

func (h *Handlers) parseCoordinates(req *http.Request) (coordinates, error) {
	q := req.URL.Query()
	lat, err := controllers.ParseFloat("lat", q.Get("lat"))
	if err != nil {
		return coordinates{}, err
	}
	lon, err := controllers.ParseFloat("lon", q.Get("lon"))
	if err != nil {
		return coordinates{}, err
	}
	at, err := controllers.ParseTime("time", q.Get("time"), h.now())
	if err != nil {
		return coordinates{}, err
	}
	return coordinates{lat: lat, lon: lon, at: at}, nil
}

// GetHealth reports liveness and the last storage health checks
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	resp := HealthResponse{
		Status:    "ok",
		Observers: len(h.sky.Observers()),
	}

	if h.sky.Health != nil {
		all := h.sky.Health.GetAllHealth()
		if len(all) > 0 {
			resp.Storage = make(map[string]HealthInfo, len(all))
		}
		for name, hd := range all {
			resp.Storage[name] = HealthInfo{
				Status:    hd.Status,
				Message:   hd.Message,
				Error:     hd.Error,
				LastCheck: hd.LastCheck.UTC().Format(time.RFC3339),
			}
			if hd.Status != storage.StatusHealthy {
				resp.Status = "degraded"
			}
		}
	}

	h.write(w, req, resp)
}

// GetSunPosition handles /api/v1/sun/position
func (h *Handlers) GetSunPosition(w http.ResponseWriter, req *http.Request) {
	c, err := h.parseCoordinates(req)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	pos := suncalc.GetPosition(c.at.UnixMilli(), c.lat, c.lon)
	h.write(w, req, transformPosition(c.at, c.lat, c.lon, pos, false))
}

// GetMoonPosition handles /api/v1/moon/position
func (h *Handlers) GetMoonPosition(w http.ResponseWriter, req *http.Request) {
	c, err := h.parseCoordinates(req)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	pos := suncalc.GetMoonPosition(c.at.UnixMilli(), c.lat, c.lon)
	h.write(w, req, transformPosition(c.at, c.lat, c.lon, pos, true))
}

// GetSunTimes handles /api/v1/sun/times
func (h *Handlers) GetSunTimes(w http.ResponseWriter, req *http.Request) {
	c, err := h.parseCoordinates(req)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	height, err := controllers.ParseOptionalFloat("height", req.URL.Query().Get("height"), 0)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	times := suncalc.GetTimes(c.at.UnixMilli(), c.lat, c.lon, height)
	h.write(w, req, transformSunTimes(times, time.UTC))
}

// GetMoonIllumination handles /api/v1/moon/illumination
func (h *Handlers) GetMoonIllumination(w http.ResponseWriter, req *http.Request) {
	at, err := controllers.ParseTime("time", req.URL.Query().Get("time"), h.now())
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	h.write(w, req, transformIllumination(at, suncalc.GetMoonIllumination(at.UnixMilli())))
}

// GetMoonTimes handles /api/v1/moon/times. The day searched is the calendar
// day containing time in the tz timezone.
func (h *Handlers) GetMoonTimes(w http.ResponseWriter, req *http.Request) {
	c, err := h.parseCoordinates(req)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	loc, err := controllers.ParseLocation("tz", req.URL.Query().Get("tz"))
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	mt := suncalc.GetMoonTimes(c.at.UnixMilli(), c.lat, c.lon, loc)
	h.write(w, req, transformMoonTimes(mt, loc))
}

// GetObservers lists the configured observers
func (h *Handlers) GetObservers(w http.ResponseWriter, req *http.Request) {
	observers := h.sky.Observers()
	resp := make([]ObserverResponse, 0, len(observers))
	for _, o := range observers {
		resp = append(resp, transformObserver(o))
	}
	h.write(w, req, resp)
}

// GetObserverSky returns positions, illumination and the day's events for
// a configured observer
func (h *Handlers) GetObserverSky(w http.ResponseWriter, req *http.Request) {
	obs, err := h.sky.Observer(mux.Vars(req)["name"])
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	at, err := controllers.ParseTime("time", req.URL.Query().Get("time"), h.now())
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	h.write(w, req, transformSky(obs, at))
}

func (h *Handlers) observerRange(req *http.Request) (almanac.Observer, time.Time, time.Time, error) {
	obs, err := h.sky.Observer(mux.Vars(req)["name"])
	if err != nil {
		return almanac.Observer{}, time.Time{}, time.Time{}, err
	}
	loc := obs.Location
	if loc == nil {
		loc = time.UTC
	}

	q := req.URL.Query()
	now := h.now()
	from, err := controllers.ParseDate("from", q.Get("from"), loc, now)
	if err != nil {
		return almanac.Observer{}, time.Time{}, time.Time{}, err
	}
	to := from.AddDate(0, 0, 6)
	if q.Get("to") != "" {
		to, err = controllers.ParseDate("to", q.Get("to"), loc, now)
		if err != nil {
			return almanac.Observer{}, time.Time{}, time.Time{}, err
		}
	}
	return obs, from, to, nil
}

// GetObserverAlmanac returns daily events for a configured observer. from
// defaults to today and to to six days after from.
func (h *Handlers) GetObserverAlmanac(w http.ResponseWriter, req *http.Request) {
	obs, from, to, err := h.observerRange(req)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	days, err := h.sky.Days(req.Context(), obs, from, to)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	loc := obs.Location
	if loc == nil {
		loc = time.UTC
	}
	resp := AlmanacResponse{
		Observer: obs.Name,
		Days:     make([]AlmanacDayResponse, 0, len(days)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, transformAlmanacDay(d, loc))
	}
	if len(days) > 0 {
		resp.From = days[0].Date
		resp.To = days[len(days)-1].Date
	}

	h.write(w, req, resp)
}

// GetObserverAlmanacStats summarizes day lengths for a configured observer
func (h *Handlers) GetObserverAlmanacStats(w http.ResponseWriter, req *http.Request) {
	obs, from, to, err := h.observerRange(req)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	days, err := h.sky.Days(req.Context(), obs, from, to)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	var first, last string
	if len(days) > 0 {
		first, last = days[0].Date, days[len(days)-1].Date
	}
	h.write(w, req, transformStats(obs.Name, first, last, almanac.Summarize(days)))
}
