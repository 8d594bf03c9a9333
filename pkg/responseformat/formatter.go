package responseformat

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chrissnell/suncalc/pkg/suncalc"
	"github.com/vmihailenco/msgpack/v5"
)

// EventTimeLayout is RFC3339 with millisecond precision
const EventTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Formatter handles encoding and writing responses in JSON or MessagePack format
type Formatter struct{}

// NewFormatter creates a new response formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// ErrorResponse is the body written for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteResponse writes the response in the appropriate format based on the query parameter
// JSON is the default format. MessagePack is used when format=msgpack is specified
func (f *Formatter) WriteResponse(w http.ResponseWriter, req *http.Request, data any, headers map[string]string) error {
	for k, v := range headers {
		w.Header().Set(k, v)
	}

	if wantsMsgPack(req) {
		return f.writeMsgPack(w, http.StatusOK, data)
	}
	return f.writeJSON(w, http.StatusOK, data)
}

// WriteError writes err as {"error": "..."} with the given status code, in the
// format the request asked for
func (f *Formatter) WriteError(w http.ResponseWriter, req *http.Request, status int, err error) error {
	body := ErrorResponse{Error: err.Error()}
	if wantsMsgPack(req) {
		return f.writeMsgPack(w, status, body)
	}
	return f.writeJSON(w, status, body)
}

func wantsMsgPack(req *http.Request) bool {
	return req != nil && req.URL.Query().Get("format") == "msgpack"
}

func (f *Formatter) writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func (f *Formatter) writeMsgPack(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/x-msgpack")
	w.WriteHeader(status)
	encoder := msgpack.NewEncoder(w)
	encoder.SetCustomStructTag("json") // Use json tags for MessagePack
	return encoder.Encode(data)
}

// EventTime renders an event timestamp for a response body. Events that do
// not occur are nil so they encode as null.
func EventTime(ts suncalc.Timestamp) *string {
	return EventTimeIn(ts, time.UTC)
}

// EventTimeIn is EventTime with the offset of loc
func EventTimeIn(ts suncalc.Timestamp, loc *time.Location) *string {
	if !ts.Valid() {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	s := ts.Time().In(loc).Format(EventTimeLayout)
	return &s
}

// Float returns a pointer to v, or nil when v is NaN
func Float(v float64) *float64 {
	if v != v {
		return nil
	}
	return &v
}
