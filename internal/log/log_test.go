package log

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogHTTPRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	SetLogger(zap.New(core))

	LogHTTPRequest(HTTPLogEntry{
		RequestID: "abc",
		Method:    "GET",
		Path:      "/api/v1/sun/position",
		Status:    200,
		Duration:  15 * time.Millisecond,
	})
	LogHTTPRequest(HTTPLogEntry{
		Method: "GET",
		Path:   "/api/v1/sun/times",
		Status: 500,
		Error:  errors.New("boom"),
	})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, expected 2", len(entries))
	}

	if entries[0].Level != zap.InfoLevel {
		t.Errorf("first entry level = %v, expected info", entries[0].Level)
	}
	if got := entries[0].ContextMap()["request_id"]; got != "abc" {
		t.Errorf("request_id = %v, expected abc", got)
	}
	if entries[1].Level != zap.ErrorLevel {
		t.Errorf("second entry level = %v, expected error", entries[1].Level)
	}
	if got := entries[1].ContextMap()["error"]; got != "boom" {
		t.Errorf("error field = %v, expected boom", got)
	}
}

func TestInitWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suncalc.log")

	if err := InitWithFile(false, path); err != nil {
		t.Fatalf("InitWithFile: %v", err)
	}
	Infow("file logging", "observer", "home")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"observer":"home"`) {
		t.Errorf("log file does not contain the structured field: %s", data)
	}
}
