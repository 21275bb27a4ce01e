package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func serve(t *testing.T, h echo.HandlerFunc) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/ping", h)

	req := httptest.NewRequest(http.MethodGet, "/ping?x=1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected one json log line, got %q: %v", buf.String(), err)
	}
	return line
}

func TestRequestLogger_Success(t *testing.T) {
	line := serve(t, func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	if line["level"] != "info" {
		t.Errorf("expected info level, got %v", line["level"])
	}
	if line["uri"] != "/ping?x=1" || line["method"] != http.MethodGet {
		t.Errorf("unexpected request fields: %v", line)
	}
	if status, _ := line["status"].(float64); status != http.StatusOK {
		t.Errorf("expected status 200, got %v", line["status"])
	}
}

func TestRequestLogger_ServerError(t *testing.T) {
	line := serve(t, func(c echo.Context) error {
		return errors.New("boom")
	})

	if line["level"] != "error" {
		t.Errorf("expected error level, got %v", line["level"])
	}
	if status, _ := line["status"].(float64); status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %v", line["status"])
	}
	if line["error"] != "boom" {
		t.Errorf("expected error field, got %v", line["error"])
	}
}
