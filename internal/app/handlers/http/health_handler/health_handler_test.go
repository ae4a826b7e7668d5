package health_handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name     string
		checks   map[string]Pinger
		wantCode int
		wantBody Response
	}{
		{
			name:     "все зависимости доступны",
			checks:   map[string]Pinger{"postgres": ok, "redis": ok},
			wantCode: http.StatusOK,
			wantBody: Response{Status: "ok", Checks: map[string]string{"postgres": "ok", "redis": "ok"}},
		},
		{
			name:     "redis недоступен",
			checks:   map[string]Pinger{"postgres": ok, "redis": down},
			wantCode: http.StatusServiceUnavailable,
			wantBody: Response{Status: "unavailable", Checks: map[string]string{"postgres": "ok", "redis": "connection refused"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHealthHandler(tt.checks).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("код %d, ожидался %d", rec.Code, tt.wantCode)
			}
			var got Response
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatal(err)
			}
			if got.Status != tt.wantBody.Status {
				t.Errorf("статус %q, ожидался %q", got.Status, tt.wantBody.Status)
			}
			for name, want := range tt.wantBody.Checks {
				if got.Checks[name] != want {
					t.Errorf("%s: %q, ожидалось %q", name, got.Checks[name], want)
				}
			}
		})
	}
}
