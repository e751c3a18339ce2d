package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

const testSigner = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

func newIdempServer(t *testing.T, calls *atomic.Int64) *echo.Echo {
	t.Helper()
	_, rdb := newMiniRedis(t)

	e := echo.New()
	e.POST("/contracts", func(c echo.Context) error {
		calls.Add(1)
		return c.JSON(http.StatusCreated, map[string]any{"n": calls.Load()})
	}, Idempotency(rdb, 5*time.Minute))
	return e
}

func idempRequest(body, reqID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/contracts", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Ax-Signer-Id", testSigner)
	req.Header.Set("Ax-Request-Id", reqID)
	req.Header.Set("Ax-Request-At", strconv.FormatInt(time.Now().Unix(), 10))
	return req
}

func TestIdempotency_ReplaysRecordedResponse(t *testing.T) {
	var calls atomic.Int64
	e := newIdempServer(t, &calls)

	const reqID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	body := `{"principal":150000000}`

	rec1 := httptest.NewRecorder()
	e.ServeHTTP(rec1, idempRequest(body, reqID))
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first status = %d, body = %s", rec1.Code, rec1.Body.String())
	}

	rec2 := httptest.NewRecorder()
	e.ServeHTTP(rec2, idempRequest(body, reqID))
	if rec2.Code != http.StatusCreated {
		t.Fatalf("replay status = %d, body = %s", rec2.Code, rec2.Body.String())
	}
	if rec2.Body.String() != rec1.Body.String() {
		t.Fatalf("replay body %q differs from original %q", rec2.Body.String(), rec1.Body.String())
	}
	if calls.Load() != 1 {
		t.Fatalf("handler ran %d times, want 1", calls.Load())
	}
}

func TestIdempotency_RejectsReusedIDWithDifferentBody(t *testing.T) {
	var calls atomic.Int64
	e := newIdempServer(t, &calls)

	const reqID = "cccccccccccccccccccccccccccccccc"

	rec1 := httptest.NewRecorder()
	e.ServeHTTP(rec1, idempRequest(`{"principal":150000000}`, reqID))
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first status = %d", rec1.Code)
	}

	rec2 := httptest.NewRecorder()
	e.ServeHTTP(rec2, idempRequest(`{"principal":200000000}`, reqID))
	if rec2.Code != http.StatusConflict {
		t.Fatalf("conflicting body status = %d, want 409", rec2.Code)
	}
	if calls.Load() != 1 {
		t.Fatalf("handler ran %d times, want 1", calls.Load())
	}
}

func TestIdempotency_RequiresHeaders(t *testing.T) {
	var calls atomic.Int64
	e := newIdempServer(t, &calls)

	cases := []struct {
		name   string
		mutate func(*http.Request)
	}{
		{"missing request id", func(r *http.Request) { r.Header.Del("Ax-Request-Id") }},
		{"bad request id", func(r *http.Request) { r.Header.Set("Ax-Request-Id", "nope") }},
		{"missing request at", func(r *http.Request) { r.Header.Del("Ax-Request-At") }},
		{"skewed request at", func(r *http.Request) {
			r.Header.Set("Ax-Request-At", strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10))
		}},
		{"missing signer", func(r *http.Request) { r.Header.Del("Ax-Signer-Id") }},
		{"bad signer", func(r *http.Request) { r.Header.Set("Ax-Signer-Id", "UPPER") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := idempRequest(`{}`, "dddddddddddddddddddddddddddddddd")
			tc.mutate(req)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body=%s)", rec.Code, rec.Body.String())
			}
		})
	}
	if calls.Load() != 0 {
		t.Fatalf("handler ran %d times, want 0", calls.Load())
	}
}

func TestIdempotency_SkipsGet(t *testing.T) {
	_, rdb := newMiniRedis(t)
	e := echo.New()
	e.GET("/contracts/x", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, Idempotency(rdb, time.Minute))

	// no Ax-* headers at all
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contracts/x", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", rec.Code)
	}
}
