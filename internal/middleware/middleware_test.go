package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(CORSMiddleware())
	called := false
	r.POST("/v1/cargos", func(c *gin.Context) { called = true })

	req := httptest.NewRequest(http.MethodOptions, "/v1/cargos", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected allow-origin header")
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "Idempotency-Key") {
		t.Error("expected Idempotency-Key to be an allowed header")
	}
	if called {
		t.Error("preflight must not reach the handler")
	}
}

func TestIdempotency_NilClientPassesThrough(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(Idempotency(nil))
	calls := 0
	r.POST("/v1/cargos", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"n": calls})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/cargos", strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", "same")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Header().Get("Idempotent-Replay") != "" {
			t.Error("nothing should be replayed without redis")
		}
	}
	if calls != 2 {
		t.Errorf("expected 2 handler calls, got %d", calls)
	}
}

func newIdempotencyRouter(t *testing.T, status func(call int) int) (*gin.Engine, *int) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := gin.New()
	r.Use(Idempotency(client))
	calls := 0
	r.POST("/v1/cargos", func(c *gin.Context) {
		calls++
		c.JSON(status(calls), gin.H{"call": calls})
	})
	return r, &calls
}

func postWithKey(r *gin.Engine, path, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	t.Parallel()

	r, calls := newIdempotencyRouter(t, func(int) int { return http.StatusCreated })

	first := postWithKey(r, "/v1/cargos", "k1")
	second := postWithKey(r, "/v1/cargos", "k1")

	if *calls != 1 {
		t.Fatalf("expected 1 handler call, got %d", *calls)
	}
	if second.Header().Get("Idempotent-Replay") != "true" {
		t.Error("expected replay header on the repeated request")
	}
	if second.Code != http.StatusCreated || second.Body.String() != first.Body.String() {
		t.Errorf("expected replay of %d %s, got %d %s", first.Code, first.Body, second.Code, second.Body)
	}
	if !strings.HasPrefix(second.Header().Get("Content-Type"), "application/json") {
		t.Errorf("expected stored content type, got %q", second.Header().Get("Content-Type"))
	}

	postWithKey(r, "/v1/cargos", "k2")
	postWithKey(r, "/v1/cargos", "")
	if *calls != 3 {
		t.Errorf("expected new and missing keys to reach the handler, got %d calls", *calls)
	}
}

func TestIdempotency_TransientStatusesAreNotStored(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusConflict, http.StatusTooManyRequests, http.StatusBadGateway} {
		status := status
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			t.Parallel()

			r, calls := newIdempotencyRouter(t, func(call int) int {
				if call == 1 {
					return status
				}
				return http.StatusOK
			})

			if w := postWithKey(r, "/v1/cargos", "retry"); w.Code != status {
				t.Fatalf("expected %d, got %d", status, w.Code)
			}
			w := postWithKey(r, "/v1/cargos", "retry")
			if w.Code != http.StatusOK || w.Header().Get("Idempotent-Replay") != "" {
				t.Errorf("expected the retry to run again, got %d replay=%q", w.Code, w.Header().Get("Idempotent-Replay"))
			}
			if *calls != 2 {
				t.Errorf("expected 2 handler calls, got %d", *calls)
			}
		})
	}
}

func TestStorable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, true},
		{http.StatusCreated, true},
		{http.StatusNoContent, true},
		{http.StatusBadRequest, true},
		{http.StatusNotFound, true},
		{http.StatusConflict, false},
		{http.StatusTooManyRequests, false},
		{http.StatusInternalServerError, false},
		{http.StatusBadGateway, false},
		{http.StatusSwitchingProtocols, false},
	}
	for _, tt := range tests {
		if got := storable(tt.status); got != tt.want {
			t.Errorf("storable(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestRequestLogger_LevelsByStatus(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	for _, path := range []string{"/ok", "/fail"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if entries[0].Level != zap.InfoLevel || entries[1].Level != zap.ErrorLevel {
		t.Errorf("unexpected levels: %v, %v", entries[0].Level, entries[1].Level)
	}
	if entries[1].ContextMap()["status"] != int64(http.StatusBadGateway) {
		t.Errorf("unexpected status field: %v", entries[1].ContextMap()["status"])
	}
}

func TestNewRelicErrors_NoTransaction(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(NewRelicErrors())
	r.GET("/v1/sync", func(c *gin.Context) {
		_ = c.Error(http.ErrHandlerTimeout)
		c.Status(http.StatusBadGateway)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/sync", nil))
	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", w.Code)
	}
}
