package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtomart/AVM-TestDriveService/internal/infra/ratestore"
)

type testLogger struct{}

func (testLogger) Info(format string, v ...interface{})  {}
func (testLogger) Warn(format string, v ...interface{})  {}
func (testLogger) Error(format string, v ...interface{}) {}

type failingStore struct{}

func (failingStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return 0, errors.New("store unavailable")
}

func (failingStore) Get(ctx context.Context, key string) (int64, error) {
	return 0, errors.New("store unavailable")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func newRedisStore(t *testing.T) *ratestore.RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return ratestore.NewRedisStore(client)
}

func guardConfig(limit int) GuardConfig {
	return GuardConfig{
		RequestsPerMinute: limit,
		BanThreshold:      3,
		BanDuration:       time.Hour,
	}
}

func doRequest(t *testing.T, handler http.Handler, path, ip string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = ip + ":34567"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGuardAllowsWithinLimit(t *testing.T) {
	guard := NewGuard(newRedisStore(t), guardConfig(5), nil, testLogger{})
	handler := guard.Middleware(okHandler())

	for i := 0; i < 5; i++ {
		rec := doRequest(t, handler, "/api/v1/cars", "10.0.0.1")
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestGuardRateLimitExceeded(t *testing.T) {
	guard := NewGuard(newRedisStore(t), guardConfig(3), nil, testLogger{})
	handler := guard.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		rec := doRequest(t, handler, "/api/v1/cars", "10.0.0.2")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doRequest(t, handler, "/api/v1/cars", "10.0.0.2")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGuardLimitIsPerIP(t *testing.T) {
	guard := NewGuard(newRedisStore(t), guardConfig(1), nil, testLogger{})
	handler := guard.Middleware(okHandler())

	rec := doRequest(t, handler, "/api/v1/cars", "10.0.0.3")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, handler, "/api/v1/cars", "10.0.0.3")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Другой IP не задет чужим лимитом
	rec = doRequest(t, handler, "/api/v1/cars", "10.0.0.4")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuardBlocksProbes(t *testing.T) {
	guard := NewGuard(newRedisStore(t), guardConfig(100), nil, testLogger{})
	handler := guard.Middleware(okHandler())

	for _, path := range []string{"/wp-admin", "/.env", "/phpmyadmin"} {
		rec := doRequest(t, handler, path, "10.0.0.5")
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}

func TestGuardBlocksScannerUserAgent(t *testing.T) {
	guard := NewGuard(newRedisStore(t), guardConfig(100), nil, testLogger{})
	handler := guard.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cars", nil)
	req.RemoteAddr = "10.0.0.6:34567"
	req.Header.Set("User-Agent", "sqlmap/1.7")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGuardBansAfterRepeatedProbes(t *testing.T) {
	guard := NewGuard(newRedisStore(t), guardConfig(100), nil, testLogger{})
	handler := guard.Middleware(okHandler())

	// Три страйка набирают порог бана
	for i := 0; i < 3; i++ {
		doRequest(t, handler, "/wp-login", "10.0.0.7")
	}

	// После бана отклоняются и легитимные запросы
	rec := doRequest(t, handler, "/api/v1/cars", "10.0.0.7")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGuardFailsOpenOnStoreErrors(t *testing.T) {
	// Недоступный Redis не должен ронять трафик
	guard := NewGuard(failingStore{}, guardConfig(1), nil, testLogger{})
	handler := guard.Middleware(okHandler())

	for i := 0; i < 5; i++ {
		rec := doRequest(t, handler, "/api/v1/cars", "10.0.0.8")
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestGuardFallbackWithoutStore(t *testing.T) {
	guard := NewGuard(nil, guardConfig(2), nil, testLogger{})
	handler := guard.Middleware(okHandler())

	// Token bucket на процесс: burst равен лимиту
	rec := doRequest(t, handler, "/api/v1/cars", "10.0.0.9")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, handler, "/api/v1/cars", "10.0.0.9")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, handler, "/api/v1/cars", "10.0.0.9")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestGuardUsesForwardedForHeader(t *testing.T) {
	guard := NewGuard(newRedisStore(t), guardConfig(1), nil, testLogger{})
	handler := guard.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cars", nil)
	req.RemoteAddr = "127.0.0.1:8000"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
