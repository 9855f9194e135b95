package middleware

import (
	"context"
	"time"
)

// Logger интерфейс логгера для middleware
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsCollector интерфейс сборщика метрик HTTP
type MetricsCollector interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
	IncGuardBlocked(reason string)
}

// CounterStore интерфейс счётчиков запросов для RequestGuard.
// Реализация на Redis разделяет счётчики между репликами сервиса
type CounterStore interface {
	// Incr инкрементирует счётчик и возвращает новое значение.
	// TTL устанавливается только при создании ключа
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// Get возвращает текущее значение счётчика (0, если ключа нет)
	Get(ctx context.Context, key string) (int64, error)
}
