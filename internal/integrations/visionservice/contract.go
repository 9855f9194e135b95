package visionservice

// Logger интерфейс логгера для клиента
type Logger interface {
	Info(format string, args ...any)
	Error(format string, args ...any)
}
