package domain

// Test-drive duration bounds (minutes)
const (
	MinTestDriveMinutes = 30
	MaxTestDriveMinutes = 60
)

// HourlyStartCapacity максимум активных бронирований, стартующих
// в пределах одного часового интервала (по часу времени начала)
const HourlyStartCapacity = 2

// DefaultSlotStepMinutes шаг сетки слотов при подборе доступного времени
const DefaultSlotStepMinutes = 30

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не участвующих в проверках
// пересечений и лимитов
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
