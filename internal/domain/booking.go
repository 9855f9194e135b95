package domain

import (
	"time"

	"github.com/avtomart/AVM-TestDriveService/pkg/types"
)

// BookingStatus represents the status of a test-drive booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a test-drive appointment for a car
type Booking struct {
	ID           int64
	UserID       int64
	CarID        int64
	DealershipID int64 // ID дилерского центра (денормализовано из Car)
	BookingDate  time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       BookingStatus

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking counts toward conflict and capacity checks
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeUpdated returns true if staff can still transition the booking status
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsFinished returns true if the booking reached a terminal state
func (b *Booking) IsFinished() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow || b.Status == StatusCancelled
}

// DealershipBookingsFilter фильтр для получения бронирований дилерского центра
type DealershipBookingsFilter struct {
	DealershipID    int64          // Обязательный параметр
	CarID           *int64         // Фильтр по автомобилю (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершённые и отменённые бронирования
}
