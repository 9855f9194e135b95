package domain

import (
	"time"

	"github.com/avtomart/AVM-TestDriveService/pkg/types"
)

// WorkingHours represents the opening window of a dealership on one weekday.
// One row per weekday per dealership.
type WorkingHours struct {
	ID           int64
	DealershipID int64
	DayOfWeek    time.Weekday
	OpenTime     types.TimeString
	CloseTime    types.TimeString
	IsOpen       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether the [start, end] window fits into the working hours.
// Always false for a closed day.
func (w *WorkingHours) Contains(start, end types.TimeString) bool {
	if !w.IsOpen {
		return false
	}
	return !start.IsBefore(w.OpenTime) && !end.IsAfter(w.CloseTime)
}
