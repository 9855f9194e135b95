package get_working_hours

import (
	"context"

	"github.com/avtomart/AVM-TestDriveService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWeek(ctx context.Context, dealershipID int64) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
