package update_working_hours

import (
	"context"

	"github.com/avtomart/AVM-TestDriveService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateWeek(ctx context.Context, dealershipID int64, req *models.UpdateWeekRequest) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
