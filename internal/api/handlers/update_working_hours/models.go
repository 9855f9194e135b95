package update_working_hours

import (
	"github.com/avtomart/AVM-TestDriveService/internal/service/schedule/models"
)

// UpdateWorkingHoursRequest HTTP request model
type UpdateWorkingHoursRequest struct {
	Days []models.DayHours `json:"days"`
}

// ToServiceRequest конвертирует HTTP запрос в сервисный
func (r *UpdateWorkingHoursRequest) ToServiceRequest(userID int64) *models.UpdateWeekRequest {
	return &models.UpdateWeekRequest{
		UserID: userID,
		Days:   r.Days,
	}
}
