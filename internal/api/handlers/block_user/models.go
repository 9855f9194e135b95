package block_user

import (
	"github.com/avtomart/AVM-TestDriveService/internal/service/users/models"
)

// SetBlockedRequest HTTP request model
type SetBlockedRequest struct {
	Blocked bool `json:"blocked"`
}

// ToServiceRequest конвертирует HTTP запрос в сервисный
func (r *SetBlockedRequest) ToServiceRequest(userID int64) *models.SetBlockedRequest {
	return &models.SetBlockedRequest{
		UserID:  userID,
		Blocked: r.Blocked,
	}
}
