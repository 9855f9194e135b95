package update_user_role

import (
	"github.com/avtomart/AVM-TestDriveService/internal/service/users/models"
)

// UpdateRoleRequest HTTP request model
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// ToServiceRequest конвертирует HTTP запрос в сервисный
func (r *UpdateRoleRequest) ToServiceRequest(userID int64) *models.UpdateRoleRequest {
	return &models.UpdateRoleRequest{
		UserID: userID,
		Role:   r.Role,
	}
}
