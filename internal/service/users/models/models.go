package models

import (
	"time"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
)

// UpdateRoleRequest запрос на изменение роли пользователя
type UpdateRoleRequest struct {
	UserID int64  `json:"userId"` // Инициатор запроса
	Role   string `json:"role"`   // Новая роль
}

// SetBlockedRequest запрос на блокировку или разблокировку пользователя
type SetBlockedRequest struct {
	UserID  int64 `json:"userId"` // Инициатор запроса
	Blocked bool  `json:"blocked"`
}

// UserResponse ответ с данными пользователя
type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsBlocked bool   `json:"isBlocked"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserListResponse ответ со списком пользователей
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User) *UserResponse {
	if u == nil {
		return nil
	}

	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		IsBlocked: u.IsBlocked,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// FromDomainUserList конвертирует список domain моделей в DTO
func FromDomainUserList(users []*domain.User) *UserListResponse {
	if users == nil {
		return &UserListResponse{Users: []UserResponse{}}
	}

	resp := &UserListResponse{
		Users: make([]UserResponse, len(users)),
	}

	for i, user := range users {
		if userResp := FromDomainUser(user); userResp != nil {
			resp.Users[i] = *userResp
		}
	}

	return resp
}
