package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	userRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/user"
	"github.com/avtomart/AVM-TestDriveService/internal/service/users/models"
)

// Service сервис для управления пользователями и ролями
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// List получает список всех пользователей
// Доступно только суперадминистраторам
func (s *Service) List(ctx context.Context, requestorID int64) (*models.UserListResponse, error) {
	s.logger.Info("List: fetching users by user=%d", requestorID)

	if err := s.checkSuperadminAccess(ctx, requestorID); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d users", len(users))
	return models.FromDomainUserList(users), nil
}

// UpdateRole изменяет роль пользователя
// Доступно только суперадминистраторам
func (s *Service) UpdateRole(ctx context.Context, targetID int64, req *models.UpdateRoleRequest) (*models.UserResponse, error) {
	s.logger.Info("UpdateRole: updating role of user=%d to %s by user=%d", targetID, req.Role, req.UserID)

	if err := s.checkSuperadminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		s.logger.Warn("UpdateRole: invalid role=%s", req.Role)
		return nil, fmt.Errorf("%w: invalid role", ErrInvalidInput)
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("UpdateRole: user=%d not found", targetID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateRole: repository error for user=%d: %v", targetID, err)
		return nil, fmt.Errorf("%w: UpdateRole - repository error: %v", ErrInternal, err)
	}

	updated, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		s.logger.Error("UpdateRole: failed to fetch updated user=%d: %v", targetID, err)
		return nil, fmt.Errorf("%w: UpdateRole - fetch updated user: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateRole: successfully updated role of user=%d to %s", targetID, role)
	return models.FromDomainUser(updated), nil
}

// SetBlocked блокирует или разблокирует пользователя
// Доступно только суперадминистраторам, заблокировать себя нельзя
func (s *Service) SetBlocked(ctx context.Context, targetID int64, req *models.SetBlockedRequest) (*models.UserResponse, error) {
	s.logger.Info("SetBlocked: setting blocked=%t for user=%d by user=%d", req.Blocked, targetID, req.UserID)

	if err := s.checkSuperadminAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	if targetID == req.UserID {
		s.logger.Warn("SetBlocked: user=%d attempted to block themselves", req.UserID)
		return nil, fmt.Errorf("%w: cannot block own account", ErrInvalidInput)
	}

	if err := s.userRepo.SetBlocked(ctx, targetID, req.Blocked); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("SetBlocked: user=%d not found", targetID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("SetBlocked: repository error for user=%d: %v", targetID, err)
		return nil, fmt.Errorf("%w: SetBlocked - repository error: %v", ErrInternal, err)
	}

	updated, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		s.logger.Error("SetBlocked: failed to fetch updated user=%d: %v", targetID, err)
		return nil, fmt.Errorf("%w: SetBlocked - fetch updated user: %v", ErrInternal, err)
	}

	s.logger.Info("SetBlocked: successfully set blocked=%t for user=%d", req.Blocked, targetID)
	return models.FromDomainUser(updated), nil
}

// checkSuperadminAccess проверяет, что пользователь является суперадминистратором
func (s *Service) checkSuperadminAccess(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("checkSuperadminAccess: user=%d not found", userID)
			return ErrUserNotFound
		}
		s.logger.Error("checkSuperadminAccess: failed to get user=%d: %v", userID, err)
		return fmt.Errorf("%w: checkSuperadminAccess - failed to get user: %v", ErrInternal, err)
	}

	if !user.Role.CanManageRoles() {
		s.logger.Warn("checkSuperadminAccess: user=%d with role=%s is not superadmin", userID, user.Role)
		return ErrAccessDenied
	}

	return nil
}
