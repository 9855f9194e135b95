package schedule

import (
	"context"
	"errors"
	"fmt"

	userRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/user"
	"github.com/avtomart/AVM-TestDriveService/internal/service/schedule/models"
)

// Service сервис для работы с расписанием дилерских центров
type Service struct {
	scheduleRepo ScheduleRepository
	userRepo     UserRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetWeek получает расписание дилерского центра на неделю (публичный метод)
// Дни без записи в хранилище возвращаются как выходные
func (s *Service) GetWeek(ctx context.Context, dealershipID int64) (*models.WeekResponse, error) {
	s.logger.Info("GetWeek: fetching schedule for dealership=%d", dealershipID)

	hours, err := s.scheduleRepo.GetByDealership(ctx, dealershipID)
	if err != nil {
		s.logger.Error("GetWeek: repository error for dealership=%d: %v", dealershipID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(dealershipID, hours), nil
}

// UpdateWeek обновляет расписание дилерского центра
// Доступно только сотрудникам. Все дни обновляются в одной транзакции:
// частично применённое расписание хуже старого
func (s *Service) UpdateWeek(ctx context.Context, dealershipID int64, req *models.UpdateWeekRequest) (*models.WeekResponse, error) {
	s.logger.Info("UpdateWeek: updating schedule for dealership=%d by user=%d, days=%d",
		dealershipID, req.UserID, len(req.Days))

	if err := s.checkStaffAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	if len(req.Days) == 0 {
		s.logger.Warn("UpdateWeek: empty days list for dealership=%d", dealershipID)
		return nil, fmt.Errorf("%w: days list is empty", ErrInvalidInput)
	}

	// Валидируем все дни до начала транзакции
	seen := make(map[int]bool, len(req.Days))
	for _, day := range req.Days {
		if seen[day.DayOfWeek] {
			s.logger.Warn("UpdateWeek: duplicate day=%d for dealership=%d", day.DayOfWeek, dealershipID)
			return nil, fmt.Errorf("%w: duplicate day of week %d", ErrInvalidInput, day.DayOfWeek)
		}
		seen[day.DayOfWeek] = true

		if _, err := day.ToDomainWorkingHours(dealershipID); err != nil {
			s.logger.Warn("UpdateWeek: invalid day=%d for dealership=%d: %v", day.DayOfWeek, dealershipID, err)
			return nil, fmt.Errorf("%w: day %d: %v", ErrInvalidInput, day.DayOfWeek, err)
		}
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, day := range req.Days {
			wh, err := day.ToDomainWorkingHours(dealershipID)
			if err != nil {
				return err
			}
			if _, err := s.scheduleRepo.Upsert(ctx, wh); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateWeek: transaction failed for dealership=%d: %v", dealershipID, err)
		return nil, fmt.Errorf("%w: UpdateWeek - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWeek: successfully updated schedule for dealership=%d", dealershipID)
	return s.GetWeek(ctx, dealershipID)
}

// checkStaffAccess проверяет, что пользователь является сотрудником
func (s *Service) checkStaffAccess(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("checkStaffAccess: user=%d not found", userID)
			return ErrUserNotFound
		}
		s.logger.Error("checkStaffAccess: failed to get user=%d: %v", userID, err)
		return fmt.Errorf("%w: checkStaffAccess - failed to get user: %v", ErrInternal, err)
	}

	if !user.Role.CanManageInventory() {
		s.logger.Warn("checkStaffAccess: user=%d with role=%s is not staff", userID, user.Role)
		return ErrAccessDenied
	}

	return nil
}
