package bookings

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	bookingRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/booking"
	userRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/user"
	"github.com/avtomart/AVM-TestDriveService/internal/service/bookings/models"
	"github.com/avtomart/AVM-TestDriveService/pkg/ptr"
	"github.com/avtomart/AVM-TestDriveService/pkg/xlsxreport"
)

// Service сервис для работы с бронированиями тест-драйвов
type Service struct {
	bookingRepo BookingRepository
	userRepo    UserRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование,
// сотрудники (admin, superadmin) видят любые
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetDealershipBookings получает бронирования дилерского центра с гибкой фильтрацией
// Поддерживает фильтрацию по автомобилю, периоду, статусу и включению неактивных бронирований
// Доступно только сотрудникам (admin, superadmin)
func (s *Service) GetDealershipBookings(ctx context.Context, req *models.GetDealershipBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetDealershipBookings: fetching bookings for dealership=%d, user=%d", req.DealershipID, req.UserID)

	// Проверяем права доступа сотрудника
	if err := s.checkStaffAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetDealershipBookings: invalid filter for dealership=%d: %v", req.DealershipID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	bookings, err := s.bookingRepo.GetByDealershipWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetDealershipBookings: repository error for dealership=%d: %v", req.DealershipID, err)
		return nil, fmt.Errorf("%w: GetDealershipBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDealershipBookings: successfully fetched %d bookings for dealership=%d", len(bookings), req.DealershipID)
	return models.FromDomainBookingList(bookings), nil
}

// ExportDealershipBookings выгружает бронирования дилерского центра в XLSX
// Доступно только сотрудникам (admin, superadmin)
func (s *Service) ExportDealershipBookings(ctx context.Context, req *models.GetDealershipBookingsRequest, w io.Writer) error {
	s.logger.Info("ExportDealershipBookings: exporting bookings for dealership=%d, user=%d", req.DealershipID, req.UserID)

	list, err := s.GetDealershipBookings(ctx, req)
	if err != nil {
		return err
	}

	report := xlsxreport.NewWriter("Bookings")
	defer report.Close()

	header := []string{"ID", "User ID", "Car ID", "Date", "Start", "End", "Status", "Notes", "Cancellation reason"}
	if err := report.WriteHeader(header); err != nil {
		s.logger.Error("ExportDealershipBookings: failed to write header: %v", err)
		return fmt.Errorf("%w: ExportDealershipBookings - write header: %v", ErrInternal, err)
	}

	for _, b := range list.Bookings {
		row := []interface{}{
			b.ID, b.UserID, b.CarID, b.BookingDate, b.StartTime, b.EndTime, b.Status,
			ptr.Deref(b.Notes), ptr.Deref(b.CancellationReason),
		}
		if err := report.WriteRow(row); err != nil {
			s.logger.Error("ExportDealershipBookings: failed to write row for booking id=%d: %v", b.ID, err)
			return fmt.Errorf("%w: ExportDealershipBookings - write row: %v", ErrInternal, err)
		}
	}

	if err := report.WriteTo(w); err != nil {
		s.logger.Error("ExportDealershipBookings: failed to flush report: %v", err)
		return fmt.Errorf("%w: ExportDealershipBookings - flush report: %v", ErrInternal, err)
	}

	s.logger.Info("ExportDealershipBookings: exported %d bookings for dealership=%d", len(list.Bookings), req.DealershipID)
	return nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только своё бронирование,
// сотрудник может отменить любое бронирование
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Владелец отменяет своё бронирование, иначе требуются права сотрудника
	if booking.UserID != req.UserID {
		if err := s.checkStaffAccess(ctx, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}
	}

	// Отменяем бронирование
	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только сотрудникам (admin, superadmin)
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только сотрудник)
	if err := s.checkStaffAccess(ctx, req.UserID); err != nil {
		return err
	}

	// Завершённые и отменённые бронирования не переводятся в другие статусы
	if !booking.CanBeUpdated() {
		s.logger.Warn("UpdateStatus: booking id=%d cannot be updated, status=%s", bookingID, booking.Status)
		return ErrCannotUpdateStatus
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Отмена идёт через Cancel с причиной, здесь только рабочие переходы
	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation of booking id=%d must go through Cancel", bookingID)
		return fmt.Errorf("%w: use cancel endpoint for cancellation", ErrInvalidInput)
	}

	// Обновляем статус
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь видит своё бронирование, сотрудник - любое
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.UserID == userID {
		return nil
	}

	if err := s.checkStaffAccess(ctx, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
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
