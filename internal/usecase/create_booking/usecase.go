package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/avtomart/AVM-TestDriveService/internal/availability"
	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	bookingRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/booking"
	carRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/car"
	scheduleRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/schedule"
	userRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/user"
)

// UseCase use case для создания бронирования тест-драйва
type UseCase struct {
	bookingRepo  BookingRepository
	carRepo      CarRepository
	scheduleRepo ScheduleRepository
	userRepo     UserRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	carRepo CarRepository,
	scheduleRepo ScheduleRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		carRepo:      carRepo,
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка идут в одной сериализуемой транзакции
// с блокировкой бронирований машины на дату (FOR UPDATE):
// проверка "слот свободен" и создание неразделимы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, car=%d, date=%s, time=%s-%s",
		req.UserID, req.CarID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Заблокированные пользователи не могут бронировать тест-драйвы
	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	if user.IsBlocked {
		uc.logger.Warn("CreateBooking: user id=%d is blocked", req.UserID)
		return nil, ErrUserBlocked
	}

	// 4. Получаем автомобиль
	car, err := uc.carRepo.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			uc.logger.Warn("CreateBooking: car id=%d not found", req.CarID)
			return nil, ErrCarNotFound
		}
		uc.logger.Error("CreateBooking: failed to get car id=%d: %v", req.CarID, err)
		return nil, fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
	}

	// 5. Проверяем, что по автомобилю доступны тест-драйвы
	if !car.IsBookable() {
		uc.logger.Warn("CreateBooking: car id=%d is not bookable, status=%s", car.ID, car.Status)
		return nil, ErrCarNotAvailable
	}

	// 6. Запрещаем повторное активное бронирование этой машины этим пользователем
	_, err = uc.bookingRepo.GetActiveByUserAndCar(ctx, req.UserID, req.CarID)
	if err == nil {
		uc.logger.Warn("CreateBooking: user=%d already has an active booking for car=%d", req.UserID, req.CarID)
		return nil, ErrDuplicateBooking
	}
	if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Error("CreateBooking: failed to check duplicate booking: %v", err)
		return nil, fmt.Errorf("%w: failed to check duplicate booking: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 7. Выполняем проверку доступности и вставку в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем рабочие часы дилерского центра на день недели.
		// Отсутствие записи означает выходной день
		hours, err := uc.scheduleRepo.GetByDealershipAndDay(txCtx, car.DealershipID, req.Date.Weekday())
		if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("CreateBooking: failed to get working hours: %v", err)
			return fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
		}

		// 7.2. Получаем активные бронирования машины на дату с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.GetByCarAndDate(txCtx, req.CarID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 7.3. Проверяем доступность слота.
		// Ошибки отказа возвращаются вызывающему как есть
		candidate := availability.Candidate{
			CarID:     req.CarID,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		}
		if err := availability.Check(candidate, existing, hours, now); err != nil {
			uc.logger.Warn("CreateBooking: slot rejected: %v", err)
			return err
		}

		// 7.4. Создаем бронирование в статусе pending, подтверждает сотрудник
		booking := &domain.Booking{
			UserID:       req.UserID,
			CarID:        req.CarID,
			DealershipID: car.DealershipID,
			BookingDate:  req.Date,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
			Status:       domain.StatusPending,
			Notes:        req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:           result.ID,
		UserID:       result.UserID,
		CarID:        result.CarID,
		DealershipID: result.DealershipID,
		BookingDate:  result.BookingDate,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		Status:       string(result.Status),
		Notes:        result.Notes,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
