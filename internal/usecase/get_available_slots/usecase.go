package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	carRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/car"
	scheduleRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/schedule"
)

// UseCase use case для получения сетки слотов тест-драйва на день
type UseCase struct {
	bookingRepo  BookingRepository
	carRepo      CarRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	carRepo CarRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		carRepo:      carRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
// Сетка информационная: фактическую доступность подтверждает только создание
// бронирования, поэтому запрос идёт без транзакции и блокировок
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: car=%d, date=%s", req.CarID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем автомобиль
	car, err := uc.carRepo.GetByID(ctx, req.CarID)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			uc.logger.Warn("GetAvailableSlots: car id=%d not found", req.CarID)
			return nil, ErrCarNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get car id=%d: %v", req.CarID, err)
		return nil, fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
	}

	// 4. Получаем рабочие часы дилерского центра на день недели.
	// Отсутствие записи означает выходной день
	hours, err := uc.scheduleRepo.GetByDealershipAndDay(ctx, car.DealershipID, req.Date.Weekday())
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	// 5. Генерируем сетку слотов
	grid, err := generateSlotGrid(hours, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slot grid: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
	}

	if len(grid) == 0 {
		uc.logger.Info("GetAvailableSlots: no slots for car=%d on %s", req.CarID, req.Date.Format(domain.DateFormat))
		return &Response{CarID: req.CarID, Date: req.Date, Slots: []Slot{}}, nil
	}

	// 6. Получаем активные бронирования машины на дату
	bookings, err := uc.bookingRepo.GetByCarAndDate(ctx, req.CarID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Вычисляем доступность каждого слота
	slots, err := markAvailability(grid, bookings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to mark availability: %v", err)
		return nil, fmt.Errorf("%w: failed to mark availability: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for car=%d, date=%s",
		len(slots), req.CarID, req.Date.Format(domain.DateFormat))

	return &Response{
		CarID: req.CarID,
		Date:  req.Date,
		Slots: slots,
	}, nil
}
