package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtomart/AVM-TestDriveService/internal/availability"
	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	bookingRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/booking"
	carRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/car"
	scheduleRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/schedule"
	userRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/user"
	"github.com/avtomart/AVM-TestDriveService/pkg/types"
)

// testNow фиксированное "текущее время": пятница 7 июня 2024
var testNow = time.Date(2024, 6, 7, 12, 0, 0, 0, time.UTC)

// monday 10 июня 2024 - понедельник
var monday = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time { return p.now }

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeBookingRepo struct {
	active      *domain.Booking
	activeErr   error
	existing    []*domain.Booking
	existingErr error
	createErr   error

	createdInput *domain.Booking
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.createdInput = booking

	created := *booking
	created.ID = 42
	created.CreatedAt = testNow
	created.UpdatedAt = testNow
	return &created, nil
}

func (r *fakeBookingRepo) GetByCarAndDate(ctx context.Context, carID int64, date time.Time) ([]*domain.Booking, error) {
	return r.existing, r.existingErr
}

func (r *fakeBookingRepo) GetActiveByUserAndCar(ctx context.Context, userID, carID int64) (*domain.Booking, error) {
	if r.activeErr != nil {
		return nil, r.activeErr
	}
	return r.active, nil
}

type fakeCarRepo struct {
	car *domain.Car
	err error
}

func (r *fakeCarRepo) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.car, nil
}

type fakeScheduleRepo struct {
	hours *domain.WorkingHours
	err   error
}

func (r *fakeScheduleRepo) GetByDealershipAndDay(ctx context.Context, dealershipID int64, day time.Weekday) (*domain.WorkingHours, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.hours, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func availableCar() *domain.Car {
	return &domain.Car{
		ID:           10,
		DealershipID: 1,
		Brand:        "Lada",
		Model:        "Vesta",
		Status:       domain.CarStatusAvailable,
	}
}

func mondayHours() *domain.WorkingHours {
	return &domain.WorkingHours{
		DealershipID: 1,
		DayOfWeek:    time.Monday,
		OpenTime:     types.TimeString("09:00"),
		CloseTime:    types.TimeString("19:00"),
		IsOpen:       true,
	}
}

func validRequest() *Request {
	return &Request{
		UserID:    7,
		CarID:     10,
		Date:      monday,
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("10:30"),
	}
}

type fakeUserRepo struct {
	user *domain.User
	err  error
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.user, nil
}

func activeUser() *domain.User {
	return &domain.User{ID: 7, Name: "Клиент", Role: domain.RoleUser}
}

func newTestUseCase(
	bookings *fakeBookingRepo,
	cars *fakeCarRepo,
	schedule *fakeScheduleRepo,
	tx *fakeTxManager,
) *UseCase {
	uc := NewUseCase(bookings, cars, schedule, &fakeUserRepo{user: activeUser()}, tx, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}
	return uc
}

func TestExecuteCreatesPendingBooking(t *testing.T) {
	bookings := &fakeBookingRepo{activeErr: bookingRepo.ErrBookingNotFound}
	tx := &fakeTxManager{}
	uc := newTestUseCase(bookings, &fakeCarRepo{car: availableCar()}, &fakeScheduleRepo{hours: mondayHours()}, tx)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, int64(7), resp.UserID)
	assert.Equal(t, int64(10), resp.CarID)
	assert.Equal(t, int64(1), resp.DealershipID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 1, tx.calls)

	// Бронирование создаётся в pending, дилерский центр берётся из машины
	require.NotNil(t, bookings.createdInput)
	assert.Equal(t, domain.StatusPending, bookings.createdInput.Status)
	assert.Equal(t, int64(1), bookings.createdInput.DealershipID)
}

func TestExecuteRejectsInvalidInput(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{activeErr: bookingRepo.ErrBookingNotFound},
		&fakeCarRepo{car: availableCar()},
		&fakeScheduleRepo{hours: mondayHours()},
		&fakeTxManager{},
	)

	req := validRequest()
	req.UserID = 0

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteCarNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{activeErr: bookingRepo.ErrBookingNotFound},
		&fakeCarRepo{err: carRepo.ErrCarNotFound},
		&fakeScheduleRepo{hours: mondayHours()},
		&fakeTxManager{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestExecuteSoldCarNotBookable(t *testing.T) {
	car := availableCar()
	car.Status = domain.CarStatusSold

	uc := newTestUseCase(
		&fakeBookingRepo{activeErr: bookingRepo.ErrBookingNotFound},
		&fakeCarRepo{car: car},
		&fakeScheduleRepo{hours: mondayHours()},
		&fakeTxManager{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCarNotAvailable)
}

func TestExecuteRejectsDuplicateActiveBooking(t *testing.T) {
	bookings := &fakeBookingRepo{
		active: &domain.Booking{ID: 5, UserID: 7, CarID: 10, Status: domain.StatusPending},
	}
	tx := &fakeTxManager{}
	uc := newTestUseCase(bookings, &fakeCarRepo{car: availableCar()}, &fakeScheduleRepo{hours: mondayHours()}, tx)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateBooking)
	assert.Zero(t, tx.calls)
}

func TestExecuteDuplicateCheckFailure(t *testing.T) {
	bookings := &fakeBookingRepo{activeErr: errors.New("connection refused")}
	uc := newTestUseCase(bookings, &fakeCarRepo{car: availableCar()}, &fakeScheduleRepo{hours: mondayHours()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecuteMissingScheduleMeansClosedDay(t *testing.T) {
	// Отсутствие расписания на день недели трактуется как выходной
	uc := newTestUseCase(
		&fakeBookingRepo{activeErr: bookingRepo.ErrBookingNotFound},
		&fakeCarRepo{car: availableCar()},
		&fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound},
		&fakeTxManager{},
	)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, availability.ErrDealershipClosed)
}

func TestExecuteSlotConflictPassedThrough(t *testing.T) {
	bookings := &fakeBookingRepo{
		activeErr: bookingRepo.ErrBookingNotFound,
		existing: []*domain.Booking{
			{
				ID:          3,
				UserID:      99,
				CarID:       10,
				BookingDate: monday,
				StartTime:   types.TimeString("10:00"),
				EndTime:     types.TimeString("10:30"),
				Status:      domain.StatusConfirmed,
			},
		},
	}
	uc := newTestUseCase(bookings, &fakeCarRepo{car: availableCar()}, &fakeScheduleRepo{hours: mondayHours()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, availability.ErrSlotConflict)
	assert.Nil(t, bookings.createdInput)
}

func TestExecuteCreateFailure(t *testing.T) {
	bookings := &fakeBookingRepo{
		activeErr: bookingRepo.ErrBookingNotFound,
		createErr: errors.New("duplicate key value violates exclusion constraint"),
	}
	uc := newTestUseCase(bookings, &fakeCarRepo{car: availableCar()}, &fakeScheduleRepo{hours: mondayHours()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecuteBlockedUserRejected(t *testing.T) {
	blocked := activeUser()
	blocked.IsBlocked = true
	tx := &fakeTxManager{}
	uc := newTestUseCase(
		&fakeBookingRepo{activeErr: bookingRepo.ErrBookingNotFound},
		&fakeCarRepo{car: availableCar()},
		&fakeScheduleRepo{hours: mondayHours()},
		tx,
	)
	uc.userRepo = &fakeUserRepo{user: blocked}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUserBlocked)
	assert.Zero(t, tx.calls)
}

func TestExecuteUnknownUserRejected(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{activeErr: bookingRepo.ErrBookingNotFound},
		&fakeCarRepo{car: availableCar()},
		&fakeScheduleRepo{hours: mondayHours()},
		&fakeTxManager{},
	)
	uc.userRepo = &fakeUserRepo{err: userRepo.ErrUserNotFound}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
