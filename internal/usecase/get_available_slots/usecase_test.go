package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	carRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/car"
	scheduleRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/schedule"
	"github.com/avtomart/AVM-TestDriveService/pkg/types"
)

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time { return p.now }

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (r *fakeBookingRepo) GetByCarAndDate(ctx context.Context, carID int64, date time.Time) ([]*domain.Booking, error) {
	return r.bookings, r.err
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

func newTestUseCase(bookings *fakeBookingRepo, cars *fakeCarRepo, schedule *fakeScheduleRepo) *UseCase {
	uc := NewUseCase(bookings, cars, schedule, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}
	return uc
}

func testCar() *domain.Car {
	return &domain.Car{
		ID:           10,
		DealershipID: 1,
		Status:       domain.CarStatusAvailable,
	}
}

func TestExecuteReturnsGridWithAvailability(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{activeBooking("09:30", "10:00")},
	}
	uc := newTestUseCase(bookings, &fakeCarRepo{car: testCar()}, &fakeScheduleRepo{hours: shortDayHours()})

	resp, err := uc.Execute(context.Background(), &Request{CarID: 10, Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	assert.Equal(t, int64(10), resp.CarID)
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
	assert.True(t, resp.Slots[2].Available)
	assert.Equal(t, types.TimeString("09:30"), resp.Slots[1].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[1].EndTime)
}

func TestExecuteCarNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCarRepo{err: carRepo.ErrCarNotFound}, &fakeScheduleRepo{hours: shortDayHours()})

	_, err := uc.Execute(context.Background(), &Request{CarID: 99, Date: monday})
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestExecuteMissingScheduleReturnsEmptyGrid(t *testing.T) {
	// Отсутствие расписания на день недели - выходной, слотов нет
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCarRepo{car: testCar()}, &fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound})

	resp, err := uc.Execute(context.Background(), &Request{CarID: 10, Date: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecutePastDateReturnsEmptyGrid(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCarRepo{car: testCar()}, &fakeScheduleRepo{hours: shortDayHours()})

	pastDate := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{CarID: 10, Date: pastDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteBookingRepoFailure(t *testing.T) {
	bookings := &fakeBookingRepo{err: errors.New("connection refused")}
	uc := newTestUseCase(bookings, &fakeCarRepo{car: testCar()}, &fakeScheduleRepo{hours: shortDayHours()})

	_, err := uc.Execute(context.Background(), &Request{CarID: 10, Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecuteValidation(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCarRepo{car: testCar()}, &fakeScheduleRepo{hours: shortDayHours()})

	_, err := uc.Execute(context.Background(), &Request{CarID: 0, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{CarID: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
