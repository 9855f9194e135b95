package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	userRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/user"
	"github.com/avtomart/AVM-TestDriveService/internal/service/schedule/models"
	"github.com/avtomart/AVM-TestDriveService/pkg/types"
)

type fakeScheduleRepo struct {
	hours     []*domain.WorkingHours
	getErr    error
	upsertErr error

	upserted []*domain.WorkingHours
}

func (r *fakeScheduleRepo) GetByDealership(ctx context.Context, dealershipID int64) ([]*domain.WorkingHours, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.hours, nil
}

func (r *fakeScheduleRepo) Upsert(ctx context.Context, wh *domain.WorkingHours) (*domain.WorkingHours, error) {
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	r.upserted = append(r.upserted, wh)
	return wh, nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return user, nil
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func staffUsers() *fakeUserRepo {
	return &fakeUserRepo{
		users: map[int64]*domain.User{
			1: {ID: 1, Role: domain.RoleAdmin},
			2: {ID: 2, Role: domain.RoleUser},
		},
	}
}

func TestGetWeekFillsMissingDaysAsClosed(t *testing.T) {
	repo := &fakeScheduleRepo{
		hours: []*domain.WorkingHours{
			{
				DealershipID: 1,
				DayOfWeek:    time.Monday,
				OpenTime:     types.TimeString("09:00"),
				CloseTime:    types.TimeString("19:00"),
				IsOpen:       true,
			},
		},
	}
	svc := NewService(repo, staffUsers(), &fakeTxManager{}, nopLogger{})

	resp, err := svc.GetWeek(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)

	// Понедельник открыт, остальные дни выходные
	assert.True(t, resp.Days[int(time.Monday)].IsOpen)
	assert.Equal(t, "09:00", resp.Days[int(time.Monday)].OpenTime)
	assert.Equal(t, "19:00", resp.Days[int(time.Monday)].CloseTime)

	assert.False(t, resp.Days[int(time.Sunday)].IsOpen)
	assert.False(t, resp.Days[int(time.Saturday)].IsOpen)
	assert.Empty(t, resp.Days[int(time.Sunday)].OpenTime)
}

func TestUpdateWeekUpsertsAllDaysInTransaction(t *testing.T) {
	repo := &fakeScheduleRepo{}
	tx := &fakeTxManager{}
	svc := NewService(repo, staffUsers(), tx, nopLogger{})

	req := &models.UpdateWeekRequest{
		UserID: 1,
		Days: []models.DayHours{
			{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "19:00", IsOpen: true},
			{DayOfWeek: 2, OpenTime: "09:00", CloseTime: "19:00", IsOpen: true},
			{DayOfWeek: 0, IsOpen: false},
		},
	}

	_, err := svc.UpdateWeek(context.Background(), 1, req)
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	require.Len(t, repo.upserted, 3)
	assert.Equal(t, time.Monday, repo.upserted[0].DayOfWeek)
	assert.False(t, repo.upserted[2].IsOpen)
	assert.True(t, repo.upserted[2].OpenTime.IsZero())
}

func TestUpdateWeekRequiresStaffRole(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, staffUsers(), &fakeTxManager{}, nopLogger{})

	req := &models.UpdateWeekRequest{
		UserID: 2,
		Days:   []models.DayHours{{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "19:00", IsOpen: true}},
	}

	_, err := svc.UpdateWeek(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateWeekValidation(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, staffUsers(), &fakeTxManager{}, nopLogger{})

	tests := []struct {
		name string
		days []models.DayHours
	}{
		{"empty days", nil},
		{"day out of range", []models.DayHours{{DayOfWeek: 7, OpenTime: "09:00", CloseTime: "19:00", IsOpen: true}}},
		{"bad time format", []models.DayHours{{DayOfWeek: 1, OpenTime: "9am", CloseTime: "19:00", IsOpen: true}}},
		{"open after close", []models.DayHours{{DayOfWeek: 1, OpenTime: "19:00", CloseTime: "09:00", IsOpen: true}}},
		{"duplicate day", []models.DayHours{
			{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "19:00", IsOpen: true},
			{DayOfWeek: 1, OpenTime: "10:00", CloseTime: "18:00", IsOpen: true},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateWeek(context.Background(), 1, &models.UpdateWeekRequest{UserID: 1, Days: tc.days})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateWeekNoPartialApplyOnFailure(t *testing.T) {
	repo := &fakeScheduleRepo{upsertErr: errors.New("connection refused")}
	svc := NewService(repo, staffUsers(), &fakeTxManager{}, nopLogger{})

	req := &models.UpdateWeekRequest{
		UserID: 1,
		Days:   []models.DayHours{{DayOfWeek: 1, OpenTime: "09:00", CloseTime: "19:00", IsOpen: true}},
	}

	_, err := svc.UpdateWeek(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrInternal)
}
