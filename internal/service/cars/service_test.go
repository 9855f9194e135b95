package cars

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	carRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/car"
	userRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/user"
	"github.com/avtomart/AVM-TestDriveService/internal/integrations/visionservice"
	"github.com/avtomart/AVM-TestDriveService/internal/service/cars/models"
	"github.com/avtomart/AVM-TestDriveService/pkg/ptr"
)

type fakeCarRepo struct {
	car       *domain.Car
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	createdInput *domain.Car
	updatedInput *domain.Car
	deletedID    int64
}

func (r *fakeCarRepo) Create(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.createdInput = car

	created := *car
	created.ID = 10
	return &created, nil
}

func (r *fakeCarRepo) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.car, nil
}

func (r *fakeCarRepo) List(ctx context.Context, filter domain.CarFilter) ([]*domain.Car, error) {
	if r.car == nil {
		return []*domain.Car{}, nil
	}
	return []*domain.Car{r.car}, nil
}

func (r *fakeCarRepo) Update(ctx context.Context, car *domain.Car) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updatedInput = car
	return nil
}

func (r *fakeCarRepo) Delete(ctx context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deletedID = id
	return nil
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

type fakeVisionClient struct {
	analysis *visionservice.Analysis
	err      error

	requestedURL string
}

func (c *fakeVisionClient) AnalyzeCarPhotoWithGracefulDegradation(ctx context.Context, photoURL string) (*visionservice.Analysis, error) {
	c.requestedURL = photoURL
	if c.err != nil {
		return nil, c.err
	}
	return c.analysis, nil
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

func createRequest(userID int64) *models.CreateCarRequest {
	return &models.CreateCarRequest{
		UserID:       userID,
		DealershipID: 1,
		Brand:        "Lada",
		Model:        "Vesta",
		Year:         2023,
		PriceRub:     1_500_000,
		VIN:          "XTA210990Y1234567",
	}
}

func TestCreateRequiresStaffRole(t *testing.T) {
	repo := &fakeCarRepo{}
	svc := NewService(repo, staffUsers(), nil, nopLogger{})

	_, err := svc.Create(context.Background(), createRequest(2))
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.createdInput)
}

func TestCreateSetsAvailableStatus(t *testing.T) {
	repo := &fakeCarRepo{}
	svc := NewService(repo, staffUsers(), nil, nopLogger{})

	resp, err := svc.Create(context.Background(), createRequest(1))
	require.NoError(t, err)

	assert.Equal(t, string(domain.CarStatusAvailable), resp.Status)
	require.NotNil(t, repo.createdInput)
	assert.Equal(t, domain.CarStatusAvailable, repo.createdInput.Status)
	assert.Nil(t, repo.createdInput.AISummary)
}

func TestCreateDuplicateVIN(t *testing.T) {
	repo := &fakeCarRepo{createErr: carRepo.ErrDuplicateVIN}
	svc := NewService(repo, staffUsers(), nil, nopLogger{})

	_, err := svc.Create(context.Background(), createRequest(1))
	assert.ErrorIs(t, err, ErrDuplicateVIN)
}

func TestCreateEnrichesWithVisionSummary(t *testing.T) {
	repo := &fakeCarRepo{}
	vision := &fakeVisionClient{
		analysis: &visionservice.Analysis{Summary: "Кузов без видимых повреждений", Condition: "good"},
	}
	svc := NewService(repo, staffUsers(), vision, nopLogger{})

	req := createRequest(1)
	req.PhotoURL = ptr.Ptr("https://cdn.avtomart.ru/cars/10.jpg")

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.avtomart.ru/cars/10.jpg", vision.requestedURL)
	require.NotNil(t, repo.createdInput.AISummary)
	assert.Equal(t, "Кузов без видимых повреждений", *repo.createdInput.AISummary)
}

func TestCreateSurvivesVisionDegradation(t *testing.T) {
	// Недоступный VisionService не мешает добавлению машины
	repo := &fakeCarRepo{}
	vision := &fakeVisionClient{err: visionservice.ErrServiceDegraded}
	svc := NewService(repo, staffUsers(), vision, nopLogger{})

	req := createRequest(1)
	req.PhotoURL = ptr.Ptr("https://cdn.avtomart.ru/cars/10.jpg")

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, repo.createdInput.AISummary)
}

func TestUpdateReanalyzesChangedPhoto(t *testing.T) {
	repo := &fakeCarRepo{
		car: &domain.Car{ID: 10, DealershipID: 1, Brand: "Lada", Model: "Vesta", Status: domain.CarStatusAvailable},
	}
	vision := &fakeVisionClient{
		analysis: &visionservice.Analysis{Summary: "Царапина на заднем бампере"},
	}
	svc := NewService(repo, staffUsers(), vision, nopLogger{})

	req := &models.UpdateCarRequest{
		UserID:   1,
		PhotoURL: ptr.Ptr("https://cdn.avtomart.ru/cars/10-v2.jpg"),
	}

	resp, err := svc.Update(context.Background(), 10, req)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.avtomart.ru/cars/10-v2.jpg", vision.requestedURL)
	require.NotNil(t, resp.AISummary)
	assert.Equal(t, "Царапина на заднем бампере", *resp.AISummary)
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	repo := &fakeCarRepo{
		car: &domain.Car{ID: 10, Status: domain.CarStatusAvailable},
	}
	svc := NewService(repo, staffUsers(), nil, nopLogger{})

	req := &models.UpdateCarRequest{UserID: 1, Status: ptr.Ptr("scrapped")}

	_, err := svc.Update(context.Background(), 10, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateCarNotFound(t *testing.T) {
	repo := &fakeCarRepo{getErr: carRepo.ErrCarNotFound}
	svc := NewService(repo, staffUsers(), nil, nopLogger{})

	_, err := svc.Update(context.Background(), 99, &models.UpdateCarRequest{UserID: 1})
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestDeleteRequiresStaffRole(t *testing.T) {
	repo := &fakeCarRepo{}
	svc := NewService(repo, staffUsers(), nil, nopLogger{})

	err := svc.Delete(context.Background(), 10, 2)
	assert.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, svc.Delete(context.Background(), 10, 1))
	assert.Equal(t, int64(10), repo.deletedID)
}

func TestGetByIDPublic(t *testing.T) {
	repo := &fakeCarRepo{
		car: &domain.Car{ID: 10, Brand: "Lada", Model: "Vesta", Status: domain.CarStatusAvailable},
	}
	svc := NewService(repo, staffUsers(), nil, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Lada", resp.Brand)

	repo.getErr = carRepo.ErrCarNotFound
	_, err = svc.GetByID(context.Background(), 11)
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestListValidatesStatusFilter(t *testing.T) {
	repo := &fakeCarRepo{}
	svc := NewService(repo, staffUsers(), nil, nopLogger{})

	resp, err := svc.List(context.Background(), &models.ListCarsRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Cars)

	_, err = svc.List(context.Background(), &models.ListCarsRequest{Status: ptr.Ptr("scrapped")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateRepositoryFailure(t *testing.T) {
	repo := &fakeCarRepo{createErr: errors.New("connection refused")}
	svc := NewService(repo, staffUsers(), nil, nopLogger{})

	_, err := svc.Create(context.Background(), createRequest(1))
	assert.ErrorIs(t, err, ErrInternal)
}
