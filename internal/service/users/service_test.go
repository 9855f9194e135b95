package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avtomart/AVM-TestDriveService/internal/domain"
	userRepo "github.com/avtomart/AVM-TestDriveService/internal/infra/storage/user"
	"github.com/avtomart/AVM-TestDriveService/internal/service/users/models"
)

type fakeUserRepo struct {
	users map[int64]*domain.User

	listErr       error
	updateRoleErr error

	updatedID   int64
	updatedRole domain.Role
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	list := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		list = append(list, u)
	}
	return list, nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id int64, role domain.Role) error {
	if r.updateRoleErr != nil {
		return r.updateRoleErr
	}
	user, ok := r.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	user.Role = role
	r.updatedID = id
	r.updatedRole = role
	return nil
}

func (r *fakeUserRepo) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	user, ok := r.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	user.IsBlocked = blocked
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newRepoWithUsers() *fakeUserRepo {
	return &fakeUserRepo{
		users: map[int64]*domain.User{
			1: {ID: 1, Name: "Root", Email: "root@avtomart.ru", Role: domain.RoleSuperadmin},
			2: {ID: 2, Name: "Manager", Email: "manager@avtomart.ru", Role: domain.RoleAdmin},
			3: {ID: 3, Name: "Customer", Email: "customer@example.com", Role: domain.RoleUser},
		},
	}
}

func TestListRequiresSuperadmin(t *testing.T) {
	repo := newRepoWithUsers()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resp.Users, 3)

	// Админу и обычному пользователю список недоступен
	_, err = svc.List(context.Background(), 2)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.List(context.Background(), 3)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListUnknownRequestor(t *testing.T) {
	svc := NewService(newRepoWithUsers(), nopLogger{})

	_, err := svc.List(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateRolePromotesUser(t *testing.T) {
	repo := newRepoWithUsers()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.UpdateRole(context.Background(), 3, &models.UpdateRoleRequest{UserID: 1, Role: "admin"})
	require.NoError(t, err)

	assert.Equal(t, int64(3), repo.updatedID)
	assert.Equal(t, domain.RoleAdmin, repo.updatedRole)
	assert.Equal(t, "admin", resp.Role)
}

func TestUpdateRoleRequiresSuperadmin(t *testing.T) {
	svc := NewService(newRepoWithUsers(), nopLogger{})

	_, err := svc.UpdateRole(context.Background(), 3, &models.UpdateRoleRequest{UserID: 2, Role: "admin"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateRoleRejectsUnknownRole(t *testing.T) {
	svc := NewService(newRepoWithUsers(), nopLogger{})

	_, err := svc.UpdateRole(context.Background(), 3, &models.UpdateRoleRequest{UserID: 1, Role: "owner"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateRoleTargetNotFound(t *testing.T) {
	svc := NewService(newRepoWithUsers(), nopLogger{})

	_, err := svc.UpdateRole(context.Background(), 99, &models.UpdateRoleRequest{UserID: 1, Role: "admin"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListRepositoryFailure(t *testing.T) {
	repo := newRepoWithUsers()
	repo.listErr = errors.New("connection refused")
	svc := NewService(repo, nopLogger{})

	_, err := svc.List(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestSetBlockedBlocksUser(t *testing.T) {
	repo := newRepoWithUsers()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.SetBlocked(context.Background(), 3, &models.SetBlockedRequest{UserID: 1, Blocked: true})

	require.NoError(t, err)
	assert.True(t, resp.IsBlocked)
	assert.True(t, repo.users[3].IsBlocked)
}

func TestSetBlockedUnblocks(t *testing.T) {
	repo := newRepoWithUsers()
	repo.users[3].IsBlocked = true
	svc := NewService(repo, nopLogger{})

	resp, err := svc.SetBlocked(context.Background(), 3, &models.SetBlockedRequest{UserID: 1, Blocked: false})

	require.NoError(t, err)
	assert.False(t, resp.IsBlocked)
}

func TestSetBlockedRequiresSuperadmin(t *testing.T) {
	repo := newRepoWithUsers()
	svc := NewService(repo, nopLogger{})

	_, err := svc.SetBlocked(context.Background(), 3, &models.SetBlockedRequest{UserID: 2, Blocked: true})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.users[3].IsBlocked)
}

func TestSetBlockedSelfRejected(t *testing.T) {
	repo := newRepoWithUsers()
	svc := NewService(repo, nopLogger{})

	_, err := svc.SetBlocked(context.Background(), 1, &models.SetBlockedRequest{UserID: 1, Blocked: true})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetBlockedTargetNotFound(t *testing.T) {
	repo := newRepoWithUsers()
	svc := NewService(repo, nopLogger{})

	_, err := svc.SetBlocked(context.Background(), 99, &models.SetBlockedRequest{UserID: 1, Blocked: true})

	assert.ErrorIs(t, err, ErrUserNotFound)
}
