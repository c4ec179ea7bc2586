package admin

import (
	"context"
	"testing"

	"tutormarket/internal/domain"
	"tutormarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 321
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, f repository.UserFilter, limit, offset int) ([]domain.User, int, error) {
	args := m.Called(ctx, f, limit, offset)
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) CountByRole(ctx context.Context) (map[domain.UserRole]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.UserRole]int64), args.Error(1)
}

type MockBookingStats struct {
	mock.Mock
}

func (m *MockBookingStats) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.BookingStatus]int64), args.Error(1)
}

func newAdminService() (*Service, *MockUserRepository, *MockBookingStats) {
	users := new(MockUserRepository)
	bookings := new(MockBookingStats)
	return NewService(users, bookings), users, bookings
}

var (
	adminActor     = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	moderatorActor = domain.Actor{UserID: 2, Role: domain.RoleModerator}
	studentActor   = domain.Actor{UserID: 42, Role: domain.RoleStudent}
)

func TestListUsers_StudentForbidden(t *testing.T) {
	svc, _, _ := newAdminService()

	_, err := svc.ListUsers(context.Background(), studentActor, ListUsersQuery{})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListUsers_ModeratorAllowed(t *testing.T) {
	svc, users, _ := newAdminService()

	users.On("List", mock.Anything, repository.UserFilter{Status: domain.UserActive}, 20, 0).
		Return([]domain.User{{ID: 5, Email: "a@b.c"}}, 1, nil)

	list, err := svc.ListUsers(context.Background(), moderatorActor, ListUsersQuery{Status: "active"})

	assert.NoError(t, err)
	assert.Len(t, list.Users, 1)
	assert.Equal(t, 1, list.Total)
}

func TestListUsers_InvalidRoleFilter(t *testing.T) {
	svc, _, _ := newAdminService()

	_, err := svc.ListUsers(context.Background(), adminActor, ListUsersQuery{Role: "wizard"})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateUser_Success(t *testing.T) {
	svc, users, _ := newAdminService()

	users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "new@example.com" &&
			u.Role == domain.RoleModerator &&
			u.Status == domain.UserActive &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
	})).Return(nil)

	u, err := svc.CreateUser(context.Background(), adminActor, CreateUserRequest{
		Email:    "New@Example.com",
		Password: "secret123",
		Role:     "moderator",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(321), u.ID)
	assert.Empty(t, u.PasswordHash)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, users, _ := newAdminService()

	users.On("GetByEmail", mock.Anything, "taken@example.com").
		Return(&domain.User{ID: 9, Email: "taken@example.com"}, nil)

	_, err := svc.CreateUser(context.Background(), adminActor, CreateUserRequest{
		Email:    "taken@example.com",
		Password: "secret123",
		Role:     "student",
	})

	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestCreateUser_ModeratorForbidden(t *testing.T) {
	svc, _, _ := newAdminService()

	_, err := svc.CreateUser(context.Background(), moderatorActor, CreateUserRequest{
		Email:    "x@y.z",
		Password: "secret123",
		Role:     "student",
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateUser_RoleChange(t *testing.T) {
	svc, users, _ := newAdminService()

	users.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.User{ID: 5, Email: "u@example.com", Role: domain.RoleStudent, Status: domain.UserActive}, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 5 && u.Role == domain.RoleTutor
	})).Return(nil)

	role := "tutor"
	u, err := svc.UpdateUser(context.Background(), adminActor, 5, UpdateUserRequest{Role: &role})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleTutor, u.Role)
}

func TestUpdateUser_InvalidStatus(t *testing.T) {
	svc, users, _ := newAdminService()

	users.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.User{ID: 5, Email: "u@example.com", Role: domain.RoleStudent, Status: domain.UserActive}, nil)

	status := "frozen"
	_, err := svc.UpdateUser(context.Background(), adminActor, 5, UpdateUserRequest{Status: &status})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateUserStatus_Success(t *testing.T) {
	svc, users, _ := newAdminService()

	users.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.User{ID: 5, Status: domain.UserActive}, nil)
	users.On("UpdateStatus", mock.Anything, int64(5), domain.UserSuspended).Return(nil)

	err := svc.UpdateUserStatus(context.Background(), adminActor, 5, UpdateUserStatusRequest{Status: "suspended"})

	assert.NoError(t, err)
	users.AssertExpectations(t)
}

func TestUpdateUserStatus_NotFound(t *testing.T) {
	svc, users, _ := newAdminService()

	users.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.UpdateUserStatus(context.Background(), adminActor, 404, UpdateUserStatusRequest{Status: "active"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStats_Totals(t *testing.T) {
	svc, users, bookings := newAdminService()

	users.On("CountByRole", mock.Anything).Return(map[domain.UserRole]int64{
		domain.RoleStudent: 10,
		domain.RoleTutor:   4,
		domain.RoleAdmin:   1,
	}, nil)
	bookings.On("CountByStatus", mock.Anything).Return(map[domain.BookingStatus]int64{
		domain.BookingPending:   3,
		domain.BookingCompleted: 7,
	}, nil)

	stats, err := svc.GetStats(context.Background(), adminActor)

	assert.NoError(t, err)
	assert.Equal(t, int64(15), stats.TotalUsers)
	assert.Equal(t, int64(10), stats.TotalBookings)
	assert.Equal(t, int64(7), stats.BookingsByStatus[domain.BookingCompleted])
}
