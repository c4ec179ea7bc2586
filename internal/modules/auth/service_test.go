package auth

import (
	"context"
	"testing"

	"tutormarket/internal/domain"

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
	if u != nil {
		u.ID = 101
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTutorProfileWriter struct {
	mock.Mock
}

func (m *MockTutorProfileWriter) CreateProfile(ctx context.Context, p *domain.TutorProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockJWT struct {
	mock.Mock
}

func (m *MockJWT) GenerateToken(userID int64, role domain.UserRole) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func TestService_Register_Student(t *testing.T) {
	users := new(MockUserRepository)
	tutors := new(MockTutorProfileWriter)
	jwt := new(MockJWT)
	service := NewService(users, tutors, jwt)

	users.On("GetByEmail", mock.Anything, "ann@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	jwt.On("GenerateToken", int64(101), domain.RoleStudent).Return("tok", nil)

	user, token, err := service.Register(context.Background(), RegisterRequest{
		Email:    "Ann@Example.com",
		Password: "secret1",
		Role:     "student",
	})

	assert.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, domain.RoleStudent, user.Role)
	assert.Equal(t, domain.UserActive, user.Status)
	assert.Empty(t, user.PasswordHash)
	tutors.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything)
}

func TestService_Register_TutorCreatesPendingProfile(t *testing.T) {
	users := new(MockUserRepository)
	tutors := new(MockTutorProfileWriter)
	jwt := new(MockJWT)
	service := NewService(users, tutors, jwt)

	users.On("GetByEmail", mock.Anything, "bob@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	tutors.On("CreateProfile", mock.Anything, mock.MatchedBy(func(p *domain.TutorProfile) bool {
		return p.UserID == 101 &&
			p.VerificationStatus == domain.VerificationPending &&
			p.HourlyRate == 2500
	})).Return(nil)
	jwt.On("GenerateToken", int64(101), domain.RoleTutor).Return("tok", nil)

	user, _, err := service.Register(context.Background(), RegisterRequest{
		Email:      "bob@example.com",
		Password:   "secret1",
		Role:       "tutor",
		FullName:   "Bob T.",
		HourlyRate: 2500,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.UserPending, user.Status)
	tutors.AssertExpectations(t)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	service := NewService(users, new(MockTutorProfileWriter), new(MockJWT))

	users.On("GetByEmail", mock.Anything, "ann@example.com").Return(&domain.User{ID: 5}, nil)

	_, _, err := service.Register(context.Background(), RegisterRequest{
		Email:    "ann@example.com",
		Password: "secret1",
		Role:     "student",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_RejectsPrivilegedRoles(t *testing.T) {
	service := NewService(new(MockUserRepository), new(MockTutorProfileWriter), new(MockJWT))

	for _, role := range []string{"admin", "moderator", "owner", ""} {
		_, _, err := service.Register(context.Background(), RegisterRequest{
			Email:    "x@example.com",
			Password: "secret1",
			Role:     role,
		})
		assert.ErrorIs(t, err, ErrInvalidRole)
	}
}

func TestService_Login(t *testing.T) {
	users := new(MockUserRepository)
	jwt := new(MockJWT)
	service := NewService(users, new(MockTutorProfileWriter), jwt)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "ann@example.com").Return(&domain.User{
		ID:           101,
		Email:        "ann@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleStudent,
		Status:       domain.UserActive,
	}, nil)
	jwt.On("GenerateToken", int64(101), domain.RoleStudent).Return("tok", nil)

	user, token, err := service.Login(context.Background(), LoginRequest{
		Email:    "ann@example.com",
		Password: "secret1",
	})
	assert.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Empty(t, user.PasswordHash)

	_, _, err = service.Login(context.Background(), LoginRequest{
		Email:    "ann@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_Suspended(t *testing.T) {
	users := new(MockUserRepository)
	service := NewService(users, new(MockTutorProfileWriter), new(MockJWT))

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "ann@example.com").Return(&domain.User{
		ID:           101,
		PasswordHash: string(hash),
		Status:       domain.UserSuspended,
	}, nil)

	_, _, err := service.Login(context.Background(), LoginRequest{
		Email:    "ann@example.com",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrAccountSuspended)
}
