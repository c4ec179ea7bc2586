package auth

import (
	"context"
	"errors"
	"strings"

	"tutormarket/internal/domain"
	"tutormarket/internal/pkg/validator"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users  UserRepository
	tutors TutorProfileWriter
	jwt    jwtService
}

func NewService(users UserRepository, tutors TutorProfileWriter, jwt jwtService) *Service {
	return &Service{
		users:  users,
		tutors: tutors,
		jwt:    jwt,
	}
}

// Register creates a student or tutor account. Students are active right
// away; tutors start as pending and get a profile awaiting verification.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	role := domain.UserRole(req.Role)
	if role != domain.RoleStudent && role != domain.RoleTutor {
		return nil, "", ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	status := domain.UserActive
	if role == domain.RoleTutor {
		status = domain.UserPending
	}

	user := &domain.User{
		Email:        email,
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
	}
	if errs := validator.Validate(user); errs != nil {
		return nil, "", ErrValidation
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	if role == domain.RoleTutor {
		profile := &domain.TutorProfile{
			UserID:             user.ID,
			FullName:           req.FullName,
			Bio:                req.Bio,
			YearsExperience:    req.YearsExperience,
			HourlyRate:         req.HourlyRate,
			VerificationStatus: domain.VerificationPending,
		}
		if err := s.tutors.CreateProfile(ctx, profile); err != nil {
			return nil, "", err
		}
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if user.Status == domain.UserSuspended {
		return nil, "", ErrAccountSuspended
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}
