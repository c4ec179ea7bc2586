package admin

import (
	"context"
	"errors"
	"strings"

	"tutormarket/internal/domain"
	"tutormarket/internal/pkg/pagination"
	"tutormarket/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users    UserRepository
	bookings BookingStats
}

func NewService(users UserRepository, bookings BookingStats) *Service {
	return &Service{users: users, bookings: bookings}
}

func canRead(actor domain.Actor) bool {
	return actor.Role == domain.RoleAdmin || actor.Role == domain.RoleModerator
}

func (s *Service) ListUsers(ctx context.Context, actor domain.Actor, q ListUsersQuery) (*UserList, error) {
	if !canRead(actor) {
		return nil, ErrForbidden
	}

	f := repository.UserFilter{Keyword: q.Keyword}
	if q.Status != "" && q.Status != "all" {
		st := domain.UserStatus(q.Status)
		if !st.Valid() {
			return nil, ErrValidation
		}
		f.Status = st
	}
	if q.Role != "" && q.Role != "all" {
		role := domain.UserRole(q.Role)
		if !role.Valid() {
			return nil, ErrValidation
		}
		f.Role = role
	}

	page, perPage := pagination.Clamp(q.Page, q.PerPage)
	items, total, err := s.users.List(ctx, f, perPage, pagination.Offset(page, perPage))
	if err != nil {
		return nil, err
	}

	return &UserList{
		Users: items,
		Page:  pagination.NewPage(total, page, perPage),
	}, nil
}

func (s *Service) GetUser(ctx context.Context, actor domain.Actor, id int64) (*domain.User, error) {
	if !canRead(actor) {
		return nil, ErrForbidden
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *Service) CreateUser(ctx context.Context, actor domain.Actor, req CreateUserRequest) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	role := domain.UserRole(req.Role)
	if !role.Valid() {
		return nil, ErrValidation
	}

	status := domain.UserActive
	if req.Status != "" {
		status = domain.UserStatus(req.Status)
		if !status.Valid() {
			return nil, ErrValidation
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:        email,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	u.PasswordHash = ""
	return u, nil
}

func (s *Service) UpdateUser(ctx context.Context, actor domain.Actor, id int64, req UpdateUserRequest) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != u.Email {
			if _, err := s.users.GetByEmail(ctx, email); err == nil {
				return nil, ErrEmailExists
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			u.Email = email
		}
	}
	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		if !role.Valid() {
			return nil, ErrValidation
		}
		u.Role = role
	}
	if req.Status != nil {
		status := domain.UserStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrValidation
		}
		u.Status = status
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	u.PasswordHash = ""
	return u, nil
}

func (s *Service) UpdateUserStatus(ctx context.Context, actor domain.Actor, id int64, req UpdateUserStatusRequest) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	status := domain.UserStatus(req.Status)
	if !status.Valid() {
		return ErrValidation
	}

	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.users.UpdateStatus(ctx, id, status)
}

func (s *Service) GetStats(ctx context.Context, actor domain.Actor) (*Stats, error) {
	if !canRead(actor) {
		return nil, ErrForbidden
	}

	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		UsersByRole:      byRole,
		BookingsByStatus: byStatus,
	}
	for _, n := range byRole {
		st.TotalUsers += n
	}
	for _, n := range byStatus {
		st.TotalBookings += n
	}
	return st, nil
}
