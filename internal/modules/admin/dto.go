package admin

import (
	"tutormarket/internal/domain"
	"tutormarket/internal/pkg/pagination"
)

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
	Status   string `json:"status"`
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListUsersQuery struct {
	Keyword string `form:"keyword"`
	Status  string `form:"status"`
	Role    string `form:"role"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

type UserList struct {
	Users []domain.User `json:"users"`
	pagination.Page
}

type Stats struct {
	TotalUsers       int64                          `json:"total_users"`
	UsersByRole      map[domain.UserRole]int64      `json:"users_by_role"`
	TotalBookings    int64                          `json:"total_bookings"`
	BookingsByStatus map[domain.BookingStatus]int64 `json:"bookings_by_status"`
}
