package notification

import (
	"tutormarket/internal/domain"
	"tutormarket/internal/pkg/pagination"
)

type ListNotificationsQuery struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

type NotificationList struct {
	Notifications []domain.Notification `json:"notifications"`
	pagination.Page
}
