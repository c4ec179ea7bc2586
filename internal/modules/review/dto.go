package review

import (
	"tutormarket/internal/domain"
	"tutormarket/internal/pkg/pagination"
)

type CreateReviewRequest struct {
	BookingID int64  `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string `json:"comment"`
}

type ListReviewsQuery struct {
	StudentID int64 `form:"student_id"`
	TutorID   int64 `form:"tutor_id"`
	BookingID int64 `form:"booking_id"`
	Page      int   `form:"page"`
	PerPage   int   `form:"per_page"`
}

type ReviewList struct {
	Reviews []domain.Review `json:"reviews"`
	pagination.Page
}
