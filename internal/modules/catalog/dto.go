package catalog

import (
	"tutormarket/internal/domain"
	"tutormarket/internal/pkg/pagination"
)

type CreateSubjectRequest struct {
	Name  string `json:"name" binding:"required"`
	Level string `json:"level" binding:"required"`
}

type UpdateSubjectRequest struct {
	Name  *string `json:"name"`
	Level *string `json:"level"`
}

type ListSubjectsQuery struct {
	Keyword string `form:"keyword"`
	Level   string `form:"level"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

type SubjectList struct {
	Subjects []domain.Subject `json:"subjects"`
	pagination.Page
}

type ListTutorsQuery struct {
	Keyword   string `form:"keyword"`
	SubjectID int64  `form:"subject_id"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

type TutorList struct {
	Tutors []domain.TutorProfile `json:"tutors"`
	pagination.Page
}

// TutorDetails is the profile page payload: the profile plus its bookable
// offerings.
type TutorDetails struct {
	Tutor    domain.TutorProfile   `json:"tutor"`
	Services []domain.TutorService `json:"services"`
}
