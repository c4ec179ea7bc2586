package repository

import (
	"context"
	"time"

	"tutormarket/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	BookingID int64     `gorm:"column:booking_id;uniqueIndex"`
	StudentID int64     `gorm:"column:student_id;index"`
	TutorID   int64     `gorm:"column:tutor_id;index"`
	Rating    int       `gorm:"column:rating"`
	Comment   *string   `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	var comment string
	if m.Comment != nil {
		comment = *m.Comment
	}

	return &domain.Review{
		ID:        m.ID,
		BookingID: m.BookingID,
		StudentID: m.StudentID,
		TutorID:   m.TutorID,
		Rating:    m.Rating,
		Comment:   comment,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type ReviewFilter struct {
	StudentID int64
	TutorID   int64
	BookingID int64
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	now := time.Now().UTC()
	rv.CreatedAt = now
	rv.UpdatedAt = now

	var comment *string
	if rv.Comment != "" {
		v := rv.Comment
		comment = &v
	}

	m := reviewModel{
		BookingID: rv.BookingID,
		StudentID: rv.StudentID,
		TutorID:   rv.TutorID,
		Rating:    rv.Rating,
		Comment:   comment,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*rv = *toDomainReview(m)
	return nil
}

func (r *ReviewRepository) List(ctx context.Context, f ReviewFilter, limit, offset int) ([]domain.Review, int, error) {
	q := r.db.WithContext(ctx).Model(&reviewModel{})
	if f.StudentID != 0 {
		q = q.Where("student_id = ?", f.StudentID)
	}
	if f.TutorID != 0 {
		q = q.Where("tutor_id = ?", f.TutorID)
	}
	if f.BookingID != 0 {
		q = q.Where("booking_id = ?", f.BookingID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []reviewModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Review, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainReview(m))
	}
	return out, int(total), nil
}

// AggregateForTutor returns the average rating and review count used for the
// profile rollup.
func (r *ReviewRepository) AggregateForTutor(ctx context.Context, tutorID int64) (float64, int, error) {
	type agg struct {
		Avg float64
		Cnt int64
	}
	var a agg
	err := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(1) AS cnt").
		Where("tutor_id = ?", tutorID).
		Scan(&a).Error
	if err != nil {
		return 0, 0, err
	}
	return a.Avg, int(a.Cnt), nil
}
