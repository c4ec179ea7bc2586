package repository

import (
	"context"
	"time"

	"tutormarket/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	StudentID   int64      `gorm:"column:student_id;index"`
	TutorID     int64      `gorm:"column:tutor_id;index"`
	ServiceID   int64      `gorm:"column:service_id"`
	SubjectID   int64      `gorm:"column:subject_id"`
	StartAt     time.Time  `gorm:"column:start_at"`
	EndAt       time.Time  `gorm:"column:end_at"`
	Hours       float64    `gorm:"column:hours"`
	TotalAmount int64      `gorm:"column:total_amount"`
	Status      string     `gorm:"column:status;index"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CanceledAt  *time.Time `gorm:"column:canceled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:          m.ID,
		StudentID:   m.StudentID,
		TutorID:     m.TutorID,
		ServiceID:   m.ServiceID,
		SubjectID:   m.SubjectID,
		StartAt:     m.StartAt,
		EndAt:       m.EndAt,
		Hours:       m.Hours,
		TotalAmount: m.TotalAmount,
		Status:      domain.BookingStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CanceledAt:  m.CanceledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:          b.ID,
		StudentID:   b.StudentID,
		TutorID:     b.TutorID,
		ServiceID:   b.ServiceID,
		SubjectID:   b.SubjectID,
		StartAt:     b.StartAt,
		EndAt:       b.EndAt,
		Hours:       b.Hours,
		TotalAmount: b.TotalAmount,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		CanceledAt:  b.CanceledAt,
	}
}

// BookingFilter narrows List. Zero values mean "no constraint".
type BookingFilter struct {
	StudentID int64
	TutorID   int64
	Status    domain.BookingStatus
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter, limit, offset int) ([]domain.Booking, int, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if f.StudentID != 0 {
		q = q.Where("student_id = ?", f.StudentID)
	}
	if f.TutorID != 0 {
		q = q.Where("tutor_id = ?", f.TutorID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []bookingModel
	if err := q.Order("start_at DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, int(total), nil
}

// UpdateStatusFrom moves the booking to `to` only if its current status is one
// of `from`. The status filter sits in the WHERE clause of the UPDATE, so the
// read-validate-write happens as one statement: of two racing transitions
// exactly one sees RowsAffected == 1.
func (r *BookingRepository) UpdateStatusFrom(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus) (bool, error) {
	fromStrs := make([]string, 0, len(from))
	for _, s := range from {
		fromStrs = append(fromStrs, string(s))
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":     string(to),
		"updated_at": now,
	}
	if to == domain.BookingCanceled {
		updates["canceled_at"] = now
	}

	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status IN ?", id, fromStrs).
		Updates(updates)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// UpdateInterval rewrites the scheduled window and the derived fields. Used by
// the admin edit path only.
func (r *BookingRepository) UpdateInterval(ctx context.Context, id int64, startAt, endAt time.Time, hours float64, totalAmount int64) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"start_at":     startAt,
			"end_at":       endAt,
			"hours":        hours,
			"total_amount": totalAmount,
			"updated_at":   time.Now().UTC(),
		})
	return tx.Error
}

// CountOverlapping counts the tutor's confirmed or in-progress bookings whose
// interval intersects [start, end). excludeID skips the booking being accepted.
func (r *BookingRepository) CountOverlapping(ctx context.Context, tutorID int64, start, end time.Time, excludeID int64) (int64, error) {
	var cnt int64
	q := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("tutor_id = ?", tutorID).
		Where("status IN ?", []string{string(domain.BookingConfirmed), string(domain.BookingInProgress)}).
		Where("start_at < ? AND end_at > ?", end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

// Delete is the administrative hard delete; it reports whether a row existed.
func (r *BookingRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&bookingModel{}, id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int64, error) {
	type row struct {
		Status string
		Cnt    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Select("status, COUNT(1) AS cnt").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[domain.BookingStatus]int64, len(rows))
	for _, r := range rows {
		out[domain.BookingStatus(r.Status)] = r.Cnt
	}
	return out, nil
}
