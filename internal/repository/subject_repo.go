package repository

import (
	"context"
	"strings"
	"time"

	"tutormarket/internal/domain"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	db *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

type subjectModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex"`
	Level     string    `gorm:"column:level"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (subjectModel) TableName() string { return "subjects" }

func toDomainSubject(m subjectModel) *domain.Subject {
	return &domain.Subject{
		ID:        m.ID,
		Name:      m.Name,
		Level:     domain.SubjectLevel(m.Level),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type SubjectFilter struct {
	Keyword string
	Level   domain.SubjectLevel
}

func (r *SubjectRepository) Create(ctx context.Context, s *domain.Subject) error {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	m := subjectModel{
		Name:      s.Name,
		Level:     string(s.Level),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSubject(m)
	return nil
}

func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*domain.Subject, error) {
	var m subjectModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSubject(m), nil
}

func (r *SubjectRepository) Update(ctx context.Context, s *domain.Subject) error {
	s.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&subjectModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"name":       s.Name,
			"level":      string(s.Level),
			"updated_at": s.UpdatedAt,
		}).Error
}

func (r *SubjectRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&subjectModel{}, id)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

func (r *SubjectRepository) List(ctx context.Context, f SubjectFilter, limit, offset int) ([]domain.Subject, int, error) {
	q := r.db.WithContext(ctx).Model(&subjectModel{})
	if f.Keyword != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Keyword)+"%")
	}
	if f.Level != "" {
		q = q.Where("level = ?", string(f.Level))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []subjectModel
	if err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Subject, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainSubject(m))
	}
	return out, int(total), nil
}
