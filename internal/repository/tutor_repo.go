package repository

import (
	"context"
	"strings"
	"time"

	"tutormarket/internal/domain"

	"gorm.io/gorm"
)

type TutorRepository struct {
	db *gorm.DB
}

func NewTutorRepository(db *gorm.DB) *TutorRepository {
	return &TutorRepository{db: db}
}

type tutorProfileModel struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	UserID             int64     `gorm:"column:user_id;uniqueIndex"`
	FullName           string    `gorm:"column:full_name"`
	Bio                *string   `gorm:"column:bio"`
	YearsExperience    int       `gorm:"column:years_experience"`
	HourlyRate         int64     `gorm:"column:hourly_rate"`
	VerificationStatus string    `gorm:"column:verification_status"`
	RatingAvg          float64   `gorm:"column:rating_avg"`
	RatingCount        int       `gorm:"column:rating_count"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (tutorProfileModel) TableName() string { return "tutor_profiles" }

type tutorServiceModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	TutorID    int64     `gorm:"column:tutor_id;index"`
	SubjectID  int64     `gorm:"column:subject_id;index"`
	HourlyRate int64     `gorm:"column:hourly_rate"`
	Active     bool      `gorm:"column:active"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (tutorServiceModel) TableName() string { return "tutor_services" }

func toDomainTutorProfile(m tutorProfileModel) *domain.TutorProfile {
	var bio string
	if m.Bio != nil {
		bio = *m.Bio
	}

	return &domain.TutorProfile{
		ID:                 m.ID,
		UserID:             m.UserID,
		FullName:           m.FullName,
		Bio:                bio,
		YearsExperience:    m.YearsExperience,
		HourlyRate:         m.HourlyRate,
		VerificationStatus: domain.VerificationStatus(m.VerificationStatus),
		RatingAvg:          m.RatingAvg,
		RatingCount:        m.RatingCount,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toDomainTutorService(m tutorServiceModel) *domain.TutorService {
	return &domain.TutorService{
		ID:         m.ID,
		TutorID:    m.TutorID,
		SubjectID:  m.SubjectID,
		HourlyRate: m.HourlyRate,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

type TutorFilter struct {
	Keyword   string
	SubjectID int64
}

func (r *TutorRepository) CreateProfile(ctx context.Context, p *domain.TutorProfile) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	var bio *string
	if p.Bio != "" {
		v := p.Bio
		bio = &v
	}

	m := tutorProfileModel{
		UserID:             p.UserID,
		FullName:           p.FullName,
		Bio:                bio,
		YearsExperience:    p.YearsExperience,
		HourlyRate:         p.HourlyRate,
		VerificationStatus: string(p.VerificationStatus),
		RatingAvg:          p.RatingAvg,
		RatingCount:        p.RatingCount,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainTutorProfile(m)
	return nil
}

func (r *TutorRepository) GetProfileByUserID(ctx context.Context, userID int64) (*domain.TutorProfile, error) {
	var m tutorProfileModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTutorProfile(m), nil
}

// UpdateRating overwrites the review rollup for a tutor.
func (r *TutorRepository) UpdateRating(ctx context.Context, userID int64, avg float64, count int) error {
	return r.db.WithContext(ctx).
		Model(&tutorProfileModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"rating_avg":   avg,
			"rating_count": count,
			"updated_at":   time.Now().UTC(),
		}).Error
}

func (r *TutorRepository) ListProfiles(ctx context.Context, f TutorFilter, limit, offset int) ([]domain.TutorProfile, int, error) {
	q := r.db.WithContext(ctx).Model(&tutorProfileModel{})
	if f.Keyword != "" {
		q = q.Where("LOWER(full_name) LIKE ?", "%"+strings.ToLower(f.Keyword)+"%")
	}
	if f.SubjectID != 0 {
		q = q.Where(
			"user_id IN (?)",
			r.db.Model(&tutorServiceModel{}).
				Select("tutor_id").
				Where("subject_id = ? AND active", f.SubjectID),
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []tutorProfileModel
	if err := q.Order("rating_avg DESC, rating_count DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.TutorProfile, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainTutorProfile(m))
	}
	return out, int(total), nil
}

func (r *TutorRepository) CreateService(ctx context.Context, s *domain.TutorService) error {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	m := tutorServiceModel{
		TutorID:    s.TutorID,
		SubjectID:  s.SubjectID,
		HourlyRate: s.HourlyRate,
		Active:     s.Active,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainTutorService(m)
	return nil
}

func (r *TutorRepository) GetServiceByID(ctx context.Context, id int64) (*domain.TutorService, error) {
	var m tutorServiceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTutorService(m), nil
}

func (r *TutorRepository) ListServicesByTutor(ctx context.Context, tutorID int64) ([]domain.TutorService, error) {
	var models []tutorServiceModel
	tx := r.db.WithContext(ctx).
		Where("tutor_id = ? AND active", tutorID).
		Order("subject_id ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.TutorService, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainTutorService(m))
	}
	return out, nil
}
