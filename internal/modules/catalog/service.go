package catalog

import (
	"context"
	"errors"
	"strings"

	"tutormarket/internal/domain"
	"tutormarket/internal/pkg/pagination"
	"tutormarket/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	subjects *repository.SubjectRepository
	tutors   *repository.TutorRepository
}

func NewService(subjects *repository.SubjectRepository, tutors *repository.TutorRepository) *Service {
	return &Service{
		subjects: subjects,
		tutors:   tutors,
	}
}

func (s *Service) ListSubjects(ctx context.Context, q ListSubjectsQuery) (*SubjectList, error) {
	f := repository.SubjectFilter{Keyword: q.Keyword}
	if q.Level != "" && q.Level != "all" {
		level := domain.SubjectLevel(q.Level)
		if !level.Valid() {
			return nil, ErrValidation
		}
		f.Level = level
	}

	page, perPage := pagination.Clamp(q.Page, q.PerPage)
	items, total, err := s.subjects.List(ctx, f, perPage, pagination.Offset(page, perPage))
	if err != nil {
		return nil, err
	}

	return &SubjectList{
		Subjects: items,
		Page:     pagination.NewPage(total, page, perPage),
	}, nil
}

func (s *Service) GetSubject(ctx context.Context, id int64) (*domain.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return subject, nil
}

func (s *Service) CreateSubject(ctx context.Context, req CreateSubjectRequest) (*domain.Subject, error) {
	level := domain.SubjectLevel(req.Level)
	if strings.TrimSpace(req.Name) == "" || !level.Valid() {
		return nil, ErrValidation
	}

	subject := &domain.Subject{
		Name:  strings.TrimSpace(req.Name),
		Level: level,
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSubjectExists
		}
		return nil, err
	}
	return subject, nil
}

func (s *Service) UpdateSubject(ctx context.Context, id int64, req UpdateSubjectRequest) (*domain.Subject, error) {
	subject, err := s.GetSubject(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrValidation
		}
		subject.Name = name
	}
	if req.Level != nil {
		level := domain.SubjectLevel(*req.Level)
		if !level.Valid() {
			return nil, ErrValidation
		}
		subject.Level = level
	}

	if err := s.subjects.Update(ctx, subject); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSubjectExists
		}
		return nil, err
	}
	return subject, nil
}

func (s *Service) DeleteSubject(ctx context.Context, id int64) error {
	ok, err := s.subjects.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) ListTutors(ctx context.Context, q ListTutorsQuery) (*TutorList, error) {
	f := repository.TutorFilter{
		Keyword:   q.Keyword,
		SubjectID: q.SubjectID,
	}

	page, perPage := pagination.Clamp(q.Page, q.PerPage)
	items, total, err := s.tutors.ListProfiles(ctx, f, perPage, pagination.Offset(page, perPage))
	if err != nil {
		return nil, err
	}

	return &TutorList{
		Tutors: items,
		Page:   pagination.NewPage(total, page, perPage),
	}, nil
}

func (s *Service) GetTutor(ctx context.Context, userID int64) (*TutorDetails, error) {
	profile, err := s.tutors.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	services, err := s.tutors.ListServicesByTutor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &TutorDetails{
		Tutor:    *profile,
		Services: services,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite phrasing for local development
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
