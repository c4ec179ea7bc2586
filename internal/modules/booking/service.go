package booking

import (
	"context"
	"errors"
	"math"

	"tutormarket/internal/domain"
	"tutormarket/internal/pkg/pagination"
	"tutormarket/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	catalog  ServiceCatalog
	notifs   NotificationSender
}

func NewService(bookings BookingRepository, catalog ServiceCatalog, notifs NotificationSender) *Service {
	return &Service{
		bookings: bookings,
		catalog:  catalog,
		notifs:   notifs,
	}
}

// Create validates the interval, resolves the offering for the rate, rejects
// intervals overlapping a confirmed session of the tutor, and stores the
// booking as pending. Past start times are allowed: immediate bookings are a
// supported flow.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreateBookingRequest) (*domain.Booking, error) {
	studentID := req.StudentID
	switch actor.Role {
	case domain.RoleStudent:
		studentID = actor.UserID
	case domain.RoleAdmin:
		if studentID == 0 {
			return nil, ErrValidation
		}
	default:
		return nil, ErrForbidden
	}

	if !req.EndAt.After(req.StartAt) {
		return nil, ErrInvalidInterval
	}

	svc, err := s.catalog.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrValidation
		}
		return nil, err
	}
	if svc.TutorID != req.TutorID || svc.SubjectID != req.SubjectID || !svc.Active {
		return nil, ErrValidation
	}

	busy, err := s.bookings.CountOverlapping(ctx, req.TutorID, req.StartAt, req.EndAt, 0)
	if err != nil {
		return nil, err
	}
	if busy > 0 {
		return nil, ErrTutorBusy
	}

	hours := req.EndAt.Sub(req.StartAt).Hours()
	total := int64(math.Round(hours * float64(svc.HourlyRate)))

	b := &domain.Booking{
		StudentID:   studentID,
		TutorID:     req.TutorID,
		ServiceID:   req.ServiceID,
		SubjectID:   req.SubjectID,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Hours:       hours,
		TotalAmount: total,
		Status:      domain.BookingPending,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingEvent(ctx, b.TutorID, domain.NotifyBookingCreated, b)
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	b, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !b.IsParticipant(actor.UserID) {
		return nil, ErrForbidden
	}
	return b, nil
}

// List serves the role-scoped query layer. Students and tutors are pinned to
// their own bookings regardless of the query parameters; admins may filter by
// any user.
func (s *Service) List(ctx context.Context, actor domain.Actor, q ListBookingsQuery) (*BookingList, error) {
	var f repository.BookingFilter

	switch actor.Role {
	case domain.RoleStudent:
		f.StudentID = actor.UserID
	case domain.RoleTutor:
		f.TutorID = actor.UserID
	case domain.RoleAdmin, domain.RoleModerator:
		switch q.UserType {
		case "student":
			f.StudentID = q.UserID
		case "tutor":
			f.TutorID = q.UserID
		case "":
		default:
			return nil, ErrValidation
		}
	default:
		return nil, ErrForbidden
	}

	if q.Status != "" {
		st := domain.BookingStatus(q.Status)
		if !st.Valid() {
			return nil, ErrValidation
		}
		f.Status = st
	}

	page, perPage := pagination.Clamp(q.Page, q.PerPage)
	items, total, err := s.bookings.List(ctx, f, perPage, pagination.Offset(page, perPage))
	if err != nil {
		return nil, err
	}

	return &BookingList{
		Bookings: items,
		Page:     pagination.NewPage(total, page, perPage),
	}, nil
}

// Accept moves pending → confirmed. Only the booking's tutor (or an admin) may
// accept, and accepting re-checks the tutor's calendar: two pending bookings
// may share a window, but only one of them can be confirmed.
func (s *Service) Accept(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	b, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != b.TutorID {
		return nil, ErrForbidden
	}

	busy, err := s.bookings.CountOverlapping(ctx, b.TutorID, b.StartAt, b.EndAt, b.ID)
	if err != nil {
		return nil, err
	}
	if busy > 0 {
		return nil, ErrTutorBusy
	}

	return s.transition(ctx, b, domain.BookingConfirmed, domain.NotifyBookingConfirmed, b.StudentID)
}

// Start moves confirmed → in_progress. The transition is a manual tutor
// action; nothing in the system fires it from the clock.
func (s *Service) Start(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	b, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != b.TutorID {
		return nil, ErrForbidden
	}

	return s.transition(ctx, b, domain.BookingInProgress, domain.NotifyBookingStarted, b.StudentID)
}

// Cancel is available to either participant and to admins, from any
// non-terminal state.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	b, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !b.IsParticipant(actor.UserID) {
		return nil, ErrForbidden
	}

	counterpart := b.TutorID
	if actor.UserID == b.TutorID {
		counterpart = b.StudentID
	}
	return s.transition(ctx, b, domain.BookingCanceled, domain.NotifyBookingCanceled, counterpart)
}

func (s *Service) Complete(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	b, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.UserID != b.TutorID {
		return nil, ErrForbidden
	}

	return s.transition(ctx, b, domain.BookingCompleted, domain.NotifyBookingCompleted, b.StudentID)
}

// Refund is the administrative completed → refunded override.
func (s *Service) Refund(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	b, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, b, domain.BookingRefunded, domain.NotifyBookingRefunded, b.StudentID)
}

// intervalEditable limits rescheduling to bookings that are still live.
// Completed sessions keep their window and total as historical record; the
// refund edge does not reopen them.
func intervalEditable(s domain.BookingStatus) bool {
	switch s {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingInProgress:
		return true
	}
	return false
}

// Update is the admin edit. Interval changes keep the derived fields
// consistent with the offering's rate; a status change is validated against
// the transition table exactly like the dedicated operations. Every part of
// the request is validated before anything is written, so a rejected edit
// leaves the booking untouched.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	b, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var to domain.BookingStatus
	if req.Status != nil {
		to = domain.BookingStatus(*req.Status)
		if !to.Valid() {
			return nil, ErrValidation
		}
		if to != b.Status && !b.Status.CanTransitionTo(to) {
			return nil, ErrInvalidTransition
		}
	}

	editInterval := req.StartAt != nil || req.EndAt != nil
	startAt, endAt := b.StartAt, b.EndAt
	if editInterval {
		if !intervalEditable(b.Status) {
			return nil, ErrInvalidTransition
		}
		if req.StartAt != nil {
			startAt = *req.StartAt
		}
		if req.EndAt != nil {
			endAt = *req.EndAt
		}
		if !endAt.After(startAt) {
			return nil, ErrInvalidInterval
		}
	}

	if editInterval {
		svc, err := s.catalog.GetServiceByID(ctx, b.ServiceID)
		if err != nil {
			return nil, err
		}
		hours := endAt.Sub(startAt).Hours()
		total := int64(math.Round(hours * float64(svc.HourlyRate)))

		if err := s.bookings.UpdateInterval(ctx, id, startAt, endAt, hours, total); err != nil {
			if isOverlapViolation(err) {
				return nil, ErrTutorBusy
			}
			return nil, err
		}
	}

	if req.Status != nil && to != b.Status {
		ok, err := s.bookings.UpdateStatusFrom(ctx, id, []domain.BookingStatus{b.Status}, to)
		if err != nil {
			if isOverlapViolation(err) {
				return nil, ErrTutorBusy
			}
			return nil, err
		}
		if !ok {
			return nil, ErrInvalidTransition
		}
	}

	return s.getByID(ctx, id)
}

// Delete is the administrative hard delete, outside the lifecycle.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	ok, err := s.bookings.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *Service) getByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// isOverlapViolation recognizes the bookings_no_tutor_overlap exclusion
// constraint. Postgres raises it when a write would give a tutor two
// confirmed or in-progress sessions sharing a window, which closes the gap
// between the calendar pre-check and the commit.
func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

// transition performs the compare-and-set status change. The repository write
// carries every legal source state for `to`; losing a race or starting from an
// illegal state both come back as RowsAffected == 0 and map to
// ErrInvalidTransition, so of two concurrent calls exactly one succeeds.
func (s *Service) transition(ctx context.Context, b *domain.Booking, to domain.BookingStatus, kind domain.NotificationKind, notifyUserID int64) (*domain.Booking, error) {
	ok, err := s.bookings.UpdateStatusFrom(ctx, b.ID, domain.TransitionSources(to), to)
	if err != nil {
		if isOverlapViolation(err) {
			return nil, ErrTutorBusy
		}
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}

	updated, err := s.getByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	if s.notifs != nil && notifyUserID != 0 {
		_ = s.notifs.NotifyBookingEvent(ctx, notifyUserID, kind, updated)
	}

	return updated, nil
}
