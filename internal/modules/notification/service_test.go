package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"tutormarket/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	if args.Error(0) == nil {
		n.ID = 88
	}
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Int(1), args.Error(2)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID int64) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) Push(userID int64, event interface{}) bool {
	args := m.Called(userID, event)
	return args.Bool(0)
}

func newNotificationService() (*Service, *MockNotificationRepository, *MockPusher) {
	repo := new(MockNotificationRepository)
	pusher := new(MockPusher)
	return NewService(repo, pusher, zap.NewNop()), repo, pusher
}

var userActor = domain.Actor{UserID: 42, Role: domain.RoleStudent}

func TestNotifyBookingEvent_StoresAndPushes(t *testing.T) {
	svc, repo, pusher := newNotificationService()

	b := &domain.Booking{ID: 10, StartAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 7 && n.Kind == domain.NotifyBookingConfirmed && n.BookingID == 10 && n.Body != ""
	})).Return(nil)
	pusher.On("Push", int64(7), mock.Anything).Return(true)

	err := svc.NotifyBookingEvent(context.Background(), 7, domain.NotifyBookingConfirmed, b)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	pusher.AssertExpectations(t)
}

func TestNotifyBookingEvent_StoreFailureSwallowed(t *testing.T) {
	svc, repo, _ := newNotificationService()

	b := &domain.Booking{ID: 10, StartAt: time.Now()}
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	err := svc.NotifyBookingEvent(context.Background(), 7, domain.NotifyBookingCanceled, b)

	assert.NoError(t, err)
}

func TestList_OwnFeedOnly(t *testing.T) {
	svc, repo, _ := newNotificationService()

	repo.On("ListByUser", mock.Anything, int64(42), 20, 0).
		Return([]domain.Notification{{ID: 1, UserID: 42}}, 1, nil)

	list, err := svc.List(context.Background(), userActor, ListNotificationsQuery{})

	assert.NoError(t, err)
	assert.Len(t, list.Notifications, 1)
	repo.AssertExpectations(t)
}

func TestMarkRead_WrongOwnerNotFound(t *testing.T) {
	svc, repo, _ := newNotificationService()

	repo.On("MarkRead", mock.Anything, int64(5), int64(42)).Return(false, nil)

	err := svc.MarkRead(context.Background(), userActor, 5)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMarkRead_Success(t *testing.T) {
	svc, repo, _ := newNotificationService()

	repo.On("MarkRead", mock.Anything, int64(5), int64(42)).Return(true, nil)

	err := svc.MarkRead(context.Background(), userActor, 5)

	assert.NoError(t, err)
}
