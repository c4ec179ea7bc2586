package chat

import (
	"context"
	"testing"

	"tutormarket/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	if args.Error(0) == nil {
		msg.ID = 77
	}
	return args.Error(0)
}

func (m *MockMessageRepository) ListConversation(ctx context.Context, userID, peerID int64, limit, offset int) ([]domain.Message, int, error) {
	args := m.Called(ctx, userID, peerID, limit, offset)
	return args.Get(0).([]domain.Message), args.Int(1), args.Error(2)
}

type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*domain.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func newChatService() (*Service, *MockMessageRepository, *MockUserFinder) {
	messages := new(MockMessageRepository)
	users := new(MockUserFinder)
	return NewService(messages, users, NewHub()), messages, users
}

var senderActor = domain.Actor{UserID: 42, Role: domain.RoleStudent}

func TestSend_Success(t *testing.T) {
	svc, messages, users := newChatService()

	users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7}, nil)
	messages.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
		return m.SenderID == 42 && m.RecipientID == 7 && m.Body == "hello"
	})).Return(nil)

	msg, err := svc.Send(context.Background(), senderActor, SendMessageRequest{
		RecipientID: 7,
		Body:        "  hello  ",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(77), msg.ID)
	assert.Equal(t, "hello", msg.Body)
}

func TestSend_SelfMessageRejected(t *testing.T) {
	svc, _, _ := newChatService()

	_, err := svc.Send(context.Background(), senderActor, SendMessageRequest{
		RecipientID: 42,
		Body:        "hi me",
	})

	assert.ErrorIs(t, err, ErrSelfMessage)
}

func TestSend_RecipientUnknown(t *testing.T) {
	svc, _, users := newChatService()

	users.On("GetByID", mock.Anything, int64(999)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Send(context.Background(), senderActor, SendMessageRequest{
		RecipientID: 999,
		Body:        "hello",
	})

	assert.ErrorIs(t, err, ErrRecipientUnknown)
}

func TestSend_BlankBodyRejected(t *testing.T) {
	svc, _, _ := newChatService()

	_, err := svc.Send(context.Background(), senderActor, SendMessageRequest{
		RecipientID: 7,
		Body:        "   ",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestHistory_ScopedToCaller(t *testing.T) {
	svc, messages, _ := newChatService()

	messages.On("ListConversation", mock.Anything, int64(42), int64(7), 20, 0).
		Return([]domain.Message{{ID: 1, SenderID: 42, RecipientID: 7, Body: "hi"}}, 1, nil)

	list, err := svc.History(context.Background(), senderActor, ListMessagesQuery{PeerID: 7})

	assert.NoError(t, err)
	assert.Len(t, list.Messages, 1)
	assert.Equal(t, 1, list.Total)
	messages.AssertExpectations(t)
}

func TestHistory_MissingPeer(t *testing.T) {
	svc, _, _ := newChatService()

	_, err := svc.History(context.Background(), senderActor, ListMessagesQuery{})

	assert.ErrorIs(t, err, ErrValidation)
}
