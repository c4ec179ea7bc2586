package chat

import (
	"time"

	"tutormarket/internal/domain"
	"tutormarket/internal/pkg/pagination"
)

type SendMessageRequest struct {
	RecipientID int64  `json:"recipient_id" binding:"required"`
	Body        string `json:"body" binding:"required,max=2000"`
}

type ListMessagesQuery struct {
	PeerID  int64 `form:"peer_id" binding:"required"`
	Page    int   `form:"page"`
	PerPage int   `form:"per_page"`
}

type MessageList struct {
	Messages []domain.Message `json:"messages"`
	pagination.Page
}

// wsInbound is what clients send over the socket.
type wsInbound struct {
	Type        string `json:"type"`
	RecipientID int64  `json:"recipient_id,omitempty"`
	Body        string `json:"body,omitempty"`
}

type wsEvent struct {
	Type    string      `json:"type"`
	At      time.Time   `json:"at"`
	Payload interface{} `json:"payload,omitempty"`
}

func messageEvent(msg *domain.Message) wsEvent {
	return wsEvent{Type: "message", At: time.Now().UTC(), Payload: msg}
}

func errorEvent(code, message string) wsEvent {
	return wsEvent{Type: "error", At: time.Now().UTC(), Payload: map[string]string{
		"code":    code,
		"message": message,
	}}
}

func pongEvent() wsEvent {
	return wsEvent{Type: "pong", At: time.Now().UTC()}
}
