package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tutormarket/internal/domain"
	"tutormarket/internal/middleware"
	"tutormarket/internal/pkg/jwt"
	"tutormarket/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checks are handled by the CORS layer in front of the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	service *Service
	hub     *Hub
	jwt     *jwt.Service
	log     *zap.Logger
}

func NewHandler(service *Service, hub *Hub, jwtService *jwt.Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		jwt:     jwtService,
		log:     log,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	chatGroup := rg.Group("/chat")
	{
		chatGroup.GET("/messages", h.ListMessages)
		chatGroup.POST("/messages", h.SendMessage)
	}
}

// RegisterWS registers the websocket endpoint. It authenticates via a token
// query parameter because browsers cannot set headers on websocket dials.
func (h *Handler) RegisterWS(rg *gin.RouterGroup) {
	rg.GET("/chat/ws", h.HandleWS)
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	msg, err := h.service.Send(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		switch err {
		case ErrValidation, ErrSelfMessage:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case ErrRecipientUnknown:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Recipient not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to send message")
		}
		return
	}

	response.Success(c, http.StatusCreated, "Message sent", gin.H{"message": msg})
}

func (h *Handler) ListMessages(c *gin.Context) {
	var q ListMessagesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "peer_id is required")
		return
	}

	list, err := h.service.History(c.Request.Context(), middleware.ActorFrom(c), q)
	if err != nil {
		if err == ErrValidation {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "peer_id is required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list messages")
		return
	}

	response.Success(c, http.StatusOK, "Messages fetched", list)
}

func (h *Handler) HandleWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "token query parameter is required")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	actor := domain.Actor{UserID: claims.UserID, Role: claims.Role}
	h.hub.Register(actor.UserID, conn)
	h.log.Info("websocket connected", zap.Int64("user_id", actor.UserID))

	defer func() {
		h.hub.Unregister(actor.UserID, conn)
		h.log.Info("websocket disconnected", zap.Int64("user_id", actor.UserID))
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	go pingLoop(conn)

	h.readLoop(conn, actor)
}

// pingLoop keeps the connection alive. Pings go out as control frames via
// WriteControl, which gorilla allows concurrently with the hub's data writes.
func pingLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		deadline := time.Now().Add(10 * time.Second)
		if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
			return
		}
	}
}

func (h *Handler) readLoop(conn *websocket.Conn, actor domain.Actor) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("websocket read error", zap.Int64("user_id", actor.UserID), zap.Error(err))
			}
			return
		}

		// replies go through the hub so they take the same write lock as
		// pushes originating from other users' handlers
		var in wsInbound
		if err := json.Unmarshal(raw, &in); err != nil {
			h.hub.Push(actor.UserID, errorEvent("INVALID_JSON", "Failed to parse message"))
			continue
		}

		switch in.Type {
		case "message":
			h.handleInbound(actor, in)
		case "ping":
			h.hub.Push(actor.UserID, pongEvent())
		default:
			h.hub.Push(actor.UserID, errorEvent("UNKNOWN_TYPE", "Unknown message type: "+in.Type))
		}
	}
}

func (h *Handler) handleInbound(actor domain.Actor, in wsInbound) {
	if in.RecipientID <= 0 || in.Body == "" {
		h.hub.Push(actor.UserID, errorEvent("VALIDATION_ERROR", "recipient_id and body are required"))
		return
	}

	// the service pushes the stored message back to both participants
	_, err := h.service.Send(context.Background(), actor, SendMessageRequest{
		RecipientID: in.RecipientID,
		Body:        in.Body,
	})
	if err != nil {
		h.hub.Push(actor.UserID, errorEvent("SEND_FAILED", err.Error()))
	}
}
