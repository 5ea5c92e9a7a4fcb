package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ardaseremet/clubhub/internal/app/repositories"
)

// Handler upgrades authenticated HTTP requests into hub subscriptions
type Handler struct {
	hub      *Hub
	chatRepo *repositories.ChatRepository
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, chatRepo *repositories.ChatRepository, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		chatRepo: chatRepo,
		logger:   logger,
	}
}

// SubscribeChat upgrades the connection and streams one chat's events.
// Subscribers must be chat members; the client is expected to fetch history
// over REST first and apply pushed events on top.
func (h *Handler) SubscribeChat(c *gin.Context) {
	chatID := c.Param("chatId")
	if chatID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID"})
		return
	}

	userID, ok := contextUserID(c)
	if !ok {
		return
	}

	isMember, err := h.chatRepo.IsMember(c, chatID, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("chatID", chatID).
			Int64("userID", userID).
			Msg("Failed to check chat membership")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check membership"})
		return
	}
	if !isMember {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this chat"})
		return
	}

	h.subscribe(c, userID, ChatTopic(chatID))
}

// SubscribeChatList upgrades the connection and streams the caller's own
// chat list updates
func (h *Handler) SubscribeChatList(c *gin.Context) {
	userID, ok := contextUserID(c)
	if !ok {
		return
	}

	h.subscribe(c, userID, UserTopic(userID))
}

func (h *Handler) subscribe(c *gin.Context, userID int64, topic string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("topic", topic).
			Int64("userID", userID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
		topic:  topic,
		logger: h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("topic", topic).
		Int64("userID", userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}

func contextUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return 0, false
	}

	userID, ok := v.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return 0, false
	}

	return userID, true
}
