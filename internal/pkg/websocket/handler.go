package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler upgrades authenticated HTTP requests to WebSocket connections
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Establish a WebSocket connection for real-time updates
// @Description Upgrades the HTTP connection to a WebSocket subscribed to the community chat and the caller's private notification topic
// @Tags websocket
// @Security BearerAuth
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.APIResponse "Unauthorized: JWT token missing or invalid"
// @Router /ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	// Set by the auth middleware
	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in context",
		})
		return
	}

	userID, ok := userIDValue.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Invalid user ID format",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("userID", userID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	// Every connection follows the shared chat room and the caller's own
	// notification topic.
	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
		topics: []string{TopicChat, UserTopic(userID)},
	}
	client.logger = h.logger
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("userID", userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
