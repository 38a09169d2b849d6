package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawsconnect/backend/internal/chat"
	"github.com/pawsconnect/backend/internal/middleware"
	"github.com/pawsconnect/backend/internal/models"
)

// ChatHandler handles direct messages between adopters and shelters.
type ChatHandler struct {
	chat *chat.Service
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatService *chat.Service) *ChatHandler {
	return &ChatHandler{chat: chatService}
}

// RegisterChatRoutes registers chat-related routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.GET("/chats/:peer/messages", h.GetMessages)
	g.POST("/chats/:peer/messages", h.SendMessage)
}

// GetMessages returns the conversation with the named peer, oldest first.
func (h *ChatHandler) GetMessages(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	convID := chat.ConversationID(actor.ID, c.Param("peer"))
	messages, err := h.chat.History(c.Request().Context(), convID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, messages)
}

// SendMessage appends a message to the conversation with the named peer.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	convID := chat.ConversationID(actor.ID, c.Param("peer"))
	message, err := h.chat.Send(c.Request().Context(), convID, actor.ID, req.Text)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, message)
}
