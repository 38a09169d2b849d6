package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawsconnect/backend/internal/engine"
	"github.com/pawsconnect/backend/internal/feed"
	"github.com/pawsconnect/backend/internal/middleware"
)

// LikeHandler handles the like toggle on posts
type LikeHandler struct {
	engine *engine.Engine
	feed   *feed.Service
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(eng *engine.Engine, feedService *feed.Service) *LikeHandler {
	return &LikeHandler{engine: eng, feed: feedService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/collections/:collection/posts/:id/like", h.ToggleLike)
}

// ToggleLike flips the caller's like on a post and returns the new state.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	collection, err := collectionParam(c)
	if err != nil {
		return err
	}

	result, err := h.engine.ToggleLike(c.Request().Context(), collection, c.Param("id"), actor.ID)
	if err != nil {
		return httpError(err)
	}
	h.feed.Invalidate(c.Request().Context(), collection)

	return c.JSON(http.StatusOK, result)
}
