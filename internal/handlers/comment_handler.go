package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawsconnect/backend/internal/engine"
	"github.com/pawsconnect/backend/internal/middleware"
	"github.com/pawsconnect/backend/internal/models"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	engine *engine.Engine
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(eng *engine.Engine) *CommentHandler {
	return &CommentHandler{engine: eng}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/collections/:collection/posts/:id/comments", h.CreateComment)
	g.GET("/collections/:collection/posts/:id/comments", h.GetComments)
	g.DELETE("/collections/:collection/posts/:id/comments/:comment_id", h.DeleteComment)
}

// CreateComment appends a comment to a post.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	collection, err := collectionParam(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.engine.AddComment(c.Request().Context(), collection, c.Param("id"), actor, req.Text)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetComments returns a post's comments oldest first.
func (h *CommentHandler) GetComments(c echo.Context) error {
	collection, err := collectionParam(c)
	if err != nil {
		return err
	}
	comments, err := h.engine.ListComments(c.Request().Context(), collection, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// DeleteComment removes the caller's own comment.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	if _, err := collectionParam(c); err != nil {
		return err
	}

	if err := h.engine.DeleteComment(c.Request().Context(), c.Param("id"), c.Param("comment_id"), actor.ID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
