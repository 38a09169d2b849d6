package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawsconnect/backend/internal/feed"
)

// FeedHandler serves the assembled, author-joined feed for each collection.
type FeedHandler struct {
	feed *feed.Service
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *feed.Service) *FeedHandler {
	return &FeedHandler{feed: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/collections/:collection/feed", h.GetFeed)
}

// GetFeed returns the collection's posts joined with fresh author profiles,
// newest first.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	collection, err := collectionParam(c)
	if err != nil {
		return err
	}

	items, err := h.feed.Feed(c.Request().Context(), collection)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}
