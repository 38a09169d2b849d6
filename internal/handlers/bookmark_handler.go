package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawsconnect/backend/internal/engine"
	"github.com/pawsconnect/backend/internal/feed"
	"github.com/pawsconnect/backend/internal/middleware"
	"github.com/pawsconnect/backend/internal/repositories"
)

// BookmarkHandler handles the bookmark toggle on pet listings and the
// caller's saved-listing view.
type BookmarkHandler struct {
	engine            *engine.Engine
	profileRepository repositories.ProfileRepository
	feed              *feed.Service
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(eng *engine.Engine, profileRepo repositories.ProfileRepository, feedService *feed.Service) *BookmarkHandler {
	return &BookmarkHandler{engine: eng, profileRepository: profileRepo, feed: feedService}
}

// RegisterBookmarkRoutes registers bookmark-related routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group) {
	g.POST("/pets/:id/bookmark", h.ToggleBookmark)
	g.GET("/bookmarks", h.GetBookmarks)
}

// ToggleBookmark flips the pet listing's membership in the caller's bookmark
// set and returns the new state.
func (h *BookmarkHandler) ToggleBookmark(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	bookmarked, err := h.engine.ToggleBookmark(c.Request().Context(), actor.ID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"pet_id": c.Param("id"), "bookmarked": bookmarked})
}

// GetBookmarks returns the caller's bookmarked pet listings, newest first.
// Listings deleted since they were bookmarked drop out silently.
func (h *BookmarkHandler) GetBookmarks(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	profile, err := h.profileRepository.GetUser(c.Request().Context(), actor.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
	}

	items, err := h.feed.BookmarkedListings(c.Request().Context(), profile)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}
