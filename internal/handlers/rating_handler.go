package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawsconnect/backend/internal/engine"
	"github.com/pawsconnect/backend/internal/middleware"
	"github.com/pawsconnect/backend/internal/models"
	"github.com/pawsconnect/backend/internal/repositories"
)

// RatingHandler handles shelter star ratings
type RatingHandler struct {
	engine            *engine.Engine
	profileRepository repositories.ProfileRepository
}

// NewRatingHandler creates a new RatingHandler
func NewRatingHandler(eng *engine.Engine, profileRepo repositories.ProfileRepository) *RatingHandler {
	return &RatingHandler{engine: eng, profileRepository: profileRepo}
}

// RegisterRatingRoutes registers rating-related routes
func (h *RatingHandler) RegisterRatingRoutes(g *echo.Group) {
	g.POST("/shelters/:id/ratings", h.SubmitRating)
}

// SubmitRating folds a 1-5 star rating into the shelter's accumulators and
// returns the updated average.
func (h *RatingHandler) SubmitRating(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	var req models.SubmitRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	shelterID := c.Param("id")
	if err := h.engine.SubmitRating(c.Request().Context(), shelterID, actor.ID, req.Stars); err != nil {
		return httpError(err)
	}

	profile, err := h.profileRepository.GetShelter(c.Request().Context(), shelterID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, shelterView(*profile))
}
