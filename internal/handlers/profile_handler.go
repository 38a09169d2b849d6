package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawsconnect/backend/internal/engine"
	"github.com/pawsconnect/backend/internal/middleware"
	"github.com/pawsconnect/backend/internal/models"
	"github.com/pawsconnect/backend/internal/repositories"
)

// ProfileHandler handles HTTP requests related to actor profiles
type ProfileHandler struct {
	profileRepository repositories.ProfileRepository
	accountRepository repositories.AccountRepository
	engine            *engine.Engine
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileRepo repositories.ProfileRepository, accountRepo repositories.AccountRepository, eng *engine.Engine) *ProfileHandler {
	return &ProfileHandler{
		profileRepository: profileRepo,
		accountRepository: accountRepo,
		engine:            eng,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetOwnProfile)
	g.PUT("/profile", h.UpdateOwnProfile)
	g.DELETE("/profile", h.DeleteOwnProfile)
	g.GET("/users/:id", h.GetUserProfile)
	g.GET("/shelters", h.ListShelters)
	g.GET("/shelters/:id", h.GetShelterProfile)
}

// ShelterView is a shelter profile with the derived average rating. Rated is
// false when no ratings exist yet, so clients show a "no ratings" label
// instead of a zero.
type ShelterView struct {
	models.ShelterProfile
	AverageRating float64 `json:"average_rating"`
	Rated         bool    `json:"rated"`
}

func shelterView(profile models.ShelterProfile) ShelterView {
	avg, ok := profile.Ratings.Average()
	return ShelterView{ShelterProfile: profile, AverageRating: avg, Rated: ok}
}

// GetOwnProfile returns the authenticated actor's profile document.
func (h *ProfileHandler) GetOwnProfile(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	ctx := c.Request().Context()
	if actor.IsShelter() {
		profile, err := h.profileRepository.GetShelter(ctx, actor.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
		}
		return c.JSON(http.StatusOK, shelterView(*profile))
	}

	profile, err := h.profileRepository.GetUser(ctx, actor.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateOwnProfile applies a partial edit to the actor's profile. A username
// change also refreshes the cached display name in the account registry.
func (h *ProfileHandler) UpdateOwnProfile(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	ctx := c.Request().Context()
	if actor.IsShelter() {
		var req models.UpdateShelterProfileRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
		}
		if err := c.Validate(&req); err != nil {
			return err
		}
		fields := req.Fields()
		if len(fields) > 0 {
			if err := h.profileRepository.UpdateShelterFields(ctx, actor.ID, fields); err != nil {
				return httpError(err)
			}
		}
		if req.Username != nil {
			if err := h.accountRepository.UpdateDisplayName(actor.ID, *req.Username); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
		}
		profile, err := h.profileRepository.GetShelter(ctx, actor.ID)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, shelterView(*profile))
	}

	var req models.UpdateUserProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	fields := req.Fields()
	if len(fields) > 0 {
		if err := h.profileRepository.UpdateUserFields(ctx, actor.ID, fields); err != nil {
			return httpError(err)
		}
	}
	if req.Username != nil {
		if err := h.accountRepository.UpdateDisplayName(actor.ID, *req.Username); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	profile, err := h.profileRepository.GetUser(ctx, actor.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// DeleteOwnProfile removes the actor's avatar, profile document, account row
// and credential.
func (h *ProfileHandler) DeleteOwnProfile(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	if err := h.engine.DeleteProfile(c.Request().Context(), actor); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetUserProfile returns an adopter profile by actor id.
func (h *ProfileHandler) GetUserProfile(c echo.Context) error {
	profile, err := h.profileRepository.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, profile)
}

// ListShelters returns every shelter with its average rating, for the map
// screen.
func (h *ProfileHandler) ListShelters(c echo.Context) error {
	shelters, err := h.profileRepository.ListShelters(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	views := make([]ShelterView, len(shelters))
	for i, shelter := range shelters {
		views[i] = shelterView(shelter)
	}
	return c.JSON(http.StatusOK, views)
}

// GetShelterProfile returns a shelter profile by actor id.
func (h *ProfileHandler) GetShelterProfile(c echo.Context) error {
	profile, err := h.profileRepository.GetShelter(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Shelter not found")
	}
	return c.JSON(http.StatusOK, shelterView(*profile))
}
