package handlers

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pawsconnect/backend/internal/media"
	"github.com/pawsconnect/backend/internal/middleware"
	"github.com/pawsconnect/backend/internal/repositories"
)

// Uploads above this size are rejected before buffering.
const maxUploadBytes = 10 << 20

// MediaHandler handles image uploads for posts and avatars. Uploads happen
// before the referencing document is written; the returned URL goes into the
// create request.
type MediaHandler struct {
	storage           media.Storage
	profileRepository repositories.ProfileRepository
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(storage media.Storage, profileRepo repositories.ProfileRepository) *MediaHandler {
	return &MediaHandler{storage: storage, profileRepository: profileRepo}
}

// RegisterMediaRoutes registers media upload routes
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/media/posts", h.UploadPostMedia)
	g.POST("/media/avatar", h.UploadAvatar)
}

func (h *MediaHandler) readUpload(c echo.Context) ([]byte, string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "Form file field is missing")
	}
	if fileHeader.Size > maxUploadBytes {
		return nil, "", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File exceeds the upload limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "Cannot open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

// UploadPostMedia stores a post image and returns its URL.
func (h *MediaHandler) UploadPostMedia(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	data, contentType, err := h.readUpload(c)
	if err != nil {
		return err
	}

	url, err := h.storage.Upload(c.Request().Context(), media.PostMediaPath(actor.ID), data, contentType)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}

// UploadAvatar stores a profile picture and points the caller's profile at it.
func (h *MediaHandler) UploadAvatar(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	data, contentType, err := h.readUpload(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	url, err := h.storage.Upload(ctx, media.AvatarPath(actor.ID), data, contentType)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	fields := map[string]any{"profile_picture": url}
	if actor.IsShelter() {
		err = h.profileRepository.UpdateShelterFields(ctx, actor.ID, fields)
	} else {
		err = h.profileRepository.UpdateUserFields(ctx, actor.ID, fields)
	}
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
