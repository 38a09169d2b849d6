package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pawsconnect/backend/internal/engine"
	"github.com/pawsconnect/backend/internal/feed"
	"github.com/pawsconnect/backend/internal/middleware"
	"github.com/pawsconnect/backend/internal/models"
	"github.com/pawsconnect/backend/internal/repositories"
)

// PostHandler handles HTTP requests related to posts across the four feed
// collections.
type PostHandler struct {
	postRepository repositories.PostRepository
	engine         *engine.Engine
	feed           *feed.Service
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, eng *engine.Engine, feedService *feed.Service) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		engine:         eng,
		feed:           feedService,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/collections/:collection/posts", h.CreatePost)
	g.GET("/collections/:collection/posts", h.GetPosts)
	g.GET("/collections/:collection/posts/:id", h.GetPost)
	g.PUT("/collections/:collection/posts/:id", h.UpdatePost)
	g.DELETE("/collections/:collection/posts/:id", h.DeletePost)
	g.POST("/collections/:collection/posts/:id/refresh-author", h.RefreshAuthorSnapshot)
	g.POST("/pets/:id/status", h.CycleStatus)
	g.GET("/pets/search", h.SearchPets)
	g.GET("/pets/filter", h.FilterPets)
}

func collectionParam(c echo.Context) (string, error) {
	collection := c.Param("collection")
	if !models.IsPostCollection(collection) {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Unknown collection: "+collection)
	}
	return collection, nil
}

// CreatePost creates a new post in the named collection
func (h *PostHandler) CreatePost(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	collection, err := collectionParam(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.engine.CreatePost(c.Request().Context(), collection, actor, &req)
	if err != nil {
		return httpError(err)
	}
	h.feed.Invalidate(c.Request().Context(), collection)

	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	collection, err := collectionParam(c)
	if err != nil {
		return err
	}
	post, err := h.postRepository.GetByID(c.Request().Context(), collection, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}

// GetPosts retrieves a collection's posts, optionally limited to one author.
func (h *PostHandler) GetPosts(c echo.Context) error {
	collection, err := collectionParam(c)
	if err != nil {
		return err
	}

	authorID := c.QueryParam("author_id")
	var posts []models.Post
	if authorID != "" {
		posts, err = h.postRepository.ListByAuthor(c.Request().Context(), collection, authorID)
	} else {
		posts, err = h.postRepository.ListAll(c.Request().Context(), collection)
	}
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// UpdatePost applies a partial edit to the author's own post.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	collection, err := collectionParam(c)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.engine.UpdatePost(c.Request().Context(), collection, c.Param("id"), actor.ID, req.Fields())
	if err != nil {
		return httpError(err)
	}
	h.feed.Invalidate(c.Request().Context(), collection)

	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes the author's own post.
func (h *PostHandler) DeletePost(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	collection, err := collectionParam(c)
	if err != nil {
		return err
	}

	if err := h.engine.DeletePost(c.Request().Context(), collection, c.Param("id"), actor.ID); err != nil {
		return httpError(err)
	}
	h.feed.Invalidate(c.Request().Context(), collection)

	return c.NoContent(http.StatusNoContent)
}

// RefreshAuthorSnapshot rewrites a post's denormalized author fields from the
// author's current profile.
func (h *PostHandler) RefreshAuthorSnapshot(c echo.Context) error {
	collection, err := collectionParam(c)
	if err != nil {
		return err
	}
	if err := h.engine.RefreshAuthorSnapshot(c.Request().Context(), collection, c.Param("id")); err != nil {
		return httpError(err)
	}
	h.feed.Invalidate(c.Request().Context(), collection)

	return c.NoContent(http.StatusNoContent)
}

// CycleStatus advances a pet listing's adoption status one step.
func (h *PostHandler) CycleStatus(c echo.Context) error {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	status, err := h.engine.CycleStatus(c.Request().Context(), c.Param("id"), actor.ID)
	if err != nil {
		return httpError(err)
	}
	h.feed.Invalidate(c.Request().Context(), models.CollectionPetListing)

	return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "status": status})
}

// SearchPets finds pet listings whose search tokens contain the query term.
func (h *PostHandler) SearchPets(c echo.Context) error {
	token := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query parameter q is required")
	}

	posts, err := h.postRepository.SearchPetListings(c.Request().Context(), token)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// FilterPets finds pet listings matching the adopter's desired species and
// property type.
func (h *PostHandler) FilterPets(c echo.Context) error {
	speciesParam := c.QueryParam("species")
	if speciesParam == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query parameter species is required")
	}
	var species []string
	for _, s := range strings.Split(speciesParam, ",") {
		if s = strings.TrimSpace(s); s != "" {
			species = append(species, s)
		}
	}

	posts, err := h.postRepository.FilterPetListings(c.Request().Context(), species, strings.TrimSpace(c.QueryParam("property")))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, posts)
}
