package handlers

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"github.com/pawsconnect/backend/internal/models"
	"github.com/pawsconnect/backend/internal/repositories"
)

// AuthHandler handles sign-up and session resolution. Passwords never touch
// this service beyond the create call; sign-in happens directly against the
// identity provider from the client.
type AuthHandler struct {
	firebaseAuth      *auth.Client
	accountRepository repositories.AccountRepository
	profileRepository repositories.ProfileRepository
	shelterEmails     map[string]bool
}

// NewAuthHandler creates a new AuthHandler. shelterEmails is the allow-list
// that decides the actor kind at sign-up.
func NewAuthHandler(firebaseAuthClient *auth.Client, accountRepo repositories.AccountRepository, profileRepo repositories.ProfileRepository, shelterEmails []string) *AuthHandler {
	allowList := make(map[string]bool, len(shelterEmails))
	for _, email := range shelterEmails {
		allowList[strings.ToLower(strings.TrimSpace(email))] = true
	}
	return &AuthHandler{
		firebaseAuth:      firebaseAuthClient,
		accountRepository: accountRepo,
		profileRepository: profileRepo,
		shelterEmails:     allowList,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.SignUp)
	g.POST("/session", h.Session)
}

// SignUp registers a new actor: identity-provider credential, account row and
// profile document. The actor kind is decided here, once, from the shelter
// email allow-list.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req models.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := h.accountRepository.GetByEmail(email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "email-already-in-use")
	}

	params := (&auth.UserToCreate{}).
		Email(email).
		Password(req.Password).
		DisplayName(req.Username)
	record, err := h.firebaseAuth.CreateUser(c.Request().Context(), params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return echo.NewHTTPError(http.StatusConflict, "email-already-in-use")
		}
		// The admin SDK rejects malformed emails and short passwords before
		// any network call; surface those as client errors.
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	kind := models.KindAdopter
	if h.shelterEmails[email] {
		kind = models.KindShelter
	}

	account := &models.Account{
		FirebaseUID: record.UID,
		Email:       email,
		Kind:        kind,
		DisplayName: req.Username,
	}
	if err := h.accountRepository.Create(account); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ctx := c.Request().Context()
	if kind == models.KindShelter {
		profile := &models.ShelterProfile{ID: record.UID, Username: req.Username, Email: email}
		if err := h.profileRepository.SaveShelter(ctx, profile); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	} else {
		profile := &models.UserProfile{ID: record.UID, Username: req.Username, Email: email}
		if err := h.profileRepository.SaveUser(ctx, profile); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	actor := models.Actor{ID: record.UID, Email: email, Kind: kind, DisplayName: req.Username}
	return c.JSON(http.StatusCreated, actor)
}

// SessionRequest defines the request body for resolving an ID token.
type SessionRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// Session verifies a Firebase ID token and returns the resolved actor, so
// clients learn their kind right after sign-in.
func (h *AuthHandler) Session(c echo.Context) error {
	var req SessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	account, err := h.accountRepository.GetByFirebaseUID(token.UID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user is not registered")
	}

	actor := models.Actor{
		ID:          account.FirebaseUID,
		Email:       account.Email,
		Kind:        account.Kind,
		DisplayName: account.DisplayName,
	}
	return c.JSON(http.StatusOK, actor)
}
