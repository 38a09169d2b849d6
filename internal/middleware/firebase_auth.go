package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"github.com/pawsconnect/backend/internal/models"
	"github.com/pawsconnect/backend/internal/repositories"
)

// ActorContextKey is the Echo context key the resolved actor is stored under.
const ActorContextKey = "actor"

// FirebaseAuthMiddleware creates an Echo middleware that verifies the Firebase
// ID token and resolves the caller's actor kind from the account registry.
func FirebaseAuthMiddleware(authClient *auth.Client, accounts repositories.AccountRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			token, err := authClient.VerifyIDToken(c.Request().Context(), tokenParts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("Invalid or expired ID token: %v", err))
			}

			account, err := accounts.GetByFirebaseUID(token.UID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user is not registered")
			}

			actor := models.Actor{
				ID:          account.FirebaseUID,
				Email:       account.Email,
				Kind:        account.Kind,
				DisplayName: account.DisplayName,
			}
			c.Set(ActorContextKey, actor)

			return next(c)
		}
	}
}

// ActorFromContext returns the actor stored by FirebaseAuthMiddleware.
func ActorFromContext(c echo.Context) (models.Actor, bool) {
	actor, ok := c.Get(ActorContextKey).(models.Actor)
	return actor, ok
}
