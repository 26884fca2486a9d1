package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const CartTokenHeader = "X-Cart-Token"

// requireClaims writes a 401 and returns false when the request carries no authenticated user.
func requireClaims(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.LoggerFromContext(r.Context()).Warn("Unauthorized access attempt", slog.String("path", r.URL.Path))
		response.Error(w, errors.UnauthorizedError("Authentication required"))

		return nil, false
	}

	return claims, true
}

// cartToken takes the token from the body, falling back to the X-Cart-Token header.
func cartToken(r *http.Request, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}

	return r.Header.Get(CartTokenHeader)
}

// parseOptional decodes the body only when one was sent.
func parseOptional(w http.ResponseWriter, r *http.Request, dest any, v *validator.Validate) bool {
	if r.ContentLength == 0 {
		return true
	}

	return utils.ParseAndValidate(r, w, dest, v)
}
