package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const refreshTokenCookie = "refreshToken"

type AuthHandler struct {
	authService  service.AuthService
	validator    *validator.Validate
	secureCookie bool
}

func NewAuthHandler(authService service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, validator: utils.NewValidator(), secureCookie: secureCookie}
}

func (h *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		req.CartToken = cartToken(r, req.CartToken)

		resp, err := h.authService.Login(r.Context(), &req)
		if err != nil {
			logger.Warn("Login failed", slog.String("identifier", req.Identifier), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		h.setTokenCookies(w, resp)
		response.Success(w, http.StatusOK, "Logged in successfully", resp)
	}
}

func (h *AuthHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		if err := h.authService.Logout(r.Context(), claims.UserID); err != nil {
			response.Error(w, err)

			return
		}

		h.clearTokenCookies(w)
		response.Success(w, http.StatusOK, "Logged out successfully", nil)
	}
}

func (h *AuthHandler) RefreshToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RefreshTokenRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.authService.RefreshToken(r.Context(), req.RefreshToken)
		if err != nil {
			response.Error(w, err)

			return
		}

		h.setTokenCookies(w, resp)
		response.Success(w, http.StatusOK, "Token refreshed", resp)
	}
}

func (h *AuthHandler) ChangePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req models.ChangePasswordRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.authService.ChangePassword(r.Context(), claims.UserID, &req); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, "Password changed successfully", nil)
	}
}

func (h *AuthHandler) ForgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ForgotPasswordRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.authService.ForgotPassword(r.Context(), &req); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, "Password reset link sent to your email", nil)
	}
}

func (h *AuthHandler) ResetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ResetPasswordRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.authService.ResetPassword(r.Context(), &req); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, "Password reset successfully", nil)
	}
}

func (h *AuthHandler) setTokenCookies(w http.ResponseWriter, resp *models.LoginResponse) {
	http.SetCookie(w, h.cookie(middleware.AccessTokenCookie, resp.AccessToken, time.Duration(resp.ExpiresIn)*time.Second))
	http.SetCookie(w, h.cookie(refreshTokenCookie, resp.RefreshToken, 0))
}

func (h *AuthHandler) clearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.AccessTokenCookie, refreshTokenCookie} {
		c := h.cookie(name, "", 0)
		c.MaxAge = -1
		http.SetCookie(w, c)
	}
}

func (h *AuthHandler) cookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
