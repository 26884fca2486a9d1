package handlers

import (
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type RatingHandler struct {
	ratingService service.RatingService
	validator     *validator.Validate
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService, validator: utils.NewValidator()}
}

func (h *RatingHandler) AddOrUpdateRating() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req models.RatingRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		summary, err := h.ratingService.AddOrUpdateRating(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, "Rating saved", summary)
	}
}

func (h *RatingHandler) DeleteRating() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req models.DeleteRatingRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		summary, err := h.ratingService.DeleteRating(r.Context(), claims.UserID, req.ProductID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, "Rating deleted", summary)
	}
}

func (h *RatingHandler) GetMyRating() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		productID, err := utils.ParseID(r, "productId")
		if err != nil {
			response.Error(w, err)

			return
		}

		rating, err := h.ratingService.GetMyRating(r.Context(), claims.UserID, productID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, "Rating fetched", rating)
	}
}
