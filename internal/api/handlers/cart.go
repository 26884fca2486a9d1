package handlers

import (
	"net/http"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: utils.NewValidator()}
}

// GetCart accepts an empty body when the token travels in the X-Cart-Token header.
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CartRequest
		if !parseOptional(w, r, &req, h.validator) {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), cartToken(r, req.Token))
		if err != nil {
			response.Error(w, err)

			return
		}

		if cart == nil || cart.IsEmpty() {
			response.Success(w, http.StatusOK, "The cart is empty", nil)

			return
		}

		response.Success(w, http.StatusOK, "Cart fetched", cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		req.Token = cartToken(r, req.Token)

		cart, err := h.cartService.AddItem(r.Context(), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		w.Header().Set(CartTokenHeader, cart.Token)
		response.Success(w, http.StatusOK, "Item added to cart", cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RemoveItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		req.Token = cartToken(r, req.Token)

		cart, err := h.cartService.RemoveItem(r.Context(), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, "Item removed from cart", cart)
	}
}

func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UpdateItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		req.Token = cartToken(r, req.Token)

		cart, err := h.cartService.UpdateItem(r.Context(), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, "Cart updated", cart)
	}
}
