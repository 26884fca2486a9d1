package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, token string) (*models.Cart, error)
	AddItem(ctx context.Context, req *models.AddItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, req *models.RemoveItemRequest) (*models.Cart, error)
	UpdateItem(ctx context.Context, req *models.UpdateItemRequest) (*models.Cart, error)
}

type cartService struct {
	tx       repository.Transactor
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(tx repository.Transactor, carts repository.CartRepository, products repository.ProductRepository) CartService {
	return &cartService{tx: tx, carts: carts, products: products}
}

// GetCart returns nil without an error when the token is unknown.
func (s *cartService) GetCart(ctx context.Context, token string) (*models.Cart, error) {
	if token == "" {
		return nil, nil
	}

	cart, err := s.carts.GetCartByToken(ctx, token, false)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}

		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return cart, nil
}

// AddItem reserves stock first, so a failed reservation leaves the cart untouched.
func (s *cartService) AddItem(ctx context.Context, req *models.AddItemRequest) (*models.Cart, error) {
	logger := middleware.LoggerFromContext(ctx)

	var cart *models.Cart

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		product, err := s.products.AdjustStock(ctx, req.ProductID, req.Size, -req.Quantity)
		if err != nil {
			return stockError(err)
		}

		unit, err := product.Stock.UnitPrice(req.Size)
		if err != nil {
			return stockError(err)
		}

		cart, err = s.loadOrCreate(ctx, req.Token)
		if err != nil {
			return err
		}

		cart.Add(product.ID, req.Size, product.Name, unit, req.Quantity)

		if err := s.carts.UpdateCart(ctx, cart); err != nil {
			return appErrors.DatabaseError("Failed to update cart").WithError(err)
		}

		return nil
	})
	if err != nil {
		logger.Warn("Add to cart failed", slog.String("productId", req.ProductID.String()), slog.Any("error", err))

		return nil, err
	}

	logger.Info("Item added to cart", slog.String("cartId", cart.ID.String()), slog.String("productId", req.ProductID.String()), slog.Int("quantity", req.Quantity))

	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, req *models.RemoveItemRequest) (*models.Cart, error) {
	var cart *models.Cart

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error

		cart, err = s.lockCart(ctx, req.Token)
		if err != nil {
			return err
		}

		i := cart.FindItem(req.ProductID, req.Size)
		if i < 0 {
			return appErrors.NotFoundError("Item not found in cart")
		}

		removed := cart.Remove(i)

		if err := s.carts.UpdateCart(ctx, cart); err != nil {
			return appErrors.DatabaseError("Failed to update cart").WithError(err)
		}

		return restock(ctx, s.products, removed.ProductID, removed.Size, removed.Quantity)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// UpdateItem reprices the line from the current product; a quantity of zero or less removes it.
func (s *cartService) UpdateItem(ctx context.Context, req *models.UpdateItemRequest) (*models.Cart, error) {
	if req.Quantity <= 0 {
		return s.RemoveItem(ctx, &models.RemoveItemRequest{Token: req.Token, ProductID: req.ProductID, Size: req.Size})
	}

	var cart *models.Cart

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error

		cart, err = s.lockCart(ctx, req.Token)
		if err != nil {
			return err
		}

		i := cart.FindItem(req.ProductID, req.Size)
		if i < 0 {
			return appErrors.NotFoundError("Item not found in cart")
		}

		item := cart.Items[i]

		var product *models.Product
		if diff := req.Quantity - item.Quantity; diff != 0 {
			product, err = s.products.AdjustStock(ctx, item.ProductID, item.Size, -diff)
		} else {
			product, err = s.products.GetProductByID(ctx, item.ProductID)
		}

		if err != nil {
			return stockError(err)
		}

		unit, err := product.Stock.UnitPrice(item.Size)
		if err != nil {
			return stockError(err)
		}

		cart.SetQuantity(i, req.Quantity, unit)

		if err := s.carts.UpdateCart(ctx, cart); err != nil {
			return appErrors.DatabaseError("Failed to update cart").WithError(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *cartService) loadOrCreate(ctx context.Context, token string) (*models.Cart, error) {
	if token != "" {
		cart, err := s.carts.GetCartByToken(ctx, token, true)
		if err == nil {
			return cart, nil
		}

		if !errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
		}
	}

	cart := models.NewCart(token)

	err := s.carts.CreateCart(ctx, cart)
	if errors.Is(err, repository.ErrDuplicate) && token != "" {
		// A concurrent request created the cart for this token; continue with theirs.
		cart, err = s.carts.GetCartByToken(ctx, token, true)
		if err != nil {
			return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
		}

		return cart, nil
	}

	if err != nil {
		return nil, appErrors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) lockCart(ctx context.Context, token string) (*models.Cart, error) {
	if token == "" {
		return nil, appErrors.BadRequestError("Cart token is required")
	}

	cart, err := s.carts.GetCartByToken(ctx, token, true)
	if err != nil {
		return nil, notFoundOr(err, "Cart not found", "Failed to fetch cart")
	}

	return cart, nil
}
