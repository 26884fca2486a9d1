package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *models.ProductRequest) (*models.Product, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, deleted bool) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	AddImages(ctx context.Context, id uuid.UUID, images []string) (*models.Product, error)
	RemoveImages(ctx context.Context, id uuid.UUID, images []string) (*models.Product, error)
	ListProducts(ctx context.Context, params models.ListParams) (*models.PaginatedResponse[*models.Product], error)
	ListByCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]*models.Product, error)
}

type productService struct {
	tx         repository.Transactor
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      cache.Cache
	listTTL    time.Duration
}

func NewProductService(tx repository.Transactor, products repository.ProductRepository, categories repository.CategoryRepository, c cache.Cache, listTTL time.Duration) ProductService {
	return &productService{
		tx:         tx,
		products:   products,
		categories: categories,
		cache:      c,
		listTTL:    listTTL,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.ProductRequest) (*models.Product, error) {
	stock, err := req.ToStock()
	if err != nil {
		return nil, appErrors.ValidationError(err.Error()).WithError(err)
	}

	if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          uuid.New(),
		CategoryID:  req.CategoryID,
		Name:        utils.SanitizeText(req.Name),
		Description: utils.SanitizeText(req.Description),
		Images:      dedupe(nil, req.Images),
		Stock:       stock,
	}

	if err := s.products.CreateProduct(ctx, product); err != nil {
		return nil, productWriteError(err, "Failed to create product")
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Product not found", "Failed to get product")
	}

	return product, nil
}

// UpdateProduct replaces the editable fields under the row lock so it cannot race a stock reservation.
func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *models.ProductRequest) (*models.Product, error) {
	stock, err := req.ToStock()
	if err != nil {
		return nil, appErrors.ValidationError(err.Error()).WithError(err)
	}

	var product *models.Product

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		product, err = s.products.GetProductForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, "Product not found", "Failed to get product")
		}

		if product.CategoryID != req.CategoryID {
			if err := s.ensureCategory(ctx, req.CategoryID); err != nil {
				return err
			}
		}

		product.CategoryID = req.CategoryID
		product.Name = utils.SanitizeText(req.Name)
		product.Description = utils.SanitizeText(req.Description)
		product.Stock = stock

		if req.Images != nil {
			product.Images = dedupe(nil, req.Images)
		}

		if err := s.products.UpdateProduct(ctx, product); err != nil {
			return productWriteError(err, "Failed to update product")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) UpdateStatus(ctx context.Context, id uuid.UUID, deleted bool) (*models.Product, error) {
	product, err := s.products.SetDeleted(ctx, id, deleted)
	if err != nil {
		return nil, notFoundOr(err, "Product not found", "Failed to update product status")
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return notFoundOr(err, "Product not found", "Failed to delete product")
	}

	return nil
}

func (s *productService) AddImages(ctx context.Context, id uuid.UUID, images []string) (*models.Product, error) {
	return s.editImages(ctx, id, func(current []string) []string {
		return dedupe(current, images)
	})
}

func (s *productService) RemoveImages(ctx context.Context, id uuid.UUID, images []string) (*models.Product, error) {
	return s.editImages(ctx, id, func(current []string) []string {
		return slices.DeleteFunc(current, func(image string) bool {
			return slices.Contains(images, image)
		})
	})
}

func (s *productService) editImages(ctx context.Context, id uuid.UUID, edit func([]string) []string) (*models.Product, error) {
	var product *models.Product

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error

		product, err = s.products.GetProductForUpdate(ctx, id)
		if err != nil {
			return notFoundOr(err, "Product not found", "Failed to get product")
		}

		product.Images = edit(product.Images)
		if product.Images == nil {
			product.Images = []string{}
		}

		if err := s.products.UpdateImages(ctx, id, product.Images); err != nil {
			return notFoundOr(err, "Product not found", "Failed to update product images")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// ListProducts serves repeated queries from the cache until the list TTL expires.
func (s *productService) ListProducts(ctx context.Context, params models.ListParams) (*models.PaginatedResponse[*models.Product], error) {
	params = params.Normalize()
	key := cache.ListKey(cache.ProductKeyPrefix, "all", params)

	return cache.Remember(ctx, s.cache, middleware.LoggerFromContext(ctx), key, s.listTTL,
		func(ctx context.Context) (*models.PaginatedResponse[*models.Product], error) {
			products, total, err := s.products.ListProducts(ctx, params)
			if err != nil {
				return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
			}

			return models.NewPaginatedResponse(products, total, params), nil
		})
}

func (s *productService) ListByCategories(ctx context.Context, categoryIDs []uuid.UUID) ([]*models.Product, error) {
	products, err := s.products.ListByCategories(ctx, categoryIDs)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	if products == nil {
		products = []*models.Product{}
	}

	return products, nil
}

func (s *productService) ensureCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categories.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.BadRequestError("Category not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to get category").WithError(err)
	}

	if category.IsDeleted {
		return appErrors.BadRequestError("Category is no longer available")
	}

	return nil
}

func productWriteError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrReferenced):
		return appErrors.BadRequestError("Category not found").WithError(err)
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.NotFoundError("Product not found").WithError(err)
	default:
		return appErrors.DatabaseError(message).WithError(err)
	}
}

// dedupe appends the values of add missing from base, keeping order.
func dedupe(base, add []string) []string {
	out := append([]string{}, base...)

	for _, v := range add {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}

	return out
}
