package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *models.CategoryRequest) (*models.Category, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, deleted bool) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

var categoryListKey = cache.Key(cache.CategoryKeyPrefix, "list")

type categoryService struct {
	repo    repository.CategoryRepository
	cache   cache.Cache
	listTTL time.Duration
}

func NewCategoryService(repo repository.CategoryRepository, c cache.Cache, listTTL time.Duration) CategoryService {
	return &categoryService{repo: repo, cache: c, listTTL: listTTL}
}

func (s *categoryService) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.Category, error) {
	category := &models.Category{ID: uuid.New()}
	applyCategoryRequest(category, req)

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, categoryWriteError(err, "Failed to create category")
	}

	s.invalidateList(ctx)

	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *models.CategoryRequest) (*models.Category, error) {
	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Category not found", "Failed to get category")
	}

	applyCategoryRequest(category, req)

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, categoryWriteError(err, "Failed to update category")
	}

	s.invalidateList(ctx)

	return category, nil
}

func (s *categoryService) UpdateStatus(ctx context.Context, id uuid.UUID, deleted bool) error {
	if err := s.repo.SetDeleted(ctx, id, deleted); err != nil {
		return notFoundOr(err, "Category not found", "Failed to update category status")
	}

	s.invalidateList(ctx)

	return nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return appErrors.ConflictError("Category still has products").WithError(err)
		}

		return notFoundOr(err, "Category not found", "Failed to delete category")
	}

	s.invalidateList(ctx)

	return nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := cache.Remember(ctx, s.cache, middleware.LoggerFromContext(ctx), categoryListKey, s.listTTL,
		func(ctx context.Context) ([]*models.Category, error) {
			categories, err := s.repo.ListCategories(ctx)
			if err != nil {
				return nil, appErrors.DatabaseError("Failed to fetch categories").WithError(err)
			}

			return categories, nil
		})
	if err != nil {
		return nil, err
	}

	if len(categories) == 0 {
		return nil, appErrors.NotFoundError("No categories found")
	}

	return categories, nil
}

// invalidateList drops the cached category list after a write. A failure only delays
// freshness until the entry expires.
func (s *categoryService) invalidateList(ctx context.Context) {
	if err := s.cache.Delete(ctx, categoryListKey); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to invalidate category cache", slog.Any("error", err))
	}
}

func applyCategoryRequest(category *models.Category, req *models.CategoryRequest) {
	category.Name = utils.SanitizeText(req.Name)
	category.Description = utils.SanitizeText(req.Description)
	category.Image = req.Image
	category.IsFeatured = req.IsFeatured

	category.Slug = utils.Slugify(req.Slug)
	if category.Slug == "" {
		category.Slug = utils.Slugify(req.Name)
	}

	category.Status = req.Status
	if category.Status == "" {
		category.Status = models.CategoryActive
	}

	category.Keywords = make([]string, 0, len(req.Keywords))
	for _, keyword := range req.Keywords {
		if k := utils.SanitizeText(keyword); k != "" {
			category.Keywords = append(category.Keywords, k)
		}
	}
}

func categoryWriteError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.DuplicateEntryError("A category with this name or slug already exists").WithError(err)
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.NotFoundError("Category not found").WithError(err)
	default:
		return appErrors.DatabaseError(message).WithError(err)
	}
}
