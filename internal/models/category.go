package models

import (
	"time"

	"github.com/google/uuid"
)

type CategoryStatus string

const (
	CategoryActive   CategoryStatus = "active"
	CategoryInactive CategoryStatus = "inactive"
)

type Category struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Slug        string         `json:"slug"`
	Image       string         `json:"image,omitempty"`
	Status      CategoryStatus `json:"status"`
	Keywords    []string       `json:"keywords"`
	IsFeatured  bool           `json:"is_featured"`
	IsDeleted   bool           `json:"is_deleted"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type CategoryRequest struct {
	Name        string         `json:"name" validate:"required,min=2,max=100"`
	Description string         `json:"description" validate:"required,max=1000"`
	Slug        string         `json:"slug,omitempty" validate:"omitempty,max=120"`
	Image       string         `json:"image,omitempty" validate:"omitempty,url"`
	Status      CategoryStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	Keywords    []string       `json:"keywords,omitempty" validate:"omitempty,dive,max=50"`
	IsFeatured  bool           `json:"is_featured"`
}
