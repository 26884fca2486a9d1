package repository

import (
	"context"
	"database/sql"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type AddressRepository interface {
	CreateAddress(ctx context.Context, address *models.Address) error
	GetAddressByUserID(ctx context.Context, userID uuid.UUID) (*models.Address, error)
	UpdateAddress(ctx context.Context, address *models.Address) error
}

type addressRepository struct {
	DB *sql.DB
}

func NewAddressRepo(db *sql.DB) AddressRepository {
	return &addressRepository{DB: db}
}

func (r *addressRepository) CreateAddress(ctx context.Context, address *models.Address) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO addresses (id, user_id, address_line_1, address_line_2, land_mark, special_instruction, city, state, postal_code, country, address_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, address.ID, address.UserID, address.AddressLine1, address.AddressLine2, address.LandMark,
		address.SpecialInstruction, address.City, address.State, address.PostalCode, address.Country, address.AddressType).
		Scan(&address.CreatedAt, &address.UpdatedAt)

	return translate(err)
}

func (r *addressRepository) GetAddressByUserID(ctx context.Context, userID uuid.UUID) (*models.Address, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, address_line_1, address_line_2, land_mark, special_instruction, city, state, postal_code, country, address_type, created_at, updated_at
		FROM addresses
		WHERE user_id = $1
	`

	address := &models.Address{}

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, userID).Scan(&address.ID, &address.UserID, &address.AddressLine1, &address.AddressLine2,
		&address.LandMark, &address.SpecialInstruction, &address.City, &address.State, &address.PostalCode, &address.Country, &address.AddressType,
		&address.CreatedAt, &address.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}

	return address, nil
}

func (r *addressRepository) UpdateAddress(ctx context.Context, address *models.Address) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE addresses SET address_line_1 = $1, address_line_2 = $2, land_mark = $3, special_instruction = $4, city = $5, state = $6,
			postal_code = $7, country = $8, address_type = $9, updated_at = NOW()
		WHERE user_id = $10
		RETURNING id, created_at, updated_at
	`

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, address.AddressLine1, address.AddressLine2, address.LandMark, address.SpecialInstruction,
		address.City, address.State, address.PostalCode, address.Country, address.AddressType, address.UserID).
		Scan(&address.ID, &address.CreatedAt, &address.UpdatedAt)

	return translate(err)
}
