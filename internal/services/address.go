package service

import (
	"context"
	"errors"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/google/uuid"
)

type AddressService interface {
	CreateAddress(ctx context.Context, userID uuid.UUID, req *models.AddressRequest) (*models.Address, error)
	UpdateAddress(ctx context.Context, userID uuid.UUID, req *models.AddressRequest) (*models.Address, error)
	GetAddress(ctx context.Context, userID uuid.UUID) (*models.Address, error)
}

type addressService struct {
	repo repository.AddressRepository
}

func NewAddressService(repo repository.AddressRepository) AddressService {
	return &addressService{repo: repo}
}

// A user keeps a single shipping address; a second create is a conflict.
func (s *addressService) CreateAddress(ctx context.Context, userID uuid.UUID, req *models.AddressRequest) (*models.Address, error) {
	existing, err := s.repo.GetAddressByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, appErrors.DatabaseError("Failed to check existing address").WithError(err)
	}

	if existing != nil {
		return nil, appErrors.ConflictError("Address already exists, update it instead")
	}

	address := &models.Address{ID: uuid.New(), UserID: userID}
	applyAddressRequest(address, req)

	if err := s.repo.CreateAddress(ctx, address); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.ConflictError("Address already exists, update it instead").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to create address").WithError(err)
	}

	return address, nil
}

func (s *addressService) UpdateAddress(ctx context.Context, userID uuid.UUID, req *models.AddressRequest) (*models.Address, error) {
	address, err := s.repo.GetAddressByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "Address not found", "Failed to get address")
	}

	applyAddressRequest(address, req)

	if err := s.repo.UpdateAddress(ctx, address); err != nil {
		return nil, notFoundOr(err, "Address not found", "Failed to update address")
	}

	return address, nil
}

func (s *addressService) GetAddress(ctx context.Context, userID uuid.UUID) (*models.Address, error) {
	address, err := s.repo.GetAddressByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "Address not found", "Failed to get address")
	}

	return address, nil
}

func applyAddressRequest(address *models.Address, req *models.AddressRequest) {
	address.AddressLine1 = utils.SanitizeText(req.AddressLine1)
	address.AddressLine2 = utils.SanitizeText(req.AddressLine2)
	address.LandMark = utils.SanitizeText(req.LandMark)
	address.SpecialInstruction = utils.SanitizeText(req.SpecialInstruction)
	address.City = utils.TitleCase(utils.SanitizeText(req.City))
	address.State = utils.TitleCase(utils.SanitizeText(req.State))
	address.Country = utils.TitleCase(utils.SanitizeText(req.Country))
	address.PostalCode = utils.SanitizeText(req.PostalCode)
	address.AddressType = req.AddressType
}
