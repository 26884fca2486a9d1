package models

import (
	"time"

	"github.com/google/uuid"
)

type AddressType string

const (
	AddressHome   AddressType = "home"
	AddressOffice AddressType = "office"
)

// Address is the single shipping address of a user.
type Address struct {
	ID                 uuid.UUID   `json:"id"`
	UserID             uuid.UUID   `json:"user_id"`
	AddressLine1       string      `json:"address_line_1"`
	AddressLine2       string      `json:"address_line_2,omitempty"`
	LandMark           string      `json:"land_mark,omitempty"`
	SpecialInstruction string      `json:"special_instruction,omitempty"`
	City               string      `json:"city"`
	State              string      `json:"state"`
	PostalCode         string      `json:"postal_code"`
	Country            string      `json:"country"`
	AddressType        AddressType `json:"address_type"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

type AddressRequest struct {
	AddressLine1       string      `json:"address_line_1" validate:"required,max=200"`
	AddressLine2       string      `json:"address_line_2,omitempty" validate:"max=200"`
	LandMark           string      `json:"land_mark,omitempty" validate:"max=100"`
	SpecialInstruction string      `json:"special_instruction,omitempty" validate:"max=300"`
	City               string      `json:"city" validate:"required,max=100"`
	State              string      `json:"state" validate:"required,max=100"`
	PostalCode         string      `json:"postal_code" validate:"required,max=20"`
	Country            string      `json:"country" validate:"required,max=100"`
	AddressType        AddressType `json:"address_type" validate:"required,oneof=home office"`
}
