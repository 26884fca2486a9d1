package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
	RoleDeveloper Role = "developer"
)

type User struct {
	ID                     uuid.UUID  `json:"id"`
	Email                  string     `json:"email"`
	FullName               string     `json:"full_name"`
	ContactNumber          string     `json:"contact_number"`
	Password               string     `json:"-"`
	Role                   Role       `json:"role"`
	IsDeleted              bool       `json:"is_deleted"`
	IsEmailVerified        bool       `json:"is_email_verified"`
	EmailVerificationToken string     `json:"-"`
	ResetPasswordToken     string     `json:"-"`
	ResetPasswordExpiry    *time.Time `json:"-"`
	RefreshToken           string     `json:"-"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// Session is the server-side record backing an issued token pair; deleting it revokes the pair.
type Session struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	Token        string    `json:"-"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// for registration
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	FullName        string `json:"full_name" validate:"required,fullname,max=100"`
	ContactNumber   string `json:"contact_number" validate:"required,e164"`
	Password        string `json:"password" validate:"required,min=6,max=72,strongpassword"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type UpdateUserRequest struct {
	FullName      string `json:"full_name" validate:"required,fullname,max=100"`
	ContactNumber string `json:"contact_number" validate:"required,e164"`
}

// for login
type LoginRequest struct {
	Identifier string `json:"email_or_contact_number" validate:"required"`
	Password   string `json:"password" validate:"required"`
	CartToken  string `json:"cart_token,omitempty"`
}

type LoginResponse struct {
	User           *User  `json:"user,omitempty"`
	AccessToken    string `json:"access_token,omitempty"`
	RefreshToken   string `json:"refresh_token,omitempty"`
	ExpiresIn      int    `json:"expires_in,omitempty"`
	RemainingTries int    `json:"remaining_tries,omitempty"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72,strongpassword,nefield=OldPassword"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=6,max=72,strongpassword"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// JWT claims structure
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	jwt.RegisteredClaims
}
