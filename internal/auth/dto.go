package auth

import (
	"github.com/rentkart/rentkart-backend/internal/customers"
)

// RegisterRequest captures the signup payload. Vendor signups must carry
// company_name and gstin.
type RegisterRequest struct {
	FirstName   string  `json:"first_name" validate:"required"`
	LastName    string  `json:"last_name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	Mobile      *string `json:"mobile,omitempty"`
	Role        string  `json:"role" validate:"required,oneof=customer vendor"`
	CompanyName *string `json:"company_name,omitempty"`
	GSTIN       *string `json:"gstin,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the expired access token plus its refresh token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse contains the tokens and profile produced by a successful login.
type LoginResponse struct {
	TokenPair
	User *customers.Profile `json:"user"`
}
