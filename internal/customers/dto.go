package customers

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentkart/rentkart-backend/pkg/enums"
)

// Profile is the user-facing account shape.
type Profile struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	FullName    string     `json:"full_name"`
	Mobile      *string    `json:"mobile,omitempty"`
	Role        enums.Role `json:"role"`
	CompanyName *string    `json:"company_name,omitempty"`
	GSTIN       *string    `json:"gstin,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// UpdateProfileInput patches the caller's own profile; nil fields are untouched.
type UpdateProfileInput struct {
	UserID      uuid.UUID
	FirstName   *string
	LastName    *string
	Mobile      *string
	CompanyName *string
	GSTIN       *string
}
