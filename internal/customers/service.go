package customers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
)

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Service defines profile operations.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*Profile, error)
}

type service struct {
	repo Repository
}

// NewService builds a customers service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return NewProfile(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*Profile, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	user, err := s.repo.FindUserByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}

	updates := map[string]any{}
	if input.FirstName != nil {
		if strings.TrimSpace(*input.FirstName) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "first name cannot be empty")
		}
		updates["first_name"] = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*input.LastName)
	}
	if input.Mobile != nil {
		mobile := strings.TrimSpace(*input.Mobile)
		if err := ValidateMobile(mobile); err != nil {
			return nil, err
		}
		updates["mobile"] = mobile
	}
	if input.CompanyName != nil {
		updates["company_name"] = strings.TrimSpace(*input.CompanyName)
	}
	if input.GSTIN != nil {
		updates["gstin"] = strings.ToUpper(strings.TrimSpace(*input.GSTIN))
	}

	if user.Role == enums.RoleVendor {
		if err := validateVendorFields(user, updates); err != nil {
			return nil, err
		}
	}
	if len(updates) == 0 {
		return NewProfile(user), nil
	}

	if err := s.repo.UpdateUser(ctx, user.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	updated, err := s.repo.FindUserByID(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload profile")
	}
	return NewProfile(updated), nil
}

// ValidateMobile enforces the 10-digit Indian mobile format.
func ValidateMobile(mobile string) error {
	if !mobilePattern.MatchString(mobile) {
		return pkgerrors.New(pkgerrors.CodeValidation, "mobile number must be 10 digits")
	}
	return nil
}

// validateVendorFields keeps vendor accounts from clearing their required
// company_name and gstin values.
func validateVendorFields(user *models.User, updates map[string]any) error {
	company := valueOrCurrent(updates, "company_name", user.CompanyName)
	if strings.TrimSpace(company) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "company name is required for vendors")
	}
	gstin := valueOrCurrent(updates, "gstin", user.GSTIN)
	if strings.TrimSpace(gstin) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "gstin is required for vendors")
	}
	return nil
}

func valueOrCurrent(updates map[string]any, key string, current *string) string {
	if v, ok := updates[key].(string); ok {
		return v
	}
	if current != nil {
		return *current
	}
	return ""
}

// NewProfile maps a user row to its API shape.
func NewProfile(user *models.User) *Profile {
	return &Profile{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		Mobile:      user.Mobile,
		Role:        user.Role,
		CompanyName: user.CompanyName,
		GSTIN:       user.GSTIN,
		CreatedAt:   user.CreatedAt,
	}
}
