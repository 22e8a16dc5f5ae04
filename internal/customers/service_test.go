package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentkart/rentkart-backend/pkg/db/models"
	"github.com/rentkart/rentkart-backend/pkg/enums"
	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
)

type stubCustomersRepo struct {
	user    *models.User
	updates map[string]any
}

func (s *stubCustomersRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubCustomersRepo) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.user = user
	return user, nil
}

func (s *stubCustomersRepo) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubCustomersRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubCustomersRepo) UpdateUser(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if s.user == nil || s.user.ID != id {
		return gorm.ErrRecordNotFound
	}
	s.updates = updates
	for key, value := range updates {
		str, _ := value.(string)
		switch key {
		case "first_name":
			s.user.FirstName = str
		case "last_name":
			s.user.LastName = str
		case "mobile":
			s.user.Mobile = &str
		case "company_name":
			s.user.CompanyName = &str
		case "gstin":
			s.user.GSTIN = &str
		}
	}
	return nil
}

func customerUser() *models.User {
	return &models.User{
		ID:        uuid.New(),
		Email:     "asha@example.com",
		FirstName: "Asha",
		LastName:  "Verma",
		Role:      enums.RoleCustomer,
		IsActive:  true,
	}
}

func TestUpdateProfileValidatesMobile(t *testing.T) {
	repo := &stubCustomersRepo{user: customerUser()}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	ctx := context.Background()

	bad := "98765"
	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{UserID: repo.user.ID, Mobile: &bad})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	alpha := "98765abcde"
	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{UserID: repo.user.ID, Mobile: &alpha})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	good := "9876543210"
	profile, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: repo.user.ID, Mobile: &good})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if profile.Mobile == nil || *profile.Mobile != good {
		t.Fatalf("expected mobile %q, got %v", good, profile.Mobile)
	}
}

func TestUpdateProfileVendorRequiresCompanyFields(t *testing.T) {
	user := customerUser()
	user.Role = enums.RoleVendor
	company := "Rentkart Traders"
	gstin := "22AAAAA0000A1Z5"
	user.CompanyName = &company
	user.GSTIN = &gstin

	repo := &stubCustomersRepo{user: user}
	svc, _ := NewService(repo)
	ctx := context.Background()

	empty := ""
	_, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, CompanyName: &empty})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error clearing company, got %v", err)
	}

	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, GSTIN: &empty})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error clearing gstin, got %v", err)
	}

	lower := "22aaaaa0000a1z5"
	profile, err := svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, GSTIN: &lower})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if profile.GSTIN == nil || *profile.GSTIN != gstin {
		t.Fatalf("expected uppercased gstin, got %v", profile.GSTIN)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _ := NewService(&stubCustomersRepo{})

	_, err := svc.GetProfile(context.Background(), uuid.New())
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetProfileRequiresIdentity(t *testing.T) {
	svc, _ := NewService(&stubCustomersRepo{})

	_, err := svc.GetProfile(context.Background(), uuid.Nil)
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
