package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type VendorUsecase struct {
	users   repo.UserRepository
	vendors repo.VendorRepository
}

func NewVendorUsecase(users repo.UserRepository, vendors repo.VendorRepository) *VendorUsecase {
	return &VendorUsecase{users: users, vendors: vendors}
}

type BecomeVendorInput struct {
	BrandName  string
	BrandEmail string
}

type BecomeVendorOutput struct {
	User   model.User   `json:"user"`
	Vendor model.Vendor `json:"vendor"`
}

// BecomeVendor はユーザーを出品者に昇格させる。
// フラグの書き換えは必ずこの遷移を通す
func (u *VendorUsecase) BecomeVendor(ctx context.Context, userID string, in BecomeVendorInput) (BecomeVendorOutput, error) {
	if userID == "" {
		return BecomeVendorOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	brandName := strings.TrimSpace(in.BrandName)
	brandEmail := strings.TrimSpace(in.BrandEmail)
	if brandName == "" {
		return BecomeVendorOutput{}, NewHTTPError(http.StatusBadRequest, "brand_name required")
	}
	if brandEmail == "" || !strings.Contains(brandEmail, "@") {
		return BecomeVendorOutput{}, NewHTTPError(http.StatusBadRequest, "invalid brand_email")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return BecomeVendorOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return BecomeVendorOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if user.IsVendor {
		return BecomeVendorOutput{}, NewHTTPError(http.StatusForbidden, "user is already a vendor")
	}

	now := time.Now()
	vendor, err := u.vendors.Create(ctx, model.Vendor{
		UserID:     userID,
		BrandEmail: brandEmail,
		BrandName:  brandName,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		//brand_emailのuniqueに弾かれたケースを拾う
		return BecomeVendorOutput{}, NewHTTPError(http.StatusBadRequest, "brand_email already taken")
	}

	promoted, err := u.users.PromoteToVendor(ctx, userID)
	if err != nil {
		return BecomeVendorOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return BecomeVendorOutput{User: promoted, Vendor: vendor}, nil
}
