package repository

import (
	"context"

	"app/internal/domain/model"
)

type VendorRepository interface {
	Create(ctx context.Context, v model.Vendor) (model.Vendor, error)
	FindByUserID(ctx context.Context, userID string) (model.Vendor, error)
	FindByID(ctx context.Context, vendorID string) (model.Vendor, error)
}
