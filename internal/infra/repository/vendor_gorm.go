package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendorGormRepository struct {
	db *gorm.DB
}

func NewVendorGormRepository(db *gorm.DB) *VendorGormRepository {
	return &VendorGormRepository{db: db}
}

func (r *VendorGormRepository) Create(ctx context.Context, v model.Vendor) (model.Vendor, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		return model.Vendor{}, err
	}
	return v, nil
}

func (r *VendorGormRepository) FindByUserID(ctx context.Context, userID string) (model.Vendor, error) {
	var v model.Vendor
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Vendor{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Vendor{}, err
	}
	return v, nil
}

func (r *VendorGormRepository) FindByID(ctx context.Context, vendorID string) (model.Vendor, error) {
	var v model.Vendor
	err := r.db.WithContext(ctx).Where("id = ?", vendorID).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Vendor{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Vendor{}, err
	}
	return v, nil
}
