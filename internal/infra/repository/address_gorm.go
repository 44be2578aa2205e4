package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressGormRepository struct {
	db *gorm.DB
}

func NewAddressGormRepository(db *gorm.DB) *AddressGormRepository {
	return &AddressGormRepository{db: db}
}

func (r *AddressGormRepository) Create(ctx context.Context, address model.ShippingAddress) (model.ShippingAddress, error) {
	if address.ID == "" {
		address.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&address).Error; err != nil {
		return model.ShippingAddress{}, err
	}
	return address, nil
}

func (r *AddressGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.ShippingAddress, error) {
	var items []model.ShippingAddress

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return []model.ShippingAddress{}, err
	}

	return items, nil
}

func (r *AddressGormRepository) FindByID(ctx context.Context, addressID string) (model.ShippingAddress, error) {
	var a model.ShippingAddress
	err := r.db.WithContext(ctx).Where("id = ?", addressID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ShippingAddress{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ShippingAddress{}, err
	}
	return a, nil
}
