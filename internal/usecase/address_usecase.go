package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type AddressUsecase struct {
	addresses repo.AddressRepository
}

func NewAddressUsecase(addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

type CreateAddressInput struct {
	FirstName string
	LastName  string
	Phone     string
	Address   string
	Country   string
	State     string
	LGA       string
	ZipCode   string
}

func (u *AddressUsecase) CreateAddress(ctx context.Context, userID string, in CreateAddressInput) (model.ShippingAddress, error) {
	if userID == "" {
		return model.ShippingAddress{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return model.ShippingAddress{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return model.ShippingAddress{}, NewHTTPError(http.StatusBadRequest, "address required")
	}
	if strings.TrimSpace(in.Country) == "" {
		return model.ShippingAddress{}, NewHTTPError(http.StatusBadRequest, "country required")
	}

	created, err := u.addresses.Create(ctx, model.ShippingAddress{
		UserID:    userID,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		Country:   strings.TrimSpace(in.Country),
		State:     strings.TrimSpace(in.State),
		LGA:       strings.TrimSpace(in.LGA),
		ZipCode:   strings.TrimSpace(in.ZipCode),
		CreatedAt: time.Now(),
	})
	if err != nil {
		return model.ShippingAddress{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *AddressUsecase) ListMyAddresses(ctx context.Context, userID string) ([]model.ShippingAddress, error) {
	if userID == "" {
		return []model.ShippingAddress{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return []model.ShippingAddress{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}
