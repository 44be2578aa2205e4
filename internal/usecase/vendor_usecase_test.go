package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestVendorUsecase_BecomeVendor_Success(t *testing.T) {
	users := new(UserRepoMock)
	vendors := new(VendorRepoMock)
	uc := usecase.NewVendorUsecase(users, vendors)

	users.On("FindByID", mock.Anything, "user-1").
		Return(model.User{ID: "user-1", IsCustomer: true, IsVendor: false}, nil)
	vendors.On("Create", mock.Anything, mock.MatchedBy(func(v model.Vendor) bool {
		return v.UserID == "user-1" && v.BrandName == "Brand" && v.BrandEmail == "brand@example.com"
	})).Return(model.Vendor{ID: "vendor-1", UserID: "user-1", BrandName: "Brand"}, nil)
	users.On("PromoteToVendor", mock.Anything, "user-1").
		Return(model.User{ID: "user-1", IsCustomer: true, IsVendor: true}, nil)

	out, err := uc.BecomeVendor(context.Background(), "user-1", usecase.BecomeVendorInput{
		BrandName: "Brand", BrandEmail: "brand@example.com",
	})
	assert.NoError(t, err)
	assert.True(t, out.User.IsVendor)
	assert.Equal(t, "vendor-1", out.Vendor.ID)

	users.AssertExpectations(t)
	vendors.AssertExpectations(t)
}

// Test: 既に出品者なら403
func TestVendorUsecase_BecomeVendor_AlreadyVendor(t *testing.T) {
	users := new(UserRepoMock)
	vendors := new(VendorRepoMock)
	uc := usecase.NewVendorUsecase(users, vendors)

	users.On("FindByID", mock.Anything, "user-1").
		Return(model.User{ID: "user-1", IsVendor: true}, nil)

	_, err := uc.BecomeVendor(context.Background(), "user-1", usecase.BecomeVendorInput{
		BrandName: "Brand", BrandEmail: "brand@example.com",
	})
	assertHTTPError(t, err, http.StatusForbidden)

	vendors.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "PromoteToVendor", mock.Anything, mock.Anything)
}

func TestVendorUsecase_BecomeVendor_InvalidInput(t *testing.T) {
	uc := usecase.NewVendorUsecase(new(UserRepoMock), new(VendorRepoMock))

	_, err := uc.BecomeVendor(context.Background(), "user-1", usecase.BecomeVendorInput{
		BrandName: "", BrandEmail: "brand@example.com",
	})
	assertHTTPError(t, err, http.StatusBadRequest)

	_, err = uc.BecomeVendor(context.Background(), "user-1", usecase.BecomeVendorInput{
		BrandName: "Brand", BrandEmail: "not-an-email",
	})
	assertHTTPError(t, err, http.StatusBadRequest)
}
