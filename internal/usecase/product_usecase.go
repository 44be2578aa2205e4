package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	vendorRepo  repo.VendorRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, vendorRepo repo.VendorRepository) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
	}
}

type ListProductsInput struct {
	Page  int
	Limit int
	Q     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:  in.Page,
		Limit: in.Limit,
		Q:     strings.TrimSpace(in.Q),
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, productID string) (model.Product, error) {
	if productID == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return p, nil
}

type CreateProductInput struct {
	Name           string
	Description    string
	Stock          int64
	CurrentPrice   int64
	IsOnFlashSales bool
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, userID string, in CreateProductInput) (model.Product, error) {
	if userID == "" {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.CurrentPrice <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}
	if in.Stock < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}

	//出品者レコードが必要
	v, err := u.vendorRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "user is not a vendor")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := time.Now()
	p, err := u.productRepo.Create(ctx, model.Product{
		VendorID:       v.ID,
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Stock:          in.Stock,
		CurrentPrice:   in.CurrentPrice,
		IsOnFlashSales: in.IsOnFlashSales,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, userID string, productID string, in CreateProductInput) (model.Product, error) {
	if userID == "" {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.CurrentPrice <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}
	if in.Stock < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}

	p, err := u.findOwnedProduct(ctx, userID, productID)
	if err != nil {
		return model.Product{}, err
	}

	//値上げのときだけ直前の価格をold_priceに残す
	oldPrice := p.OldPrice
	if in.CurrentPrice > p.CurrentPrice {
		prev := p.CurrentPrice
		oldPrice = &prev
	}

	updated := model.Product{
		ID:             p.ID,
		VendorID:       p.VendorID,
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		Stock:          in.Stock,
		CurrentPrice:   in.CurrentPrice,
		OldPrice:       oldPrice,
		IsOnFlashSales: in.IsOnFlashSales,
		UpdatedAt:      time.Now(),
	}

	if err := u.productRepo.Update(ctx, updated); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return updated, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, userID string, productID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	if _, err := u.findOwnedProduct(ctx, userID, productID); err != nil {
		return err
	}

	err := u.productRepo.SoftDelete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 商品を取得して、呼び出しユーザーの出品物であることを確認する
func (u *ProductUsecase) findOwnedProduct(ctx context.Context, userID string, productID string) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	v, err := u.vendorRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "user is not a vendor")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if p.VendorID != v.ID {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return p, nil
}
