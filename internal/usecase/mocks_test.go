package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/gateway/paystack"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID string, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID string, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateByUserID(ctx context.Context, userID string) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID string) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) Clear(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) UpsertByCartAndProduct(ctx context.Context, cartID string, productID string, addQty int64) error {
	args := m.Called(ctx, cartID, productID, addQty)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) IsOwnedByUser(ctx context.Context, cartItemID int64, userID string) (bool, error) {
	args := m.Called(ctx, cartItemID, userID)
	return args.Bool(0), args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID string, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	created, _ := args.Get(0).(model.Order)
	return created, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) SetPaymentReference(ctx context.Context, orderID string, reference string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, reference, status)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Payment)
	return created, args.Error(1)
}

func (m *PaymentRepoMock) FindByOrderID(ctx context.Context, orderID string) (model.Payment, error) {
	args := m.Called(ctx, orderID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) FindByReferenceForUser(ctx context.Context, reference string, userID string) (model.Payment, error) {
	args := m.Called(ctx, reference, userID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) UpdateStatus(ctx context.Context, paymentID string, status model.PaymentStatus, method model.PaymentMethod, verified bool) error {
	args := m.Called(ctx, paymentID, status, method, verified)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	created, _ := args.Get(0).(model.User)
	return created, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID string) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) PromoteToVendor(ctx context.Context, userID string) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

type VendorRepoMock struct{ mock.Mock }

func (m *VendorRepoMock) Create(ctx context.Context, v model.Vendor) (model.Vendor, error) {
	args := m.Called(ctx, v)
	created, _ := args.Get(0).(model.Vendor)
	return created, args.Error(1)
}

func (m *VendorRepoMock) FindByUserID(ctx context.Context, userID string) (model.Vendor, error) {
	args := m.Called(ctx, userID)
	v, _ := args.Get(0).(model.Vendor)
	return v, args.Error(1)
}

func (m *VendorRepoMock) FindByID(ctx context.Context, vendorID string) (model.Vendor, error) {
	args := m.Called(ctx, vendorID)
	v, _ := args.Get(0).(model.Vendor)
	return v, args.Error(1)
}

type AddressRepoMock struct{ mock.Mock }

func (m *AddressRepoMock) Create(ctx context.Context, a model.ShippingAddress) (model.ShippingAddress, error) {
	args := m.Called(ctx, a)
	created, _ := args.Get(0).(model.ShippingAddress)
	return created, args.Error(1)
}

func (m *AddressRepoMock) ListByUserID(ctx context.Context, userID string) ([]model.ShippingAddress, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.ShippingAddress)
	return items, args.Error(1)
}

func (m *AddressRepoMock) FindByID(ctx context.Context, addressID string) (model.ShippingAddress, error) {
	args := m.Called(ctx, addressID)
	a, _ := args.Get(0).(model.ShippingAddress)
	return a, args.Error(1)
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) Initialize(ctx context.Context, email string, amountMinor int64) (paystack.InitializeResult, error) {
	args := m.Called(ctx, email, amountMinor)
	res, _ := args.Get(0).(paystack.InitializeResult)
	return res, args.Error(1)
}

func (m *GatewayMock) Verify(ctx context.Context, reference string) (paystack.VerifyResult, error) {
	args := m.Called(ctx, reference)
	res, _ := args.Get(0).(paystack.VerifyResult)
	return res, args.Error(1)
}

// =====================
// Tx
// =====================

// TxReposMock は全リポジトリのモックを束ねる
type TxReposMock struct {
	OrdersM     *OrderRepoMock
	OrderItemsM *OrderItemRepoMock
	CartsM      *CartRepoMock
	CartItemsM  *CartItemRepoMock
	InventoryM  *InventoryRepoMock
	ProductsM   *ProductRepoMock
	PaymentsM   *PaymentRepoMock
}

func newTxReposMock() *TxReposMock {
	return &TxReposMock{
		OrdersM:     new(OrderRepoMock),
		OrderItemsM: new(OrderItemRepoMock),
		CartsM:      new(CartRepoMock),
		CartItemsM:  new(CartItemRepoMock),
		InventoryM:  new(InventoryRepoMock),
		ProductsM:   new(ProductRepoMock),
		PaymentsM:   new(PaymentRepoMock),
	}
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.OrdersM }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.OrderItemsM }
func (r *TxReposMock) Carts() repo.CartRepository           { return r.CartsM }
func (r *TxReposMock) CartItems() repo.CartItemRepository   { return r.CartItemsM }
func (r *TxReposMock) Inventory() repo.InventoryRepository  { return r.InventoryM }
func (r *TxReposMock) Products() repo.ProductRepository     { return r.ProductsM }
func (r *TxReposMock) Payments() repo.PaymentRepository     { return r.PaymentsM }

// fnが返したerrorをそのまま返すだけ（rollbackの代わり）
type TxManagerMock struct {
	Repos *TxReposMock
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.Repos)
}

// =====================
// Helpers
// =====================

func assertHTTPError(t *testing.T, err error, wantStatus int) {
	t.Helper()
	assert.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, wantStatus, he.Status)
	}
}
