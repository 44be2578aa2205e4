package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderUsecaseForTest() (*usecase.OrderUsecase, *AddressRepoMock, *CartRepoMock, *CartItemRepoMock, *TxReposMock) {
	addresses := new(AddressRepoMock)
	cartRepo := new(CartRepoMock)
	cartItemRepo := new(CartItemRepoMock)
	txRepos := newTxReposMock()
	tx := &TxManagerMock{Repos: txRepos}

	uc := usecase.NewOrderUsecase(tx, addresses, cartRepo, cartItemRepo)
	return uc, addresses, cartRepo, cartItemRepo, txRepos
}

// Test: チェックアウト成功（2商品・金額はその時点の現在価格で確定）
func TestOrderUsecase_Checkout_Success(t *testing.T) {
	ctx := context.Background()
	uc, addresses, cartRepo, cartItemRepo, txRepos := newOrderUsecaseForTest()

	userID := "user-1"
	addrID := "addr-1"
	cartID := "cart-1"

	addresses.On("FindByID", mock.Anything, addrID).
		Return(model.ShippingAddress{ID: addrID, UserID: userID}, nil)
	cartRepo.On("FindByUserID", mock.Anything, userID).
		Return(model.Cart{ID: cartID, UserID: userID}, nil)

	items := []model.CartItem{
		{ID: 1, CartID: cartID, ProductID: "prod-a", Quantity: 2},
		{ID: 2, CartID: cartID, ProductID: "prod-b", Quantity: 1},
	}
	cartItemRepo.On("ListByCartID", mock.Anything, cartID).Return(items, nil)
	txRepos.CartItemsM.On("ListByCartID", mock.Anything, cartID).Return(items, nil)

	txRepos.ProductsM.On("FindByID", mock.Anything, "prod-a").
		Return(model.Product{ID: "prod-a", Name: "A", Stock: 10, CurrentPrice: 1000}, nil)
	txRepos.ProductsM.On("FindByID", mock.Anything, "prod-b").
		Return(model.Product{ID: "prod-b", Name: "B", Stock: 5, CurrentPrice: 500}, nil)

	txRepos.InventoryM.On("DecreaseStockIfEnough", mock.Anything, "prod-a", int64(2)).Return(true, nil)
	txRepos.InventoryM.On("DecreaseStockIfEnough", mock.Anything, "prod-b", int64(1)).Return(true, nil)

	txRepos.OrdersM.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == userID &&
			o.Status == model.OrderStatusPending &&
			o.Amount == 2500 &&
			o.OrderReference != ""
	})).Return(model.Order{
		ID:             "order-1",
		UserID:         userID,
		Status:         model.OrderStatusPending,
		Amount:         2500,
		OrderReference: "TXN-ref",
	}, nil)

	txRepos.OrderItemsM.On("CreateBulk", mock.Anything, "order-1", mock.MatchedBy(func(items []model.OrderItem) bool {
		if len(items) != 2 {
			return false
		}
		return items[0].PricePerItem == 1000 && items[0].Quantity == 2 &&
			items[1].PricePerItem == 500 && items[1].Quantity == 1
	})).Return(nil)

	txRepos.CartsM.On("Clear", mock.Anything, cartID).Return(nil)

	out, err := uc.Checkout(ctx, userID, usecase.CheckoutInput{ShippingAddressID: addrID})
	assert.NoError(t, err)
	assert.Equal(t, "order-1", out.ID)
	assert.Equal(t, int64(2500), out.Amount)
	assert.Equal(t, string(model.OrderStatusPending), out.Status)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, int64(2000), out.Items[0].SubTotal)
	assert.Equal(t, int64(500), out.Items[1].SubTotal)

	txRepos.OrdersM.AssertExpectations(t)
	txRepos.OrderItemsM.AssertExpectations(t)
	txRepos.CartsM.AssertExpectations(t)
}

// Test: 2行目で在庫不足→注文もカートクリアも起きない
func TestOrderUsecase_Checkout_InsufficientStockAborts(t *testing.T) {
	ctx := context.Background()
	uc, addresses, cartRepo, cartItemRepo, txRepos := newOrderUsecaseForTest()

	userID := "user-1"
	addrID := "addr-1"
	cartID := "cart-1"

	addresses.On("FindByID", mock.Anything, addrID).
		Return(model.ShippingAddress{ID: addrID, UserID: userID}, nil)
	cartRepo.On("FindByUserID", mock.Anything, userID).
		Return(model.Cart{ID: cartID, UserID: userID}, nil)

	items := []model.CartItem{
		{ID: 1, CartID: cartID, ProductID: "prod-a", Quantity: 2},
		{ID: 2, CartID: cartID, ProductID: "prod-b", Quantity: 9},
	}
	cartItemRepo.On("ListByCartID", mock.Anything, cartID).Return(items, nil)
	txRepos.CartItemsM.On("ListByCartID", mock.Anything, cartID).Return(items, nil)

	txRepos.ProductsM.On("FindByID", mock.Anything, "prod-a").
		Return(model.Product{ID: "prod-a", Name: "A", Stock: 10, CurrentPrice: 1000}, nil)
	txRepos.ProductsM.On("FindByID", mock.Anything, "prod-b").
		Return(model.Product{ID: "prod-b", Name: "B", Stock: 5, CurrentPrice: 500}, nil)

	txRepos.InventoryM.On("DecreaseStockIfEnough", mock.Anything, "prod-a", int64(2)).Return(true, nil)
	txRepos.InventoryM.On("DecreaseStockIfEnough", mock.Anything, "prod-b", int64(9)).Return(false, nil)

	_, err := uc.Checkout(ctx, userID, usecase.CheckoutInput{ShippingAddressID: addrID})
	assertHTTPError(t, err, http.StatusBadRequest)

	txRepos.OrdersM.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	txRepos.OrderItemsM.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything, mock.Anything)
	txRepos.CartsM.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

// Test: 他人の住所では注文できない
func TestOrderUsecase_Checkout_ForeignAddressForbidden(t *testing.T) {
	ctx := context.Background()
	uc, addresses, _, _, _ := newOrderUsecaseForTest()

	addresses.On("FindByID", mock.Anything, "addr-x").
		Return(model.ShippingAddress{ID: "addr-x", UserID: "someone-else"}, nil)

	_, err := uc.Checkout(ctx, "user-1", usecase.CheckoutInput{ShippingAddressID: "addr-x"})
	assertHTTPError(t, err, http.StatusForbidden)
}

// Test: 空カートは400
func TestOrderUsecase_Checkout_EmptyCart(t *testing.T) {
	ctx := context.Background()
	uc, addresses, cartRepo, cartItemRepo, _ := newOrderUsecaseForTest()

	userID := "user-1"
	addresses.On("FindByID", mock.Anything, "addr-1").
		Return(model.ShippingAddress{ID: "addr-1", UserID: userID}, nil)
	cartRepo.On("FindByUserID", mock.Anything, userID).
		Return(model.Cart{ID: "cart-1", UserID: userID}, nil)
	cartItemRepo.On("ListByCartID", mock.Anything, "cart-1").Return([]model.CartItem{}, nil)

	_, err := uc.Checkout(ctx, userID, usecase.CheckoutInput{ShippingAddressID: "addr-1"})
	assertHTTPError(t, err, http.StatusBadRequest)
}

// Test: カートが存在しない場合も400
func TestOrderUsecase_Checkout_NoCart(t *testing.T) {
	ctx := context.Background()
	uc, addresses, cartRepo, _, _ := newOrderUsecaseForTest()

	userID := "user-1"
	addresses.On("FindByID", mock.Anything, "addr-1").
		Return(model.ShippingAddress{ID: "addr-1", UserID: userID}, nil)
	cartRepo.On("FindByUserID", mock.Anything, userID).
		Return(model.Cart{}, repo.ErrNotFound)

	_, err := uc.Checkout(ctx, userID, usecase.CheckoutInput{ShippingAddressID: "addr-1"})
	assertHTTPError(t, err, http.StatusBadRequest)
}

// Test: キャンセル成功（在庫が戻る・決済もキャンセルされる）
func TestOrderUsecase_CancelOrder_RestocksAndCancelsPayment(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _, txRepos := newOrderUsecaseForTest()

	userID := "user-1"
	orderID := "order-1"
	prodA := "prod-a"

	txRepos.OrdersM.On("FindByID", mock.Anything, orderID).
		Return(model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusProcessing, Amount: 2000}, nil)
	txRepos.OrderItemsM.On("ListByOrderID", mock.Anything, orderID).
		Return([]model.OrderItem{
			{ID: 1, OrderID: orderID, ProductID: &prodA, Quantity: 2, PricePerItem: 1000},
		}, nil)
	txRepos.InventoryM.On("IncreaseStock", mock.Anything, prodA, int64(2)).Return(nil)
	txRepos.OrdersM.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusCancelled).Return(nil)
	txRepos.PaymentsM.On("FindByOrderID", mock.Anything, orderID).
		Return(model.Payment{ID: "pay-1", OrderID: orderID, Status: model.PaymentStatusInitiated}, nil)
	txRepos.PaymentsM.On("UpdateStatus", mock.Anything, "pay-1", model.PaymentStatusCancelled, model.PaymentMethod(""), false).Return(nil)

	out, err := uc.CancelOrder(ctx, userID, orderID)
	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusCancelled), out.Status)

	txRepos.InventoryM.AssertExpectations(t)
	txRepos.PaymentsM.AssertExpectations(t)
}

// Test: Successfulの注文はキャンセルできない
func TestOrderUsecase_CancelOrder_InvalidState(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _, txRepos := newOrderUsecaseForTest()

	txRepos.OrdersM.On("FindByID", mock.Anything, "order-1").
		Return(model.Order{ID: "order-1", UserID: "user-1", Status: model.OrderStatusSuccessful}, nil)

	_, err := uc.CancelOrder(ctx, "user-1", "order-1")
	assertHTTPError(t, err, http.StatusBadRequest)

	txRepos.OrdersM.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	txRepos.InventoryM.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
}

// Test: 他人の注文は存在しない扱い
func TestOrderUsecase_GetMyOrderDetail_ForeignOrderHidden(t *testing.T) {
	ctx := context.Background()
	uc, _, _, _, txRepos := newOrderUsecaseForTest()

	txRepos.OrdersM.On("FindByID", mock.Anything, "order-1").
		Return(model.Order{ID: "order-1", UserID: "someone-else", Status: model.OrderStatusPending}, nil)

	_, err := uc.GetMyOrderDetail(ctx, "user-1", "order-1")
	assertHTTPError(t, err, http.StatusNotFound)
}
