package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

// OrderUsecase はチェックアウトと注文の状態遷移を担当する。
type OrderUsecase struct {
	tx           repo.TransactionManager
	addresses    repo.AddressRepository
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	addresses repo.AddressRepository,
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
) *OrderUsecase {
	return &OrderUsecase{
		tx:           tx,
		addresses:    addresses,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
	}
}

type CheckoutInput struct {
	ShippingAddressID string
}

type OrderItemOutput struct {
	ProductID    *string `json:"product_id"`
	Name         string  `json:"name"`
	PricePerItem int64   `json:"price_per_item"`
	Quantity     int64   `json:"quantity"`
	SubTotal     int64   `json:"sub_total"`
}

type OrderOutput struct {
	ID               string            `json:"id"`
	UserID           string            `json:"user_id"`
	Status           string            `json:"status"`
	Amount           int64             `json:"amount"`
	OrderReference   string            `json:"order_reference"`
	PaymentReference string            `json:"payment_reference,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	Items            []OrderItemOutput `json:"items"`
}

// 注文参照の採番（TXN-<unix>-<uuid>）
func newOrderReference() string {
	return fmt.Sprintf("TXN-%d-%s", time.Now().Unix(), uuid.NewString())
}

// Checkout はカートを注文に変換する。
// 在庫チェック・注文作成・在庫減算・カートクリアを1トランザクションで行い、
// どこかで失敗したら全て巻き戻す
func (u *OrderUsecase) Checkout(ctx context.Context, userID string, in CheckoutInput) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ShippingAddressID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid shipping_address_id")
	}

	//住所の存在確認＋所有チェック（トランザクションを開く前に弾く）
	addr, err := u.addresses.FindByID(ctx, in.ShippingAddressID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "address not found")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if addr.UserID != userID {
		return OrderOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	//空カートもトランザクションの前に弾く
	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	precheck, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(precheck) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート明細のスナップショット
		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		orderItems := make([]model.OrderItem, 0, len(cartItems))
		var total int64 = 0

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "product no longer available")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//在庫の確認と減算を1回の条件付きUPDATEで行う。
			//足りなければ全体を中断する（ここまでの減算も巻き戻る）
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ci.ProductID, ci.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "insufficient stock: "+p.Name)
			}

			//この瞬間の現在価格をスナップショット。
			//以後の価格変更はこの注文に影響しない
			productID := ci.ProductID
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           &productID,
				ProductNameSnapshot: p.Name,
				Quantity:            ci.Quantity,
				PricePerItem:        p.CurrentPrice,
				CreatedAt:           time.Now(),
			})

			total += ci.Quantity * p.CurrentPrice
		}

		// 注文作成
		now := time.Now()
		created, err := r.Orders().Create(ctx, model.Order{
			UserID:            userID,
			ShippingAddressID: in.ShippingAddressID,
			Status:            model.OrderStatusPending,
			Amount:            total,
			OrderReference:    newOrderReference(),
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, created.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カート明細をクリア（カート自体は残して再利用する）
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(created, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string) ([]OrderOutput, error) {
	if userID == "" {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByUserID(ctx, userID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID string, orderID string) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// CancelOrder は明示キャンセル。PendingとProcessingからのみ遷移できる。
// キャンセル時は減算済みの在庫を戻す
func (u *OrderUsecase) CancelOrder(ctx context.Context, userID string, orderID string) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		if o.Status != model.OrderStatusPending && o.Status != model.OrderStatusProcessing {
			return NewHTTPError(http.StatusBadRequest, "order cannot be cancelled")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//在庫戻し
		for _, it := range items {
			if it.ProductID == nil {
				continue
			}
			if err := r.Inventory().IncreaseStock(ctx, *it.ProductID, it.Quantity); err != nil && err != repo.ErrNotFound {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//決済レコードがあればそちらもキャンセルに倒す
		p, err := r.Payments().FindByOrderID(ctx, orderID)
		if err == nil {
			if err := r.Payments().UpdateStatus(ctx, p.ID, model.PaymentStatusCancelled, p.Method, p.IsVerified); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else if err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.Status = model.OrderStatusCancelled
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:    it.ProductID,
			Name:         it.ProductNameSnapshot,
			PricePerItem: it.PricePerItem,
			Quantity:     it.Quantity,
			SubTotal:     it.SubTotal(),
		})
	}

	return OrderOutput{
		ID:               o.ID,
		UserID:           o.UserID,
		Status:           string(o.Status),
		Amount:           o.Amount,
		OrderReference:   o.OrderReference,
		PaymentReference: o.PaymentReference,
		CreatedAt:        o.CreatedAt,
		Items:            outItems,
	}
}
