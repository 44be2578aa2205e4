package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/gateway/paystack"
	repo "app/internal/repository"
)

// ゲートウェイはこの契約だけを満たせばよい。
// ローカルの状態遷移は必ずこのUsecase側で行う
type PaymentGateway interface {
	Initialize(ctx context.Context, email string, amountMinor int64) (paystack.InitializeResult, error)
	Verify(ctx context.Context, reference string) (paystack.VerifyResult, error)
}

type PaymentUsecase struct {
	tx       repo.TransactionManager
	orders   repo.OrderRepository
	payments repo.PaymentRepository
	users    repo.UserRepository
	gateway  PaymentGateway
}

func NewPaymentUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	payments repo.PaymentRepository,
	users repo.UserRepository,
	gateway PaymentGateway,
) *PaymentUsecase {
	return &PaymentUsecase{
		tx:       tx,
		orders:   orders,
		payments: payments,
		users:    users,
		gateway:  gateway,
	}
}

type PaymentInitOutput struct {
	OrderID          string `json:"order_id"`
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code,omitempty"`
}

type PaymentVerifyOutput struct {
	Reference     string `json:"reference"`
	PaymentStatus string `json:"payment_status"`
	OrderStatus   string `json:"order_status"`
	IsVerified    bool   `json:"is_verified"`
}

// InitializePayment はPendingの注文に対してだけ決済を初期化する。
// ゲートウェイ呼び出しはトランザクションの外。
// 成功したときだけPayment作成とPending→Processingを1トランザクションで書く
func (u *PaymentUsecase) InitializePayment(ctx context.Context, userID string, orderID string) (PaymentInitOutput, error) {
	if userID == "" {
		return PaymentInitOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return PaymentInitOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return PaymentInitOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return PaymentInitOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if o.UserID != userID {
		return PaymentInitOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	//Pending以外は初期化できない
	if o.Status != model.OrderStatusPending {
		return PaymentInitOutput{}, NewHTTPError(http.StatusBadRequest, "order is not pending")
	}

	user, err := u.users.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return PaymentInitOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return PaymentInitOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//主要単位→最小通貨単位（コボ）
	res, err := u.gateway.Initialize(ctx, user.Email, o.Amount*100)
	if err != nil {
		//ゲートウェイ失敗時はローカルの書き込みを一切しない（fail closed）
		var ge *paystack.GatewayError
		if errors.As(err, &ge) {
			return PaymentInitOutput{}, NewHTTPError(http.StatusServiceUnavailable, "payment gateway unavailable")
		}
		return PaymentInitOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//同時初期化に備えてトランザクション内で再確認
		cur, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if cur.Status != model.OrderStatusPending {
			return NewHTTPError(http.StatusBadRequest, "order is not pending")
		}

		now := time.Now()
		if _, err := r.Payments().Create(ctx, model.Payment{
			OrderID:          orderID,
			UserID:           userID,
			Amount:           o.Amount,
			Status:           model.PaymentStatusInitiated,
			PaymentReference: res.Reference,
			CreatedAt:        now,
			UpdatedAt:        now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().SetPaymentReference(ctx, orderID, res.Reference, model.OrderStatusProcessing); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})

	if err != nil {
		return PaymentInitOutput{}, err
	}

	return PaymentInitOutput{
		OrderID:          orderID,
		Reference:        res.Reference,
		AuthorizationURL: res.AuthorizationURL,
		AccessCode:       res.AccessCode,
	}, nil
}

// VerifyPayment はゲートウェイに最終ステータスを問い合わせて反映する。
// 成功の反映は同じ値の上書きなので、何度呼んでも結果は変わらない
func (u *PaymentUsecase) VerifyPayment(ctx context.Context, userID string, reference string) (PaymentVerifyOutput, error) {
	if userID == "" {
		return PaymentVerifyOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if reference == "" {
		return PaymentVerifyOutput{}, NewHTTPError(http.StatusBadRequest, "invalid reference")
	}

	//呼び出しユーザーの決済だけが対象
	p, err := u.payments.FindByReferenceForUser(ctx, reference, userID)
	if err == repo.ErrNotFound {
		return PaymentVerifyOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return PaymentVerifyOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//終端状態の決済は照合しない（ゲートウェイも呼ばない）
	if isTerminalPayment(p.Status) {
		return PaymentVerifyOutput{}, NewHTTPError(http.StatusBadRequest, "payment is "+string(p.Status))
	}

	//ゲートウェイ呼び出しはトランザクションの外
	res, err := u.gateway.Verify(ctx, reference)
	if err != nil {
		var ge *paystack.GatewayError
		if errors.As(err, &ge) {
			return PaymentVerifyOutput{}, NewHTTPError(http.StatusServiceUnavailable, "payment gateway unavailable")
		}
		return PaymentVerifyOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if !res.Confirmed {
		//未確定・失敗は保存状態を変えずにそのまま返す（後で再試行できる）
		return PaymentVerifyOutput{}, NewHTTPError(http.StatusBadRequest, "payment not confirmed: "+res.RawStatus)
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//ゲートウェイ呼び出し中にキャンセルされている可能性があるため、
		//トランザクション内で決済と注文の状態を取り直す。
		//キャンセル済みを成功に復活させない（在庫は既に戻っている）
		cur, err := r.Payments().FindByReferenceForUser(ctx, reference, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if isTerminalPayment(cur.Status) {
			return NewHTTPError(http.StatusBadRequest, "payment is "+string(cur.Status))
		}

		o, err := r.Orders().FindByID(ctx, p.OrderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.Status == model.OrderStatusCancelled {
			return NewHTTPError(http.StatusBadRequest, "order is cancelled")
		}

		if err := r.Payments().UpdateStatus(ctx, p.ID, model.PaymentStatusSuccessful, methodFromChannel(res.Channel), true); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().UpdateStatus(ctx, p.OrderID, model.OrderStatusSuccessful); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return PaymentVerifyOutput{}, err
	}

	return PaymentVerifyOutput{
		Reference:     reference,
		PaymentStatus: string(model.PaymentStatusSuccessful),
		OrderStatus:   string(model.OrderStatusSuccessful),
		IsVerified:    true,
	}, nil
}

// キャンセル・返金済みはもう動かせない
func isTerminalPayment(s model.PaymentStatus) bool {
	return s == model.PaymentStatusCancelled || s == model.PaymentStatusRefunded
}

// ゲートウェイのチャネル文字列をローカルの決済方法に寄せる
func methodFromChannel(channel string) model.PaymentMethod {
	switch channel {
	case "card":
		return model.PaymentMethodCard
	case "bank_transfer", "bank":
		return model.PaymentMethodBankTransfer
	case "ussd":
		return model.PaymentMethodUSSD
	case "mobile_money":
		return model.PaymentMethodWallet
	}
	return ""
}
