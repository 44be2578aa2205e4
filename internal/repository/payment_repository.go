package repository

import (
	"context"

	"app/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, p model.Payment) (model.Payment, error)
	FindByOrderID(ctx context.Context, orderID string) (model.Payment, error)

	//参照は呼び出しユーザーに限定して引く（他人の決済は見えない）
	FindByReferenceForUser(ctx context.Context, reference string, userID string) (model.Payment, error)

	UpdateStatus(ctx context.Context, paymentID string, status model.PaymentStatus, method model.PaymentMethod, verified bool) error
}
