package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	ListByUserID(ctx context.Context, userID string, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error

	//決済初期化でゲートウェイ参照を保存しつつステータスを進める
	SetPaymentReference(ctx context.Context, orderID string, reference string, status model.OrderStatus) error
}
