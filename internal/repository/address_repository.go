package repository

import (
	"app/internal/domain/model"
	"context"
)

// 配送先住所(ShippingAddress)を保存・取得する窓口
type AddressRepository interface {
	Create(ctx context.Context, address model.ShippingAddress) (model.ShippingAddress, error)

	//ユーザーが持つ住所一覧を返す
	ListByUserID(ctx context.Context, userID string) ([]model.ShippingAddress, error)

	//住所IDから住所を1件取得
	FindByID(ctx context.Context, addressID string) (model.ShippingAddress, error)
}
