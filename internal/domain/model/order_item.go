package model

import "time"

// 注文明細。チェックアウト後は不変
type OrderItem struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID string `gorm:"type:uuid;not null;index" json:"order_id"`

	//商品が削除されてもNULLで残す
	ProductID *string `gorm:"type:uuid;index" json:"product_id"`

	ProductNameSnapshot string `gorm:"type:varchar(128);not null" json:"product_name_snapshot"`
	Quantity            int64  `gorm:"not null" json:"quantity"`

	//チェックアウト時点の価格。以後の価格変更の影響を受けない
	PricePerItem int64 `gorm:"not null" json:"price_per_item"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (i OrderItem) SubTotal() int64 {
	return i.Quantity * i.PricePerItem
}
