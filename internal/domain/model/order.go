package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusSuccessful OrderStatus = "Successful"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

type Order struct {
	ID                string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            string      `gorm:"type:uuid;not null;index" json:"user_id"`
	ShippingAddressID string      `gorm:"type:uuid;not null" json:"shipping_address_id"`
	Status            OrderStatus `gorm:"type:varchar(12);not null;index" json:"status"`

	//注文明細の小計の合計
	Amount int64 `gorm:"not null" json:"amount"`

	//注文作成時に採番される（TXN-<unix>-<uuid>）
	OrderReference string `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_reference"`

	//決済初期化でゲートウェイから返る参照。初期化前は空
	PaymentReference string `gorm:"type:varchar(300);index" json:"payment_reference"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
