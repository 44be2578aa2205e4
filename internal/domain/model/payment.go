package model

import "time"

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "Card"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
	PaymentMethodUSSD         PaymentMethod = "USSD"
	PaymentMethodWallet       PaymentMethod = "Wallet"
)

type PaymentStatus string

const (
	PaymentStatusInitiated  PaymentStatus = "Initiated"
	PaymentStatusPending    PaymentStatus = "Pending"
	PaymentStatusSuccessful PaymentStatus = "Successful"
	PaymentStatusFailed     PaymentStatus = "Failed"
	PaymentStatusRefunded   PaymentStatus = "Refunded"
	PaymentStatusCancelled  PaymentStatus = "Cancelled"
)

// 決済。注文と1:1
type Payment struct {
	ID      string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID string `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	UserID  string `gorm:"type:uuid;not null;index" json:"user_id"`

	Amount int64         `gorm:"not null" json:"amount"`
	Method PaymentMethod `gorm:"type:varchar(50)" json:"method"`

	//ゲートウェイの検証結果を反映する
	Status PaymentStatus `gorm:"type:varchar(50);not null" json:"status"`

	//ゲートウェイ側のトランザクション参照
	PaymentReference string `gorm:"type:varchar(300);not null;uniqueIndex" json:"payment_reference"`

	IsVerified bool `gorm:"not null;default:false" json:"is_verified"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
