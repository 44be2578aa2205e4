package model

import "time"

// 配送先住所
type ShippingAddress struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`

	FirstName string `gorm:"type:varchar(150);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(150);not null" json:"last_name"`

	//電話番号（+234形式）
	Phone string `gorm:"type:varchar(16)" json:"phone"`

	Address string `gorm:"type:varchar(150);not null" json:"address"`
	Country string `gorm:"type:varchar(100);not null" json:"country"`
	State   string `gorm:"type:varchar(150)" json:"state"`
	LGA     string `gorm:"type:varchar(150)" json:"lga"`
	ZipCode string `gorm:"type:varchar(10)" json:"zip_code"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
