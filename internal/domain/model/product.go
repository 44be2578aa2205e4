package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	VendorID string `gorm:"type:uuid;not null;index" json:"vendor_id"`

	Name        string `gorm:"type:varchar(128);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	//在庫。負にならない（減算は条件付きUPDATEで行う）
	Stock int64 `gorm:"not null;default:0" json:"stock"`

	//現在価格（NGNの主要単位）
	CurrentPrice int64 `gorm:"not null" json:"current_price"`

	//値上げ時のみ直前の価格が入る
	OldPrice *int64 `json:"old_price"`

	IsOnFlashSales bool `gorm:"not null;default:false" json:"is_on_flash_sales"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
