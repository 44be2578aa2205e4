package model

import "time"

type User struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`

	//購入者フラグ（登録時はtrue）
	IsCustomer bool `gorm:"not null;default:true" json:"is_customer"`

	//出品者フラグ。PromoteToVendorでのみtrueになる
	IsVendor bool `gorm:"not null;default:false" json:"is_vendor"`

	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
