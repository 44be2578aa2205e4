package model

import "time"

//ダイヤモンド会員になる累計売上のしきい値
const DiamondThreshold int64 = 9_999_999_999

// 出品者。Userとは別レコードで持つ
type Vendor struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string `gorm:"type:uuid;not null;index" json:"user_id"`
	BrandEmail string `gorm:"uniqueIndex;not null" json:"brand_email"`
	BrandName  string `gorm:"type:varchar(128);not null" json:"brand_name"`

	IsActivated bool `gorm:"not null;default:false" json:"is_activated"`

	//累計売上
	TotalSalesEver int64 `gorm:"not null;default:0" json:"total_sales_ever"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 累計売上がしきい値を超えたか。保存せず毎回計算する
func (v Vendor) IsDiamond() bool {
	return v.TotalSalesEver > DiamondThreshold
}
