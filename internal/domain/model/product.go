package model

import "gorm.io/gorm"

// base_priceは最小通貨単位の整数（CLPなのでそのままペソ）
type Product struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID    string         `json:"tenant_id" gorm:"type:uuid;not null;index"`
	CategoryID  *string        `json:"category_id" gorm:"type:uuid;index"`
	Name        string         `json:"name" gorm:"type:varchar(60);not null"`
	Description string         `json:"description" gorm:"type:varchar(200)"`
	BasePrice   int64          `json:"base_price" gorm:"not null"`
	IsActive    bool           `json:"is_active" gorm:"not null;default:true"`
	IsSoldOut   bool           `json:"is_sold_out" gorm:"not null;default:false"`
	Timestamp   Timestamp      `json:"timestamps" gorm:"embedded"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
