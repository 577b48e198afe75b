package model

// price_deltaは基準価格への加算額（マイナスも可）
type Option struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID   string    `json:"tenant_id" gorm:"type:uuid;not null;index"`
	GroupID    string    `json:"group_id" gorm:"type:uuid;not null;index"`
	Name       string    `json:"name" gorm:"type:varchar(60);not null"`
	PriceDelta int64     `json:"price_delta" gorm:"not null;default:0"`
	SortOrder  int       `json:"sort_order" gorm:"not null;default:0"`
	IsActive   bool      `json:"is_active" gorm:"not null;default:true"`
	Timestamp  Timestamp `json:"timestamps" gorm:"embedded"`
}
