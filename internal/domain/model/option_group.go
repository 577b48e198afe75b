package model

type OptionGroupType string

const (
	OptionGroupTypeSingle   OptionGroupType = "single"
	OptionGroupTypeMultiple OptionGroupType = "multiple"
)

// 商品ごとのオプション見出し（例：サイズ、トッピング）
type OptionGroup struct {
	ID        string          `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID  string          `json:"tenant_id" gorm:"type:uuid;not null;index"`
	ProductID string          `json:"product_id" gorm:"type:uuid;not null;index"`
	Name      string          `json:"name" gorm:"type:varchar(60);not null"`
	Type      OptionGroupType `json:"type" gorm:"type:varchar(20);not null"`
	Required  bool            `json:"required" gorm:"not null;default:false"`
	SortOrder int             `json:"sort_order" gorm:"not null;default:0"`
	Timestamp Timestamp       `json:"timestamps" gorm:"embedded"`
}
