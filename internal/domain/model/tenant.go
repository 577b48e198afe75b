package model

type TenantType string

const (
	TenantTypeRestaurant   TenantType = "restaurant"
	TenantTypeEntrepreneur TenantType = "entrepreneur"
)

// 1オーナーにつき店舗は1つ。slugは公開カタログのキー。
type Tenant struct {
	ID              string     `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID         string     `json:"owner_id" gorm:"type:uuid;not null;uniqueIndex"`
	Name            string     `json:"name" gorm:"type:varchar(60);not null"`
	Slug            string     `json:"slug" gorm:"type:varchar(80);not null;uniqueIndex"`
	Type            TenantType `json:"type" gorm:"type:varchar(20);not null"`
	WhatsappPhone   string     `json:"whatsapp_phone" gorm:"type:varchar(20);not null"`
	Address         string     `json:"address" gorm:"type:varchar(120)"`
	DeliveryFee     int64      `json:"delivery_fee" gorm:"not null;default:0"`
	PickupEnabled   bool       `json:"pickup_enabled" gorm:"not null;default:true"`
	DeliveryEnabled bool       `json:"delivery_enabled" gorm:"not null;default:false"`
	LeadTimeText    string     `json:"lead_time_text" gorm:"type:varchar(60)"`
	LogoURL         string     `json:"logo_url" gorm:"type:varchar(255)"`
	PrimaryColor    string     `json:"primary_color" gorm:"type:varchar(20)"`
	IsActive        bool       `json:"is_active" gorm:"not null;default:true"`
	Timestamp       Timestamp  `json:"timestamps" gorm:"embedded"`
}
