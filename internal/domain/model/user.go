package model

import "time"

// 店舗オーナーのアカウント
type User struct {
	ID           string     `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	Password     string     `json:"-" gorm:"column:password_hash;not null"`
	TokenVersion int        `json:"-" gorm:"not null;default:0"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	Timestamp    Timestamp  `json:"timestamps" gorm:"embedded"`
}
