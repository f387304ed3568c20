package model

import "time"

// CodePurpose — назначение одноразового кода из письма.
type CodePurpose string

const (
	PurposeVerify         CodePurpose = "VERIFY_EMAIL"
	PurposeReset          CodePurpose = "RESET_PASSWORD"
	PurposeChangePassword CodePurpose = "CHANGE_PASSWORD"
)

// VerificationCode хранит только хеш кода.
type VerificationCode struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;index"` // ссылка на users.id
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Purpose   CodePurpose `gorm:"not null;index"`
	CodeHash  string      `gorm:"not null"`
	ExpiresAt time.Time   `gorm:"not null"`
	Attempts  int         `gorm:"not null;default:0"`
	Consumed  bool        `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
