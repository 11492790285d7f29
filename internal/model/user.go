package model

import "time"

// User is keyed by the Telegram numeric id.
type User struct {
	ID        int64 `gorm:"primaryKey;autoIncrement:false"`
	Username  string
	FirstName string
	CreatedAt time.Time
	Reminders []Reminder `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
