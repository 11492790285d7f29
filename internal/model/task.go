package model

import "time"

// Task is a single to-do item under a category.
type Task struct {
	ID          uint  `gorm:"primaryKey"`
	UserID      int64 `gorm:"index"`
	CategoryID  uint  `gorm:"index"`
	Description string
	CreatedAt   time.Time
}
