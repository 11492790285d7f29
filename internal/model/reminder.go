package model

import "time"

// Reminder is a dated note surfaced on its day.
type Reminder struct {
	ID          uint  `gorm:"primaryKey"`
	UserID      int64 `gorm:"index"`
	Date        time.Time
	Description string
	CreatedAt   time.Time
}
