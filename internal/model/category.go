package model

import "time"

// Category groups tasks; the name is unique within one user's scope.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    int64  `gorm:"index:idx_user_category_name,unique"`
	Name      string `gorm:"index:idx_user_category_name,unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}
