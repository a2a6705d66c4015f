package models

import "time"

// Newsletters is a marketing mail subscriber.
type Newsletters struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `json:"full_name,omitempty" gorm:"default:null"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone,omitempty" gorm:"default:null"`
	Content   string    `json:"content,omitempty" gorm:"default:null"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
