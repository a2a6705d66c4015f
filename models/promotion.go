package models

import "time"

type Promotion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     Localized `json:"title" gorm:"type:text;serializer:json" validate:"required"`
	Content   Localized `json:"content" gorm:"type:text;serializer:json"`
	Thumbnail string    `json:"thumbnail,omitempty" gorm:"default:null"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
