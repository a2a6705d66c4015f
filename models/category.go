package models

import "time"

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        Localized `json:"name" gorm:"type:text;serializer:json;uniqueIndex" validate:"required"`
	Description Localized `json:"description" gorm:"type:text;serializer:json"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Products    []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}
