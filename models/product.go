package models

import "time"

type Product struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           Localized      `json:"name" gorm:"type:text;serializer:json" validate:"required"`
	Description    Localized      `json:"description" gorm:"type:text;serializer:json"`
	Price          float64        `json:"price" validate:"required,gte=0"`
	TotalPrice     float64        `json:"total_price"`
	Brand          string         `json:"brand"`
	ProductCode    string         `json:"product_code"`
	Color          string         `json:"color"`
	Origin         Localized      `json:"origin" gorm:"type:text;serializer:json"`
	Material       Localized      `json:"material" gorm:"type:text;serializer:json"`
	Size           string         `json:"size"`
	Specifications Localized      `json:"specifications" gorm:"type:text;serializer:json"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	ViewCount      uint           `json:"view_count" gorm:"default:0"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	CategoryID     uint           `json:"category_id"`
	Category       Category       `gorm:"foreignKey:CategoryID" json:"category"`
	Images         []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	URL       string `json:"url" validate:"required"`
	ProductID uint   `json:"product_id"`
}

// ImageURLs flattens the ordered image list.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}
