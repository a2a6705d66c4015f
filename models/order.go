package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipping   OrderStatus = "shipping"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known status values.
// No transition graph is enforced between them.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipping, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	OrderCode       string      `gorm:"index" json:"order_code"`
	CustomerName    string      `json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerEmail   string      `json:"customer_email"`
	ShippingAddress string      `json:"shipping_address"`
	Ward            string      `json:"ward"`
	District        string      `json:"district"`
	City            string      `json:"city"`
	Notes           string      `json:"notes,omitempty" gorm:"default:null"`
	TotalAmount     float64     `json:"total_amount"`
	Status          OrderStatus `json:"status" gorm:"default:pending"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// ProductSnapshot freezes the attributes of a product as sold. It is written
// once when the order item is created and never updated afterwards.
type ProductSnapshot struct {
	ID          uint      `json:"id"`
	Name        Localized `json:"name"`
	Brand       string    `json:"brand,omitempty"`
	ProductCode string    `json:"product_code,omitempty"`
	Color       string    `json:"color,omitempty"`
	Size        string    `json:"size,omitempty"`
	Images      []string  `json:"images,omitempty"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `json:"order_id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitPrice float64         `json:"unit_price"`
	// TotalPrice is quantity * unitPrice, frozen at order time.
	TotalPrice float64         `json:"total_price"`
	Snapshot   ProductSnapshot `json:"product_snapshot" gorm:"type:text;serializer:json"`
	Product    Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
