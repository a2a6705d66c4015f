package routes

import (
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"nestira/db"
	"nestira/email"
	"nestira/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gte=1"`
}

type CreateOrderRequest struct {
	CustomerName    string             `json:"customer_name" validate:"required"`
	CustomerPhone   string             `json:"customer_phone" validate:"required"`
	CustomerEmail   string             `json:"customer_email" validate:"required,email"`
	ShippingAddress string             `json:"shipping_address" validate:"required"`
	Ward            string             `json:"ward"`
	District        string             `json:"district"`
	City            string             `json:"city"`
	Notes           string             `json:"notes"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// generateOrderCode builds a human-readable code from a time prefix and a
// random suffix. Uniqueness is best-effort, not guaranteed.
func generateOrderCode() string {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return fmt.Sprintf("ORD%s%03d", timestamp[len(timestamp)-6:], rand.Intn(1000))
}

func createOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body: " + err.Error(),
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	productIDs := make([]uint, 0, len(req.Items))
	for _, item := range req.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	tx := db.DB.Begin()

	// Every referenced product must exist and be active, or nothing is created.
	var products []models.Product
	if err := tx.Preload("Images").
		Where("is_active = ? AND id IN ?", true, productIDs).
		Find(&products).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve products",
		})
	}

	productsByID := make(map[uint]*models.Product, len(products))
	for i := range products {
		productsByID[products[i].ID] = &products[i]
	}
	for _, id := range productIDs {
		if _, ok := productsByID[id]; !ok {
			tx.Rollback()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Some products do not exist or are no longer available",
			})
		}
	}

	order := models.Order{
		OrderCode:       generateOrderCode(),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		Ward:            req.Ward,
		District:        req.District,
		City:            req.City,
		Notes:           req.Notes,
		TotalAmount:     0,
		Status:          models.OrderStatusPending,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create order: " + err.Error(),
		})
	}

	var totalAmount float64
	for _, item := range req.Items {
		product := productsByID[item.ProductID]

		// TotalPrice is the effective sell price; the list price applies
		// when no effective price is set.
		unitPrice := product.TotalPrice
		if unitPrice == 0 {
			unitPrice = product.Price
		}
		totalPrice := unitPrice * float64(item.Quantity)

		orderItem := models.OrderItem{
			OrderID:    order.ID,
			ProductID:  product.ID,
			Quantity:   item.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: totalPrice,
			Snapshot: models.ProductSnapshot{
				ID:          product.ID,
				Name:        product.Name,
				Brand:       product.Brand,
				ProductCode: product.ProductCode,
				Color:       product.Color,
				Size:        product.Size,
				Images:      product.ImageURLs(),
			},
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create order items: " + err.Error(),
			})
		}
		totalAmount += totalPrice
	}

	if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("total_amount", totalAmount).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update order total",
		})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to commit transaction",
		})
	}

	var fullOrder models.Order
	if err := db.DB.Preload("Items.Product").First(&fullOrder, order.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Order created but failed to load full details",
		})
	}

	// Best-effort side effects; a mail failure must never undo the order.
	if err := email.SendOrderConfirmation(&fullOrder); err != nil {
		log.Printf("Failed to send order confirmation for %s: %v", fullOrder.OrderCode, err)
	}
	if err := email.SendNewOrderNotificationToAdmin(&fullOrder); err != nil {
		log.Printf("Failed to notify admin about %s: %v", fullOrder.OrderCode, err)
	}
	publishOrderEvent("order.created", &fullOrder)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created successfully",
		"data":    fullOrder,
	})
}

func getAllOrders(c *fiber.Ctx) error {
	page, limit := pagination(c)

	var total int64
	if err := db.DB.Model(&models.Order{}).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count orders",
		})
	}

	var orders []models.Order
	if err := db.DB.Preload("Items.Product").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get orders",
		})
	}

	return c.JSON(fiber.Map{
		"orders": orders,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

func getOrdersByStatus(c *fiber.Ctx) error {
	status := models.OrderStatus(c.Params("status"))
	if !models.ValidOrderStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown order status: " + string(status),
		})
	}

	var orders []models.Order
	if err := db.DB.Preload("Items.Product").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get orders",
		})
	}

	return c.JSON(fiber.Map{"orders": orders})
}

func getOrderByCode(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")

	var order models.Order
	if err := db.DB.Preload("Items.Product").
		Where("order_code = ?", orderCode).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Order fetched successfully",
		"data":    order,
	})
}

var statusMessages = map[models.OrderStatus]string{
	models.OrderStatusPending:    "Order has been transferred to pending status",
	models.OrderStatusConfirmed:  "Order has been confirmed successfully",
	models.OrderStatusProcessing: "Order is being processed",
	models.OrderStatusShipping:   "Order is being shipped",
	models.OrderStatusDelivered:  "Order has been delivered successfully",
	models.OrderStatusCancelled:  "Order has been cancelled",
}

// updateOrderStatus moves an order to any known status. There is no
// transition graph; delivered back to pending is allowed.
func updateOrderStatus(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")

	var body struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if !models.ValidOrderStatus(body.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown order status: " + string(body.Status),
		})
	}

	var order models.Order
	if err := db.DB.Preload("Items.Product").
		Where("order_code = ?", orderCode).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	oldStatus := order.Status
	order.Status = body.Status
	if err := db.DB.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", body.Status).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update order status",
		})
	}

	var notifyErr error
	switch body.Status {
	case models.OrderStatusConfirmed:
		notifyErr = email.SendOrderApproved(&order)
	case models.OrderStatusShipping:
		notifyErr = email.SendOrderShipping(&order)
	case models.OrderStatusDelivered:
		notifyErr = email.SendOrderDelivered(&order)
	case models.OrderStatusCancelled:
		notifyErr = email.SendOrderCancelled(&order)
	}
	if notifyErr != nil {
		log.Printf("Error sending email when updating order %s: %v", order.OrderCode, notifyErr)
	}
	publishOrderEvent("order.status", &order)

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%s (from %s to %s)", statusMessages[body.Status], oldStatus, body.Status),
		"success": true,
		"data":    order,
	})
}

// deleteOrderRecord removes an order and its items. Only pending or
// cancelled orders may be deleted; items go first to satisfy the foreign key.
func deleteOrderRecord(c *fiber.Ctx, order *models.Order) error {
	if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusCancelled {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only pending or cancelled orders can be deleted",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, order.ID).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete order",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Order deleted successfully",
		"success": true,
	})
}

func deleteOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order id",
		})
	}

	var order models.Order
	if err := db.DB.First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}
	return deleteOrderRecord(c, &order)
}

func deleteOrderByCode(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")

	var order models.Order
	if err := db.DB.Where("order_code = ?", orderCode).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}
	return deleteOrderRecord(c, &order)
}

type CancelOrderRequest struct {
	OrderCode string `json:"order_code" validate:"required"`
}

func cancelOrder(c *fiber.Ctx) error {
	var req CancelOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "order_code is required",
		})
	}

	var order models.Order
	if err := db.DB.Where("order_code = ?", req.OrderCode).First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	if order.Status == models.OrderStatusDelivered {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot cancel order that has been delivered",
		})
	}
	if order.Status == models.OrderStatusCancelled {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Order has been cancelled before",
		})
	}

	order.Status = models.OrderStatusCancelled
	if err := db.DB.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.OrderStatusCancelled).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to cancel order",
		})
	}
	publishOrderEvent("order.status", &order)

	return c.JSON(fiber.Map{
		"message": "Order cancelled successfully",
		"data":    order,
	})
}
