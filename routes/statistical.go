package routes

import (
	"fmt"
	"math"

	"nestira/db"
	"nestira/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func getStatsOverview(c *fiber.Ctx) error {
	var totalOrders, totalDelivered, totalCancelled int64

	db.DB.Model(&models.Order{}).Count(&totalOrders)
	db.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusDelivered).Count(&totalDelivered)
	db.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusCancelled).Count(&totalCancelled)

	// Income only counts completed business, so delivered orders.
	var totalIncome float64
	db.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusDelivered).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalIncome)

	return c.JSON(fiber.Map{
		"total_orders":    totalOrders,
		"total_delivered": totalDelivered,
		"total_cancelled": totalCancelled,
		"total_income":    totalIncome,
	})
}

type MonthlyStat struct {
	Month       int     `json:"month"`
	TotalOrders int64   `json:"total_orders"`
	Delivered   int64   `json:"delivered"`
	Cancelled   int64   `json:"cancelled"`
	Income      float64 `json:"income"`
	GrowthRate  float64 `json:"growth_rate"`
}

// getMonthlyStats returns a row for every month of the year, including the
// empty ones, with income growth relative to the previous month.
func getMonthlyStats(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil || year < 2000 || year > 2100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid year",
		})
	}

	stats := make([]MonthlyStat, 12)
	for m := 1; m <= 12; m++ {
		monthExpr := fmt.Sprintf("%04d-%02d", year, m)
		scope := db.DB.Model(&models.Order{}).
			Where("strftime('%Y-%m', created_at) = ?", monthExpr)

		var stat MonthlyStat
		stat.Month = m
		scope.Session(&gorm.Session{}).Count(&stat.TotalOrders)
		scope.Session(&gorm.Session{}).Where("status = ?", models.OrderStatusDelivered).Count(&stat.Delivered)
		scope.Session(&gorm.Session{}).Where("status = ?", models.OrderStatusCancelled).Count(&stat.Cancelled)
		scope.Session(&gorm.Session{}).
			Where("status = ?", models.OrderStatusDelivered).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&stat.Income)

		stats[m-1] = stat
	}

	for m := 1; m < 12; m++ {
		prev := stats[m-1].Income
		cur := stats[m].Income
		if prev == 0 {
			if cur > 0 {
				stats[m].GrowthRate = 100
			}
			continue
		}
		stats[m].GrowthRate = round2((cur - prev) / prev * 100)
	}

	return c.JSON(fiber.Map{
		"year": year,
		"data": stats,
	})
}

func getYearlyStats(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil || year < 2000 || year > 2100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid year",
		})
	}

	yearExpr := fmt.Sprintf("%04d", year)
	scope := db.DB.Model(&models.Order{}).
		Where("strftime('%Y', created_at) = ?", yearExpr)

	var totalOrders, totalDelivered, totalCancelled int64
	scope.Session(&gorm.Session{}).Count(&totalOrders)
	scope.Session(&gorm.Session{}).Where("status = ?", models.OrderStatusDelivered).Count(&totalDelivered)
	scope.Session(&gorm.Session{}).Where("status = ?", models.OrderStatusCancelled).Count(&totalCancelled)

	var totalIncome float64
	scope.Session(&gorm.Session{}).
		Where("status = ?", models.OrderStatusDelivered).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalIncome)

	var deliveryRate float64
	if totalOrders > 0 {
		deliveryRate = round2(float64(totalDelivered) / float64(totalOrders) * 100)
	}

	return c.JSON(fiber.Map{
		"year":            year,
		"total_orders":    totalOrders,
		"total_delivered": totalDelivered,
		"total_cancelled": totalCancelled,
		"total_income":    totalIncome,
		"delivery_rate":   deliveryRate,
	})
}

type TopSellingProduct struct {
	ProductID    uint    `json:"product_id"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand,omitempty"`
	TotalSold    int64   `json:"total_sold"`
	TotalRevenue float64 `json:"total_revenue"`
	Images       []string `json:"images"`
}

type topSellingRow struct {
	ProductID    uint
	TotalSold    int64
	TotalRevenue float64
}

// getTopSellingProducts ranks products by quantity sold across delivered
// orders and decorates each with its catalog name and images.
func getTopSellingProducts(c *fiber.Ctx) error {
	var rows []topSellingRow
	err := db.DB.Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, SUM(order_items.quantity) AS total_sold, SUM(order_items.total_price) AS total_revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ?", models.OrderStatusDelivered).
		Group("order_items.product_id").
		Order("total_sold DESC").
		Limit(5).
		Scan(&rows).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get top selling products",
		})
	}

	loc := locale(c)
	result := make([]TopSellingProduct, 0, len(rows))
	for _, row := range rows {
		entry := TopSellingProduct{
			ProductID:    row.ProductID,
			TotalSold:    row.TotalSold,
			TotalRevenue: row.TotalRevenue,
			Images:       []string{},
		}

		var product models.Product
		if err := db.DB.Preload("Images").First(&product, row.ProductID).Error; err == nil {
			entry.Name = product.Name.Resolve(loc)
			entry.Brand = product.Brand
			entry.Images = product.ImageURLs()
		}

		result = append(result, entry)
	}

	return c.JSON(fiber.Map{"data": result})
}
