package routes

import (
	"time"

	"nestira/db"
	"nestira/models"

	"github.com/gofiber/fiber/v2"
)

type PromotionView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func promotionView(p *models.Promotion, loc string) PromotionView {
	return PromotionView{
		ID:        p.ID,
		Title:     p.Title.Resolve(loc),
		Content:   p.Content.Resolve(loc),
		Thumbnail: p.Thumbnail,
		CreatedAt: p.CreatedAt,
	}
}

type PromotionRequest struct {
	Title     models.Localized `json:"title" validate:"required"`
	Content   models.Localized `json:"content"`
	Thumbnail string           `json:"thumbnail"`
}

func createPromotion(c *fiber.Ctx) error {
	var req PromotionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title field is required",
		})
	}

	var existing int64
	db.DB.Model(&models.Promotion{}).Where("title = ?", localizedJSON(req.Title)).Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Promotion title already exists",
		})
	}

	promotion := models.Promotion{
		Title:     req.Title,
		Content:   req.Content,
		Thumbnail: req.Thumbnail,
	}
	if err := db.DB.Create(&promotion).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create promotion",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Promotion created successfully",
		"data":    promotion,
	})
}

func updatePromotion(c *fiber.Ctx) error {
	id := c.Params("id")

	var req PromotionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var promotion models.Promotion
	if err := db.DB.First(&promotion, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Promotion not found",
		})
	}

	promotion.Title = promotion.Title.Merge(req.Title)
	promotion.Content = promotion.Content.Merge(req.Content)
	if req.Thumbnail != "" {
		promotion.Thumbnail = req.Thumbnail
	}

	if err := db.DB.Save(&promotion).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update promotion",
		})
	}

	return c.JSON(fiber.Map{"message": "Promotion updated successfully"})
}

func listPromotionsQuery(c *fiber.Ctx, latestOnly bool) error {
	query := db.DB.Model(&models.Promotion{})
	if latestOnly {
		query = query.Order("created_at DESC").Limit(3)
	}

	var promotions []models.Promotion
	if err := query.Find(&promotions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get promotions",
		})
	}

	loc := locale(c)
	views := make([]PromotionView, 0, len(promotions))
	for i := range promotions {
		views = append(views, promotionView(&promotions[i], loc))
	}
	return c.JSON(views)
}

func listPromotions(c *fiber.Ctx) error {
	return listPromotionsQuery(c, false)
}

func listLatestPromotions(c *fiber.Ctx) error {
	return listPromotionsQuery(c, true)
}

func getPromotion(c *fiber.Ctx) error {
	id := c.Params("id")

	var promotion models.Promotion
	if err := db.DB.First(&promotion, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Promotion not found",
		})
	}

	return c.JSON(promotionView(&promotion, locale(c)))
}

func deletePromotion(c *fiber.Ctx) error {
	id := c.Params("id")

	result := db.DB.Delete(&models.Promotion{}, id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete promotion",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Promotion not found",
		})
	}

	return c.JSON(fiber.Map{"message": "Promotion deleted successfully"})
}
