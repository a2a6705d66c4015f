package routes

import (
	"strings"

	"nestira/db"
	"nestira/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategorySuggestion struct {
	ID   uint             `json:"id"`
	Name models.Localized `json:"name"`
}

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

// activeCategoryIDs narrows product queries to active categories.
func activeCategoryIDs() ([]uint, error) {
	var ids []uint
	err := db.DB.Model(&models.Category{}).
		Where("is_active = ?", true).
		Pluck("id", &ids).Error
	return ids, err
}

// searchableProducts is the base query shared by all search variants:
// active products inside active categories.
func searchableProducts() (*gorm.DB, error) {
	categoryIDs, err := activeCategoryIDs()
	if err != nil {
		return nil, err
	}
	return db.DB.Model(&models.Product{}).
		Where("is_active = ?", true).
		Where("category_id IN ?", categoryIDs), nil
}

func searchSuggestions(c *fiber.Ctx) error {
	query := db.DB.Model(&models.Category{}).Where("is_active = ?", true)
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		// The serialized locale map holds every translation, so one LIKE
		// covers both vi and en.
		query = query.Where("LOWER(name) LIKE ?", likePattern(q))
	}

	var categories []models.Category
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search categories",
		})
	}

	suggestions := make([]CategorySuggestion, 0, len(categories))
	for _, cat := range categories {
		suggestions = append(suggestions, CategorySuggestion{ID: cat.ID, Name: cat.Name})
	}

	return c.JSON(fiber.Map{"categories": suggestions})
}

func searchResultPage(c *fiber.Ctx, query *gorm.DB, page, limit int) error {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count products",
		})
	}

	var products []models.Product
	if err := query.Preload("Category").Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("product_images.id ASC")
	}).Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search products",
		})
	}

	return c.JSON(fiber.Map{
		"products": productViews(products, locale(c)),
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// searchProducts matches the free-text query against localized names and
// the product code, case-insensitively.
func searchProducts(c *fiber.Ctx) error {
	page, limit := pagination(c)

	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return c.JSON(fiber.Map{
			"products": []ProductView{},
			"total":    0,
			"page":     page,
			"limit":    limit,
		})
	}

	query, err := searchableProducts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search products",
		})
	}
	query = query.Where("LOWER(name) LIKE ? OR LOWER(product_code) LIKE ?",
		likePattern(q), likePattern(q))

	return searchResultPage(c, query, page, limit)
}

func searchCategoryProducts(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid category id",
		})
	}
	page, limit := pagination(c)

	query, qerr := searchableProducts()
	if qerr != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search products",
		})
	}
	query = query.Where("category_id = ?", categoryID)

	return searchResultPage(c, query, page, limit)
}

// advancedSearch composes the optional filters conjunctively. Price bounds
// are inclusive; brand, color and size match partially, ignoring case.
func advancedSearch(c *fiber.Ctx) error {
	page, limit := pagination(c)

	query, err := searchableProducts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search products",
		})
	}

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		query = query.Where("LOWER(name) LIKE ? OR LOWER(product_code) LIKE ?",
			likePattern(q), likePattern(q))
	}
	if categoryID := c.QueryInt("categoryId", 0); categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		query = query.Where("price >= ?", c.QueryFloat("minPrice"))
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		query = query.Where("price <= ?", c.QueryFloat("maxPrice"))
	}
	if brand := c.Query("brand"); brand != "" {
		query = query.Where("LOWER(brand) LIKE ?", likePattern(brand))
	}
	if color := c.Query("color"); color != "" {
		query = query.Where("LOWER(color) LIKE ?", likePattern(color))
	}
	if size := c.Query("size"); size != "" {
		query = query.Where("LOWER(size) LIKE ?", likePattern(size))
	}

	return searchResultPage(c, query, page, limit)
}
