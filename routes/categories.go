package routes

import (
	"strings"
	"time"

	"nestira/db"
	"nestira/models"

	"github.com/gofiber/fiber/v2"
)

type CategoryView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func categoryView(cat *models.Category, loc string) CategoryView {
	return CategoryView{
		ID:          cat.ID,
		Name:        cat.Name.Resolve(loc),
		Description: cat.Description.Resolve(loc),
		CreatedAt:   cat.CreatedAt,
		UpdatedAt:   cat.UpdatedAt,
	}
}

type CategoryRequest struct {
	Name        models.Localized `json:"name" validate:"required"`
	Description models.Localized `json:"description"`
}

func createCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name field is required",
		})
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := db.DB.Create(&category).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Category name already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create category",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Category created successfully",
		"data":    category,
	})
}

func listCategoriesByActive(c *fiber.Ctx, active bool, message string) error {
	var categories []models.Category
	if err := db.DB.Where("is_active = ?", active).Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get categories",
		})
	}

	loc := locale(c)
	data := make([]CategoryView, 0, len(categories))
	for i := range categories {
		data = append(data, categoryView(&categories[i], loc))
	}

	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func listCategories(c *fiber.Ctx) error {
	return listCategoriesByActive(c, true, "Categories fetched successfully")
}

func listDeletedCategories(c *fiber.Ctx) error {
	return listCategoriesByActive(c, false, "Deleted categories fetched successfully")
}

func getCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Category fetched successfully",
		"data":    categoryView(&category, locale(c)),
	})
}

func updateCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}

	// Locale maps are merged so a single-locale update keeps the other one.
	category.Name = category.Name.Merge(req.Name)
	category.Description = category.Description.Merge(req.Description)

	if err := db.DB.Save(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update category",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Category updated successfully",
	})
}

func setCategoryActive(c *fiber.Ctx, active bool, message string) error {
	id := c.Params("id")
	result := db.DB.Model(&models.Category{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update category",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}
	return c.JSON(fiber.Map{"message": message})
}

func softDeleteCategory(c *fiber.Ctx) error {
	return setCategoryActive(c, false, "Category deleted successfully")
}

func restoreCategory(c *fiber.Ctx) error {
	return setCategoryActive(c, true, "Category restored successfully")
}

func hardDeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	result := db.DB.Delete(&models.Category{}, id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete category",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}
	return c.JSON(fiber.Map{"message": "Category permanently deleted successfully"})
}
