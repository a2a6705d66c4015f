package routes

import (
	"encoding/json"
	"strings"
	"time"

	"nestira/db"
	"nestira/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProductView is the per-locale projection of a product. Projection is a
// pure post-fetch transform; the stored entity keeps every locale.
type ProductView struct {
	ID             uint                  `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Price          float64               `json:"price"`
	TotalPrice     float64               `json:"total_price"`
	Brand          string                `json:"brand,omitempty"`
	ProductCode    string                `json:"product_code,omitempty"`
	Color          string                `json:"color,omitempty"`
	Origin         string                `json:"origin,omitempty"`
	Material       string                `json:"material,omitempty"`
	Size           string                `json:"size,omitempty"`
	Specifications string                `json:"specifications,omitempty"`
	IsActive       bool                  `json:"is_active"`
	ViewCount      uint                  `json:"view_count"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	Category       CategoryView          `json:"category"`
	Images         []models.ProductImage `json:"images"`
}

func productView(p *models.Product, loc string) ProductView {
	return ProductView{
		ID:             p.ID,
		Name:           p.Name.Resolve(loc),
		Description:    p.Description.Resolve(loc),
		Price:          p.Price,
		TotalPrice:     p.TotalPrice,
		Brand:          p.Brand,
		ProductCode:    p.ProductCode,
		Color:          p.Color,
		Origin:         p.Origin.Resolve(loc),
		Material:       p.Material.Resolve(loc),
		Size:           p.Size,
		Specifications: p.Specifications.Resolve(loc),
		IsActive:       p.IsActive,
		ViewCount:      p.ViewCount,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Category:       categoryView(&p.Category, loc),
		Images:         p.Images,
	}
}

func productViews(products []models.Product, loc string) []ProductView {
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, productView(&products[i], loc))
	}
	return views
}

type ProductRequest struct {
	Name           models.Localized `json:"name" validate:"required"`
	Description    models.Localized `json:"description"`
	Price          float64          `json:"price" validate:"required,gte=0"`
	TotalPrice     float64          `json:"total_price"`
	Brand          string           `json:"brand"`
	ProductCode    string           `json:"product_code"`
	Color          string           `json:"color"`
	Origin         models.Localized `json:"origin"`
	Material       models.Localized `json:"material"`
	Size           string           `json:"size"`
	Specifications models.Localized `json:"specifications"`
	CategoryID     uint             `json:"category_id" validate:"required"`
	ImageURLs      []string         `json:"image_urls"`
}

// localizedJSON renders a locale map exactly as the gorm serializer stores
// it, for equality checks against serialized columns.
func localizedJSON(l models.Localized) string {
	raw, _ := json.Marshal(l)
	return string(raw)
}

func createProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	var category models.Category
	if err := db.DB.First(&category, req.CategoryID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}

	var existing int64
	db.DB.Model(&models.Product{}).Where("name = ?", localizedJSON(req.Name)).Count(&existing)
	if existing > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Product name already exists",
		})
	}

	product := models.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		TotalPrice:     req.TotalPrice,
		Brand:          req.Brand,
		ProductCode:    req.ProductCode,
		Color:          req.Color,
		Origin:         req.Origin,
		Material:       req.Material,
		Size:           req.Size,
		Specifications: req.Specifications,
		IsActive:       true,
		CategoryID:     req.CategoryID,
	}
	for _, url := range req.ImageURLs {
		product.Images = append(product.Images, models.ProductImage{URL: url})
	}

	if err := db.DB.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"data":    product,
	})
}

func listProductsByActive(c *fiber.Ctx, active bool, message string) error {
	var products []models.Product
	if err := db.DB.Preload("Category").Preload("Images").
		Where("is_active = ?", active).Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get products",
		})
	}

	return c.JSON(fiber.Map{
		"message": message,
		"data":    productViews(products, locale(c)),
	})
}

func listProducts(c *fiber.Ctx) error {
	return listProductsByActive(c, true, "Product list fetched successfully")
}

func listDeletedProducts(c *fiber.Ctx) error {
	return listProductsByActive(c, false, "Deleted product fetched successfully")
}

func listSortedProducts(c *fiber.Ctx) error {
	page, limit := pagination(c)

	query := db.DB.Model(&models.Product{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count products",
		})
	}

	switch c.Query("sort", "created_desc") {
	case "price_asc":
		query = query.Order("total_price ASC")
	case "price_desc":
		query = query.Order("total_price DESC")
	case "views_desc":
		query = query.Order("view_count DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var products []models.Product
	if err := query.Preload("Category").Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("product_images.id ASC")
	}).Offset((page - 1) * limit).Limit(limit).Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get products",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product list fetched successfully",
		"data":    productViews(products, locale(c)),
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func getProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var product models.Product
	if err := db.DB.Preload("Category").Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("product_images.id ASC")
	}).First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	if err := db.DB.Model(&product).
		Update("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update view count",
		})
	}
	product.ViewCount++

	return c.JSON(fiber.Map{
		"message": "Product fetched successfully",
		"data":    productView(&product, locale(c)),
	})
}

func updateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var product models.Product
	if err := db.DB.Preload("Images").First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	if req.CategoryID != 0 {
		var category models.Category
		if err := db.DB.First(&category, req.CategoryID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		product.CategoryID = req.CategoryID
	}

	product.Name = product.Name.Merge(req.Name)
	product.Description = product.Description.Merge(req.Description)
	product.Origin = product.Origin.Merge(req.Origin)
	product.Material = product.Material.Merge(req.Material)
	product.Specifications = product.Specifications.Merge(req.Specifications)
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.TotalPrice > 0 {
		product.TotalPrice = req.TotalPrice
	}
	if req.Brand != "" {
		product.Brand = req.Brand
	}
	if req.ProductCode != "" {
		product.ProductCode = req.ProductCode
	}
	if req.Color != "" {
		product.Color = req.Color
	}
	if req.Size != "" {
		product.Size = req.Size
	}

	if req.ImageURLs != nil {
		if err := db.DB.Where("product_id = ?", product.ID).
			Delete(&models.ProductImage{}).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to replace product images",
			})
		}
		product.Images = nil
		for _, url := range req.ImageURLs {
			product.Images = append(product.Images, models.ProductImage{URL: url, ProductID: product.ID})
		}
	}

	if err := db.DB.Save(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update product",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"data":    product,
	})
}

func setProductActive(c *fiber.Ctx, active bool, message string) error {
	id := c.Params("id")
	result := db.DB.Model(&models.Product{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update product",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}
	return c.JSON(fiber.Map{"message": message})
}

func softDeleteProduct(c *fiber.Ctx) error {
	return setProductActive(c, false, "Product deleted successfully")
}

func restoreProduct(c *fiber.Ctx) error {
	return setProductActive(c, true, "Product restored successfully")
}

func hardDeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid product id",
		})
	}
	result := db.DB.Select("Images").Delete(&models.Product{ID: uint(id)})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete product",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}
	return c.JSON(fiber.Map{"message": "Product permanently deleted successfully"})
}

var kitchenKeywords = map[string][]string{
	"en": {
		"induction cooker", "range hood", "dishwasher", "griller",
		"refrigerator", "coffee machine", "kitchen faucet", "kitchen sink",
	},
	"vi": {
		"bếp từ", "máy hút mùi", "máy rửa bát", "lò nướng",
		"tủ lạnh", "máy pha cà phê", "vòi bếp", "chậu rửa bếp",
	},
}

var kitchenPriorityKeywords = []string{
	"kitchen sink", "kitchen faucet", "chậu rửa bếp", "vòi bếp",
}

var techKeywords = map[string][]string{
	"en": {
		"robot floor cleaner", "air purifier", "dryer",
		"smart washing machine", "smart home",
	},
	"vi": {
		"robot lau nhà", "máy lọc không khí", "máy sấy quần áo",
		"máy giặt thông minh", "nhà thông minh",
	},
}

const curatedCount = 4

func productMatchesAny(p *models.Product, keywords []string, loc string) bool {
	categoryName := strings.ToLower(p.Category.Name.Resolve(loc))
	productName := strings.ToLower(p.Name.Resolve(loc))
	for _, keyword := range keywords {
		k := strings.ToLower(keyword)
		if strings.Contains(categoryName, k) || strings.Contains(productName, k) {
			return true
		}
	}
	return false
}

// curatedPick fills up to curatedCount slots in three passes: priority
// keyword matches first, then one product per unseen category, then any
// remaining product regardless of category duplication. A greedy heuristic,
// not an optimal selection.
func curatedPick(products []models.Product, priority []string, loc string) []models.Product {
	selected := make([]models.Product, 0, curatedCount)
	selectedIDs := make(map[uint]bool)
	usedCategories := make(map[uint]bool)

	for i := range products {
		if len(selected) >= curatedCount {
			break
		}
		p := &products[i]
		if productMatchesAny(p, priority, loc) && !usedCategories[p.CategoryID] {
			selected = append(selected, *p)
			selectedIDs[p.ID] = true
			usedCategories[p.CategoryID] = true
		}
	}

	for i := range products {
		if len(selected) >= curatedCount {
			break
		}
		p := &products[i]
		if selectedIDs[p.ID] || usedCategories[p.CategoryID] {
			continue
		}
		selected = append(selected, *p)
		selectedIDs[p.ID] = true
		usedCategories[p.CategoryID] = true
	}

	for i := range products {
		if len(selected) >= curatedCount {
			break
		}
		p := &products[i]
		if !selectedIDs[p.ID] {
			selected = append(selected, *p)
			selectedIDs[p.ID] = true
		}
	}

	return selected
}

func curatedProducts(c *fiber.Ctx, keywordsByLocale map[string][]string, priority []string) error {
	loc := locale(c)
	keywords, ok := keywordsByLocale[loc]
	if !ok {
		keywords = keywordsByLocale[models.DefaultLocale]
	}

	var products []models.Product
	if err := db.DB.Preload("Category").Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("product_images.id ASC")
	}).Where("is_active = ?", true).
		Order("created_at DESC").Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get products",
		})
	}

	matched := products[:0:0]
	for i := range products {
		if productMatchesAny(&products[i], keywords, loc) {
			matched = append(matched, products[i])
		}
	}

	return c.JSON(fiber.Map{
		"message": "Product list fetched successfully",
		"data":    productViews(curatedPick(matched, priority, loc), loc),
	})
}

func getKitchenProducts(c *fiber.Ctx) error {
	return curatedProducts(c, kitchenKeywords, kitchenPriorityKeywords)
}

func getTechProducts(c *fiber.Ctx) error {
	return curatedProducts(c, techKeywords, nil)
}
