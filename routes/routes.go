package routes

import (
	"nestira/middleware"
	"nestira/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// locale picks the response language from the Locale-Language header.
func locale(c *fiber.Ctx) string {
	if l := c.Get("Locale-Language"); l != "" {
		return l
	}
	return models.DefaultLocale
}

// pagination reads page/limit query parameters with the API-wide defaults.
func pagination(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 20
	}
	return page, limit
}

func SetupRoutes(app *fiber.App) {
	// Realtime order feed for admin dashboards
	app.Get("/ws/orders", orderFeedHandler())

	api := app.Group("/apis/svc", middleware.APIKeyGuard)

	api.Post("/upload", middleware.RequireAuth, middleware.RequireAdmin, uploadImage)

	auth := api.Group("/auth")
	auth.Post("/login", login)
	auth.Get("/me", middleware.RequireAuth, getProfile)
	auth.Post("/logout", logout)

	products := api.Group("/products")
	products.Post("/create", middleware.RequireAuth, middleware.RequireAdmin, createProduct)
	products.Get("/list", listProducts)
	products.Get("/list-delete", middleware.RequireAuth, middleware.RequireAdmin, listDeletedProducts)
	products.Get("/list-sort", listSortedProducts)
	products.Get("/kitchen", getKitchenProducts)
	products.Get("/tech", getTechProducts)
	products.Get("/detail/:id", getProduct)
	products.Patch("/update/:id", middleware.RequireAuth, middleware.RequireAdmin, updateProduct)
	products.Delete("/delete/:id", middleware.RequireAuth, middleware.RequireAdmin, softDeleteProduct)
	products.Patch("/restore/:id", middleware.RequireAuth, middleware.RequireAdmin, restoreProduct)
	products.Delete("/hard-delete/:id", middleware.RequireAuth, middleware.RequireAdmin, hardDeleteProduct)

	categories := api.Group("/categories")
	categories.Post("/create", middleware.RequireAuth, middleware.RequireAdmin, createCategory)
	categories.Get("/list", listCategories)
	categories.Get("/list-delete", middleware.RequireAuth, middleware.RequireAdmin, listDeletedCategories)
	categories.Get("/detail/:id", getCategory)
	categories.Patch("/update/:id", middleware.RequireAuth, middleware.RequireAdmin, updateCategory)
	categories.Delete("/delete/:id", middleware.RequireAuth, middleware.RequireAdmin, softDeleteCategory)
	categories.Patch("/restore/:id", middleware.RequireAuth, middleware.RequireAdmin, restoreCategory)
	categories.Delete("/hard-delete/:id", middleware.RequireAuth, middleware.RequireAdmin, hardDeleteCategory)

	orders := api.Group("/orders")
	orders.Post("/create", createOrder)
	orders.Get("/all", middleware.RequireAuth, middleware.RequireAdmin, getAllOrders)
	orders.Get("/status/:status", middleware.RequireAuth, middleware.RequireAdmin, getOrdersByStatus)
	orders.Patch("/status/:orderCode", middleware.RequireAuth, middleware.RequireAdmin, updateOrderStatus)
	orders.Put("/cancel", middleware.RequireAuth, middleware.RequireAdmin, cancelOrder)
	orders.Delete("/code/:orderCode", middleware.RequireAuth, middleware.RequireAdmin, deleteOrderByCode)
	orders.Delete("/:id", middleware.RequireAuth, middleware.RequireAdmin, deleteOrder)
	orders.Get("/:orderCode", getOrderByCode)

	search := api.Group("/search")
	search.Get("/suggestions", searchSuggestions)
	search.Get("/products", searchProducts)
	search.Get("/advanced", advancedSearch)
	search.Get("/category/:id/products", searchCategoryProducts)

	promotions := api.Group("/promotion")
	promotions.Post("/create", middleware.RequireAuth, middleware.RequireAdmin, createPromotion)
	promotions.Patch("/update/:id", middleware.RequireAuth, middleware.RequireAdmin, updatePromotion)
	promotions.Get("/list", listPromotions)
	promotions.Get("/list-latest", listLatestPromotions)
	promotions.Get("/detail/:id", getPromotion)
	promotions.Delete("/delete/:id", middleware.RequireAuth, middleware.RequireAdmin, deletePromotion)

	newsletters := api.Group("/newsletters")
	newsletters.Post("/subscribe", subscribeNewsletter)
	newsletters.Post("/send/:subscriberId/promotion/:promotionId", middleware.RequireAuth, middleware.RequireAdmin, sendNewsletterToSubscriber)
	newsletters.Post("/send-all/promotion/:promotionId", middleware.RequireAuth, middleware.RequireAdmin, sendNewsletterToAll)
	newsletters.Get("/get-all-subscribers", middleware.RequireAuth, middleware.RequireAdmin, getAllSubscribers)
	newsletters.Delete("/:subscriberId", middleware.RequireAuth, middleware.RequireAdmin, deleteSubscriber)

	statistical := api.Group("/statistical/analytics", middleware.RequireAuth, middleware.RequireAdmin)
	statistical.Get("/overview", getStatsOverview)
	statistical.Get("/monthly/:year", getMonthlyStats)
	statistical.Get("/yearly/:year", getYearlyStats)
	statistical.Get("/top-selling-products", getTopSellingProducts)
}
