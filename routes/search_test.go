package routes

import (
	"net/http"
	"testing"

	"nestira/db"
	"nestira/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSearchFixtures(t *testing.T) (models.Category, models.Category) {
	t.Helper()

	kitchen := seedCategory(t, models.Localized{"vi": "Thiết bị bếp", "en": "Kitchen appliances"})
	tech := seedCategory(t, models.Localized{"vi": "Gia dụng thông minh", "en": "Smart home"})

	cooker := models.Product{
		Name:        models.Localized{"vi": "Bếp từ đôi", "en": "Double induction cooker"},
		Price:       150, TotalPrice: 150,
		Brand:       "Bosch",
		ProductCode: "BOS-150",
		IsActive:    true,
		CategoryID:  kitchen.ID,
	}
	require.NoError(t, db.DB.Create(&cooker).Error)

	robot := models.Product{
		Name:        models.Localized{"vi": "Robot lau nhà", "en": "Robot floor cleaner"},
		Price:       400, TotalPrice: 400,
		Brand:       "Xiaomi",
		ProductCode: "XIA-400",
		IsActive:    true,
		CategoryID:  tech.ID,
	}
	require.NoError(t, db.DB.Create(&robot).Error)

	return kitchen, tech
}

func TestSearchProductsByNameAndCode(t *testing.T) {
	app := setupTestApp(t)
	seedSearchFixtures(t)

	resp := doRequest(t, app, http.MethodGet, "/apis/svc/search/products?q=robot", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	products := body["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "Robot lau nhà", products[0].(map[string]any)["name"])

	// Product codes match too, ignoring case.
	resp = doRequest(t, app, http.MethodGet, "/apis/svc/search/products?q=bos-150", nil, "")
	body = decodeBody(t, resp)
	assert.Len(t, body["products"], 1)

	// Empty query returns an empty page, not everything.
	resp = doRequest(t, app, http.MethodGet, "/apis/svc/search/products?q=", nil, "")
	body = decodeBody(t, resp)
	assert.Empty(t, body["products"])
	assert.EqualValues(t, 0, body["total"])
}

func TestSearchExcludesInactiveCategories(t *testing.T) {
	app := setupTestApp(t)
	_, tech := seedSearchFixtures(t)

	require.NoError(t, db.DB.Model(&tech).Update("is_active", false).Error)

	resp := doRequest(t, app, http.MethodGet, "/apis/svc/search/products?q=robot", nil, "")
	body := decodeBody(t, resp)
	assert.Empty(t, body["products"])
}

func TestAdvancedSearchPriceBoundsInclusive(t *testing.T) {
	app := setupTestApp(t)
	seedSearchFixtures(t)

	resp := doRequest(t, app, http.MethodGet, "/apis/svc/search/advanced?minPrice=150&maxPrice=400", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Len(t, body["products"], 2)

	resp = doRequest(t, app, http.MethodGet, "/apis/svc/search/advanced?minPrice=151", nil, "")
	body = decodeBody(t, resp)
	products := body["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "Robot lau nhà", products[0].(map[string]any)["name"])
}

func TestAdvancedSearchCombinesFilters(t *testing.T) {
	app := setupTestApp(t)
	seedSearchFixtures(t)

	resp := doRequest(t, app, http.MethodGet, "/apis/svc/search/advanced?brand=bosch&maxPrice=200", nil, "")
	body := decodeBody(t, resp)
	require.Len(t, body["products"], 1)

	// Filters are conjunctive; a mismatching category empties the result.
	resp = doRequest(t, app, http.MethodGet,
		"/apis/svc/search/advanced?brand=bosch&categoryId=2", nil, "")
	body = decodeBody(t, resp)
	assert.Empty(t, body["products"])

	resp = doRequest(t, app, http.MethodGet,
		"/apis/svc/search/advanced?brand=bosch&categoryId=1", nil, "")
	body = decodeBody(t, resp)
	assert.Len(t, body["products"], 1)
}

func TestSearchSuggestions(t *testing.T) {
	app := setupTestApp(t)
	seedSearchFixtures(t)

	resp := doRequest(t, app, http.MethodGet, "/apis/svc/search/suggestions?q=kitchen", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	categories := body["categories"].([]any)
	require.Len(t, categories, 1)
	name := categories[0].(map[string]any)["name"].(map[string]any)
	assert.Equal(t, "Kitchen appliances", name["en"])

	// No query lists every active category.
	resp = doRequest(t, app, http.MethodGet, "/apis/svc/search/suggestions", nil, "")
	body = decodeBody(t, resp)
	assert.Len(t, body["categories"], 2)
}

func TestSearchCategoryProducts(t *testing.T) {
	app := setupTestApp(t)
	seedSearchFixtures(t)

	resp := doRequest(t, app, http.MethodGet,
		"/apis/svc/search/category/1/products", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	products := body["products"].([]any)
	require.Len(t, products, 1)
	assert.Equal(t, "Bếp từ đôi", products[0].(map[string]any)["name"])
}
