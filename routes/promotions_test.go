package routes

import (
	"net/http"
	"testing"
	"time"

	"nestira/db"
	"nestira/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePromotionRejectsDuplicateTitle(t *testing.T) {
	app := setupTestApp(t)
	token := adminToken(t)

	req := PromotionRequest{
		Title:   models.Localized{"vi": "Khuyến mãi hè", "en": "Summer sale"},
		Content: models.Localized{"vi": "Giảm 30%"},
	}

	resp := doRequest(t, app, http.MethodPost, "/apis/svc/promotion/create", req, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/apis/svc/promotion/create", req, token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestListLatestPromotionsCapsAtThree(t *testing.T) {
	app := setupTestApp(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		promotion := models.Promotion{
			Title: models.Localized{"vi": "KM", "en": "Promo"},
		}
		require.NoError(t, db.DB.Create(&promotion).Error)
		require.NoError(t, db.DB.Model(&promotion).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	resp := doRequest(t, app, http.MethodGet, "/apis/svc/promotion/list-latest", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeList(t, resp)
	require.Len(t, list, 3)

	// Newest first.
	assert.EqualValues(t, 5, list[0]["id"])

	resp = doRequest(t, app, http.MethodGet, "/apis/svc/promotion/list", nil, "")
	list = decodeList(t, resp)
	assert.Len(t, list, 5)
}

func TestPromotionLocalizedView(t *testing.T) {
	app := setupTestApp(t)

	promotion := models.Promotion{
		Title:   models.Localized{"vi": "Khuyến mãi hè", "en": "Summer sale"},
		Content: models.Localized{"vi": "Giảm 30%"},
	}
	require.NoError(t, db.DB.Create(&promotion).Error)

	resp := doLocalized(t, app, http.MethodGet, "/apis/svc/promotion/detail/1", "en")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Summer sale", body["title"])
	// English content is missing, the default locale fills in.
	assert.Equal(t, "Giảm 30%", body["content"])
}

func TestUpdateAndDeletePromotion(t *testing.T) {
	app := setupTestApp(t)
	token := adminToken(t)

	promotion := models.Promotion{Title: models.Localized{"vi": "Khuyến mãi hè"}}
	require.NoError(t, db.DB.Create(&promotion).Error)

	resp := doRequest(t, app, http.MethodPatch, "/apis/svc/promotion/update/1",
		map[string]any{"title": models.Localized{"en": "Summer sale"}}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var reloaded models.Promotion
	require.NoError(t, db.DB.First(&reloaded, promotion.ID).Error)
	assert.Equal(t, "Khuyến mãi hè", reloaded.Title["vi"])
	assert.Equal(t, "Summer sale", reloaded.Title["en"])

	resp = doRequest(t, app, http.MethodDelete, "/apis/svc/promotion/delete/1", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/apis/svc/promotion/delete/1", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
