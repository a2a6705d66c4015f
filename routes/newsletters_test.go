package routes

import (
	"fmt"
	"net/http"
	"testing"

	"nestira/db"
	"nestira/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPromotion(t *testing.T) models.Promotion {
	t.Helper()
	promotion := models.Promotion{
		Title:   models.Localized{"vi": "Khuyến mãi hè", "en": "Summer sale"},
		Content: models.Localized{"vi": "Giảm 30%", "en": "30% off"},
	}
	require.NoError(t, db.DB.Create(&promotion).Error)
	return promotion
}

func TestSubscribeNewsletter(t *testing.T) {
	app := setupTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/apis/svc/newsletters/subscribe",
		SubscribeRequest{Email: "reader@example.com", FullName: "Reader"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Same address twice is a conflict.
	resp = doRequest(t, app, http.MethodPost, "/apis/svc/newsletters/subscribe",
		SubscribeRequest{Email: "reader@example.com"}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/apis/svc/newsletters/subscribe",
		SubscribeRequest{Email: "not-an-email"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSendNewsletterToSubscriber(t *testing.T) {
	app := setupTestApp(t)
	mail := captureMail(t)
	token := adminToken(t)
	promotion := seedPromotion(t)

	subscriber := models.Newsletters{Email: "reader@example.com"}
	require.NoError(t, db.DB.Create(&subscriber).Error)

	path := fmt.Sprintf("/apis/svc/newsletters/send/%d/promotion/%d", subscriber.ID, promotion.ID)
	resp := doRequest(t, app, http.MethodPost, path, nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, mail.count())

	resp = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/apis/svc/newsletters/send/99/promotion/%d", promotion.ID), nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/apis/svc/newsletters/send/%d/promotion/99", subscriber.ID), nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSendNewsletterToAllCountsFailures(t *testing.T) {
	app := setupTestApp(t)
	mail := captureMail(t)
	token := adminToken(t)
	promotion := seedPromotion(t)

	for i := 0; i < 12; i++ {
		require.NoError(t, db.DB.Create(&models.Newsletters{
			Email: fmt.Sprintf("reader%02d@example.com", i),
		}).Error)
	}

	path := fmt.Sprintf("/apis/svc/newsletters/send-all/promotion/%d", promotion.ID)
	resp := doRequest(t, app, http.MethodPost, path, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 12, body["total_sent"])
	assert.EqualValues(t, 0, body["total_failed"])
	assert.Equal(t, 12, mail.count())

	// A refusing transport turns into failure counts, not an error status.
	mail.fail = true
	resp = doRequest(t, app, http.MethodPost, path, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.EqualValues(t, 0, body["total_sent"])
	assert.EqualValues(t, 12, body["total_failed"])
	assert.Len(t, body["details"], 12)
}

func TestSendNewsletterToAllWithoutSubscribers(t *testing.T) {
	app := setupTestApp(t)
	captureMail(t)
	promotion := seedPromotion(t)

	path := fmt.Sprintf("/apis/svc/newsletters/send-all/promotion/%d", promotion.ID)
	resp := doRequest(t, app, http.MethodPost, path, nil, adminToken(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 0, body["total_sent"])
}

func TestDeleteSubscriber(t *testing.T) {
	app := setupTestApp(t)
	token := adminToken(t)

	subscriber := models.Newsletters{Email: "reader@example.com"}
	require.NoError(t, db.DB.Create(&subscriber).Error)

	resp := doRequest(t, app, http.MethodDelete,
		fmt.Sprintf("/apis/svc/newsletters/%d", subscriber.ID), nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.DB.Model(&models.Newsletters{}).Count(&count)
	assert.Zero(t, count)

	resp = doRequest(t, app, http.MethodDelete, "/apis/svc/newsletters/99", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetAllSubscribers(t *testing.T) {
	app := setupTestApp(t)
	token := adminToken(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.DB.Create(&models.Newsletters{
			Email: fmt.Sprintf("reader%d@example.com", i),
		}).Error)
	}

	resp := doRequest(t, app, http.MethodGet, "/apis/svc/newsletters/get-all-subscribers", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 3, body["count"])
	assert.Len(t, body["data"], 3)
}
