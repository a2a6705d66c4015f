package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"nestira/config"
	"nestira/db"
	"nestira/email"
	"nestira/middleware"
	"nestira/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// setupTestApp wires a fresh in-memory database and a fiber app with the
// full route table. The shared-cache DSN keeps the database alive across
// the multiple connections gorm opens.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.App = &config.Config{
		JWTSecret: "test-secret",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	require.NoError(t, db.Connect(dsn))

	app := fiber.New()
	SetupRoutes(app)
	return app
}

type sentMail struct {
	To      string
	Subject string
}

// captureSender records outgoing mail instead of delivering it.
type captureSender struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (s *captureSender) Send(to, subject, html string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return fmt.Errorf("delivery refused for %s", to)
	}
	s.sent = append(s.sent, sentMail{To: to, Subject: subject})
	return nil
}

func (s *captureSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func captureMail(t *testing.T) *captureSender {
	t.Helper()
	sender := &captureSender{}
	prev := email.Mailer
	email.Mailer = sender
	t.Cleanup(func() { email.Mailer = prev })
	return sender
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := middleware.SignToken(1, "admin", models.RoleAdmin)
	require.NoError(t, err)
	return token
}

// doRequest performs a request against the app and returns the response.
// A non-nil body is JSON-encoded; an auth token is sent as a Bearer header.
func doRequest(t *testing.T, app *fiber.App, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// doLocalized is doRequest with a Locale-Language header.
func doLocalized(t *testing.T, app *fiber.App, method, path, loc string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Locale-Language", loc)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func seedCategory(t *testing.T, name models.Localized) models.Category {
	t.Helper()
	category := models.Category{Name: name, IsActive: true}
	require.NoError(t, db.DB.Create(&category).Error)
	return category
}

func seedProduct(t *testing.T, categoryID uint, name models.Localized, price float64) models.Product {
	t.Helper()
	product := models.Product{
		Name:       name,
		Price:      price,
		TotalPrice: price,
		IsActive:   true,
		CategoryID: categoryID,
	}
	require.NoError(t, db.DB.Create(&product).Error)
	return product
}

func seedOrder(t *testing.T, app *fiber.App, items []OrderItemRequest) models.Order {
	t.Helper()

	resp := doRequest(t, app, http.MethodPost, "/apis/svc/orders/create", CreateOrderRequest{
		CustomerName:    "Nguyen Van A",
		CustomerPhone:   "0901234567",
		CustomerEmail:   "customer@example.com",
		ShippingAddress: "12 Ly Thuong Kiet",
		City:            "Ha Noi",
		Items:           items,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)

	code := body["data"].(map[string]any)["order_code"].(string)
	var order models.Order
	require.NoError(t, db.DB.Preload("Items").Where("order_code = ?", code).First(&order).Error)
	return order
}
