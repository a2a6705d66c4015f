package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"nestira/models"
)

// Sender delivers a single HTML mail. Implementations must be safe for
// concurrent use; newsletter campaigns fan out across goroutines.
type Sender interface {
	Send(to, subject, html string) error
}

// Mailer is the sender used by all notification helpers. It defaults to the
// log-only sender and is swapped for the Resend client when configured.
var Mailer Sender = LogSender{}

// AdminEmail receives new-order notifications when set.
var AdminEmail string

// Init picks the mail transport from configuration.
func Init(resendAPIKey, from, adminEmail string) {
	AdminEmail = adminEmail
	if resendAPIKey == "" {
		log.Println("RESEND_API_KEY not set, emails will be logged only")
		Mailer = LogSender{}
		return
	}
	Mailer = &ResendClient{APIKey: resendAPIKey, From: from}
}

// LogSender writes mails to the log instead of delivering them.
type LogSender struct{}

func (LogSender) Send(to, subject, html string) error {
	log.Printf("email (log only) to=%s subject=%q", to, subject)
	return nil
}

// ResendClient sends mail through the Resend HTTP API.
type ResendClient struct {
	APIKey string
	From   string
}

func (r *ResendClient) Send(to, subject, html string) error {
	payload := map[string]interface{}{
		"from":    r.From,
		"to":      to,
		"subject": subject,
		"html":    html,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mail API returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendOrderConfirmation mails the customer after checkout.
func SendOrderConfirmation(order *models.Order) error {
	subject := fmt.Sprintf("[Nestira] Order confirmation: #%s", order.OrderCode)
	return Mailer.Send(order.CustomerEmail, subject, orderConfirmationHTML(order))
}

// SendNewOrderNotificationToAdmin mails the shop admin after checkout.
func SendNewOrderNotificationToAdmin(order *models.Order) error {
	if AdminEmail == "" {
		log.Println("ADMIN_EMAIL not configured, skipping admin notification")
		return nil
	}
	subject := fmt.Sprintf("[Nestira] New order: #%s", order.OrderCode)
	return Mailer.Send(AdminEmail, subject, newOrderAdminHTML(order))
}

func SendOrderApproved(order *models.Order) error {
	subject := fmt.Sprintf("[Nestira] Order confirmed: #%s", order.OrderCode)
	return Mailer.Send(order.CustomerEmail, subject, orderApprovedHTML(order))
}

func SendOrderShipping(order *models.Order) error {
	subject := fmt.Sprintf("[Nestira] Order on the way: #%s", order.OrderCode)
	return Mailer.Send(order.CustomerEmail, subject, orderShippingHTML(order))
}

func SendOrderDelivered(order *models.Order) error {
	subject := fmt.Sprintf("[Nestira] Order delivered: #%s", order.OrderCode)
	return Mailer.Send(order.CustomerEmail, subject, orderDeliveredHTML(order))
}

func SendOrderCancelled(order *models.Order) error {
	subject := fmt.Sprintf("[Nestira] Order cancelled: #%s", order.OrderCode)
	return Mailer.Send(order.CustomerEmail, subject, orderCancelledHTML(order))
}

// SendNewsletter mails one promotion to one subscriber in the given locale.
func SendNewsletter(subscriber *models.Newsletters, promotion *models.Promotion, locale string) error {
	subject := fmt.Sprintf("[Nestira] %s", promotion.Title.Resolve(locale))
	return Mailer.Send(subscriber.Email, subject, newsletterHTML(subscriber, promotion, locale))
}
