package email

import (
	"fmt"
	"strings"

	"nestira/models"
)

func baseHTML(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f5f5f5;font-family:Arial,Helvetica,sans-serif;">
  <div style="max-width:600px;margin:0 auto;background:#ffffff;">
    <div style="background:#1a1a2e;color:#ffffff;padding:24px;text-align:center;">
      <h1 style="margin:0;font-size:22px;">Nestira</h1>
      <p style="margin:8px 0 0;font-size:14px;">%s</p>
    </div>
    <div style="padding:24px;color:#333333;font-size:14px;line-height:1.6;">
      %s
    </div>
    <div style="padding:16px 24px;background:#f0f0f0;color:#888888;font-size:12px;text-align:center;">
      This is an automated message from Nestira, please do not reply.
    </div>
  </div>
</body>
</html>`, title, body)
}

func orderSummaryHTML(order *models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding:8px;border-bottom:1px solid #eee;">%s</td>`+
				`<td style="padding:8px;border-bottom:1px solid #eee;text-align:center;">%d</td>`+
				`<td style="padding:8px;border-bottom:1px solid #eee;text-align:right;">%.0f</td></tr>`,
			item.Snapshot.Name.Resolve(models.DefaultLocale), item.Quantity, item.TotalPrice))
	}
	return fmt.Sprintf(`
      <table style="width:100%%;border-collapse:collapse;margin:16px 0;">
        <tr style="background:#fafafa;">
          <th style="padding:8px;text-align:left;">Product</th>
          <th style="padding:8px;">Qty</th>
          <th style="padding:8px;text-align:right;">Total</th>
        </tr>
        %s
        <tr>
          <td colspan="2" style="padding:8px;font-weight:bold;">Order total</td>
          <td style="padding:8px;text-align:right;font-weight:bold;">%.0f</td>
        </tr>
      </table>
      <p><b>Shipping to:</b> %s, %s, %s, %s</p>`,
		rows.String(), order.TotalAmount,
		order.ShippingAddress, order.Ward, order.District, order.City)
}

func orderConfirmationHTML(order *models.Order) string {
	body := fmt.Sprintf(`
      <p>Hi %s,</p>
      <p>We received your order <b>#%s</b>. We will contact you shortly to confirm it.</p>
      %s`, order.CustomerName, order.OrderCode, orderSummaryHTML(order))
	return baseHTML("Order received", body)
}

func newOrderAdminHTML(order *models.Order) string {
	body := fmt.Sprintf(`
      <p>A new order <b>#%s</b> has been placed.</p>
      <p><b>Customer:</b> %s — %s — %s</p>
      %s`, order.OrderCode, order.CustomerName, order.CustomerPhone,
		order.CustomerEmail, orderSummaryHTML(order))
	return baseHTML("New order", body)
}

func orderApprovedHTML(order *models.Order) string {
	body := fmt.Sprintf(`
      <p>Hi %s,</p>
      <p>Your order <b>#%s</b> has been confirmed and will be prepared for shipping.</p>`,
		order.CustomerName, order.OrderCode)
	return baseHTML("Order confirmed", body)
}

func orderShippingHTML(order *models.Order) string {
	body := fmt.Sprintf(`
      <p>Hi %s,</p>
      <p>Your order <b>#%s</b> is on the way to:</p>
      <p>%s, %s, %s, %s</p>`,
		order.CustomerName, order.OrderCode,
		order.ShippingAddress, order.Ward, order.District, order.City)
	return baseHTML("Order on the way", body)
}

func orderDeliveredHTML(order *models.Order) string {
	body := fmt.Sprintf(`
      <p>Hi %s,</p>
      <p>Your order <b>#%s</b> has been delivered. Thank you for shopping with us!</p>`,
		order.CustomerName, order.OrderCode)
	return baseHTML("Order delivered", body)
}

func orderCancelledHTML(order *models.Order) string {
	body := fmt.Sprintf(`
      <p>Hi %s,</p>
      <p>Your order <b>#%s</b> has been cancelled. If this was unexpected, please contact our support.</p>`,
		order.CustomerName, order.OrderCode)
	return baseHTML("Order cancelled", body)
}

func newsletterHTML(subscriber *models.Newsletters, promotion *models.Promotion, locale string) string {
	greeting := subscriber.FullName
	if greeting == "" {
		greeting = subscriber.Email
	}
	thumbnail := ""
	if promotion.Thumbnail != "" {
		thumbnail = fmt.Sprintf(`<img src="%s" alt="" style="max-width:100%%;margin:16px 0;">`, promotion.Thumbnail)
	}
	body := fmt.Sprintf(`
      <p>Hi %s,</p>
      <h2 style="margin:8px 0;">%s</h2>
      %s
      <div>%s</div>`,
		greeting, promotion.Title.Resolve(locale), thumbnail, promotion.Content.Resolve(locale))
	return baseHTML("News from Nestira", body)
}
