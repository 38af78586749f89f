// Package notify renders customer-facing emails. Rendering is pure: it
// takes the notification payload and produces subject/body, with delivery
// left to a Mailer implementation.
package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/emilybakes/bakery/internal/domain"
)

const (
	brandPink  = "#C14B78"
	brandCream = "#F7EAD9"
)

// StatusUpdateData is the rendering input for a status-change email. It is
// the complete tuple: rendering never reaches back into the database.
type StatusUpdateData struct {
	CustomerName  string
	OrderID       int
	TrackingToken string
	OldStatus     domain.Status
	NewStatus     domain.Status
	EventDate     *time.Time
}

// ConfirmationData is the rendering input for the order-received email.
type ConfirmationData struct {
	CustomerName  string
	OrderID       int
	TrackingToken string
	Flavor        string
	Servings      int
	EventDate     *time.Time
	HasLayers     bool
	TotalAmount   int64
	DepositAmount int64
}

// Email is a rendered message ready for a Mailer.
type Email struct {
	To      string
	Subject string
	HTML    string
}

type statusTemplate struct {
	Emoji   string
	Title   string
	Message string
	Color   string
}

var statusTemplates = map[domain.Status]statusTemplate{
	domain.StatusPending: {
		Emoji:   "⏳",
		Title:   "Order Received",
		Message: "We're reviewing your order and will confirm details soon.",
		Color:   "#FFA500",
	},
	domain.StatusBaking: {
		Emoji:   "👨‍🍳",
		Title:   "In the Oven",
		Message: "Our bakers are working their magic on your custom cake!",
		Color:   brandPink,
	},
	domain.StatusDecorating: {
		Emoji:   "🎨",
		Title:   "Decorating",
		Message: "Your cake is baked and our decorators are adding the finishing touches.",
		Color:   "#8B5CF6",
	},
	domain.StatusReady: {
		Emoji:   "🎂",
		Title:   "Ready for Pickup",
		Message: "Your cake is ready! Come pick it up at your convenience.",
		Color:   "#10B981",
	},
	domain.StatusCompleted: {
		Emoji:   "🎉",
		Title:   "Order Completed",
		Message: "Thank you for choosing Emily Bakes Cakes! We hope you enjoyed your cake.",
		Color:   "#10B981",
	},
	domain.StatusCancelled: {
		Emoji:   "❌",
		Title:   "Order Cancelled",
		Message: "Your order has been cancelled as requested.",
		Color:   "#EF4444",
	},
}

// genericTemplate is the soft-failure fallback for statuses the template
// table does not know. It must stay: unknown statuses render a generic
// update instead of failing.
func genericTemplate(status domain.Status) statusTemplate {
	return statusTemplate{
		Emoji:   "📝",
		Title:   "Status Update",
		Message: fmt.Sprintf("Your order status has been updated to: %s", status),
		Color:   brandPink,
	}
}

func templateFor(status domain.Status) statusTemplate {
	if tpl, ok := statusTemplates[status]; ok {
		return tpl
	}
	return genericTemplate(status)
}

var statusBody = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f5f5f5;">
  <table width="600" cellpadding="0" cellspacing="0" style="margin:0 auto;background-color:white;border-radius:12px;overflow:hidden;">
    <tr>
      <td style="background:{{.BrandPink}};padding:40px 30px;text-align:center;">
        <h1 style="color:white;margin:0;">Emily Bakes Cakes</h1>
        <p style="color:{{.BrandCream}};margin:10px 0 0 0;">Order Status Update</p>
      </td>
    </tr>
    <tr>
      <td style="padding:40px 30px;">
        <h2 style="margin:0 0 20px 0;">Hi {{.CustomerName}}!</h2>
        <div style="text-align:center;margin:30px 0;">
          <span style="display:inline-block;background-color:{{.Color}};color:white;padding:15px 30px;border-radius:50px;font-weight:600;">{{.Emoji}} {{.Title}}</span>
        </div>
        <p style="text-align:center;">{{.Message}}</p>
        <div style="background-color:{{.BrandCream}};border-radius:8px;padding:20px;margin:30px 0;">
          <div>Order Number: #{{.OrderID}}</div>
          <div>Previous Status: {{.OldLabel}}</div>
          <div>Current Status: <span style="color:{{.Color}};font-weight:600;">{{.NewLabel}}</span></div>
          {{if .EventDate}}<div>Event Date: {{.EventDate}}</div>{{end}}
        </div>
        <div style="text-align:center;margin:30px 0;">
          <a href="{{.TrackingURL}}" style="background-color:{{.BrandPink}};color:white;text-decoration:none;padding:15px 40px;border-radius:8px;">Track Your Order</a>
        </div>
        {{if .PickupNotes}}
        <div style="border-left:4px solid {{.BrandPink}};background-color:{{.BrandCream}};padding:20px;margin:30px 0;">
          <h3 style="margin:0 0 10px 0;">Pickup Instructions</h3>
          <p style="margin:0;">Please bring your order number (#{{.OrderID}}) and contact us if you need to reschedule.</p>
        </div>
        {{end}}
      </td>
    </tr>
  </table>
</body>
</html>`))

var confirmationBody = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f5f5f5;">
  <table width="600" cellpadding="0" cellspacing="0" style="margin:0 auto;background-color:white;border-radius:12px;overflow:hidden;">
    <tr>
      <td style="background:{{.BrandPink}};padding:40px 30px;text-align:center;">
        <h1 style="color:white;margin:0;">Emily Bakes Cakes</h1>
        <p style="color:{{.BrandCream}};margin:10px 0 0 0;">Handcrafted with Love</p>
      </td>
    </tr>
    <tr>
      <td style="padding:40px 30px;">
        <h2 style="margin:0 0 20px 0;">Thank You, {{.CustomerName}}! 🎉</h2>
        <p>We've received your custom cake order and our team is excited to create something special for you!</p>
        <div style="background-color:{{.BrandCream}};border-radius:8px;padding:20px;margin:20px 0;">
          <p style="margin:0;font-weight:600;">Order Number</p>
          <p style="color:{{.BrandPink}};margin:0;font-size:24px;font-weight:700;">#{{.OrderID}}</p>
        </div>
        {{if .Flavor}}<div>Flavor: {{.Flavor}}</div>{{end}}
        {{if .Servings}}<div>Servings: {{.Servings}}</div>{{end}}
        {{if .EventDate}}<div>Event Date: {{.EventDate}}</div>{{end}}
        {{if .HasLayers}}<div>Custom Layers: Yes</div>{{end}}
        {{if .TotalAmount}}
        <div style="background-color:#f9f9f9;border-radius:8px;padding:20px;margin:20px 0;">
          <div>Total Amount: {{.TotalAmount}}</div>
          {{if .DepositAmount}}<div>Deposit Required (50%): <span style="color:{{.BrandPink}};">{{.DepositAmount}}</span></div>{{end}}
        </div>
        {{end}}
        <div style="text-align:center;margin:30px 0;">
          <a href="{{.TrackingURL}}" style="background-color:{{.BrandPink}};color:white;text-decoration:none;padding:15px 40px;border-radius:8px;">Track Your Order</a>
        </div>
      </td>
    </tr>
  </table>
</body>
</html>`))

// Renderer builds emails with tracking links rooted at the public site URL.
type Renderer struct {
	baseURL string
}

func NewRenderer(baseURL string) *Renderer {
	return &Renderer{baseURL: strings.TrimRight(baseURL, "/")}
}

func (r *Renderer) trackingURL(token string) string {
	return fmt.Sprintf("%s/track-order?token=%s", r.baseURL, token)
}

// StatusUpdateEmail renders the status-change notification. Unknown statuses
// never fail; they fall through to the generic template.
func (r *Renderer) StatusUpdateEmail(data StatusUpdateData) (subject, html string, err error) {
	tpl := templateFor(data.NewStatus)

	subject = fmt.Sprintf("%s Order #%d - %s", tpl.Emoji, data.OrderID, tpl.Title)

	var eventDate string
	if data.EventDate != nil {
		eventDate = data.EventDate.Format("Monday, January 2, 2006")
	}

	var buf bytes.Buffer
	err = statusBody.Execute(&buf, map[string]any{
		"BrandPink":    brandPink,
		"BrandCream":   brandCream,
		"CustomerName": data.CustomerName,
		"OrderID":      data.OrderID,
		"OldLabel":     statusLabel(data.OldStatus),
		"NewLabel":     statusLabel(data.NewStatus),
		"Emoji":        tpl.Emoji,
		"Title":        tpl.Title,
		"Message":      tpl.Message,
		"Color":        tpl.Color,
		"EventDate":    eventDate,
		"TrackingURL":  r.trackingURL(data.TrackingToken),
		"PickupNotes":  data.NewStatus == domain.StatusReady,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render status email: %w", err)
	}

	return subject, buf.String(), nil
}

// ConfirmationEmail renders the order-received email.
func (r *Renderer) ConfirmationEmail(data ConfirmationData) (subject, html string, err error) {
	subject = fmt.Sprintf("Order Confirmation #%d - Emily Bakes Cakes", data.OrderID)

	var eventDate string
	if data.EventDate != nil {
		eventDate = data.EventDate.Format("Monday, January 2, 2006")
	}

	var buf bytes.Buffer
	err = confirmationBody.Execute(&buf, map[string]any{
		"BrandPink":     brandPink,
		"BrandCream":    brandCream,
		"CustomerName":  data.CustomerName,
		"OrderID":       data.OrderID,
		"Flavor":        data.Flavor,
		"Servings":      data.Servings,
		"EventDate":     eventDate,
		"HasLayers":     data.HasLayers,
		"TotalAmount":   formatDollars(data.TotalAmount),
		"DepositAmount": formatDollars(data.DepositAmount),
		"TrackingURL":   r.trackingURL(data.TrackingToken),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render confirmation email: %w", err)
	}

	return subject, buf.String(), nil
}

// statusLabel renders underscored raw values readably even for statuses the
// metadata table does not know.
func statusLabel(s domain.Status) string {
	if s.Valid() {
		return s.Meta().Label
	}
	return strings.ReplaceAll(string(s), "_", " ")
}

func formatDollars(cents int64) string {
	if cents <= 0 {
		return ""
	}
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
