package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/emilybakes/bakery/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusUpdateEmail(t *testing.T) {
	r := NewRenderer("https://emilybakes.example.com/")
	eventDate := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)

	subject, html, err := r.StatusUpdateEmail(StatusUpdateData{
		CustomerName:  "Jennifer Lopez",
		OrderID:       42,
		TrackingToken: "deadbeefdeadbeefdeadbeefdeadbeef",
		OldStatus:     domain.StatusBaking,
		NewStatus:     domain.StatusReady,
		EventDate:     &eventDate,
	})
	require.NoError(t, err)

	assert.Equal(t, "🎂 Order #42 - Ready for Pickup", subject)
	assert.Contains(t, html, "Jennifer Lopez")
	assert.Contains(t, html, "#42")
	assert.Contains(t, html, "Baking")
	assert.Contains(t, html, "Ready")
	assert.Contains(t, html, "Thursday, November 20, 2025")
	assert.Contains(t, html, "https://emilybakes.example.com/track-order?token=deadbeefdeadbeefdeadbeefdeadbeef")
	assert.Contains(t, html, "Pickup Instructions")
}

func TestStatusUpdateEmailPerStatus(t *testing.T) {
	r := NewRenderer("https://example.com")

	wantTitles := map[domain.Status]string{
		domain.StatusPending:    "Order Received",
		domain.StatusBaking:     "In the Oven",
		domain.StatusDecorating: "Decorating",
		domain.StatusReady:      "Ready for Pickup",
		domain.StatusCompleted:  "Order Completed",
		domain.StatusCancelled:  "Order Cancelled",
	}

	for status, title := range wantTitles {
		subject, html, err := r.StatusUpdateEmail(StatusUpdateData{
			CustomerName: "Test", OrderID: 1, NewStatus: status, OldStatus: domain.StatusPending,
		})
		require.NoError(t, err, "status %s", status)
		assert.Contains(t, subject, title)
		assert.NotEmpty(t, html)
	}
}

func TestStatusUpdateEmailUnknownStatusFallsBack(t *testing.T) {
	r := NewRenderer("https://example.com")

	subject, html, err := r.StatusUpdateEmail(StatusUpdateData{
		CustomerName: "Test",
		OrderID:      7,
		OldStatus:    domain.StatusReady,
		NewStatus:    domain.Status("archived"),
	})
	require.NoError(t, err, "unknown status must not fail")

	assert.Equal(t, "📝 Order #7 - Status Update", subject)
	assert.Contains(t, html, "updated to: archived")
}

func TestStatusUpdateEmailNoPickupNotesUnlessReady(t *testing.T) {
	r := NewRenderer("https://example.com")

	_, html, err := r.StatusUpdateEmail(StatusUpdateData{
		CustomerName: "Test", OrderID: 1,
		OldStatus: domain.StatusPending, NewStatus: domain.StatusBaking,
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "Pickup Instructions")
}

func TestConfirmationEmail(t *testing.T) {
	r := NewRenderer("https://example.com")
	eventDate := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)

	subject, html, err := r.ConfirmationEmail(ConfirmationData{
		CustomerName:  "Michael Chen",
		OrderID:       12,
		TrackingToken: "cafecafecafecafecafecafecafecafe",
		Flavor:        "red-velvet",
		Servings:      50,
		EventDate:     &eventDate,
		HasLayers:     true,
		TotalAmount:   12000,
		DepositAmount: 6000,
	})
	require.NoError(t, err)

	assert.Equal(t, "Order Confirmation #12 - Emily Bakes Cakes", subject)
	assert.Contains(t, html, "Michael Chen")
	assert.Contains(t, html, "$120.00")
	assert.Contains(t, html, "$60.00")
	assert.Contains(t, html, "Custom Layers: Yes")
	assert.Contains(t, html, "track-order?token=cafecafecafecafecafecafecafecafe")
}

func TestConfirmationEmailOmitsEmptySections(t *testing.T) {
	r := NewRenderer("https://example.com")

	_, html, err := r.ConfirmationEmail(ConfirmationData{
		CustomerName: "Test", OrderID: 3,
	})
	require.NoError(t, err)

	assert.NotContains(t, html, "Flavor:")
	assert.NotContains(t, html, "Total Amount:")
	assert.NotContains(t, html, "Custom Layers")
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Decorating", statusLabel(domain.StatusDecorating))
	assert.Equal(t, "on hold", statusLabel(domain.Status("on_hold")))
}

func TestFormatDollars(t *testing.T) {
	assert.Equal(t, "$450.00", formatDollars(45000))
	assert.Equal(t, "$0.05", formatDollars(5))
	assert.Equal(t, "", formatDollars(0))
}

func TestRendererTrimsTrailingSlash(t *testing.T) {
	r := NewRenderer("https://example.com///")
	assert.True(t, strings.HasPrefix(r.trackingURL("abc"), "https://example.com/track-order"))
}
