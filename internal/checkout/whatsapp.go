// Package checkout formats a cart into the WhatsApp order hand-off. The
// messaging channel is a pure sink: the client opens the built URL and
// nothing comes back into the system.
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/arbrands/storefront-backend/internal/cart"
	"github.com/shopspring/decimal"
)

// OrderMessage renders the order summary sent to the shop owner, one bullet
// per cart line with the variant selections appended.
func OrderMessage(lines []cart.Line) string {
	details := make([]string, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		detail := fmt.Sprintf("• %s x%d - $%s", line.Product.Name, line.Quantity, line.LineTotal().StringFixed(2))
		if line.Size != "" {
			detail += fmt.Sprintf(" (Size: %s)", line.Size)
		}
		if line.Color != "" {
			detail += fmt.Sprintf(" (Color: %s)", line.Color)
		}
		details = append(details, detail)
		total = total.Add(line.LineTotal())
	}

	var b strings.Builder
	b.WriteString("🛍️ *New Order from AR Brands*\n\n")
	b.WriteString("*Order Details:*\n")
	b.WriteString(strings.Join(details, "\n"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("*Total: $%s*", total.StringFixed(2)))
	b.WriteString("\n\nPlease confirm my order. Thank you!")
	return b.String()
}

// WhatsAppURL builds the wa.me link carrying the encoded order message.
func WhatsAppURL(number string, lines []cart.Line) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(OrderMessage(lines)))
}
