// Package whatsapp builds the outbound share message and the pre-formed
// messaging link. It holds no state and performs no I/O: the caller opens the
// returned URL however it sees fit.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"techo/backend/internal/domain"
)

const linkBase = "https://wa.me/"

// NormalizeNumber strips all whitespace from a recipient number.
func NormalizeNumber(number string) string {
	return strings.Join(strings.Fields(number), "")
}

// Message renders bill lines as "<item> x<qty> = <total>" rows with a
// trailing grand total.
func Message(lines []domain.BillLine, totalCents int64) string {
	parts := make([]string, 0, len(lines)+2)
	parts = append(parts, "Techo Bill")
	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("%s x%d = %s", line.Name, line.Quantity, domain.Currency(line.TotalCents)))
	}
	parts = append(parts, "Total: "+domain.Currency(totalCents))
	return strings.Join(parts, "\n")
}

// Link builds the wa.me URL with the recipient in the path and the message as
// an encoded text query parameter.
func Link(number string, message string) string {
	return linkBase + url.PathEscape(number) + "?text=" + url.QueryEscape(message)
}
