package constants

import "strings"

// InvoiceStatus is the canonical payment status of an invoice row.
type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "Paid"
	InvoicePending InvoiceStatus = "Pending"
)

// paidSynonyms are source status values that count as settled.
var paidSynonyms = map[string]struct{}{
	"paid":    {},
	"cleared": {},
	"settled": {},
}

// IsPaidStatus reports whether a raw status string counts as a paid
// invoice, matching case-insensitively.
func IsPaidStatus(raw string) bool {
	_, ok := paidSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}
