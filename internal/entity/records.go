package entity

import "time"

// PORecord is one normalized purchase-order row. Missing source fields
// stay nil; records are not mutated after parsing.
type PORecord struct {
	PONumber     string
	Date         *time.Time
	SKU          *string
	Quantity     *float64
	DeliveryDate *time.Time
	PromisedDate *time.Time
	Vendor       *string
}

// InvoiceRecord is one normalized invoice row. Status is nil when the
// source carried no status column and none could be derived from
// payment fields.
type InvoiceRecord struct {
	InvoiceNumber string
	PONumber      string
	Amount        *float64
	Date          *time.Time
	Status        *string
	AmountPaid    *float64
	DatePaid      *time.Time
}

// Figures maps financial figure names to extracted values. Any subset
// of the target figures may be present; absence means the figure could
// not be read from the statement.
type Figures map[string]float64

// Get returns the named figure and whether it was extracted.
func (f Figures) Get(name string) (float64, bool) {
	v, ok := f[name]
	return v, ok
}

// Missing returns the subset of names not present in the figure set.
func (f Figures) Missing(names []string) []string {
	var out []string
	for _, n := range names {
		if _, ok := f[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}
