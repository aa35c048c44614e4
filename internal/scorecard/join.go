package scorecard

import (
	"errors"

	"github.com/vendorlens/vendorlens/internal/entity"
)

// JoinOutcome summarizes a PO/invoice join by po_number. It exists for
// cross-validation such as quantity reconciliation; today callers only
// log it and the metrics are computed independently.
type JoinOutcome struct {
	Matched     int // po_numbers present on both sides
	POOnly      int // po_numbers with no invoice
	InvoiceOnly int // invoice po_numbers with no purchase order
}

var errNoJoinKeys = errors.New("no po_number keys on either side")

// Reconcile joins the two record sets by po_number. The caller decides
// what to do with a failed join; this function never panics and never
// hides the failure.
func Reconcile(pos []entity.PORecord, invs []entity.InvoiceRecord) (JoinOutcome, error) {
	poKeys := make(map[string]struct{})
	for _, po := range pos {
		if po.PONumber != "" {
			poKeys[po.PONumber] = struct{}{}
		}
	}
	invKeys := make(map[string]struct{})
	for _, inv := range invs {
		if inv.PONumber != "" {
			invKeys[inv.PONumber] = struct{}{}
		}
	}
	if len(poKeys) == 0 && len(invKeys) == 0 {
		return JoinOutcome{}, errNoJoinKeys
	}

	var out JoinOutcome
	for k := range poKeys {
		if _, ok := invKeys[k]; ok {
			out.Matched++
		} else {
			out.POOnly++
		}
	}
	for k := range invKeys {
		if _, ok := poKeys[k]; !ok {
			out.InvoiceOnly++
		}
	}
	return out, nil
}
