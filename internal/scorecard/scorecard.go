// Package scorecard derives operational performance metrics from
// normalized purchase-order and invoice record sets.
package scorecard

import (
	"log/slog"
	"strings"

	"github.com/vendorlens/vendorlens/constants"
	"github.com/vendorlens/vendorlens/internal/entity"
)

// Unavailability reasons surfaced in the metric markers.
const (
	ReasonMissingDates  = "Missing dates"
	ReasonMissingStatus = "Missing status"
)

type Engine struct {
	Logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{Logger: logger}
}

// Compute derives the operational metrics. Each rate is computed only
// when the dataset structurally supports it; otherwise the metric is an
// explicit unavailable marker, never a zero or an error. The
// reconciliation join is attempted for traceability but never affects
// the metrics.
func (e *Engine) Compute(pos []entity.PORecord, invs []entity.InvoiceRecord) entity.OperationalMetrics {
	metrics := entity.OperationalMetrics{
		OnTimeDeliveryRate: onTimeDeliveryRate(pos),
		InvoicePaidRate:    invoicePaidRate(invs),
	}
	metrics.Commentary = commentary(metrics)

	outcome, err := Reconcile(pos, invs)
	if err != nil {
		e.Logger.Warn("scorecard.reconcile.skipped", "error", err)
	} else {
		e.Logger.Debug("scorecard.reconcile.ok",
			"matched", outcome.Matched, "po_only", outcome.POOnly, "invoice_only", outcome.InvoiceOnly)
	}

	return metrics
}

// onTimeDeliveryRate is the share of orders delivered on or before the
// promised date. It needs both dates on every record; a dataset missing
// them is unavailable, not late.
func onTimeDeliveryRate(pos []entity.PORecord) entity.Metric {
	if len(pos) == 0 {
		return entity.Unavailable(ReasonMissingDates)
	}
	onTime := 0
	for _, po := range pos {
		if po.DeliveryDate == nil || po.PromisedDate == nil {
			return entity.Unavailable(ReasonMissingDates)
		}
		if !po.DeliveryDate.After(*po.PromisedDate) {
			onTime++
		}
	}
	return entity.Available(entity.Round2(float64(onTime) / float64(len(pos)) * 100))
}

// invoicePaidRate is the share of invoices whose status counts as
// settled. Every record must carry a status.
func invoicePaidRate(invs []entity.InvoiceRecord) entity.Metric {
	if len(invs) == 0 {
		return entity.Unavailable(ReasonMissingStatus)
	}
	paid := 0
	for _, inv := range invs {
		if inv.Status == nil {
			return entity.Unavailable(ReasonMissingStatus)
		}
		if constants.IsPaidStatus(*inv.Status) {
			paid++
		}
	}
	return entity.Available(entity.Round2(float64(paid) / float64(len(invs)) * 100))
}

// commentary concatenates qualitative bands for whichever metrics are
// available.
func commentary(m entity.OperationalMetrics) string {
	var b strings.Builder
	b.WriteString("Supplier performance is ")

	if otd, ok := m.OnTimeDeliveryRate.Value(); ok {
		switch {
		case otd > 90:
			b.WriteString("excellent regarding delivery times. ")
		case otd > 75:
			b.WriteString("acceptable regarding delivery times. ")
		default:
			b.WriteString("poor regarding delivery times. ")
		}
	}

	if ipr, ok := m.InvoicePaidRate.Value(); ok {
		if ipr > 90 {
			b.WriteString("Invoices are consistently paid. ")
		} else {
			b.WriteString("There are issues with invoice payments. ")
		}
	}

	return b.String()
}
