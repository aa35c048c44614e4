package ingest

import (
	"github.com/vendorlens/vendorlens/constants"
	"github.com/vendorlens/vendorlens/internal/entity"
	"github.com/vendorlens/vendorlens/internal/normalize"
)

// paidTolerance absorbs floating rounding when comparing the paid
// amount against the amount due.
const paidTolerance = 0.01

// ParseInvoiceFile decodes and normalizes one invoice document into
// canonical records. When the source carried no status column, status
// is derived per row from payment fields; when neither is available the
// status stays null.
func ParseInvoiceFile(content []byte, filename string) ([]entity.InvoiceRecord, error) {
	ds, err := DecodeTable(content, filename)
	if err != nil {
		return nil, err
	}
	ds = normalize.Normalize(ds, constants.DocTypeInvoice)

	deriveFromAmounts := !ds.FromSource(constants.FieldStatus) &&
		ds.Has(constants.FieldAmountPaid) && ds.FromSource(constants.FieldAmount)
	deriveFromDatePaid := !ds.FromSource(constants.FieldStatus) &&
		!deriveFromAmounts && ds.Has(constants.FieldDatePaid)

	records := make([]entity.InvoiceRecord, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		rec := entity.InvoiceRecord{
			InvoiceNumber: cellString(row, constants.FieldInvoiceNumber),
			PONumber:      cellString(row, constants.FieldPONumber),
			Amount:        cellFloat(row, constants.FieldAmount),
			Date:          cellDate(row, constants.FieldDate),
			Status:        cellStringPtr(row, constants.FieldStatus),
			AmountPaid:    cellFloat(row, constants.FieldAmountPaid),
			DatePaid:      cellDate(row, constants.FieldDatePaid),
		}

		switch {
		case deriveFromAmounts:
			rec.Status = statusFromAmounts(rec.Amount, rec.AmountPaid)
		case deriveFromDatePaid:
			rec.Status = statusFromDatePaid(cellString(row, constants.FieldDatePaid))
		}

		records = append(records, rec)
	}
	return records, nil
}

// statusFromAmounts marks an invoice Paid when the paid amount covers
// the amount due within tolerance; anything else, including missing
// amounts, is Pending.
func statusFromAmounts(amount, amountPaid *float64) *string {
	status := string(constants.InvoicePending)
	if amount != nil && amountPaid != nil && *amountPaid >= *amount-paidTolerance {
		status = string(constants.InvoicePaid)
	}
	return &status
}

func statusFromDatePaid(raw string) *string {
	status := string(constants.InvoicePending)
	if raw != "" {
		status = string(constants.InvoicePaid)
	}
	return &status
}
