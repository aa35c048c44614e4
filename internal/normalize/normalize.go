// Package normalize maps arbitrary source-file headers onto the
// canonical field vocabulary, per document type.
package normalize

import (
	"strings"

	"github.com/vendorlens/vendorlens/constants"
)

// Row is one decoded tabular row keyed by header name. A key is absent
// when the source had no such column; an empty value means the cell was
// blank. Readers treat both as null.
type Row map[string]string

// Dataset is a decoded table with its ordered header set. Row order is
// preserved from the source file.
type Dataset struct {
	Headers []string
	Rows    []Row

	// Defaulted lists required canonical fields that were absent after
	// mapping and force-added with null values. Callers use it to tell
	// a source-provided column from a placeholder.
	Defaulted []string
}

// Has reports whether the dataset carries the named header.
func (d Dataset) Has(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// FromSource reports whether the named header came from the source file
// rather than being force-added as a null placeholder.
func (d Dataset) FromSource(name string) bool {
	if !d.Has(name) {
		return false
	}
	for _, f := range d.Defaulted {
		if f == name {
			return false
		}
	}
	return true
}

// poSynonyms maps known purchase-order header variants to canonical
// field names. Headers are matched after lowercasing and trimming.
var poSynonyms = map[string]string{
	"po number":     constants.FieldPONumber,
	"po #":          constants.FieldPONumber,
	"order number":  constants.FieldPONumber,
	"date":          constants.FieldDate,
	"order date":    constants.FieldDate,
	"sku":           constants.FieldSKU,
	"item":          constants.FieldSKU,
	"quantity":      constants.FieldQuantity,
	"qty":           constants.FieldQuantity,
	"delivery date": constants.FieldDeliveryDate,
	"promised date": constants.FieldDeliveryDate,
	"vendor":        constants.FieldVendor,
	"supplier":      constants.FieldVendor,
	// OMS export variants
	"oms_po_nbr":          constants.FieldPONumber,
	"issue_date":          constants.FieldDate,
	"must_arrive_by_date": constants.FieldPromisedDate,
	"del_gate_in_date":    constants.FieldDeliveryDate,
	"item_id":             constants.FieldSKU,
	"ordered_qty":         constants.FieldQuantity,
}

// invoiceSynonyms maps known invoice header variants to canonical names.
var invoiceSynonyms = map[string]string{
	"invoice number": constants.FieldInvoiceNumber,
	"inv #":          constants.FieldInvoiceNumber,
	"po number":      constants.FieldPONumber,
	"po #":           constants.FieldPONumber,
	"amount":         constants.FieldAmount,
	"total":          constants.FieldAmount,
	"date":           constants.FieldDate,
	"invoice date":   constants.FieldDate,
	"status":         constants.FieldStatus,
	"payment status": constants.FieldStatus,
	// OMS export variants
	"inv_nbr":         constants.FieldInvoiceNumber,
	"invoice_nbr":     constants.FieldInvoiceNumber,
	"po_nbr":          constants.FieldPONumber,
	"inv_amt":         constants.FieldAmount,
	"invoice_amt_due": constants.FieldAmount,
	"inv_dt":          constants.FieldDate,
	"invoice_date":    constants.FieldDate,
	"inv_status":      constants.FieldStatus,
}

func synonymsFor(dt constants.DocType) map[string]string {
	if dt == constants.DocTypeInvoice {
		return invoiceSynonyms
	}
	return poSynonyms
}

// Normalize rewrites a dataset's headers onto the canonical vocabulary
// for the given document type. Unmapped headers pass through unchanged.
// Required canonical fields are force-present afterwards, defaulting to
// null. Normalization is total: it never fails, and applying it to an
// already-canonical dataset is a no-op.
func Normalize(ds Dataset, dt constants.DocType) Dataset {
	syn := synonymsFor(dt)

	out := Dataset{
		Headers: make([]string, 0, len(ds.Headers)),
		Rows:    make([]Row, 0, len(ds.Rows)),
	}

	// src header -> canonical name, first occurrence wins on collision
	rename := make(map[string]string, len(ds.Headers))
	seen := make(map[string]struct{}, len(ds.Headers))
	for _, h := range ds.Headers {
		key := strings.ToLower(strings.TrimSpace(h))
		canon := key
		if mapped, ok := syn[key]; ok {
			canon = mapped
		}
		if _, dup := seen[canon]; dup {
			continue
		}
		seen[canon] = struct{}{}
		rename[h] = canon
		out.Headers = append(out.Headers, canon)
	}

	for _, row := range ds.Rows {
		nr := make(Row, len(row))
		for src, canon := range rename {
			if v, ok := row[src]; ok {
				nr[canon] = v
			}
		}
		out.Rows = append(out.Rows, nr)
	}

	for _, req := range constants.RequiredFields(dt) {
		if _, ok := seen[req]; ok {
			continue
		}
		seen[req] = struct{}{}
		out.Headers = append(out.Headers, req)
		out.Defaulted = append(out.Defaulted, req)
	}

	return out
}
