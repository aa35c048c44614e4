package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/vendorlens/vendorlens/internal/normalize"
)

// dateLayouts covers the formats seen in supplier exports, plus the
// rendered forms excelize produces for styled date cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
	"01-02-2006",
	"02-Jan-06",
	"Jan 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

func cellString(row normalize.Row, field string) string {
	return strings.TrimSpace(row[field])
}

func cellStringPtr(row normalize.Row, field string) *string {
	v := cellString(row, field)
	if v == "" {
		return nil
	}
	return &v
}

func cellFloat(row normalize.Row, field string) *float64 {
	raw := cellString(row, field)
	if raw == "" {
		return nil
	}
	raw = strings.ReplaceAll(raw, ",", "")
	raw = strings.TrimPrefix(raw, "$")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func cellDate(row normalize.Row, field string) *time.Time {
	raw := cellString(row, field)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	// unstyled xlsx date cells surface as raw serial numbers
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 20000 && serial < 80000 {
		t := excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
		t = t.Truncate(24 * time.Hour)
		return &t
	}
	return nil
}

// excelEpoch is Dec 30 1899, the zero of the 1900 date system after its
// leap-year quirk.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
