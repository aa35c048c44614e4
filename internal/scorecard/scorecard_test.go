package scorecard

import (
	"strings"
	"testing"
	"time"

	"github.com/vendorlens/vendorlens/internal/entity"
)

func day(d int) *time.Time {
	t := time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func po(delivered, promised *time.Time) entity.PORecord {
	return entity.PORecord{PONumber: "PO-1", DeliveryDate: delivered, PromisedDate: promised}
}

func inv(status string) entity.InvoiceRecord {
	rec := entity.InvoiceRecord{InvoiceNumber: "INV-1", PONumber: "PO-1"}
	if status != "" {
		rec.Status = &status
	}
	return rec
}

func TestCompute_OnTimeDeliveryRate(t *testing.T) {
	tests := []struct {
		name string
		pos  []entity.PORecord
		want float64
	}{
		{"all on time", []entity.PORecord{po(day(1), day(2)), po(day(2), day(2))}, 100},
		{"half late", []entity.PORecord{po(day(1), day(2)), po(day(5), day(2))}, 50},
		{"all late", []entity.PORecord{po(day(9), day(2)), po(day(8), day(2))}, 0},
		{"thirds rounded", []entity.PORecord{po(day(1), day(2)), po(day(1), day(2)), po(day(9), day(2))}, 66.67},
	}

	engine := NewEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := engine.Compute(tt.pos, nil)
			got, ok := m.OnTimeDeliveryRate.Value()
			if !ok {
				t.Fatalf("rate unavailable: %s", m.OnTimeDeliveryRate.Reason())
			}
			if got != tt.want {
				t.Fatalf("rate = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Fatalf("rate %v out of [0,100]", got)
			}
		})
	}
}

func TestCompute_OnTimeUnavailableWhenDatesMissing(t *testing.T) {
	tests := []struct {
		name string
		pos  []entity.PORecord
	}{
		{"no records", nil},
		{"missing promised date", []entity.PORecord{po(day(1), nil)}},
		{"missing delivery date", []entity.PORecord{po(nil, day(2))}},
		{"one incomplete record poisons the set", []entity.PORecord{po(day(1), day(2)), po(nil, nil)}},
	}

	engine := NewEngine(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := engine.Compute(tt.pos, nil)
			if _, ok := m.OnTimeDeliveryRate.Value(); ok {
				t.Fatal("expected unavailable rate")
			}
			if m.OnTimeDeliveryRate.Reason() != ReasonMissingDates {
				t.Fatalf("reason = %q", m.OnTimeDeliveryRate.Reason())
			}
		})
	}
}

func TestCompute_InvoicePaidRate(t *testing.T) {
	engine := NewEngine(nil)

	m := engine.Compute(nil, []entity.InvoiceRecord{
		inv("Paid"), inv("CLEARED"), inv("settled"), inv("Pending"),
	})
	got, ok := m.InvoicePaidRate.Value()
	if !ok {
		t.Fatalf("rate unavailable: %s", m.InvoicePaidRate.Reason())
	}
	if got != 75 {
		t.Fatalf("rate = %v, want 75", got)
	}

	m = engine.Compute(nil, []entity.InvoiceRecord{inv("Paid"), inv("")})
	if _, ok := m.InvoicePaidRate.Value(); ok {
		t.Fatal("expected unavailable rate with a null status present")
	}
	if m.InvoicePaidRate.Reason() != ReasonMissingStatus {
		t.Fatalf("reason = %q", m.InvoicePaidRate.Reason())
	}
}

func TestCompute_Commentary(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		name     string
		pos      []entity.PORecord
		invs     []entity.InvoiceRecord
		contains []string
		omits    []string
	}{
		{
			"excellent and consistently paid",
			[]entity.PORecord{po(day(1), day(2))},
			[]entity.InvoiceRecord{inv("Paid")},
			[]string{"excellent regarding delivery times", "consistently paid"},
			nil,
		},
		{
			"poor delivery, payment issues",
			[]entity.PORecord{po(day(9), day(2))},
			[]entity.InvoiceRecord{inv("Pending")},
			[]string{"poor regarding delivery times", "issues with invoice payments"},
			nil,
		},
		{
			"unavailable metrics omit their clause",
			nil,
			[]entity.InvoiceRecord{inv("Paid")},
			[]string{"consistently paid"},
			[]string{"delivery times"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := engine.Compute(tt.pos, tt.invs)
			for _, want := range tt.contains {
				if !strings.Contains(m.Commentary, want) {
					t.Errorf("commentary %q missing %q", m.Commentary, want)
				}
			}
			for _, not := range tt.omits {
				if strings.Contains(m.Commentary, not) {
					t.Errorf("commentary %q should omit %q", m.Commentary, not)
				}
			}
		})
	}
}

func TestReconcile(t *testing.T) {
	pos := []entity.PORecord{
		{PONumber: "PO-1"}, {PONumber: "PO-2"}, {PONumber: "PO-3"},
	}
	invs := []entity.InvoiceRecord{
		{PONumber: "PO-1"}, {PONumber: "PO-2"}, {PONumber: "PO-9"},
	}

	out, err := Reconcile(pos, invs)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if out.Matched != 2 || out.POOnly != 1 || out.InvoiceOnly != 1 {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestReconcile_NoKeys(t *testing.T) {
	_, err := Reconcile([]entity.PORecord{{}}, []entity.InvoiceRecord{{}})
	if err == nil {
		t.Fatal("expected an error when no join keys exist")
	}
}
