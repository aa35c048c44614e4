package llm

import (
	"encoding/json"
	"reflect"
	"sort"
	"testing"
)

func TestSanitizeFigures(t *testing.T) {
	raw := []byte(`{
		"revenue": 1000,
		"net_income": "1,250.5",
		"total_assets": "$2000",
		"total_liabilities": null,
		"inventory": "n/a",
		"ebitda": 99,
		"total_equity": true
	}`)

	cleaned, dropped, err := SanitizeFigures(raw)
	if err != nil {
		t.Fatalf("SanitizeFigures: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(cleaned, &m); err != nil {
		t.Fatalf("unmarshal cleaned: %v", err)
	}

	if m["revenue"] != float64(1000) {
		t.Errorf("revenue = %v", m["revenue"])
	}
	if m["net_income"] != 1250.5 {
		t.Errorf("net_income = %v", m["net_income"])
	}
	if m["total_assets"] != float64(2000) {
		t.Errorf("total_assets = %v", m["total_assets"])
	}
	if v, ok := m["total_liabilities"]; !ok || v != nil {
		t.Errorf("total_liabilities = %v (present %v), want kept null", v, ok)
	}

	sort.Strings(dropped)
	want := []string{"ebitda", "inventory", "total_equity"}
	if !reflect.DeepEqual(dropped, want) {
		t.Errorf("dropped = %v, want %v", dropped, want)
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "bare object",
			input: `{"revenue": 1}`,
			want:  `{"revenue": 1}`,
			ok:    true,
		},
		{
			name:  "markdown fenced",
			input: "Here you go:\n```json\n{\"revenue\": 1}\n```\nLet me know!",
			want:  `{"revenue": 1}`,
			ok:    true,
		},
		{
			name:  "nested braces",
			input: `prefix {"a": {"b": 2}} suffix`,
			want:  `{"a": {"b": 2}}`,
			ok:    true,
		},
		{
			name:  "brace inside string",
			input: `{"note": "uses { in text", "v": 3}`,
			want:  `{"note": "uses { in text", "v": 3}`,
			ok:    true,
		},
		{
			name:  "no object",
			input: "sorry, I cannot help with that",
			ok:    false,
		},
		{
			name:  "unbalanced",
			input: `{"a": 1`,
			ok:    false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
