package llm

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/vendorlens/vendorlens/constants"
)

// SanitizeFigures normalizes a raw extraction reply so it can validate
// against the figures schema: nulls and unknown keys are dropped, and
// numbers the model quoted as strings (possibly with currency symbols
// or thousands separators) are re-parsed. Returns the cleaned document
// and the keys that were dropped.
func SanitizeFigures(doc []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, err
	}

	known := make(map[string]struct{}, len(constants.AllFigures))
	for _, name := range constants.AllFigures {
		known[name] = struct{}{}
	}

	var dropped []string
	for k, v := range m {
		if _, ok := known[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k)
			continue
		}
		switch t := v.(type) {
		case nil:
			// null means "not found"; keep it, the schema allows null
		case float64:
			// already numeric
		case string:
			f, ok := parseLooseNumber(t)
			if !ok {
				delete(m, k)
				dropped = append(dropped, k)
				continue
			}
			m[k] = f
		default:
			delete(m, k)
			dropped = append(dropped, k)
		}
	}

	b, err := json.Marshal(m)
	if err != nil {
		return nil, nil, err
	}
	return b, dropped, nil
}

// ExtractJSONObject finds the first outermost balanced {...} in a model
// reply, skipping prose and markdown fences around it.
func ExtractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func parseLooseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "n/a") {
		return 0, false
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
