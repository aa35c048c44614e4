package llm

import "github.com/vendorlens/vendorlens/constants"

// BuildFiguresJSONSchema returns a JSON-Schema (draft 2020-12 subset)
// constraining the extraction reply: every target figure keyed by name,
// number or null, nothing else. Passed to the model as a structured
// output constraint and used locally to validate the reply.
func BuildFiguresJSONSchema() map[string]any {
	props := make(map[string]any, len(constants.AllFigures))
	for _, name := range constants.AllFigures {
		props[name] = map[string]any{"type": []string{"number", "null"}}
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

// BuildNarrativeJSONSchema constrains the lender-analysis reply.
func BuildNarrativeJSONSchema() map[string]any {
	stringList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"rationale": map[string]any{"type": "string", "minLength": 1},
			"risks":     stringList,
			"strengths": stringList,
		},
		"required": []string{"rationale", "risks", "strengths"},
	}
}
