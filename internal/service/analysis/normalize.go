package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oneirolab/oneiro-backend/internal/domain"
)

// fallbackThemes stands in when the model omits or mangles the themes array.
var fallbackThemes = []string{"Transformation", "Self-Discovery", "Integration"}

// rawAnalysis defers decoding of the array fields so a broken array does not
// take the whole payload down with it.
type rawAnalysis struct {
	Title              string          `json:"title"`
	Summary            string          `json:"summary"`
	Interpretation     string          `json:"interpretation"`
	ReflectionQuestion string          `json:"reflection_question"`
	Symbols            json.RawMessage `json:"identified_symbols"`
	Archetypes         json.RawMessage `json:"identified_archetypes"`
	Themes             json.RawMessage `json:"identified_themes"`
}

// normalizeAnalysis turns the model's raw completion into a validated
// Analysis. Models routinely wrap JSON in markdown fences or preface it with
// prose, so the object is cut out between the first "{" and the last "}"
// before decoding. A payload that cannot be decoded, or that is missing any
// of the scalar fields, is rejected. Missing or malformed array fields are
// replaced with fallbacks instead.
func normalizeAnalysis(raw string) (*domain.Analysis, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	jsonStr, err := extractJSON(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrMalformedAnalysis, err)
	}

	var payload rawAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrMalformedAnalysis, err)
	}

	for _, field := range []struct{ name, value string }{
		{"title", payload.Title},
		{"summary", payload.Summary},
		{"interpretation", payload.Interpretation},
		{"reflection_question", payload.ReflectionQuestion},
	} {
		if strings.TrimSpace(field.value) == "" {
			return nil, fmt.Errorf("%w: missing %s", domain.ErrIncompleteAnalysis, field.name)
		}
	}

	analysis := &domain.Analysis{
		Title:              payload.Title,
		Summary:            payload.Summary,
		Interpretation:     payload.Interpretation,
		ReflectionQuestion: payload.ReflectionQuestion,
		Symbols:            decodeArray[domain.SymbolEntry](payload.Symbols, nil),
		Archetypes:         decodeArray[domain.ArchetypeEntry](payload.Archetypes, nil),
		Themes:             decodeArray[string](payload.Themes, fallbackThemes),
	}
	if analysis.Symbols == nil {
		analysis.Symbols = []domain.SymbolEntry{}
	}
	if analysis.Archetypes == nil {
		analysis.Archetypes = []domain.ArchetypeEntry{}
	}
	return analysis, nil
}

// decodeArray decodes an optional JSON array, substituting fallback when the
// field is absent, null, or not an array of the expected shape.
func decodeArray[T any](raw json.RawMessage, fallback []T) []T {
	if len(raw) == 0 {
		return fallback
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return fallback
	}
	return out
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
