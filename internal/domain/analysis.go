package domain

// Analysis is the normalized structured output of the interpretation
// pipeline. The four scalar fields are irreplaceable narrative content; the
// array fields are enrichments that may have been filled from fallbacks.
type Analysis struct {
	Title              string           `json:"title"`
	Summary            string           `json:"summary"`
	Interpretation     string           `json:"interpretation"`
	ReflectionQuestion string           `json:"reflection_question"`
	Symbols            []SymbolEntry    `json:"identified_symbols"`
	Archetypes         []ArchetypeEntry `json:"identified_archetypes"`
	Themes             []string         `json:"identified_themes"`
}
