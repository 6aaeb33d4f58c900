package analysis

import "fmt"

const analysisPromptTemplate = `You are a master Jungian analyst with deep insight into the unconscious mind. Analyze this dream with wisdom and depth.

TAG RULES: Use 1-2 words max. No "/", "(", ")". Create separate tags for multiple concepts.

IMPORTANT LIMITS: Return MAXIMUM 5 symbols and MAXIMUM 3 archetypes. Choose only the most significant ones.

Respond ONLY with this JSON structure:

{
  "title": "Poetic, evocative title that captures the dream's essence",
  "summary": "A profound, insightful 1-2 sentence summary that reveals the dream's deeper meaning and psychological significance - not just what happened, but what it means for the soul's journey",
  "interpretation": "Detailed Jungian analysis exploring symbols, archetypes, and unconscious processes",
  "identified_symbols": [{"symbol": "Ocean", "meaning": "Profound psychological insight into this symbol's deeper significance and what it reveals about the dreamer's inner landscape"}],
  "identified_archetypes": [{"archetype": "The Hero", "representation": "Deep analysis of how this archetype manifests in the dream and what it reveals about the dreamer's psychological journey"}],
  "identified_themes": ["Transformation", "Identity", "Healing"],
  "reflection_question": "A penetrating question that guides deeper self-reflection"
}

Dream: %s`

// buildAnalysisPrompt wraps the dreamer's narrative in the instruction
// template the model is steered with.
func buildAnalysisPrompt(dreamText string) string {
	return fmt.Sprintf(analysisPromptTemplate, dreamText)
}
