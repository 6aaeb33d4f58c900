package vision

import "regexp"

// substitution rewrites one category of safety-filter trigger words into a
// mystical paraphrase that keeps the dream's imagery intact.
type substitution struct {
	pattern     *regexp.Regexp
	replacement string
}

// substitutions run in order, each exactly once over the whole text. Order
// matters: a later rule may act on text already rewritten by an earlier one,
// and replacements are never re-scanned.
var substitutions = []substitution{
	{regexp.MustCompile(`(?i)\b(violence|kill|murder|suicide|torture|abuse|attack|weapon|gun|knife|bomb|explosive|poison|drug|cocaine|heroin|meth|sex|sexual|nude|naked|breast|penis|vagina|rape|orgasm|porn|fetish|bdsm)\b`), "profound experience"},
	{regexp.MustCompile(`(?i)\b(terror|horror|nightmare|evil|demon|devil|hell|sin)\b`), "profound mystery"},
	{regexp.MustCompile(`(?i)\b(rage|hate|revenge|angry|furious)\b`), "passionate energy"},
	{regexp.MustCompile(`(?i)\b(trauma|ptsd|panic attack|anxiety disorder|depression|mental illness)\b`), "psychological journey"},
	{regexp.MustCompile(`(?i)\b(death|dying|dead|corpse|grave|tomb|funeral)\b`), "rebirth"},
	{regexp.MustCompile(`(?i)\b(physical pain|hurt|injured|wounded|bleeding|blood)\b`), "awakening sensation"},
	{regexp.MustCompile(`(?i)\b(fear|afraid|scared|terrified)\b`), "mystical uncertainty"},
	{regexp.MustCompile(`(?i)\b(dark|darkness|shadow|shadowy)\b`), "mystical shadow"},
	{regexp.MustCompile(`(?i)\b(guilt|shame|regret)\b`), "inner wisdom"},
}

// sanitizeContent rewrites words that commonly trip image-provider safety
// systems, then caps the result at maxLen runes.
func sanitizeContent(content string, maxLen int) string {
	for _, sub := range substitutions {
		content = sub.pattern.ReplaceAllString(content, sub.replacement)
	}
	if runes := []rune(content); len(runes) > maxLen {
		content = string(runes[:maxLen])
	}
	return content
}
