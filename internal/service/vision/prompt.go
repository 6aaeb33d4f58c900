package vision

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/oneirolab/oneiro-backend/internal/config"
	"github.com/oneirolab/oneiro-backend/internal/domain"
)

const (
	defaultArchetype       = "The Seeker"
	defaultSymbolMotif     = "mystical elements"
	defaultThemeMotif      = "transformation"
	fallbackArchetypeScene = "a mystical figure with archetypal presence and symbolic elements"
)

// archetypeScenes maps archetype names to concrete scene fragments. Matched
// in order by case-insensitive substring on the name without its "The "
// prefix, so "Shadow Self" still resolves to The Shadow's imagery.
var archetypeScenes = []struct {
	name  string
	scene string
}{
	{"The Hero", "a figure in flowing robes standing tall with a mystical weapon or staff"},
	{"The Wise Old Man", "an elder figure with a long beard and glowing eyes, surrounded by mystical symbols"},
	{"The Great Mother", "a nurturing figure with flowing garments and maternal energy"},
	{"The Shadow", "a mysterious figure emerging from darkness with ambiguous features"},
	{"The Anima", "a graceful feminine figure with ethereal beauty and flowing hair"},
	{"The Animus", "a strong masculine figure with commanding presence and mystical aura"},
	{"The Trickster", "a playful figure with mischievous energy and transformative power"},
	{"The Seeker", "a figure on a journey with a lantern or guiding light"},
	{"The Healer", "a figure with healing energy and restorative power"},
	{"The Teacher", "a figure with knowledge symbols and wisdom emanating from them"},
	{"The Guardian", "a protective figure with shield-like elements and watchful presence"},
	{"The Magician", "a figure with magical tools and transformative energy"},
}

// archetypeScene resolves an archetype name to its visual fragment.
func archetypeScene(archetype string) string {
	normalized := strings.ToLower(archetype)
	for _, entry := range archetypeScenes {
		key := strings.TrimPrefix(strings.ToLower(entry.name), "the ")
		if strings.Contains(normalized, key) {
			return entry.scene
		}
	}
	return fallbackArchetypeScene
}

const tarotPromptTemplate = `Create a mystical tarot card-style digital painting with a deep purple, indigo, and violet color palette. Vertical composition with these specific elements:

CENTRAL FIGURE: %s
PRIMARY SYMBOLS: %s arranged around the central figure
THEMES: %s represented through symbolic elements

STYLE: Ethereal, mystical, and dreamlike with flowing purple gradients, indigo shadows, and silver-gold highlights. The composition should be centered and balanced like a tarot card, with symbolic elements arranged in a meaningful way around the central archetypal figure.

LIGHTING: Soft, diffused lighting with ethereal glows emanating from the symbols and archetypal figure. Deep shadows in purple and indigo tones create depth and mystery.

TECHNIQUE: Highly detailed digital art with a painterly quality, rich textures, and mystical atmosphere. The overall feel should be introspective and profound, like a window into the unconscious mind.

CRITICAL: Absolutely no text, words, letters, or written symbols anywhere in the image. Pure visual symbolism only.`

const saferPromptTemplate = `Create a mystical tarot card-style digital painting with deep purple, indigo, and violet color palette. Vertical composition featuring: %s as the central figure with %s symbol. Ethereal, flowing gradients with silver-gold highlights. Soft, diffused lighting with ethereal glows. Highly detailed digital art with painterly quality and mystical atmosphere. Centered, balanced composition like a tarot card. Absolutely no text, words, or letters anywhere. Pure visual symbolism only.`

// composePrompt builds the primary image prompt around the dream's first
// archetype, top three symbols and top two themes, all sanitized before they
// reach the provider.
func composePrompt(d *domain.Dream, cfg config.VisionConfig) string {
	symbolMotif := defaultSymbolMotif
	if len(d.Symbols) > 0 {
		names := make([]string, 0, 3)
		for _, s := range d.Symbols[:min(3, len(d.Symbols))] {
			names = append(names, s.Symbol)
		}
		symbolMotif = sanitizeContent(strings.Join(names, ", "), cfg.SanitizedMaxLen)
	}

	archetype := defaultArchetype
	if len(d.Archetypes) > 0 {
		archetype = d.Archetypes[0].Archetype
	}

	themeMotif := defaultThemeMotif
	if len(d.Themes) > 0 {
		themeMotif = sanitizeContent(strings.Join(d.Themes[:min(2, len(d.Themes))], " and "), cfg.SanitizedMaxLen)
	}

	prompt := fmt.Sprintf(tarotPromptTemplate, archetypeScene(archetype), symbolMotif, themeMotif)
	return clampPrompt(prompt, cfg.PromptMaxLen)
}

// composeSaferPrompt builds the reduced retry prompt used after a safety
// rejection: only the first symbol, stripped to alphanumerics, and the
// archetype scene remain.
func composeSaferPrompt(d *domain.Dream, cfg config.VisionConfig) string {
	symbol := "mystical symbol"
	if len(d.Symbols) > 0 {
		if cleaned := strings.ToLower(alphanumeric(d.Symbols[0].Symbol)); cleaned != "" {
			symbol = cleaned
		}
	}

	archetype := defaultArchetype
	if len(d.Archetypes) > 0 {
		archetype = d.Archetypes[0].Archetype
	}

	prompt := fmt.Sprintf(saferPromptTemplate, archetypeScene(archetype), symbol)
	return clampPrompt(prompt, cfg.PromptMaxLen)
}

// clampPrompt enforces the provider's character budget, truncating with a
// continuation marker rather than failing.
func clampPrompt(prompt string, maxLen int) string {
	if len(prompt) <= maxLen {
		return prompt
	}
	return prompt[:maxLen-100] + "..."
}

var nonAlphanumeric = regexp.MustCompile(`[^\w\s]`)

func alphanumeric(s string) string {
	return strings.TrimSpace(nonAlphanumeric.ReplaceAllString(s, ""))
}

