package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/oneirolab/oneiro-backend/internal/domain"
)

type AnalyzeInput struct {
	DreamText string
	Requester domain.RequesterIdentity
}

// AnalyzeResult carries the normalized analysis and, when persistence is
// configured and succeeded, the stored dream record.
type AnalyzeResult struct {
	Analysis *domain.Analysis
	Dream    *domain.Dream
}

// AnalyzeDream runs the full interpretation pipeline: build the prompt,
// invoke the model, normalize its response, then persist the dream and fan
// its tags out. An interpretation that was produced but could not be stored
// is still an error: callers must not hand out a record that does not exist.
func (s *Service) AnalyzeDream(ctx context.Context, input AnalyzeInput) (*AnalyzeResult, error) {
	text := strings.TrimSpace(input.DreamText)
	if text == "" {
		return nil, domain.NewValidationError("dream", "is required")
	}

	raw, err := s.gen.Generate(ctx, buildAnalysisPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("generate analysis: %w", err)
	}

	analysis, err := normalizeAnalysis(raw)
	if err != nil {
		return nil, err
	}

	if s.dreams == nil {
		s.log.InfoContext(ctx, "analysis complete, persistence not configured")
		return &AnalyzeResult{Analysis: analysis}, nil
	}

	dream, err := s.persist(ctx, text, analysis, input.Requester)
	if err != nil {
		return nil, err
	}
	return &AnalyzeResult{Analysis: analysis, Dream: dream}, nil
}

// persist stores the dream, then upserts and links its tags. The dream
// insert is the point of no return: if it fails nothing else runs. Tag
// failures after it are logged and skipped so a flaky tag never costs the
// dreamer their interpretation.
func (s *Service) persist(ctx context.Context, text string, analysis *domain.Analysis, requester domain.RequesterIdentity) (*domain.Dream, error) {
	dream := &domain.Dream{
		DreamText:          text,
		Title:              analysis.Title,
		Summary:            analysis.Summary,
		Interpretation:     analysis.Interpretation,
		ReflectionQuestion: analysis.ReflectionQuestion,
		Symbols:            analysis.Symbols,
		Archetypes:         analysis.Archetypes,
		Themes:             analysis.Themes,
		IsPrivate:          false,
	}
	if requester.IsAuthenticated() {
		dream.UserID = requester.UserID
	} else if requester.IsAnonymous() {
		anonID := requester.AnonymousID
		dream.AnonymousUserID = &anonID
	}

	saved, err := s.dreams.Insert(ctx, dream)
	if err != nil {
		return nil, fmt.Errorf("%w: save dream: %s", domain.ErrPersistence, err)
	}

	tagIDs := s.upsertTags(ctx, analysis)
	if len(tagIDs) > 0 {
		if err := s.tags.LinkDream(ctx, saved.ID, tagIDs); err != nil {
			s.log.ErrorContext(ctx, "link tags to dream",
				slog.String("dream_id", saved.ID.String()), slog.String("error", err.Error()))
		}
	}
	return saved, nil
}

// upsertTags registers every extracted tag, symbols first, then archetypes,
// then themes. A tag that fails to upsert is dropped from the batch.
func (s *Service) upsertTags(ctx context.Context, analysis *domain.Analysis) []int64 {
	var tagIDs []int64
	upsert := func(name string, tagType domain.TagType) {
		tag, err := s.tags.UpsertByName(ctx, name, tagType)
		if err != nil {
			s.log.ErrorContext(ctx, "upsert tag",
				slog.String("name", name), slog.String("type", string(tagType)), slog.String("error", err.Error()))
			return
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	for _, sym := range analysis.Symbols {
		upsert(sym.Symbol, domain.TagTypeSymbol)
	}
	for _, arc := range analysis.Archetypes {
		upsert(arc.Archetype, domain.TagTypeArchetype)
	}
	for _, theme := range analysis.Themes {
		upsert(theme, domain.TagTypeTheme)
	}
	return tagIDs
}
