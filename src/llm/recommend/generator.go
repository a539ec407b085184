package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dinner_planner/src/llm"
	"dinner_planner/src/logger"
	"dinner_planner/src/metrics"
	"dinner_planner/src/model"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

const (
	narrativeOperation  = "narrative"
	structuredOperation = "structured"

	// LoadMoreRequest asks the model to avoid repeating earlier suggestions
	LoadMoreRequest = "different restaurants from previous suggestions"
)

// Generator produces free-text and structured restaurant recommendations.
type Generator struct {
	narrativeChain  compose.Runnable[map[string]any, *schema.Message]
	structuredChain compose.Runnable[map[string]any, *schema.Message]
}

// NewGenerator compiles one chain per prompt. A nil chatModel yields a
// generator that always serves the fallbacks.
func NewGenerator(ctx context.Context, chatModel einomodel.BaseChatModel) (*Generator, error) {
	if chatModel == nil {
		return &Generator{}, nil
	}

	narrativeChain, err := compose.NewChain[map[string]any, *schema.Message]().
		AppendChatTemplate(createNarrativeTemplate()).
		AppendChatModel(chatModel).
		Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating narrative chain: %w", err)
	}

	structuredChain, err := compose.NewChain[map[string]any, *schema.Message]().
		AppendChatTemplate(createStructuredTemplate()).
		AppendChatModel(chatModel).
		Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating structured chain: %w", err)
	}

	return &Generator{narrativeChain: narrativeChain, structuredChain: structuredChain}, nil
}

// Narrative returns markdown suggestions, or NarrativeFallback on any failure.
func (g *Generator) Narrative(ctx context.Context, prefs model.PreferenceRecord, summary string) string {
	if g.narrativeChain == nil {
		llm.Skipped(narrativeOperation)
		metrics.Fallbacks.WithLabelValues(narrativeOperation).Inc()
		return NarrativeFallback
	}

	start := time.Now()
	out, err := g.narrativeChain.Invoke(ctx, templateVars(prefs, summary, ""))
	llm.Observe(narrativeOperation, start, err)
	if err != nil {
		logger.Warn().Err(err).Msg("Narrative generation failed, using fallback")
		metrics.Fallbacks.WithLabelValues(narrativeOperation).Inc()
		return NarrativeFallback
	}

	text := strings.TrimSpace(out.Content)
	if text == "" {
		logger.Warn().Err(model.ErrEmptyModelOutput).Msg("Narrative generation returned nothing, using fallback")
		metrics.Fallbacks.WithLabelValues(narrativeOperation).Inc()
		return NarrativeFallback
	}
	return text
}

// Structured returns 3-4 candidates, or FallbackCandidates on any failure.
func (g *Generator) Structured(ctx context.Context, prefs model.PreferenceRecord, summary, additionalRequest string) []model.CandidateRestaurant {
	if g.structuredChain == nil {
		llm.Skipped(structuredOperation)
		metrics.Fallbacks.WithLabelValues(structuredOperation).Inc()
		return FallbackCandidates()
	}

	start := time.Now()
	out, err := g.structuredChain.Invoke(ctx, templateVars(prefs, summary, additionalRequest))
	llm.Observe(structuredOperation, start, err)
	if err != nil {
		logger.Warn().Err(err).Msg("Structured generation failed, using fallback list")
		metrics.Fallbacks.WithLabelValues(structuredOperation).Inc()
		return FallbackCandidates()
	}

	candidates, err := ParseCandidates(out.Content)
	if err != nil {
		logger.Warn().Err(err).Int("output_length", len(out.Content)).Msg("Structured output unparseable, using fallback list")
		metrics.Fallbacks.WithLabelValues(structuredOperation).Inc()
		return FallbackCandidates()
	}

	logger.Debug().Int("candidates", len(candidates)).Dur("elapsed", time.Since(start)).Msg("Structured candidates generated")
	return candidates
}
