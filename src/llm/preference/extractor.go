package preference

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dinner_planner/src/llm"
	"dinner_planner/src/location"
	"dinner_planner/src/logger"
	"dinner_planner/src/metrics"
	"dinner_planner/src/model"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

const operation = "extract_preferences"

// Extractor turns a conversation into a PreferenceRecord.
type Extractor struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewExtractor compiles the Template → ChatModel chain.
// A nil chatModel yields an extractor that always returns defaults.
func NewExtractor(ctx context.Context, chatModel einomodel.BaseChatModel) (*Extractor, error) {
	if chatModel == nil {
		return &Extractor{}, nil
	}

	chain, err := compose.NewChain[map[string]any, *schema.Message]().
		AppendChatTemplate(createPreferenceTemplate()).
		AppendChatModel(chatModel).
		Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating preference chain: %w", err)
	}

	return &Extractor{chain: chain}, nil
}

// Extract never fails: every error path resolves to defaulted fields.
func (e *Extractor) Extract(ctx context.Context, conversation []string, loc *model.LocationRecord) model.PreferenceRecord {
	if e.chain == nil {
		llm.Skipped(operation)
		metrics.Fallbacks.WithLabelValues(operation).Inc()
		return Defaults(loc)
	}

	locationContext := location.BuildContext(loc)
	if locationContext == "" {
		locationContext = "unknown"
	}

	templateVars := map[string]any{
		"location_context": locationContext,
		"conversation":     strings.Join(conversation, " "),
	}

	start := time.Now()
	out, err := e.chain.Invoke(ctx, templateVars)
	llm.Observe(operation, start, err)
	if err != nil {
		logger.Warn().Err(err).Msg("Preference extraction failed, using defaults")
		metrics.Fallbacks.WithLabelValues(operation).Inc()
		return Defaults(loc)
	}

	rec, err := ParseRecord(out.Content, loc)
	if err != nil {
		logger.Warn().Err(err).Int("output_length", len(out.Content)).Msg("Preference parsing failed, using defaults")
		metrics.Fallbacks.WithLabelValues(operation).Inc()
	}

	logger.Debug().
		Str("location", rec.Location).
		Str("time", rec.Time).
		Str("budget", rec.Budget).
		Strs("preferences", rec.Preferences).
		Dur("elapsed", time.Since(start)).
		Msg("Preferences extracted")

	return rec
}
