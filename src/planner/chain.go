package planner

import (
	"context"
	"fmt"

	"dinner_planner/src/model"

	"github.com/cloudwego/eino/compose"
)

const (
	narrativeKey  = "narrative"
	candidatesKey = "candidates"
	summaryKey    = "search_summary"
)

type recommendInput struct {
	prefs    model.PreferenceRecord
	query    string
	location string
	search   bool
	summary  string
}

// buildRecommendChain compiles augment -> (narrative | structured | summary) -> assemble.
// The parallel branches run concurrently and each one degrades on its own.
func (p *Planner) buildRecommendChain(ctx context.Context) (compose.Runnable[*recommendInput, *Recommendation], error) {
	augment := compose.InvokableLambda(func(ctx context.Context, in *recommendInput) (*recommendInput, error) {
		if in.search {
			in.summary = p.Augmenter.Summarize(ctx, in.query, in.location)
		}
		return in, nil
	})

	parallel := compose.NewParallel().
		AddLambda(narrativeKey, compose.InvokableLambda(func(ctx context.Context, in *recommendInput) (string, error) {
			return p.Generator.Narrative(ctx, in.prefs, in.summary), nil
		})).
		AddLambda(candidatesKey, compose.InvokableLambda(func(ctx context.Context, in *recommendInput) ([]model.CandidateRestaurant, error) {
			return p.Generator.Structured(ctx, in.prefs, in.summary, ""), nil
		})).
		AddLambda(summaryKey, compose.InvokableLambda(func(ctx context.Context, in *recommendInput) (*recommendInput, error) {
			return in, nil
		}))

	assemble := compose.InvokableLambda(func(ctx context.Context, out map[string]any) (*Recommendation, error) {
		narrative, _ := out[narrativeKey].(string)
		candidates, _ := out[candidatesKey].([]model.CandidateRestaurant)
		in, ok := out[summaryKey].(*recommendInput)
		if !ok {
			return nil, fmt.Errorf("missing %s branch output", summaryKey)
		}
		if candidates == nil {
			candidates = []model.CandidateRestaurant{}
		}
		return &Recommendation{
			Narrative:     narrative,
			SearchSummary: in.summary,
			Preferences:   in.prefs,
			Candidates:    candidates,
		}, nil
	})

	chain, err := compose.NewChain[*recommendInput, *Recommendation]().
		AppendLambda(augment).
		AppendParallel(parallel).
		AppendLambda(assemble).
		Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating recommendation chain: %w", err)
	}
	return chain, nil
}
