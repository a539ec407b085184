// Package planner runs the session-scoped dinner planning pipeline: chat,
// readiness, preference extraction, search augmentation and recommendation.
package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dinner_planner/src/candidate"
	"dinner_planner/src/conversation"
	"dinner_planner/src/llm/assistant"
	"dinner_planner/src/llm/preference"
	"dinner_planner/src/llm/recommend"
	"dinner_planner/src/location"
	"dinner_planner/src/logger"
	"dinner_planner/src/model"
	"dinner_planner/src/readiness"
	"dinner_planner/src/search"
	"dinner_planner/src/storage"

	"github.com/cloudwego/eino/compose"
)

const DefaultReadinessDelay = 2 * time.Second

type Config struct {
	SearchAlways   bool
	ReadinessDelay time.Duration
	HistoryTurns   int
}

// ChatResult is the outcome of one chat exchange. When Ready is set the
// client should move on to recommendations after SuggestAfter.
type ChatResult struct {
	Reply        string        `json:"reply"`
	Ready        bool          `json:"ready"`
	SuggestAfter time.Duration `json:"-"`
}

type Recommendation struct {
	Narrative     string                      `json:"narrative"`
	SearchSummary string                      `json:"search_summary"`
	Preferences   model.PreferenceRecord      `json:"preferences"`
	Candidates    []model.CandidateRestaurant `json:"candidates"`
}

// Components groups the pipeline stages a Planner drives.
type Components struct {
	Conversations *conversation.Service
	Sessions      *storage.SessionStore
	Responder     *assistant.Responder
	Classifier    *readiness.Classifier
	Extractor     *preference.Extractor
	Augmenter     *search.Augmenter
	Generator     *recommend.Generator
}

type Planner struct {
	Components
	cfg       Config
	strategy  conversation.ContextStrategy
	recommend compose.Runnable[*recommendInput, *Recommendation]
}

func New(ctx context.Context, components Components, cfg Config) (*Planner, error) {
	if cfg.ReadinessDelay <= 0 {
		cfg.ReadinessDelay = DefaultReadinessDelay
	}

	p := &Planner{
		Components: components,
		cfg:        cfg,
		strategy:   conversation.NewAssistantContextStrategy(cfg.HistoryTurns),
	}

	chain, err := p.buildRecommendChain(ctx)
	if err != nil {
		return nil, err
	}
	p.recommend = chain
	return p, nil
}

// Chat records one user turn, answers it and decides readiness over the stored transcript.
func (p *Planner) Chat(ctx context.Context, sessionID, text string, loc *model.LocationRecord) (ChatResult, error) {
	history, err := p.Conversations.ContextFor(ctx, sessionID, p.strategy)
	if err != nil {
		return ChatResult{}, fmt.Errorf("failed to load conversation: %w", err)
	}

	if err := p.Conversations.AddUserMessage(ctx, sessionID, text); err != nil {
		return ChatResult{}, fmt.Errorf("failed to store user message: %w", err)
	}

	reply := p.Responder.Reply(ctx, text, history, loc)

	if err := p.Conversations.AddAssistantMessage(ctx, sessionID, reply); err != nil {
		return ChatResult{}, fmt.Errorf("failed to store assistant reply: %w", err)
	}

	transcript, err := p.Conversations.Transcript(ctx, sessionID)
	if err != nil {
		return ChatResult{}, fmt.Errorf("failed to load transcript: %w", err)
	}

	earlier := transcript
	if len(earlier) >= 2 {
		earlier = earlier[:len(earlier)-2]
	}
	turns := (len(transcript) + 1) / 2

	result := ChatResult{Reply: reply}
	result.Ready = p.Classifier.IsReady(text, reply, turns, earlier...)
	if result.Ready {
		result.SuggestAfter = p.cfg.ReadinessDelay
	}

	logger.Info().
		Str("session_id", sessionID).
		Int("turns", turns).
		Bool("ready", result.Ready).
		Msg("Chat turn handled")

	return result, nil
}

// ExtractPreferences snapshots the transcript, extracts a record and stores it on the session.
func (p *Planner) ExtractPreferences(ctx context.Context, sessionID string, loc *model.LocationRecord) (model.PreferenceRecord, error) {
	transcript, err := p.Conversations.Transcript(ctx, sessionID)
	if err != nil {
		return model.PreferenceRecord{}, fmt.Errorf("failed to load transcript: %w", err)
	}

	prefs := p.Extractor.Extract(ctx, transcript, loc)

	state, err := p.Sessions.GetOrEmpty(ctx, sessionID)
	if err != nil {
		return model.PreferenceRecord{}, err
	}
	state.Preferences = &prefs
	if err := p.Sessions.Set(ctx, sessionID, state); err != nil {
		return model.PreferenceRecord{}, err
	}
	return prefs, nil
}

// Recommend produces a fresh recommendation and replaces the session's candidate list.
// When prefs is nil the stored preferences are used, extracting them if needed.
func (p *Planner) Recommend(ctx context.Context, sessionID string, prefs *model.PreferenceRecord, loc *model.LocationRecord) (Recommendation, error) {
	input, state, err := p.prepare(ctx, sessionID, prefs, loc)
	if err != nil {
		return Recommendation{}, err
	}

	rec, err := p.recommend.Invoke(ctx, input)
	if err != nil {
		return Recommendation{}, fmt.Errorf("recommendation pipeline failed: %w", err)
	}

	rec.Candidates = candidate.Merge(nil, rec.Candidates)

	state.Preferences = &input.prefs
	state.Candidates = rec.Candidates
	if err := p.Sessions.Set(ctx, sessionID, state); err != nil {
		return Recommendation{}, err
	}

	logger.Info().
		Str("session_id", sessionID).
		Int("candidates", len(rec.Candidates)).
		Bool("searched", input.search).
		Msg("Recommendations generated")

	return *rec, nil
}

// LoadMore asks for different restaurants and appends the new names to the session list.
func (p *Planner) LoadMore(ctx context.Context, sessionID string, loc *model.LocationRecord) (Recommendation, error) {
	input, state, err := p.prepare(ctx, sessionID, nil, loc)
	if err != nil {
		return Recommendation{}, err
	}

	more := p.Generator.Structured(ctx, input.prefs, "", recommend.LoadMoreRequest)
	before := len(state.Candidates)

	state.Preferences = &input.prefs
	state.Candidates = candidate.Merge(state.Candidates, more)
	if err := p.Sessions.Set(ctx, sessionID, state); err != nil {
		return Recommendation{}, err
	}

	logger.Info().
		Str("session_id", sessionID).
		Int("added", len(state.Candidates)-before).
		Int("candidates", len(state.Candidates)).
		Msg("More recommendations loaded")

	return Recommendation{Preferences: input.prefs, Candidates: state.Candidates}, nil
}

// History returns the stored transcript.
func (p *Planner) History(ctx context.Context, sessionID string) ([]string, error) {
	return p.Conversations.Transcript(ctx, sessionID)
}

// Reset forgets both the transcript and the session state.
func (p *Planner) Reset(ctx context.Context, sessionID string) error {
	if err := p.Conversations.Clear(ctx, sessionID); err != nil {
		return err
	}
	return p.Sessions.Delete(ctx, sessionID)
}

// SearchRequest selects one of the search modes. Restaurant wins over Cuisine,
// which wins over the plain query.
type SearchRequest struct {
	Query      string
	Restaurant string
	Cuisine    string
	Budget     string
	Location   *model.LocationRecord
}

// Search returns a prompt-ready summary of live results. It never fails.
func (p *Planner) Search(ctx context.Context, req SearchRequest) string {
	where := location.LocationString(req.Location)
	switch {
	case req.Restaurant != "":
		return p.Augmenter.SearchSpecificRestaurant(ctx, req.Restaurant, where)
	case req.Cuisine != "":
		return p.Augmenter.SearchCuisineType(ctx, req.Cuisine, where, req.Budget)
	default:
		return p.Augmenter.Summarize(ctx, req.Query, where)
	}
}

// prepare resolves the preference record and loads the session state.
func (p *Planner) prepare(ctx context.Context, sessionID string, prefs *model.PreferenceRecord, loc *model.LocationRecord) (*recommendInput, *model.SessionState, error) {
	transcript, err := p.Conversations.Transcript(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	state, err := p.Sessions.GetOrEmpty(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	var resolved model.PreferenceRecord
	switch {
	case prefs != nil:
		resolved = preference.Complete(*prefs, loc)
	case state.Preferences != nil:
		resolved = preference.Complete(*state.Preferences, loc)
	default:
		resolved = p.Extractor.Extract(ctx, transcript, loc)
	}

	input := &recommendInput{
		prefs:    resolved,
		query:    searchQuery(p.Augmenter, resolved, transcript),
		location: searchLocation(resolved, loc),
	}
	input.search = p.cfg.SearchAlways ||
		p.Augmenter.ShouldSearch(strings.Join(transcript, " ")+" "+search.PreferenceQuery(resolved))

	return input, state, nil
}

func searchQuery(a *search.Augmenter, prefs model.PreferenceRecord, transcript []string) string {
	if len(prefs.Preferences) > 0 {
		return strings.Join(prefs.Preferences, " ")
	}
	return a.KeywordQuery(strings.Join(transcript, " "))
}

// searchLocation prefers a named place from the record over the device fix.
func searchLocation(prefs model.PreferenceRecord, loc *model.LocationRecord) string {
	if prefs.Location != "" && prefs.Location != preference.DefaultLocation {
		return prefs.Location
	}
	if loc != nil {
		return location.LocationString(loc)
	}
	return ""
}
