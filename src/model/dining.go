package model

import "time"

// ----------------------------------------------------
// ================ Preferences ================

// PreferenceRecord is the normalized dining request. Every field is always populated.
type PreferenceRecord struct {
	Location    string   `json:"location"`
	Time        string   `json:"time"`
	Budget      string   `json:"budget"`
	Preferences []string `json:"preferences"`
}

// ----------------------------------------------------
// ================ Candidates ================

// CandidateRestaurant is one structured restaurant suggestion
type CandidateRestaurant struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Cuisine     string   `json:"cuisine"`
	Rating      float64  `json:"rating"`
	PriceRange  string   `json:"priceRange"`
	Distance    string   `json:"distance"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Features    []string `json:"features"`
}

// ----------------------------------------------------
// ================ Search ================

// SearchResult is one ranked hit returned by the search endpoint
type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// SearchResponse is the search endpoint payload
type SearchResponse struct {
	Answer  string         `json:"answer,omitempty"`
	Results []SearchResult `json:"results"`
}

// ----------------------------------------------------
// ================ Session ================

// SessionState is everything kept per session besides the transcript
type SessionState struct {
	Preferences *PreferenceRecord     `json:"preferences,omitempty"`
	Candidates  []CandidateRestaurant `json:"candidates"`
	UpdatedAt   time.Time             `json:"updated_at"`
}
