// Package vocabulary holds the keyword tables shared by the readiness
// classifier and the search query builder.
package vocabulary

import "strings"

type Category string

const (
	Cuisine    Category = "cuisine"
	Budget     Category = "budget"
	Location   Category = "location"
	Atmosphere Category = "atmosphere"
)

// Categories lists every preference category in evaluation order
var Categories = []Category{Cuisine, Budget, Location, Atmosphere}

// Vocabulary is a set of lower-case substring tables.
type Vocabulary struct {
	// Signals checked against the latest user message
	LocationSignals []string `yaml:"location_signals"`
	BudgetSignals   []string `yaml:"budget_signals"`
	// Phrases in an assistant reply that indicate it is ready to recommend
	ReadinessPhrases []string `yaml:"readiness_phrases"`

	// Category tables checked across the whole conversation
	CuisineTerms    []string `yaml:"cuisine"`
	BudgetTerms     []string `yaml:"budget"`
	LocationTerms   []string `yaml:"location"`
	AtmosphereTerms []string `yaml:"atmosphere"`

	// Phrases that justify a live web search
	SearchTriggers []string `yaml:"search_triggers"`
}

// Default returns the built-in tables.
func Default() *Vocabulary {
	return &Vocabulary{
		LocationSignals: []string{"near", "in ", "location", "around"},
		BudgetSignals:   []string{"rm", "budget", "price", "cheap", "expensive", "affordable"},
		ReadinessPhrases: []string{
			"perfect", "let me find", "here are some", "i recommend",
			"based on your preferences", "great choice", "sounds good", "suggest",
		},
		CuisineTerms: []string{
			"italian", "japanese", "chinese", "thai", "indian", "malay", "korean",
			"western", "mexican", "french", "vietnamese", "seafood", "pizza", "sushi",
			"ramen", "steak", "burger", "halal", "vegetarian", "vegan", "nasi lemak",
			"dim sum", "bbq", "fusion",
		},
		BudgetTerms: []string{"rm", "budget", "price", "cheap", "expensive", "affordable", "under", "ringgit"},
		LocationTerms: []string{
			"near", "in ", "location", "around", "nearby", "area", "downtown", "city centre", "city center",
		},
		AtmosphereTerms: []string{
			"romantic", "casual", "cozy", "cosy", "fine dining", "family", "quiet", "rooftop",
			"outdoor", "view", "live music", "ambiance", "ambience", "atmosphere", "date night",
		},
		SearchTriggers: []string{
			"restaurants near", "best restaurants", "opening hours", "reviews", "trending",
			"new restaurant", "open now", "menu", "latest",
		},
	}
}

// Terms returns the table for a category.
func (v *Vocabulary) Terms(c Category) []string {
	switch c {
	case Cuisine:
		return v.CuisineTerms
	case Budget:
		return v.BudgetTerms
	case Location:
		return v.LocationTerms
	case Atmosphere:
		return v.AtmosphereTerms
	}
	return nil
}

// ContainsAny reports whether lowered text contains any of terms.
func ContainsAny(text string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// Matches returns the terms present in lowered text, in table order.
func Matches(text string, terms []string) []string {
	var found []string
	for _, term := range terms {
		if term != "" && strings.Contains(text, term) {
			found = append(found, term)
		}
	}
	return found
}

// merge replaces every table that override sets.
func (v *Vocabulary) merge(override *Vocabulary) *Vocabulary {
	out := *v
	pick := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = lower(src)
		}
	}
	pick(&out.LocationSignals, override.LocationSignals)
	pick(&out.BudgetSignals, override.BudgetSignals)
	pick(&out.ReadinessPhrases, override.ReadinessPhrases)
	pick(&out.CuisineTerms, override.CuisineTerms)
	pick(&out.BudgetTerms, override.BudgetTerms)
	pick(&out.LocationTerms, override.LocationTerms)
	pick(&out.AtmosphereTerms, override.AtmosphereTerms)
	pick(&out.SearchTriggers, override.SearchTriggers)
	return &out
}

func lower(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}
