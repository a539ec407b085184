package recommend

import "dinner_planner/src/model"

const NarrativeFallback = "I'm sorry, I couldn't generate restaurant suggestions right now. Please try again in a moment."

// FallbackCandidates returns the static list served when structured generation fails.
func FallbackCandidates() []model.CandidateRestaurant {
	return []model.CandidateRestaurant{
		{
			ID:          "fallback_1",
			Name:        "Local Favorite Restaurant",
			Cuisine:     "Local",
			Rating:      4.5,
			PriceRange:  "RM60-100",
			Distance:    "2.0 km",
			Description: "Popular local restaurant with great atmosphere and authentic flavors.",
			Image:       "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=800&h=600&fit=crop",
			Features:    []string{"Local Favorite", "Authentic", "Good Value"},
		},
		{
			ID:          "fallback_2",
			Name:        "Neighbourhood Bistro",
			Cuisine:     "International",
			Rating:      4.3,
			PriceRange:  "RM50-90",
			Distance:    "1.5 km",
			Description: "Relaxed bistro with a varied menu, friendly service and a cosy dining room.",
			Image:       "https://images.unsplash.com/photo-1414235077428-338989a2e8c0?w=800&h=600&fit=crop",
			Features:    []string{"Casual Dining", "Family Friendly", "Cosy"},
		},
	}
}
