package recommend

import (
	"fmt"
	"strconv"
	"strings"

	"dinner_planner/src/llm"
	"dinner_planner/src/model"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

const (
	minRating = 4.0
	maxRating = 5.0
)

// ParseCandidates extracts the candidate array from raw model output.
// Order: strip fences, first balanced [...], whole cleaned text.
// A decoded value that is not an array yields an empty list.
// Fields are read leniently: numeric ids and quoted ratings are accepted.
func ParseCandidates(raw string) ([]model.CandidateRestaurant, error) {
	cleaned := llm.StripCodeFences(raw)

	if sub, ok := llm.FirstBalanced(cleaned, '[', ']'); ok {
		var items []any
		if err := sonic.UnmarshalString(sub, &items); err == nil {
			return normalize(items), nil
		}
	}

	var value any
	if err := sonic.UnmarshalString(cleaned, &value); err != nil {
		return nil, fmt.Errorf("failed to parse candidate JSON: %w", err)
	}
	items, ok := value.([]any)
	if !ok {
		return []model.CandidateRestaurant{}, nil
	}
	return normalize(items), nil
}

// normalize converts the decoded objects, keeps ids unique within the batch
// and ratings within range. Entries that are not objects are skipped.
func normalize(items []any) []model.CandidateRestaurant {
	list := make([]model.CandidateRestaurant, 0, len(items))
	seen := make(map[string]bool, len(items))

	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}

		c := model.CandidateRestaurant{
			ID:          textField(obj["id"]),
			Name:        textField(obj["name"]),
			Cuisine:     textField(obj["cuisine"]),
			Rating:      numberField(obj["rating"]),
			PriceRange:  textField(obj["priceRange"]),
			Distance:    textField(obj["distance"]),
			Description: textField(obj["description"]),
			Image:       textField(obj["image"]),
			Features:    listField(obj["features"]),
		}

		if c.ID == "" || seen[c.ID] {
			c.ID = "restaurant_" + uuid.NewString()
		}
		seen[c.ID] = true

		if c.Rating < minRating {
			c.Rating = minRating
		} else if c.Rating > maxRating {
			c.Rating = maxRating
		}
		list = append(list, c)
	}
	return list
}

func textField(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// numberField returns 0 for anything that is not a number or a numeric string.
func numberField(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func listField(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s := textField(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}
