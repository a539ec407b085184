// Package candidate accumulates structured restaurant suggestions across
// repeated generation requests.
package candidate

import (
	"strings"

	"dinner_planner/src/model"

	"github.com/google/uuid"
)

// Merge appends the incoming candidates whose name is not already listed.
// Names compare case-insensitively. existing is never modified.
//
// Ids are the one field Merge may rewrite: an appended candidate whose id is
// blank or already taken is stored with a fresh restaurant_<uuid> id. The
// caller's incoming slice keeps its original values.
func Merge(existing, incoming []model.CandidateRestaurant) []model.CandidateRestaurant {
	merged := make([]model.CandidateRestaurant, 0, len(existing)+len(incoming))
	seen := make(map[string]bool, len(existing)+len(incoming))
	ids := make(map[string]bool, len(existing)+len(incoming))

	for _, c := range existing {
		merged = append(merged, c)
		seen[nameKey(c.Name)] = true
		ids[c.ID] = true
	}

	for _, c := range incoming {
		key := nameKey(c.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		if c.ID == "" || ids[c.ID] {
			c.ID = "restaurant_" + uuid.NewString()
		}
		ids[c.ID] = true
		merged = append(merged, c)
	}

	return merged
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
