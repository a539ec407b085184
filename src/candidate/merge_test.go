package candidate

import (
	"strings"
	"testing"

	"dinner_planner/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(names ...string) []model.CandidateRestaurant {
	list := make([]model.CandidateRestaurant, 0, len(names))
	for _, n := range names {
		list = append(list, model.CandidateRestaurant{ID: "id_" + n, Name: n})
	}
	return list
}

func TestMerge_CaseInsensitive(t *testing.T) {
	existing := named("The Cove")
	incoming := named("the cove", "Sunset Grill")

	got := Merge(existing, incoming)

	assert.Equal(t, named("The Cove", "Sunset Grill"), got)
	assert.Equal(t, named("The Cove"), existing)
}

func TestMerge_OnlyNewAppended(t *testing.T) {
	got := Merge(named("A", "C"), named("A", "B"))
	assert.Equal(t, named("A", "C", "B"), got)
}

func TestMerge_DoesNotAliasExisting(t *testing.T) {
	existing := make([]model.CandidateRestaurant, 1, 4)
	existing[0] = model.CandidateRestaurant{ID: "1", Name: "Marina Bay"}

	got := Merge(existing, named("Spice Garden"))
	got[0].Name = "changed"

	assert.Equal(t, "Marina Bay", existing[0].Name)
	// spare capacity in existing must not receive appended items
	assert.Empty(t, existing[:2][1].Name)
}

func TestMerge_DuplicatesWithinIncoming(t *testing.T) {
	got := Merge(nil, named("Nando's", "NANDO'S ", "Kampung Kitchen"))
	assert.Equal(t, named("Nando's", "Kampung Kitchen"), got)
}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
	assert.Equal(t, named("A"), Merge(named("A"), nil))
}

func TestMerge_ReassignsTakenIDs(t *testing.T) {
	existing := []model.CandidateRestaurant{{ID: "1", Name: "Marina Bay"}, {ID: "2", Name: "Spice Garden"}}
	incoming := []model.CandidateRestaurant{{ID: "1", Name: "Kampung Kitchen"}, {ID: "9", Name: "Sunset Grill"}, {Name: "Nasi Kandar Pelita"}}

	got := Merge(existing, incoming)

	require.Len(t, got, 5)
	assert.Equal(t, "Kampung Kitchen", got[2].Name)
	assert.True(t, strings.HasPrefix(got[2].ID, "restaurant_"))
	assert.Equal(t, "9", got[3].ID)
	assert.True(t, strings.HasPrefix(got[4].ID, "restaurant_"))
	assert.NotEqual(t, got[2].ID, got[4].ID)
	assert.Equal(t, "1", incoming[0].ID)
}
