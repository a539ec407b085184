package preference

import (
	"fmt"
	"strings"

	"dinner_planner/src/llm"
	"dinner_planner/src/location"
	"dinner_planner/src/model"

	"github.com/xeipuuv/gojsonschema"
)

const (
	DefaultLocation = "Near me"
	DefaultTime     = "Tonight, 7 PM"
	DefaultBudget   = "RM60-120"
)

var (
	// Used when the preferences field is missing or unusable
	DefaultPreferences = []string{"Good Food", "Casual Dining"}
	// Used when the model returned an empty preferences array
	EmptyPreferences = []string{"Good Food", "Nice Atmosphere"}
)

var recordSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"location":    map[string]any{"type": "string", "minLength": 1},
		"time":        map[string]any{"type": "string", "minLength": 1},
		"budget":      map[string]any{"type": "string", "minLength": 1},
		"preferences": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
}

// Defaults returns the fully defaulted record for loc.
func Defaults(loc *model.LocationRecord) model.PreferenceRecord {
	return model.PreferenceRecord{
		Location:    defaultLocation(loc),
		Time:        DefaultTime,
		Budget:      DefaultBudget,
		Preferences: append([]string(nil), DefaultPreferences...),
	}
}

// Complete fills every blank field of a record that did not come from
// ParseRecord with the same defaults the parser applies.
func Complete(rec model.PreferenceRecord, loc *model.LocationRecord) model.PreferenceRecord {
	out := model.PreferenceRecord{
		Location: orDefault(rec.Location, defaultLocation(loc)),
		Time:     orDefault(rec.Time, DefaultTime),
		Budget:   orDefault(rec.Budget, DefaultBudget),
	}

	if rec.Preferences == nil {
		out.Preferences = append([]string(nil), DefaultPreferences...)
		return out
	}
	out.Preferences = make([]string, 0, len(rec.Preferences))
	for _, p := range rec.Preferences {
		if p = strings.TrimSpace(p); p != "" {
			out.Preferences = append(out.Preferences, p)
		}
	}
	if len(out.Preferences) == 0 {
		out.Preferences = append([]string(nil), EmptyPreferences...)
	}
	return out
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}

// ParseRecord converts raw model output into a complete record.
// The record is always usable; err reports why defaults were needed for all fields.
func ParseRecord(raw string, loc *model.LocationRecord) (model.PreferenceRecord, error) {
	obj, err := llm.DecodeObject(raw)
	if err != nil {
		return Defaults(loc), fmt.Errorf("failed to decode preference JSON: %w", err)
	}

	invalid, err := validate(obj)
	if err != nil {
		return Defaults(loc), err
	}

	rec := model.PreferenceRecord{
		Location:    stringField(obj, "location", invalid, defaultLocation(loc)),
		Time:        stringField(obj, "time", invalid, DefaultTime),
		Budget:      stringField(obj, "budget", invalid, DefaultBudget),
		Preferences: preferencesField(obj, invalid),
	}
	return rec, nil
}

// validate returns the top-level fields that fail the record schema.
func validate(obj map[string]any) (map[string]bool, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(recordSchema),
		gojsonschema.NewGoLoader(obj),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	invalid := make(map[string]bool)
	for _, desc := range result.Errors() {
		invalid[desc.Field()] = true
	}
	return invalid, nil
}

func stringField(obj map[string]any, key string, invalid map[string]bool, fallback string) string {
	if invalid[key] {
		return fallback
	}
	s, ok := obj[key].(string)
	if !ok {
		return fallback
	}
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}

func preferencesField(obj map[string]any, invalid map[string]bool) []string {
	items, ok := obj["preferences"].([]any)
	if invalid["preferences"] || !ok {
		return append([]string(nil), DefaultPreferences...)
	}

	prefs := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			prefs = append(prefs, strings.TrimSpace(s))
		}
	}
	if len(prefs) == 0 {
		return append([]string(nil), EmptyPreferences...)
	}
	return prefs
}

func defaultLocation(loc *model.LocationRecord) string {
	if loc == nil {
		return DefaultLocation
	}
	return location.LocationString(loc)
}
