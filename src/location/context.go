// Package location renders a LocationRecord into the strings interpolated
// into prompts and search queries.
package location

import (
	"fmt"
	"math"
	"strings"

	"dinner_planner/src/model"
)

const (
	separator = " | "
	// Fixes below this radius are reported as high precision
	highPrecisionMeters = 100
)

// BuildContext returns the prompt context for rec, or "" when rec is nil.
// Field order is part of the prompt contract.
func BuildContext(rec *model.LocationRecord) string {
	if rec == nil {
		return ""
	}

	var parts []string
	if rec.Address != "" {
		parts = append(parts, rec.Address)
	} else if place := cityCountry(rec); place != "" {
		parts = append(parts, place)
	}

	parts = append(parts, fmt.Sprintf("Coordinates: %.6f, %.6f", rec.Latitude, rec.Longitude))

	if rec.Accuracy != nil && *rec.Accuracy < highPrecisionMeters {
		parts = append(parts, fmt.Sprintf("Location accuracy: %dm (high precision)", int(math.Round(*rec.Accuracy))))
	}

	return strings.Join(parts, separator)
}

// LocationString returns the short display form used in search queries.
func LocationString(rec *model.LocationRecord) string {
	if rec == nil {
		return ""
	}
	if rec.Address != "" {
		return rec.Address
	}
	if rec.City != "" && rec.Country != "" {
		return rec.City + ", " + rec.Country
	}
	return fmt.Sprintf("%.4f, %.4f", rec.Latitude, rec.Longitude)
}

func cityCountry(rec *model.LocationRecord) string {
	var place []string
	if rec.City != "" {
		place = append(place, rec.City)
	}
	if rec.Country != "" {
		place = append(place, rec.Country)
	}
	return strings.Join(place, ", ")
}
