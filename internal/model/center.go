package model

import "strings"

// DefaultOperatingHours is applied when a center is created without
// explicit hours.
const DefaultOperatingHours = "Mon-Fri: 8:00 AM - 5:00 PM"

// RecyclingCenter is a directory entry for a drop-off facility.
// AcceptedTypes is canonically an ordered slice of category strings; the
// repository joins it with commas at the storage boundary.
type RecyclingCenter struct {
	ID             string
	Name           string
	Location       string
	Latitude       *float64
	Longitude      *float64
	FacilityType   string
	Contact        *string
	OperatingHours string
	AcceptedTypes  []string
	IsActive       bool
}

// Validate checks the creation invariants for a center.
func (c *RecyclingCenter) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if strings.TrimSpace(c.Location) == "" {
		return &ValidationError{Field: "location", Reason: "required"}
	}
	return nil
}

// NormalizeAcceptedTypes lower-cases, trims and de-duplicates the accepted
// waste categories while preserving their order. Both the structured-list
// and comma-joined inputs seen in the wild collapse to this one form.
func NormalizeAcceptedTypes(types []string) []string {
	seen := make(map[string]bool, len(types))
	out := make([]string, 0, len(types))
	for _, t := range types {
		for _, part := range strings.Split(t, ",") {
			p := strings.ToLower(strings.TrimSpace(part))
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// Accepts reports whether the center accepts the given waste category.
func (c *RecyclingCenter) Accepts(category string) bool {
	want := strings.ToLower(strings.TrimSpace(category))
	for _, t := range c.AcceptedTypes {
		if t == want {
			return true
		}
	}
	return false
}
