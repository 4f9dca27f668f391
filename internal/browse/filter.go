// Package browse implements the read-side views over a facility snapshot:
// filtering, pagination, viewport clustering and the detail view model.
package browse

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/faithmap/faithmap/internal/model"
	"github.com/faithmap/faithmap/internal/region"
)

// AllTypes selects every facility type.
const AllTypes = "all"

// Filter narrows a facility list. Zero values match everything.
type Filter struct {
	Type   string
	Region string
	Query  string
}

// Key returns a stable cache key for the filter.
func (f Filter) Key() string {
	return strings.Join([]string{f.typeSel(), strings.TrimSpace(f.Region), fold(f.Query)}, "\x1f")
}

func (f Filter) typeSel() string {
	t := strings.ToLower(strings.TrimSpace(f.Type))
	if t == "" {
		return AllTypes
	}
	return t
}

// Match reports whether a single facility passes the filter.
func (f Filter) Match(fc model.Facility) bool {
	return f.matchFolded(fc, fold(f.Query))
}

func (f Filter) matchFolded(fc model.Facility, q string) bool {
	if t := f.typeSel(); t != AllTypes && !matchType(fc, t) {
		return false
	}
	if !region.Matches(fc.Region, f.Region) {
		return false
	}
	if q == "" {
		return true
	}
	return strings.Contains(fold(fc.Name), q) ||
		strings.Contains(fold(fc.Address), q) ||
		(fc.Denomination != "" && strings.Contains(fold(fc.Denomination), q))
}

// matchType treats the cult selector as "flagged", whatever the stored type.
func matchType(fc model.Facility, t string) bool {
	if t == string(model.Cult) {
		return fc.Flagged()
	}
	return string(fc.Type) == t
}

// Apply returns the facilities matching f in their original order. The
// input is not modified.
func Apply(list []model.Facility, f Filter) []model.Facility {
	q := fold(f.Query)
	out := make([]model.Facility, 0, len(list))
	for _, fc := range list {
		if f.matchFolded(fc, q) {
			out = append(out, fc)
		}
	}
	return out
}

// fold normalizes to NFC and applies Unicode case folding so that
// decomposed Hangul and mixed-case Latin compare equal.
func fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Fold().String(norm.NFC.String(s))
}
