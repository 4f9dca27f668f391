// Package collect queries local-search providers for religious facilities
// across administrative regions.
package collect

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/faithmap/faithmap/internal/model"
)

// Keyword maps a search keyword to the facility type its hits receive.
type Keyword struct {
	Keyword string
	Type    model.FacilityType
}

// DefaultKeywords is the built-in facility keyword table.
var DefaultKeywords = []Keyword{
	{Keyword: "교회", Type: model.Church},
	{Keyword: "성당", Type: model.Catholic},
	{Keyword: "사찰", Type: model.Temple},
	{Keyword: "절", Type: model.Temple},
}

// ParseKeywords parses "keyword=type" pairs such as "교회=church".
func ParseKeywords(specs []string) ([]Keyword, error) {
	out := make([]Keyword, 0, len(specs))
	for _, spec := range specs {
		kw, typ, ok := strings.Cut(spec, "=")
		kw = strings.TrimSpace(kw)
		if !ok || kw == "" {
			return nil, eris.Errorf("collect: invalid keyword %q (want keyword=type)", spec)
		}
		t, err := model.ParseType(typ)
		if err != nil {
			return nil, eris.Wrapf(err, "collect: keyword %q", kw)
		}
		out = append(out, Keyword{Keyword: kw, Type: t})
	}
	return out, nil
}

// Target is one search unit: a region paired with a facility keyword.
type Target struct {
	Region  string
	Keyword string
	Type    model.FacilityType
}

// Query returns the free-text search query for the target.
func (t Target) Query() string {
	return strings.TrimSpace(t.Region + " " + t.Keyword)
}

// Targets expands regions × keywords, region-major.
func Targets(regions []string, keywords []Keyword) []Target {
	out := make([]Target, 0, len(regions)*len(keywords))
	for _, r := range regions {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		for _, kw := range keywords {
			out = append(out, Target{Region: r, Keyword: kw.Keyword, Type: kw.Type})
		}
	}
	return out
}
