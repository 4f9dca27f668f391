// Package classify tags facilities with suspect-group, denomination and
// pastor labels derived from provider text.
package classify

import (
	"regexp"
	"strings"
)

// DefaultCultKeywords flags groups curated as suspect. The label is not an
// official designation.
var DefaultCultKeywords = []string{
	"신천지", "여호와의 증인", "왕국회관", "하나님의 교회", "안상홍",
	"통일교", "세계평화통일가정연합", "JMS", "기독교복음선교회",
	"만민중앙교회", "만민중앙성결교회", "세계복음화전도협회",
	"대순진리회", "증산도",
}

// DefaultDenominations are matched against the provider category string.
var DefaultDenominations = []string{
	"장로교", "감리교", "침례교", "순복음", "성결교",
	"루터교", "성공회", "구세군", "안식교", "천주교",
	"조계종", "태고종", "천태종",
}

var pastorRe = regexp.MustCompile(`담임[목사신부]*\s*[:：]?\s*([가-힣]{2,4})`)

// Classifier holds the keyword tables.
type Classifier struct {
	cultKeywords  []string
	denominations []string
}

// New creates a Classifier. Empty tables fall back to the defaults.
func New(cultKeywords, denominations []string) *Classifier {
	if len(cultKeywords) == 0 {
		cultKeywords = DefaultCultKeywords
	}
	if len(denominations) == 0 {
		denominations = DefaultDenominations
	}
	return &Classifier{cultKeywords: cultKeywords, denominations: denominations}
}

// CultType returns the first suspect-group keyword found in name or
// category, or "" when none match.
func (c *Classifier) CultType(name, category string) string {
	combined := strings.ToLower(name + " " + category)
	for _, kw := range c.cultKeywords {
		if strings.Contains(combined, strings.ToLower(kw)) {
			return kw
		}
	}
	return ""
}

// Denomination returns the first denomination contained in category.
func (c *Classifier) Denomination(category string) string {
	if category == "" {
		return ""
	}
	for _, d := range c.denominations {
		if strings.Contains(category, d) {
			return d
		}
	}
	return ""
}

// Pastor extracts the senior pastor's name from an introduction text.
func Pastor(description string) string {
	m := pastorRe.FindStringSubmatch(description)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
