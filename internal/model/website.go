package model

import "strings"

// blockedWebsitePatterns are provider policy and support pages that the
// detail scrapers pick up instead of a real homepage.
var blockedWebsitePatterns = []string{
	"policy.daum.net",
	"policy.kakao.com",
	"cs.kakao.com",
	"cs.daum.net",
}

// IsValidWebsite reports whether url is a usable homepage link.
func IsValidWebsite(url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}
	lower := strings.ToLower(url)
	for _, p := range blockedWebsitePatterns {
		if strings.Contains(lower, p) {
			return false
		}
	}
	return true
}

// NormalizeWebsite returns the link to render for url, or "" when the
// website must be treated as absent. Links without a scheme get https://.
func NormalizeWebsite(url string) string {
	if !IsValidWebsite(url) {
		return ""
	}
	url = strings.TrimSpace(url)
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + strings.TrimPrefix(url, "//")
}
