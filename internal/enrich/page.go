package enrich

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/faithmap/faithmap/internal/browser"
	"github.com/faithmap/faithmap/internal/model"
)

// maxServiceTime caps harvested hours text, in characters.
const maxServiceTime = 300

// Selector priority lists. For each list the first non-empty match wins.
var (
	websiteSelectors     = []string{"a.link_detail", "a.link_homepage", `a[href*="http"]`}
	serviceTimeSelectors = []string{".txt_operation", ".list_operation", ".time_operation"}
	descriptionSelectors = []string{".txt_intro", ".cont_desc"}
	tagSelector          = ".tag_g a"
)

// BrowserSource renders the facility's map detail page and scrapes it.
type BrowserSource struct {
	renderer browser.Renderer
}

// NewBrowserSource creates a BrowserSource.
func NewBrowserSource(r browser.Renderer) *BrowserSource {
	return &BrowserSource{renderer: r}
}

// Name implements DetailSource.
func (s *BrowserSource) Name() string { return "browser" }

// Supports accepts facilities with a detail page URL.
func (s *BrowserSource) Supports(f model.Facility) bool {
	return f.KakaoURL != ""
}

// Fetch implements DetailSource.
func (s *BrowserSource) Fetch(ctx context.Context, f model.Facility) (*Detail, error) {
	html, err := s.renderer.Render(ctx, f.KakaoURL)
	if err != nil {
		return nil, err
	}
	return Extract(html)
}

// Extract pulls detail fields out of a rendered detail page.
func Extract(html string) (*Detail, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, eris.Wrap(err, "enrich: parse html")
	}

	d := &Detail{
		Website:     extractWebsite(doc),
		ServiceTime: truncate(firstText(doc, serviceTimeSelectors), maxServiceTime),
		Description: firstText(doc, descriptionSelectors),
	}
	doc.Find(tagSelector).Each(func(_ int, s *goquery.Selection) {
		tag := strings.TrimPrefix(strings.TrimSpace(s.Text()), "#")
		if tag != "" {
			d.Tags = append(d.Tags, tag)
		}
	})
	return d, nil
}

func extractWebsite(doc *goquery.Document) string {
	for _, sel := range websiteSelectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			if isExternal(href) {
				found = href
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// isExternal accepts absolute links that leave the map provider.
func isExternal(href string) bool {
	return strings.HasPrefix(href, "http") &&
		!strings.Contains(href, "kakao.com") &&
		!strings.Contains(href, "map.kakao")
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if t := strings.TrimSpace(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
