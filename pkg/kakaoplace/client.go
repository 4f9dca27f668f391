// Package kakaoplace reads the Kakao Map place detail JSON endpoint.
package kakaoplace

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"

	"github.com/faithmap/faithmap/internal/resilience"
)

const (
	defaultBaseURL = "https://place.map.kakao.com"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	referer        = "https://map.kakao.com/"
)

// Client fetches place details.
type Client interface {
	Detail(ctx context.Context, placeID string) (*Place, error)
}

// Place is the subset of the detail document used for enrichment.
type Place struct {
	ID           string
	Homepage     string
	OpenHours    string
	Introduction string
	Tags         []string
}

// Fetcher performs a GET and returns status and body. Implementations must
// honor ctx.
type Fetcher interface {
	Get(ctx context.Context, url string, header map[string]string) (int, []byte, error)
}

// Option configures the client.
type Option func(*client)

// WithBaseURL overrides the default endpoint base URL.
func WithBaseURL(url string) Option {
	return func(c *client) {
		c.baseURL = url
	}
}

// WithFetcher overrides the transport.
func WithFetcher(f Fetcher) Option {
	return func(c *client) {
		c.fetcher = f
	}
}

type client struct {
	baseURL string
	fetcher Fetcher
}

// NewClient creates a place detail client. Without WithFetcher it uses a
// plain net/http transport.
func NewClient(opts ...Option) Client {
	c := &client{baseURL: defaultBaseURL}
	for _, o := range opts {
		o(c)
	}
	if c.fetcher == nil {
		c.fetcher = NewHTTPFetcher(nil)
	}
	return c
}

func (c *client) Detail(ctx context.Context, placeID string) (*Place, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, eris.New("kakaoplace: empty place id")
	}

	status, body, err := c.fetcher.Get(ctx, c.baseURL+"/main/v/"+placeID, map[string]string{
		"User-Agent": userAgent,
		"Referer":    referer,
		"Accept":     "application/json",
	})
	if err != nil {
		return nil, eris.Wrapf(err, "kakaoplace: get %s", placeID)
	}
	if status < 200 || status > 299 {
		return nil, resilience.NewStatusError(
			eris.Errorf("kakaoplace: unexpected status %d for %s", status, placeID),
			status,
		)
	}
	if !gjson.ValidBytes(body) {
		return nil, eris.Errorf("kakaoplace: invalid json for %s", placeID)
	}

	p := Parse(body)
	p.ID = placeID
	return p, nil
}

// Parse extracts a Place from a detail document. Missing fields are left
// empty.
func Parse(body []byte) *Place {
	info := gjson.GetBytes(body, "basicInfo")
	p := &Place{
		Homepage:     strings.TrimSpace(info.Get("homepage").String()),
		Introduction: strings.TrimSpace(info.Get("introduction").String()),
		OpenHours:    openHours(info.Get("openHour")),
	}
	for _, tag := range info.Get("tags").Array() {
		if s := strings.TrimSpace(tag.String()); s != "" {
			p.Tags = append(p.Tags, s)
		}
	}
	return p
}

// openHours renders periods as "name: t1, t2 | name: t3", falling back to
// the realtime open text.
func openHours(oh gjson.Result) string {
	periods := oh.Get("periodList")
	if periods.IsArray() {
		var parts []string
		for _, p := range periods.Array() {
			var times []string
			for _, t := range p.Get("timeList").Array() {
				times = append(times, t.Get("timeSE").String())
			}
			parts = append(parts, p.Get("periodName").String()+": "+strings.Join(times, ", "))
		}
		return strings.Join(parts, " | ")
	}
	return strings.TrimSpace(oh.Get("realtime.open").String())
}
