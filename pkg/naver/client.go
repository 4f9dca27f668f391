// Package naver provides a client for the Naver local search API.
package naver

import (
	"context"
	"encoding/json"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/faithmap/faithmap/internal/resilience"
)

const defaultBaseURL = "https://openapi.naver.com"

// MaxDisplay is the largest result count the local endpoint returns.
const MaxDisplay = 5

// coordScale converts mapx/mapy integers into decimal degrees.
const coordScale = 1e7

var tagRe = regexp.MustCompile(`<[^>]*>`)

// Client performs Naver local search operations.
type Client interface {
	LocalSearch(ctx context.Context, query string, display int) (*LocalResponse, error)
}

// LocalResponse is the response from local search.
type LocalResponse struct {
	Total   int    `json:"total"`
	Start   int    `json:"start"`
	Display int    `json:"display"`
	Items   []Item `json:"items"`
}

// Item is a single local search hit. Title has its highlight markup
// removed by the client.
type Item struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Telephone   string `json:"telephone"`
	Address     string `json:"address"`
	RoadAddress string `json:"roadAddress"`
	MapX        string `json:"mapx"`
	MapY        string `json:"mapy"`
}

// LatLng converts the WGS84 x10^7 integer coordinates to decimal degrees.
func (it Item) LatLng() (lat, lng float64, err error) {
	y, err := strconv.ParseFloat(strings.TrimSpace(it.MapY), 64)
	if err != nil {
		return 0, 0, eris.Wrapf(err, "naver: parse mapy %q", it.MapY)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(it.MapX), 64)
	if err != nil {
		return 0, 0, eris.Wrapf(err, "naver: parse mapx %q", it.MapX)
	}
	return y / coordScale, x / coordScale, nil
}

// StripTags removes markup such as <b> highlights and unescapes entities.
func StripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(tagRe.ReplaceAllString(s, "")))
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	http         *http.Client
}

// NewClient creates a Naver search client from application credentials.
func NewClient(clientID, clientSecret string, opts ...Option) Client {
	c := &httpClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) LocalSearch(ctx context.Context, query string, display int) (*LocalResponse, error) {
	if display <= 0 || display > MaxDisplay {
		display = MaxDisplay
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(display))
	params.Set("sort", "random")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/search/local.json?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "naver: create request")
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "naver: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "naver: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resilience.NewStatusError(
			eris.Errorf("naver: unexpected status %d: %s", resp.StatusCode, string(body)),
			resp.StatusCode,
		)
	}

	var result LocalResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "naver: unmarshal response")
	}
	for i := range result.Items {
		result.Items[i].Title = StripTags(result.Items[i].Title)
	}

	return &result, nil
}
