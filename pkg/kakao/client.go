// Package kakao provides a client for the Kakao Local keyword search API.
package kakao

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/faithmap/faithmap/internal/resilience"
)

const defaultBaseURL = "https://dapi.kakao.com"

// MaxPageSize is the largest page the keyword endpoint accepts.
const MaxPageSize = 15

// Client performs Kakao Local API operations.
type Client interface {
	KeywordSearch(ctx context.Context, query string, page int) (*KeywordResponse, error)
}

// KeywordResponse is the response from keyword search.
type KeywordResponse struct {
	Meta      Meta       `json:"meta"`
	Documents []Document `json:"documents"`
}

// Meta carries paging information.
type Meta struct {
	TotalCount    int  `json:"total_count"`
	PageableCount int  `json:"pageable_count"`
	IsEnd         bool `json:"is_end"`
}

// Document is a single place returned by keyword search. Coordinates are
// decimal-degree strings: X is longitude, Y is latitude.
type Document struct {
	ID                string `json:"id"`
	PlaceName         string `json:"place_name"`
	CategoryName      string `json:"category_name"`
	CategoryGroupCode string `json:"category_group_code"`
	Phone             string `json:"phone"`
	AddressName       string `json:"address_name"`
	RoadAddressName   string `json:"road_address_name"`
	X                 string `json:"x"`
	Y                 string `json:"y"`
	PlaceURL          string `json:"place_url"`
}

// LatLng parses the document coordinates.
func (d Document) LatLng() (lat, lng float64, err error) {
	lat, err = strconv.ParseFloat(d.Y, 64)
	if err != nil {
		return 0, 0, eris.Wrapf(err, "kakao: parse y %q", d.Y)
	}
	lng, err = strconv.ParseFloat(d.X, 64)
	if err != nil {
		return 0, 0, eris.Wrapf(err, "kakao: parse x %q", d.X)
	}
	return lat, lng, nil
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
	restKey string
	baseURL string
	http    *http.Client
}

// NewClient creates a Kakao Local API client authenticated with a REST key.
func NewClient(restKey string, opts ...Option) Client {
	c := &httpClient{
		restKey: restKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) KeywordSearch(ctx context.Context, query string, page int) (*KeywordResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(MaxPageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/local/search/keyword.json?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "kakao: create request")
	}
	req.Header.Set("Authorization", "KakaoAK "+c.restKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "kakao: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "kakao: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resilience.NewStatusError(
			eris.Errorf("kakao: unexpected status %d: %s", resp.StatusCode, string(body)),
			resp.StatusCode,
		)
	}

	var result KeywordResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "kakao: unmarshal response")
	}
	if result.Documents == nil {
		return nil, eris.New("kakao: response has no documents")
	}

	return &result, nil
}
