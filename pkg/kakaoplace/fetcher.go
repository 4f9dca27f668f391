package kakaoplace

import (
	"context"
	"io"
	"net/http"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/rotisserie/eris"
)

// HTTPFetcher is a Fetcher over net/http.
type HTTPFetcher struct {
	http *http.Client
}

// NewHTTPFetcher wraps hc, or a client with a 12s timeout when hc is nil.
func NewHTTPFetcher(hc *http.Client) *HTTPFetcher {
	if hc == nil {
		hc = &http.Client{Timeout: 12 * time.Second}
	}
	return &HTTPFetcher{http: hc}
}

// Get implements Fetcher.
func (f *HTTPFetcher) Get(ctx context.Context, url string, header map[string]string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, eris.Wrap(err, "kakaoplace: create request")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return 0, nil, eris.Wrap(err, "kakaoplace: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, eris.Wrap(err, "kakaoplace: read response")
	}
	return resp.StatusCode, body, nil
}

// BrowserFetcher is a Fetcher whose TLS handshake matches a desktop Chrome,
// which the place endpoint expects from map.kakao.com visitors.
type BrowserFetcher struct {
	client tls_client.HttpClient
}

// NewBrowserFetcher creates a Chrome-fingerprinted fetcher.
func NewBrowserFetcher(timeout time.Duration) (*BrowserFetcher, error) {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	c, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(),
		tls_client.WithTimeoutSeconds(int(timeout.Seconds())),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithRandomTLSExtensionOrder(),
	)
	if err != nil {
		return nil, eris.Wrap(err, "kakaoplace: create tls client")
	}
	return &BrowserFetcher{client: c}, nil
}

// Get implements Fetcher.
func (f *BrowserFetcher) Get(ctx context.Context, url string, header map[string]string) (int, []byte, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, url, nil)
	if err != nil {
		return 0, nil, eris.Wrap(err, "kakaoplace: create request")
	}
	req.Header = fhttp.Header{}
	order := make([]string, 0, len(header))
	for k, v := range header {
		req.Header.Set(k, v)
		order = append(order, k)
	}
	req.Header[fhttp.HeaderOrderKey] = order

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, nil, eris.Wrap(err, "kakaoplace: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, eris.Wrap(err, "kakaoplace: read response")
	}
	return resp.StatusCode, body, nil
}
