package naver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faithmap/faithmap/internal/resilience"
)

func TestLocalSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search/local.json", r.URL.Path)
		assert.Equal(t, "id-1", r.Header.Get("X-Naver-Client-Id"))
		assert.Equal(t, "secret-1", r.Header.Get("X-Naver-Client-Secret"))
		assert.Equal(t, "부산 해운대구 성당", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("display"))
		assert.Equal(t, "random", r.URL.Query().Get("sort"))

		_, _ = w.Write([]byte(`{
			"total": 1, "start": 1, "display": 1,
			"items": [{
				"title": "천주교 <b>해운대</b>성당",
				"category": "종교>성당",
				"telephone": "",
				"address": "부산광역시 해운대구 우동 1",
				"roadAddress": "부산광역시 해운대구 해운대로 1",
				"mapx": "1291586120",
				"mapy": "351631470"
			}]
		}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient("id-1", "secret-1", WithBaseURL(srv.URL))
	resp, err := client.LocalSearch(context.Background(), "부산 해운대구 성당", 0)

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	item := resp.Items[0]
	assert.Equal(t, "천주교 해운대성당", item.Title)

	lat, lng, err := item.LatLng()
	require.NoError(t, err)
	assert.InDelta(t, 35.163147, lat, 1e-7)
	assert.InDelta(t, 129.158612, lng, 1e-7)
}

func TestLocalSearch_DisplayClamped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("display"))
		_, _ = w.Write([]byte(`{"items":[]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	resp, err := NewClient("a", "b", WithBaseURL(srv.URL)).LocalSearch(context.Background(), "q", 50)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestLocalSearch_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient("a", "b", WithBaseURL(srv.URL)).LocalSearch(context.Background(), "q", 5)
	require.Error(t, err)
	assert.True(t, resilience.IsRateLimited(err))
}

func TestLocalSearch_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`)) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := NewClient("a", "b", WithBaseURL(srv.URL)).LocalSearch(context.Background(), "q", 5)
	require.Error(t, err)
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "사랑의교회", StripTags("<b>사랑의</b>교회"))
	assert.Equal(t, "A & B", StripTags("A &amp; <b>B</b>"))
	assert.Equal(t, "", StripTags("  "))
}

func TestItem_LatLngInvalid(t *testing.T) {
	_, _, err := Item{MapX: "abc", MapY: "1"}.LatLng()
	require.Error(t, err)
}
