package kakaoplace

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faithmap/faithmap/internal/resilience"
)

const detailBody = `{
  "isMapUser": "N",
  "basicInfo": {
    "cid": 22377855,
    "placenamefull": "사랑의교회",
    "homepage": "http://www.sarang.org",
    "introduction": "담임목사: 오정현 목사가 섬기는 교회입니다.",
    "tags": ["주차", "예배", " "],
    "openHour": {
      "periodList": [
        {"periodName": "주일예배", "timeList": [{"timeSE": "07:00 ~ 08:00"}, {"timeSE": "11:00 ~ 12:30"}]},
        {"periodName": "수요예배", "timeList": [{"timeSE": "19:30 ~ 21:00"}]}
      ],
      "realtime": {"open": "Y"}
    }
  }
}`

func TestDetail_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/main/v/22377855", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		assert.Equal(t, "https://map.kakao.com/", r.Header.Get("Referer"))
		_, _ = w.Write([]byte(detailBody)) //nolint:errcheck
	}))
	defer srv.Close()

	p, err := NewClient(WithBaseURL(srv.URL)).Detail(context.Background(), "22377855")
	require.NoError(t, err)
	assert.Equal(t, "22377855", p.ID)
	assert.Equal(t, "http://www.sarang.org", p.Homepage)
	assert.Equal(t, "주일예배: 07:00 ~ 08:00, 11:00 ~ 12:30 | 수요예배: 19:30 ~ 21:00", p.OpenHours)
	assert.Equal(t, "담임목사: 오정현 목사가 섬기는 교회입니다.", p.Introduction)
	assert.Equal(t, []string{"주차", "예배"}, p.Tags)
}

func TestParse_RealtimeFallback(t *testing.T) {
	p := Parse([]byte(`{"basicInfo":{"openHour":{"realtime":{"open":"영업중"}}}}`))
	assert.Equal(t, "영업중", p.OpenHours)
	assert.Empty(t, p.Homepage)
	assert.Nil(t, p.Tags)
}

func TestParse_NoBasicInfo(t *testing.T) {
	p := Parse([]byte(`{"isMapUser":"N"}`))
	assert.Equal(t, &Place{}, p)
}

func TestDetail_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).Detail(context.Background(), "1")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, resilience.StatusCode(err))
}

func TestDetail_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>blocked</html>`)) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).Detail(context.Background(), "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid json")
}

func TestDetail_EmptyID(t *testing.T) {
	_, err := NewClient().Detail(context.Background(), " ")
	require.Error(t, err)
}

type stubFetcher struct {
	url    string
	header map[string]string
}

func (s *stubFetcher) Get(_ context.Context, url string, header map[string]string) (int, []byte, error) {
	s.url = url
	s.header = header
	return http.StatusOK, []byte(`{"basicInfo":{"homepage":"sarang.org"}}`), nil
}

func TestDetail_CustomFetcher(t *testing.T) {
	f := &stubFetcher{}
	p, err := NewClient(WithFetcher(f), WithBaseURL("https://place.test")).Detail(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "https://place.test/main/v/42", f.url)
	assert.Equal(t, "application/json", f.header["Accept"])
	assert.Equal(t, "sarang.org", p.Homepage)
}

func TestNewBrowserFetcher(t *testing.T) {
	f, err := NewBrowserFetcher(0)
	require.NoError(t, err)
	assert.NotNil(t, f.client)
}
