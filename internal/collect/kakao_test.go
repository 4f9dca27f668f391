package collect

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/faithmap/faithmap/internal/classify"
	"github.com/faithmap/faithmap/internal/model"
	"github.com/faithmap/faithmap/internal/resilience"
	"github.com/faithmap/faithmap/pkg/kakao"
	"github.com/faithmap/faithmap/pkg/kakao/mocks"
)

var seoulChurch = Target{Region: "서울특별시 서초구", Keyword: "교회", Type: model.Church}

func doc(id, name, category string) kakao.Document {
	return kakao.Document{
		ID:           id,
		PlaceName:    name,
		CategoryName: category,
		AddressName:  "서울 서초구 서초동 1",
		X:            "127.0058",
		Y:            "37.4919",
		PlaceURL:     "http://place.map.kakao.com/" + id,
	}
}

func fastKakao(client kakao.Client) *KakaoSource {
	return NewKakaoSource(client, classify.New(nil, nil), NewLimiter(0),
		WithKakaoWait(resilience.WaitConfig{MaxAttempts: 3, Wait: time.Millisecond}),
	)
}

func TestKakaoSource_PagesUntilEnd(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("KeywordSearch", mock.Anything, "서울특별시 서초구 교회", 1).Return(&kakao.KeywordResponse{
		Documents: []kakao.Document{
			doc("1", "사랑의교회", "종교 > 기독교 > 교회 > 장로교"),
			doc("2", "신천지 서초교회", "종교 > 기독교 > 교회"),
		},
	}, nil).Once()
	client.On("KeywordSearch", mock.Anything, "서울특별시 서초구 교회", 2).Return(&kakao.KeywordResponse{
		Meta:      kakao.Meta{IsEnd: true},
		Documents: []kakao.Document{doc("3", "서초감리교회", "종교 > 기독교 > 교회 > 감리교")},
	}, nil).Once()

	got, err := fastKakao(client).Search(context.Background(), seoulChurch)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, model.Church, got[0].Type)
	assert.Equal(t, "장로교", got[0].Denomination)
	assert.Equal(t, "서울특별시 서초구", got[0].Region)
	assert.Equal(t, "kakao", got[0].Source)
	assert.InDelta(t, 37.4919, got[0].Lat, 1e-9)
	assert.InDelta(t, 127.0058, got[0].Lng, 1e-9)
	assert.False(t, got[0].IsCult)

	assert.True(t, got[1].IsCult)
	assert.Equal(t, "신천지", got[1].CultType)
	assert.Equal(t, "감리교", got[2].Denomination)
}

func TestKakaoSource_PageCap(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("KeywordSearch", mock.Anything, mock.Anything, mock.Anything).Return(&kakao.KeywordResponse{
		Documents: []kakao.Document{doc("1", "교회", "")},
	}, nil).Times(3)

	got, err := fastKakao(client).Search(context.Background(), seoulChurch)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestKakaoSource_RateLimitedThenOK(t *testing.T) {
	throttled := resilience.NewStatusError(errors.New("kakao: unexpected status 429"), http.StatusTooManyRequests)

	client := mocks.NewMockClient(t)
	client.On("KeywordSearch", mock.Anything, mock.Anything, 1).Return(nil, throttled).Once()
	client.On("KeywordSearch", mock.Anything, mock.Anything, 1).Return(&kakao.KeywordResponse{
		Meta:      kakao.Meta{IsEnd: true},
		Documents: []kakao.Document{doc("1", "교회", "")},
	}, nil).Once()

	got, err := fastKakao(client).Search(context.Background(), seoulChurch)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestKakaoSource_ErrorDiscardsPartial(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("KeywordSearch", mock.Anything, mock.Anything, 1).Return(&kakao.KeywordResponse{
		Documents: []kakao.Document{doc("1", "교회", "")},
	}, nil).Once()
	client.On("KeywordSearch", mock.Anything, mock.Anything, 2).
		Return(nil, resilience.NewStatusError(errors.New("boom"), http.StatusInternalServerError)).Once()

	got, err := fastKakao(client).Search(context.Background(), seoulChurch)
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestKakaoSource_SkipsBadCoordinates(t *testing.T) {
	bad := doc("9", "좌표없음", "")
	bad.X = ""

	client := mocks.NewMockClient(t)
	client.On("KeywordSearch", mock.Anything, mock.Anything, 1).Return(&kakao.KeywordResponse{
		Meta:      kakao.Meta{IsEnd: true},
		Documents: []kakao.Document{bad, doc("1", "교회", "")},
	}, nil).Once()

	got, err := fastKakao(client).Search(context.Background(), seoulChurch)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestKakaoSource_WithMaxPages(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("KeywordSearch", mock.Anything, mock.Anything, 1).Return(&kakao.KeywordResponse{
		Documents: []kakao.Document{doc("1", "교회", "")},
	}, nil).Once()

	s := NewKakaoSource(client, classify.New(nil, nil), NewLimiter(0), WithMaxPages(1))
	got, err := s.Search(context.Background(), seoulChurch)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "kakao", s.Name())
}
