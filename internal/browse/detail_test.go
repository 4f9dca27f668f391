package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faithmap/faithmap/internal/model"
)

func TestDetail_BlockedWebsiteHasNoAction(t *testing.T) {
	f := model.Facility{ID: "1", Name: "교회", Type: model.Church, Address: "서울 중구", Website: "http://cs.kakao.com/helps"}
	d := Detail(f, nil)
	_, ok := d.Action(ActionWebsite)
	assert.False(t, ok)
}

func TestDetail_WebsiteNormalized(t *testing.T) {
	f := model.Facility{ID: "1", Name: "사랑의교회", Type: model.Church, Address: "서울 서초구", Website: "sarang.org"}
	d := Detail(f, nil)
	a, ok := d.Action(ActionWebsite)
	require.True(t, ok)
	assert.Equal(t, "https://sarang.org", a.URL)
}

func TestDetail_Links(t *testing.T) {
	f := model.Facility{
		ID:           "22377855",
		Name:         "사랑의교회",
		Type:         model.Church,
		Address:      "서울 서초구 서초동 1540",
		RoadAddress:  "서울 서초구 반포대로 121",
		Phone:        "02-3479-7000",
		KakaoURL:     "http://place.map.kakao.com/22377855",
		Denomination: "장로교",
		Lat:          37.4919,
		Lng:          127.0058,
	}
	d := Detail(f, &Origin{Lat: 37.4919, Lng: 127.0058})

	assert.Equal(t, "서울 서초구 반포대로 121", d.Address)
	assert.Equal(t, "교회 · 장로교", d.TypeLabel)
	assert.Empty(t, d.Warning)
	require.NotNil(t, d.DistanceKm)
	assert.InDelta(t, 0, *d.DistanceKm, 1e-9)

	call, ok := d.Action(ActionCall)
	require.True(t, ok)
	assert.Equal(t, "tel:02-3479-7000", call.URL)

	naver, ok := d.Action(ActionNaver)
	require.True(t, ok)
	assert.Equal(t, "https://map.naver.com/v5/search/%EC%84%9C%EC%9A%B8%20%EC%84%9C%EC%B4%88%EA%B5%AC%20%EB%B0%98%ED%8F%AC%EB%8C%80%EB%A1%9C%20121", naver.URL)

	kakao, ok := d.Action(ActionKakao)
	require.True(t, ok)
	assert.Equal(t, f.KakaoURL, kakao.URL)
	assert.Equal(t, ActionKakao, d.Actions[0].Kind)
}

func TestDetail_CultTypeWithoutFlagWarns(t *testing.T) {
	f := model.Facility{ID: "8", Name: "왕국회관", Type: model.Cult, Address: "서울 관악구"}
	d := Detail(f, nil)
	assert.Equal(t, CultWarning, d.Warning)
}

func TestDetail_CultWarning(t *testing.T) {
	f := model.Facility{ID: "9", Name: "신천지 시온교회", Type: model.Cult, Address: "경기 과천시", IsCult: true, CultType: "신천지"}
	d := Detail(f, nil)
	assert.Equal(t, CultWarning+" (신천지)", d.Warning)
	assert.Nil(t, d.DistanceKm)
	_, ok := d.Action(ActionCall)
	assert.False(t, ok)
}
