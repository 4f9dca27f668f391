package browse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faithmap/faithmap/internal/model"
)

func TestIndex_FilterMemoized(t *testing.T) {
	list := []model.Facility{
		fac("1", model.Church, "서울특별시 강남구"),
		fac("2", model.Temple, "서울특별시 종로구"),
	}
	x := NewIndex(list, 0)

	first := x.Filter(Filter{Type: "church"})
	require.Len(t, first, 1)

	// Mutating the backing slice proves the second call hits the cache.
	list[0].Type = model.Temple
	second := x.Filter(Filter{Type: "church"})
	assert.Len(t, second, 1)

	x.Flush()
	assert.Empty(t, x.Filter(Filter{Type: "church"}))
}

func TestIndex_PageStatsFind(t *testing.T) {
	x := NewIndex([]model.Facility{
		fac("1", model.Church, "서울"),
		fac("2", model.Church, "서울"),
		fac("3", model.Catholic, "부산"),
	}, time.Minute)
	assert.Equal(t, 3, x.Len())

	p := x.Page(Filter{Type: "church"}, 1, 1)
	assert.Equal(t, 2, p.PageCount)
	assert.Equal(t, "1", p.Items[0].ID)

	s := x.Stats(Filter{})
	assert.Equal(t, 2, s.ByType[model.Church])
	assert.Equal(t, 1, s.ByType[model.Catholic])

	f, ok := x.Find("3")
	require.True(t, ok)
	assert.Equal(t, model.Catholic, f.Type)
	_, ok = x.Find("missing")
	assert.False(t, ok)

	v := x.View(Filter{Region: "부산"}, KoreaViewport(), 15, ViewOptions{})
	assert.Len(t, v.Markers, 1)
}
