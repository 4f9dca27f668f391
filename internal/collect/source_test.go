package collect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faithmap/faithmap/internal/model"
)

type fakeSource struct {
	name   string
	search func(ctx context.Context, t Target) ([]model.Facility, error)
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Search(ctx context.Context, t Target) ([]model.Facility, error) {
	if f.search == nil {
		return nil, nil
	}
	return f.search(ctx, t)
}

func TestRegistry_Order(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeSource{name: "kakao"})
	r.Register(&fakeSource{name: "naver"})
	r.Register(&fakeSource{name: "kakao"})

	assert.Equal(t, []string{"kakao", "naver"}, r.Names())
	assert.Len(t, r.All(), 2)
}

func TestRegistry_Select(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeSource{name: "kakao"})
	r.Register(&fakeSource{name: "naver"})

	all, err := r.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	picked, err := r.Select([]string{"naver"})
	require.NoError(t, err)
	require.Len(t, picked, 1)
	assert.Equal(t, "naver", picked[0].Name())

	_, err = r.Select([]string{"google"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source")
}
