package fetcher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestReadJSONArray(t *testing.T) {
	input := `[{"id":"1","name":"a"},{"id":"2","name":"b"}]`
	items, err := ReadJSONArray[item](context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[1].Name)
}

func TestReadJSONArray_EmptyInput(t *testing.T) {
	items, err := ReadJSONArray[item](context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestReadJSONArray_NotArray(t *testing.T) {
	_, err := ReadJSONArray[item](context.Background(), strings.NewReader(`{"id":"1"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected '['")
}

func TestReadJSONArray_Truncated(t *testing.T) {
	_, err := ReadJSONArray[item](context.Background(), strings.NewReader(`[{"id":"1"},`))
	require.Error(t, err)
}

func TestEachJSON_StopsOnCallbackError(t *testing.T) {
	var seen int
	stop := errors.New("stop")
	err := EachJSON(context.Background(), strings.NewReader(`[1,2,3]`), func(int) error {
		seen++
		if seen == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, seen)
}

func TestEachJSON_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := EachJSON(ctx, strings.NewReader(`[1]`), func(int) error { return nil })
	require.Error(t, err)
}
