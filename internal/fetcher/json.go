package fetcher

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
)

// EachJSON decodes a top-level JSON array element by element and calls fn
// for each one. An empty input is treated as an empty array.
func EachJSON[T any](ctx context.Context, r io.Reader, fn func(T) error) error {
	decoder := json.NewDecoder(r)

	tok, err := decoder.Token()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return eris.Wrap(err, "json: read opening token")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return eris.Errorf("json: expected '[', got %v", tok)
	}

	for decoder.More() {
		if ctx.Err() != nil {
			return eris.Wrap(ctx.Err(), "json: context cancelled")
		}
		var item T
		if err := decoder.Decode(&item); err != nil {
			return eris.Wrap(err, "json: decode element")
		}
		if err := fn(item); err != nil {
			return err
		}
	}

	if _, err := decoder.Token(); err != nil {
		return eris.Wrap(err, "json: read closing token")
	}
	return nil
}

// ReadJSONArray decodes a whole JSON array into a slice.
func ReadJSONArray[T any](ctx context.Context, r io.Reader) ([]T, error) {
	out := []T{}
	err := EachJSON(ctx, r, func(item T) error {
		out = append(out, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
