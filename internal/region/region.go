// Package region loads the legal-district table and resolves province names.
package region

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/faithmap/faithmap/internal/fetcher"
)

// minColumns is code, 시도, 시군구, 읍면동.
const minColumns = 4

// Load reads a legal-district CSV (header row first) and returns the unique
// "시도 시군구 읍면동" names in file order. Rows with fewer than four
// columns or an empty 시도 are skipped.
func Load(ctx context.Context, r io.Reader, charset string) ([]string, error) {
	rowCh, errCh := fetcher.StreamCSV(ctx, r, fetcher.CSVOptions{
		HasHeader: true,
		Charset:   charset,
		TrimSpace: true,
	})

	seen := make(map[string]struct{})
	var out []string
	for row := range rowCh {
		if len(row) < minColumns || row[1] == "" {
			continue
		}
		name := join(row[1], row[2], row[3])
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	if err := <-errCh; err != nil {
		return nil, eris.Wrap(err, "region: read districts")
	}
	return out, nil
}

// LoadFile opens path and calls Load.
func LoadFile(ctx context.Context, path, charset string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, eris.Wrapf(err, "region: open %s", path)
	}
	defer f.Close() //nolint:errcheck
	return Load(ctx, f, charset)
}

func join(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
