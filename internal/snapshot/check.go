package snapshot

import (
	"context"
	"fmt"

	"github.com/faithmap/faithmap/internal/model"
)

// Issue is a single invariant violation found in a snapshot file.
type Issue struct {
	File    string
	ID      string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.File, i.ID, i.Message)
}

// Check reports duplicate ids, invalid records, and records stored in the
// wrong category file.
func Check(file string, list []model.Facility) []Issue {
	var issues []Issue
	seen := make(map[string]bool, len(list))
	for _, f := range list {
		if seen[f.ID] {
			issues = append(issues, Issue{File: file, ID: f.ID, Message: "duplicate id"})
		}
		seen[f.ID] = true

		if err := f.Validate(); err != nil {
			issues = append(issues, Issue{File: file, ID: f.ID, Message: err.Error()})
		}
		if file != AllFile && FileFor(f) != file {
			issues = append(issues, Issue{File: file, ID: f.ID, Message: "belongs in " + FileFor(f)})
		}
		if f.Website != "" && !model.IsValidWebsite(f.Website) {
			issues = append(issues, Issue{File: file, ID: f.ID, Message: "blocklisted website " + f.Website})
		}
	}
	return issues
}

// CheckAll loads and checks every snapshot file present in the store.
func (s *Store) CheckAll(ctx context.Context) ([]Issue, error) {
	var issues []Issue
	for _, name := range append([]string{AllFile}, CategoryFiles...) {
		list, err := s.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		issues = append(issues, Check(name, list)...)
	}
	return issues, nil
}
