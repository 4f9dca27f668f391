package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/faithmap/faithmap/internal/fetcher"
	"github.com/faithmap/faithmap/internal/model"
)

// Store reads and writes snapshot files under one directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the root directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the full path of a snapshot file.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Load reads a snapshot file. A missing file loads as an empty list.
func (s *Store) Load(ctx context.Context, name string) ([]model.Facility, error) {
	f, err := os.Open(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Facility{}, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "snapshot: open %s", name)
	}
	defer f.Close() //nolint:errcheck

	list, err := fetcher.ReadJSONArray[model.Facility](ctx, f)
	if err != nil {
		return nil, eris.Wrapf(err, "snapshot: decode %s", name)
	}
	return list, nil
}

// Save writes list as an indented JSON array. The file is replaced
// atomically so readers never observe a partial write.
func (s *Store) Save(_ context.Context, name string, list []model.Facility) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(name, list)
}

func (s *Store) write(name string, list []model.Facility) error {
	if list == nil {
		list = []model.Facility{}
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return eris.Wrapf(err, "snapshot: create %s", s.dir)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return eris.Wrapf(err, "snapshot: encode %s", name)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return eris.Wrapf(err, "snapshot: create temp for %s", name)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return eris.Wrapf(err, "snapshot: write %s", name)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return eris.Wrapf(err, "snapshot: close %s", name)
	}
	if err := os.Rename(tmpName, s.Path(name)); err != nil {
		_ = os.Remove(tmpName)
		return eris.Wrapf(err, "snapshot: replace %s", name)
	}
	return nil
}

// Checkpoint persists partial progress: the processed prefix followed by the
// untouched remainder, so the file always holds the full dataset.
func (s *Store) Checkpoint(ctx context.Context, name string, processed, remaining []model.Facility) error {
	full := make([]model.Facility, 0, len(processed)+len(remaining))
	full = append(full, processed...)
	full = append(full, remaining...)
	if err := s.Save(ctx, name, full); err != nil {
		return eris.Wrap(err, "snapshot: checkpoint")
	}
	zap.L().Debug("checkpoint saved",
		zap.String("file", name),
		zap.Int("processed", len(processed)),
		zap.Int("total", len(full)),
	)
	return nil
}

// UpsertResult reports the outcome of an upsert.
type UpsertResult struct {
	Source   string
	Incoming int
	Rejected int
	Added    int
	Updated  int
	Total    int
	Counts   map[string]int // per category file
}

// Upsert merges incoming records into the dataset and rewrites every
// snapshot file. Records are keyed by id; incoming wins, keeping enrichment
// fields it does not carry. Invalid records are dropped. Running the same
// upsert twice leaves the files unchanged.
func (s *Store) Upsert(ctx context.Context, source string, incoming []model.Facility) (*UpsertResult, error) {
	log := zap.L().With(zap.String("component", "snapshot"), zap.String("source", source))

	existing, err := s.Load(ctx, AllFile)
	if err != nil {
		return nil, err
	}

	res := &UpsertResult{Source: source, Incoming: len(incoming)}

	index := make(map[string]int, len(existing))
	merged := Dedupe(existing)
	for i, f := range merged {
		index[f.ID] = i
	}

	for _, f := range incoming {
		if f.Source == "" {
			f.Source = source
		}
		if err := f.Validate(); err != nil {
			res.Rejected++
			log.Debug("rejecting record", zap.Error(err))
			continue
		}
		if i, ok := index[f.ID]; ok {
			merged[i] = merge(merged[i], f)
			res.Updated++
			continue
		}
		index[f.ID] = len(merged)
		merged = append(merged, f)
		res.Added++
	}

	counts, err := s.writeAll(merged)
	if err != nil {
		return nil, err
	}
	res.Counts = counts
	res.Total = len(merged)

	log.Info("snapshot upserted",
		zap.Int("incoming", res.Incoming),
		zap.Int("added", res.Added),
		zap.Int("updated", res.Updated),
		zap.Int("rejected", res.Rejected),
		zap.Int("total", res.Total),
	)
	return res, nil
}

// Rebuild regenerates the combined file from the category files, which are
// the files the enrichment pass edits in place.
func (s *Store) Rebuild(ctx context.Context) (int, error) {
	var all []model.Facility
	for _, name := range CategoryFiles {
		list, err := s.Load(ctx, name)
		if err != nil {
			return 0, err
		}
		all = append(all, list...)
	}
	all = Dedupe(all)
	if err := s.Save(ctx, AllFile, all); err != nil {
		return 0, err
	}
	return len(all), nil
}

// LoadAll reads the combined file, falling back to the category files when
// it does not exist yet.
func (s *Store) LoadAll(ctx context.Context) ([]model.Facility, error) {
	if _, err := os.Stat(s.Path(AllFile)); err == nil {
		return s.Load(ctx, AllFile)
	}
	var all []model.Facility
	for _, name := range CategoryFiles {
		list, err := s.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		all = append(all, list...)
	}
	return Dedupe(all), nil
}

func (s *Store) writeAll(list []model.Facility) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int, len(CategoryFiles))
	for name, part := range Split(list) {
		if err := s.write(name, part); err != nil {
			return nil, err
		}
		counts[name] = len(part)
	}
	if err := s.write(AllFile, list); err != nil {
		return nil, err
	}
	return counts, nil
}
