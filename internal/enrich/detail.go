// Package enrich fills website, service-time and description fields from
// facility detail pages.
package enrich

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/faithmap/faithmap/internal/classify"
	"github.com/faithmap/faithmap/internal/model"
)

// Detail is what a source harvested for one facility. Empty fields mean
// "not found".
type Detail struct {
	Website     string
	ServiceTime string
	Description string
	Tags        []string
	Source      string
}

// Empty reports whether the detail carries nothing usable.
func (d *Detail) Empty() bool {
	return d == nil || (d.Website == "" && d.ServiceTime == "" && d.Description == "" && len(d.Tags) == 0)
}

// DetailSource fetches details for a facility.
type DetailSource interface {
	Name() string
	Supports(f model.Facility) bool
	Fetch(ctx context.Context, f model.Facility) (*Detail, error)
}

// Chain tries sources in priority order and returns the first non-empty
// detail.
type Chain struct {
	sources []DetailSource
}

// NewChain creates a Chain.
func NewChain(sources ...DetailSource) *Chain {
	return &Chain{sources: sources}
}

// Fetch returns the first non-empty detail. A blocklisted website counts as
// no website. When every supporting source
// answered without content the result is an empty Detail; when every one
// failed the last error is returned.
func (c *Chain) Fetch(ctx context.Context, f model.Facility) (*Detail, error) {
	var (
		lastErr  error
		answered bool
	)
	for _, s := range c.sources {
		if !s.Supports(f) {
			continue
		}
		d, err := s.Fetch(ctx, f)
		if err != nil {
			zap.L().Debug("enrich: source failed, trying next",
				zap.String("source", s.Name()),
				zap.String("id", f.ID),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		answered = true
		if d != nil && !model.IsValidWebsite(d.Website) {
			d.Website = ""
		}
		if !d.Empty() {
			d.Source = s.Name()
			return d, nil
		}
	}
	if answered {
		return &Detail{}, nil
	}
	if lastErr != nil {
		return nil, eris.Wrap(lastErr, "enrich: all sources failed")
	}
	return nil, eris.Errorf("enrich: no source supports %s", f.ID)
}

// Apply copies usable detail fields onto f and reports whether anything
// changed. Blocklisted websites are ignored.
func Apply(f *model.Facility, d *Detail) bool {
	if d == nil {
		return false
	}
	changed := false
	if d.Website != "" && model.IsValidWebsite(d.Website) && d.Website != f.Website {
		f.Website = d.Website
		changed = true
	}
	if d.ServiceTime != "" && d.ServiceTime != f.ServiceTime {
		f.ServiceTime = d.ServiceTime
		changed = true
	}
	if d.Description != "" && d.Description != f.Description {
		f.Description = d.Description
		changed = true
		if p := classify.Pastor(d.Description); p != "" {
			f.Pastor = p
		}
	}
	if len(d.Tags) > 0 {
		f.Tags = append([]string(nil), d.Tags...)
		changed = true
	}
	return changed
}
