package enrich

import (
	"context"
	"strings"

	"github.com/faithmap/faithmap/internal/model"
	"github.com/faithmap/faithmap/pkg/kakaoplace"
)

// PlaceSource reads the Kakao place detail JSON.
type PlaceSource struct {
	client kakaoplace.Client
}

// NewPlaceSource creates a PlaceSource.
func NewPlaceSource(client kakaoplace.Client) *PlaceSource {
	return &PlaceSource{client: client}
}

// Name implements DetailSource.
func (s *PlaceSource) Name() string { return "kakao_place" }

// Supports accepts facilities carrying a Kakao place id.
func (s *PlaceSource) Supports(f model.Facility) bool {
	return f.ID != "" && !strings.Contains(f.ID, ":")
}

// Fetch implements DetailSource.
func (s *PlaceSource) Fetch(ctx context.Context, f model.Facility) (*Detail, error) {
	p, err := s.client.Detail(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	return &Detail{
		Website:     p.Homepage,
		ServiceTime: truncate(p.OpenHours, maxServiceTime),
		Description: p.Introduction,
		Tags:        p.Tags,
	}, nil
}
