// Package snapshot persists facility lists as the JSON array files the map
// front-end loads.
package snapshot

import (
	"github.com/faithmap/faithmap/internal/model"
)

// Snapshot file names.
const (
	AllFile       = "all-religious.json"
	ChurchesFile  = "churches.json"
	CatholicsFile = "catholics.json"
	TemplesFile   = "temples.json"
	CultsFile     = "cults.json"
)

// CategoryFiles lists the per-category files in write order.
var CategoryFiles = []string{ChurchesFile, CatholicsFile, TemplesFile, CultsFile}

// FileFor returns the category file a facility belongs to. Flagged
// facilities go to the cults file regardless of their type.
func FileFor(f model.Facility) string {
	if f.Flagged() {
		return CultsFile
	}
	switch f.Type {
	case model.Catholic:
		return CatholicsFile
	case model.Temple:
		return TemplesFile
	default:
		return ChurchesFile
	}
}

// Dedupe removes repeated identifiers. The surviving record is the last one
// seen, placed at the position of the first occurrence.
func Dedupe(list []model.Facility) []model.Facility {
	index := make(map[string]int, len(list))
	out := make([]model.Facility, 0, len(list))
	for _, f := range list {
		if i, ok := index[f.ID]; ok {
			out[i] = f
			continue
		}
		index[f.ID] = len(out)
		out = append(out, f)
	}
	return out
}

// Split partitions a list into the category files. Every category key is
// present even when empty.
func Split(list []model.Facility) map[string][]model.Facility {
	out := make(map[string][]model.Facility, len(CategoryFiles))
	for _, name := range CategoryFiles {
		out[name] = []model.Facility{}
	}
	for _, f := range list {
		name := FileFor(f)
		out[name] = append(out[name], f)
	}
	return out
}

// merge overlays incoming onto existing. Enrichment fields that the
// incoming record lacks are carried over so a re-collection does not erase
// scraped websites and hours.
func merge(existing, incoming model.Facility) model.Facility {
	out := incoming
	if out.Website == "" {
		out.Website = existing.Website
	}
	if out.ServiceTime == "" {
		out.ServiceTime = existing.ServiceTime
	}
	if out.Pastor == "" {
		out.Pastor = existing.Pastor
	}
	if out.Description == "" {
		out.Description = existing.Description
	}
	if len(out.Tags) == 0 {
		out.Tags = existing.Tags
	}
	return out
}
