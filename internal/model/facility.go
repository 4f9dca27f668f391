// Package model defines the facility record shared by the collection,
// enrichment and browse layers.
package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// FacilityType is the category tag of a facility.
type FacilityType string

const (
	// Church is a protestant church.
	Church FacilityType = "church"
	// Catholic is a catholic parish or cathedral.
	Catholic FacilityType = "catholic"
	// Temple is a buddhist temple.
	Temple FacilityType = "temple"
	// Cult is a flagged suspect group.
	Cult FacilityType = "cult"
)

// AllTypes lists the facility types in display order.
var AllTypes = []FacilityType{Church, Catholic, Temple, Cult}

// Label returns the Korean display label.
func (t FacilityType) Label() string {
	switch t {
	case Church:
		return "교회"
	case Catholic:
		return "성당"
	case Temple:
		return "사찰"
	case Cult:
		return "주의"
	default:
		return string(t)
	}
}

// Valid reports whether t is one of the enumerated types.
func (t FacilityType) Valid() bool {
	switch t {
	case Church, Catholic, Temple, Cult:
		return true
	}
	return false
}

// ParseType converts a string into a FacilityType.
func ParseType(s string) (FacilityType, error) {
	t := FacilityType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", eris.Errorf("unknown facility type: %q (valid: church, catholic, temple, cult)", s)
	}
	return t, nil
}

// Korea bounding box in decimal degrees.
const (
	MinLat = 33.0
	MaxLat = 43.0
	MinLng = 124.0
	MaxLng = 132.0
)

// Facility is a single religious location record.
type Facility struct {
	ID           string       `json:"id" csv:"id"`
	Name         string       `json:"name" csv:"name"`
	Type         FacilityType `json:"type" csv:"type"`
	Address      string       `json:"address" csv:"address"`
	RoadAddress  string       `json:"roadAddress,omitempty" csv:"road_address,omitempty"`
	Phone        string       `json:"phone,omitempty" csv:"phone,omitempty"`
	Lat          float64      `json:"lat" csv:"lat"`
	Lng          float64      `json:"lng" csv:"lng"`
	KakaoURL     string       `json:"kakaoUrl,omitempty" csv:"kakao_url,omitempty"`
	Category     string       `json:"category,omitempty" csv:"category,omitempty"`
	Denomination string       `json:"denomination,omitempty" csv:"denomination,omitempty"`
	IsCult       bool         `json:"isCult" csv:"is_cult"`
	CultType     string       `json:"cultType,omitempty" csv:"cult_type,omitempty"`
	Region       string       `json:"region" csv:"region"`
	Website      string       `json:"website,omitempty" csv:"website,omitempty"`
	ServiceTime  string       `json:"serviceTime,omitempty" csv:"service_time,omitempty"`
	Pastor       string       `json:"pastor,omitempty" csv:"pastor,omitempty"`
	Description  string       `json:"description,omitempty" csv:"description,omitempty"`
	Tags         []string     `json:"tags,omitempty" csv:"-"`
	Source       string       `json:"source,omitempty" csv:"source,omitempty"`
}

// Validate rejects records that must not be persisted.
func (f *Facility) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return eris.New("facility: id is required")
	}
	if !f.Type.Valid() {
		return eris.Errorf("facility %s: unknown type %q", f.ID, f.Type)
	}
	if !InKorea(f.Lat, f.Lng) {
		return eris.Errorf("facility %s: coordinate (%f, %f) outside Korea bounds", f.ID, f.Lat, f.Lng)
	}
	return nil
}

// InKorea reports whether the coordinate falls in the Korea bounding box.
func InKorea(lat, lng float64) bool {
	return lat >= MinLat && lat <= MaxLat && lng >= MinLng && lng <= MaxLng
}

// Flagged reports whether the facility is a suspect group, either by
// classification or by stored type.
func (f Facility) Flagged() bool {
	return f.IsCult || f.Type == Cult
}

// Clone returns a copy that shares no slices with f.
func (f Facility) Clone() Facility {
	if f.Tags != nil {
		f.Tags = append([]string(nil), f.Tags...)
	}
	return f
}
