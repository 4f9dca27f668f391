package browse

import (
	"net/url"
	"strings"

	"github.com/faithmap/faithmap/internal/model"
)

// CultWarning is shown on flagged facilities.
const CultWarning = "⚠️ 주의: 이단/사이비 의심 시설"

const naverSearchURL = "https://map.naver.com/v5/search/"

// ActionKind identifies a detail view link.
type ActionKind string

const (
	ActionKakao   ActionKind = "kakao"
	ActionWebsite ActionKind = "website"
	ActionCall    ActionKind = "call"
	ActionNaver   ActionKind = "naver"
)

// Action is an outbound link in the detail view.
type Action struct {
	Kind  ActionKind
	Label string
	URL   string
}

// DetailView is the render model for a single facility.
type DetailView struct {
	Facility   model.Facility
	Title      string
	TypeLabel  string
	Address    string
	Warning    string
	DistanceKm *float64
	Actions    []Action
}

// Action returns the action of the given kind, if present.
func (d DetailView) Action(kind ActionKind) (Action, bool) {
	for _, a := range d.Actions {
		if a.Kind == kind {
			return a, true
		}
	}
	return Action{}, false
}

// Origin is an optional user location used for the distance line.
type Origin struct {
	Lat, Lng float64
}

// Detail builds the detail view model for f. The website action is present
// only for a valid website and always uses an http(s) link.
func Detail(f model.Facility, origin *Origin) DetailView {
	addr := f.RoadAddress
	if addr == "" {
		addr = f.Address
	}
	d := DetailView{
		Facility:  f,
		Title:     f.Name,
		TypeLabel: f.Type.Label(),
		Address:   addr,
	}
	if f.Denomination != "" {
		d.TypeLabel += " · " + f.Denomination
	}
	if f.Flagged() {
		d.Warning = CultWarning
		if f.CultType != "" {
			d.Warning += " (" + f.CultType + ")"
		}
	}
	if origin != nil {
		km := Distance(origin.Lat, origin.Lng, f.Lat, f.Lng)
		d.DistanceKm = &km
	}

	if f.KakaoURL != "" {
		d.Actions = append(d.Actions, Action{Kind: ActionKakao, Label: "카카오맵", URL: f.KakaoURL})
	}
	if site := model.NormalizeWebsite(f.Website); site != "" {
		d.Actions = append(d.Actions, Action{Kind: ActionWebsite, Label: "웹사이트", URL: site})
	}
	if phone := strings.TrimSpace(f.Phone); phone != "" {
		d.Actions = append(d.Actions, Action{Kind: ActionCall, Label: "전화", URL: "tel:" + phone})
	}
	if addr != "" {
		d.Actions = append(d.Actions, Action{Kind: ActionNaver, Label: "네이버맵", URL: NaverSearchURL(addr)})
	}
	return d
}

// NaverSearchURL builds the Naver map search link for an address.
func NaverSearchURL(addr string) string {
	return naverSearchURL + url.PathEscape(addr)
}
