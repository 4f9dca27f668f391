package region

import "strings"

// All is the selector value that matches every region.
const All = "전체"

// Province pairs the short selector name with the official long names.
type Province struct {
	Short string
	Long  []string
}

// Provinces lists the 17 top-level divisions in selector order.
var Provinces = []Province{
	{"서울", []string{"서울특별시"}},
	{"부산", []string{"부산광역시"}},
	{"대구", []string{"대구광역시"}},
	{"인천", []string{"인천광역시"}},
	{"광주", []string{"광주광역시"}},
	{"대전", []string{"대전광역시"}},
	{"울산", []string{"울산광역시"}},
	{"세종", []string{"세종특별자치시"}},
	{"경기", []string{"경기도"}},
	{"강원", []string{"강원도", "강원특별자치도"}},
	{"충북", []string{"충청북도"}},
	{"충남", []string{"충청남도"}},
	{"전북", []string{"전라북도", "전북특별자치도"}},
	{"전남", []string{"전라남도"}},
	{"경북", []string{"경상북도"}},
	{"경남", []string{"경상남도"}},
	{"제주", []string{"제주특별자치도"}},
}

// Selectors returns All followed by the short province names.
func Selectors() []string {
	out := make([]string, 0, len(Provinces)+1)
	out = append(out, All)
	for _, p := range Provinces {
		out = append(out, p.Short)
	}
	return out
}

// IsAll reports whether sel matches every region.
func IsAll(sel string) bool {
	sel = strings.TrimSpace(sel)
	return sel == "" || sel == All || strings.EqualFold(sel, "all")
}

// Matches reports whether a facility region string matches the selector.
// Matching is by substring; a short province name also matches its long
// forms so that "충북" selects "충청북도 청주시".
func Matches(region, sel string) bool {
	if IsAll(sel) {
		return true
	}
	sel = strings.TrimSpace(sel)
	if strings.Contains(region, sel) {
		return true
	}
	for _, p := range Provinces {
		if p.Short != sel {
			continue
		}
		for _, long := range p.Long {
			if strings.Contains(region, long) {
				return true
			}
		}
	}
	return false
}

// ProvinceOf returns the short province name for a region string, or "".
func ProvinceOf(region string) string {
	region = strings.TrimSpace(region)
	for _, p := range Provinces {
		if strings.HasPrefix(region, p.Short) {
			return p.Short
		}
		for _, long := range p.Long {
			if strings.HasPrefix(region, long) {
				return p.Short
			}
		}
	}
	return ""
}

// sidoByCode maps the two-digit administrative code prefix to the 시도 name.
var sidoByCode = map[string]string{
	"11": "서울특별시",
	"26": "부산광역시",
	"27": "대구광역시",
	"28": "인천광역시",
	"29": "광주광역시",
	"30": "대전광역시",
	"31": "울산광역시",
	"36": "세종특별자치시",
	"41": "경기도",
	"42": "강원도",
	"43": "충청북도",
	"44": "충청남도",
	"45": "전라북도",
	"46": "전라남도",
	"47": "경상북도",
	"48": "경상남도",
	"50": "제주특별자치도",
	"51": "강원특별자치도",
	"52": "전북특별자치도",
}

// SidoName returns the 시도 name for an administrative code such as
// "11110", or "" when the prefix is unknown.
func SidoName(code string) string {
	if len(code) < 2 {
		return ""
	}
	return sidoByCode[code[:2]]
}
