package tui

import (
	"fmt"
	"strings"

	"github.com/faithmap/faithmap/internal/browse"
	"github.com/faithmap/faithmap/internal/model"
)

const emptyMessage = "조건에 맞는 시설이 없습니다."

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("faithmap"))
	b.WriteString("\n")
	b.WriteString(m.filterBar())
	b.WriteString("\n")
	b.WriteString(m.statsLine())
	b.WriteString("\n\n")

	switch m.mode {
	case detailMode:
		b.WriteString(m.detailView())
	case clusterMode:
		b.WriteString(m.clusterView())
	default:
		b.WriteString(m.listView())
	}
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) filterBar() string {
	parts := make([]string, 0, len(typeChoices))
	for i, t := range typeChoices {
		label := "전체"
		if t != browse.AllTypes {
			label = model.FacilityType(t).Label()
		}
		if i == m.typeIdx {
			parts = append(parts, activeFilterStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, filterStyle.Render(label))
		}
	}
	line := strings.Join(parts, " ") + "  지역: " + activeFilterStyle.Render(m.regions[m.region])
	if m.mode == searchMode || m.query.Value() != "" {
		line += "\n" + m.query.View()
	}
	return line
}

func (m Model) statsLine() string {
	s := m.index.Stats(m.Filter())
	return dimStyle.Render(fmt.Sprintf("%d곳 · 교회 %d · 성당 %d · 사찰 %d · 주의 %d",
		s.Total, s.ByType[model.Church], s.ByType[model.Catholic], s.ByType[model.Temple], s.Cults))
}

func (m Model) listView() string {
	p := m.current()
	if p.Total == 0 {
		return emptyStyle.Render(emptyMessage) + "\n"
	}
	var b strings.Builder
	for i, f := range p.Items {
		prefix := "  "
		name := f.Name
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
			name = cursorStyle.Render(name)
		}
		fmt.Fprintf(&b, "%s%s %s %s\n", prefix, typeBadge(f.Type), name, dimStyle.Render(f.Region))
	}
	fmt.Fprintf(&b, "\n%s\n", dimStyle.Render(fmt.Sprintf("%d / %d 페이지", p.Page, p.PageCount)))
	return b.String()
}

func (m Model) detailView() string {
	d := m.selected
	if d == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(d.TypeLabel + "\n")
	if d.Warning != "" {
		b.WriteString(warningStyle.Render(d.Warning) + "\n")
	}
	b.WriteString("\n주소  " + d.Address + "\n")
	if d.DistanceKm != nil {
		fmt.Fprintf(&b, "      현재 위치에서 %.1fkm\n", *d.DistanceKm)
	}
	f := d.Facility
	if f.Phone != "" {
		b.WriteString("연락처 " + f.Phone + "\n")
	}
	if f.Category != "" {
		b.WriteString("분류  " + f.Category + "\n")
	}
	if f.ServiceTime != "" {
		b.WriteString("예배  " + f.ServiceTime + "\n")
	}
	if f.Pastor != "" {
		b.WriteString("담임  " + f.Pastor + "\n")
	}
	b.WriteString("\n")
	for _, a := range d.Actions {
		fmt.Fprintf(&b, "%s  %s\n", activeFilterStyle.Render(a.Label), a.URL)
	}
	return modalStyle.Render(b.String()) + "\n"
}

func (m Model) clusterView() string {
	vp := m.opts.Viewport
	v := m.index.View(m.Filter(), vp, m.zoom, browse.ViewOptions{})
	var b strings.Builder
	fmt.Fprintf(&b, "zoom %.0f · %d곳 표시\n\n", m.zoom, v.Visible)
	if v.Visible == 0 {
		return b.String() + emptyStyle.Render(emptyMessage) + "\n"
	}
	if !v.Clustered() {
		for _, f := range v.Markers {
			fmt.Fprintf(&b, "%s %s (%.4f, %.4f)\n", typeBadge(f.Type), f.Name, f.Lat, f.Lng)
		}
		return b.String()
	}
	for _, c := range v.Clusters {
		fmt.Fprintf(&b, "%-10s (%.3f, %.3f) %5d  교회 %d 성당 %d 사찰 %d 주의 %d\n",
			c.Key, c.Lat, c.Lng, c.Count,
			c.Counts[model.Church], c.Counts[model.Catholic], c.Counts[model.Temple], c.Counts[model.Cult])
	}
	return b.String()
}

func (m Model) help() string {
	switch m.mode {
	case searchMode:
		return "enter/esc: 검색 종료"
	case detailMode:
		return "esc: 닫기 · q: 종료"
	case clusterMode:
		return "+/-: 확대/축소 · c/esc: 목록 · q: 종료"
	default:
		return "t: 종류 · r: 지역 · /: 검색 · ←/→: 페이지 · enter: 상세 · c: 지도 요약 · q: 종료"
	}
}
