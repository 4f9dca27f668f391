// Package tui is the interactive terminal browser over a facility snapshot.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faithmap/faithmap/internal/browse"
	"github.com/faithmap/faithmap/internal/model"
	"github.com/faithmap/faithmap/internal/region"
)

type mode int

const (
	listMode mode = iota
	searchMode
	detailMode
	clusterMode
)

const (
	minZoom     = 5.0
	maxZoom     = 18.0
	defaultZoom = 7.0
)

// typeChoices is the cycle order of the type filter.
var typeChoices = []string{
	browse.AllTypes,
	string(model.Church),
	string(model.Catholic),
	string(model.Temple),
	string(model.Cult),
}

// Options configures a Model.
type Options struct {
	PageSize int
	Origin   *browse.Origin
	Viewport browse.Viewport
}

// Model is the bubbletea model. All state lives here.
type Model struct {
	index    *browse.Index
	opts     Options
	regions  []string
	typeIdx  int
	region   int
	query    textinput.Model
	page     int
	cursor   int
	mode     mode
	selected *browse.DetailView
	zoom     float64
	width    int
}

// New creates a Model over index.
func New(index *browse.Index, opts Options) Model {
	if opts.PageSize <= 0 {
		opts.PageSize = browse.DefaultPageSize
	}
	ti := textinput.New()
	ti.Placeholder = "이름, 주소, 교단 검색"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return Model{
		index:   index,
		opts:    opts,
		regions: region.Selectors(),
		query:   ti,
		page:    1,
		zoom:    defaultZoom,
	}
}

// Filter returns the filter built from the current state.
func (m Model) Filter() browse.Filter {
	return browse.Filter{
		Type:   typeChoices[m.typeIdx],
		Region: m.regions[m.region],
		Query:  m.query.Value(),
	}
}

func (m Model) current() browse.Page {
	return m.index.Page(m.Filter(), m.page, m.opts.PageSize)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case searchMode:
			return m.updateSearch(msg)
		case detailMode:
			return m.updateDetail(msg)
		case clusterMode:
			return m.updateClusters(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.current()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "t":
		m.typeIdx = (m.typeIdx + 1) % len(typeChoices)
		m.resetPage()
	case "T":
		m.typeIdx = (m.typeIdx + len(typeChoices) - 1) % len(typeChoices)
		m.resetPage()
	case "r":
		m.region = (m.region + 1) % len(m.regions)
		m.resetPage()
	case "R":
		m.region = (m.region + len(m.regions) - 1) % len(m.regions)
		m.resetPage()
	case "/":
		m.mode = searchMode
		cmd := m.query.Focus()
		return m, cmd
	case "right", "n":
		if p.HasNext() {
			m.page++
			m.cursor = 0
		}
	case "left", "p":
		if p.HasPrev() {
			m.page--
			m.cursor = 0
		}
	case "down", "j":
		if m.cursor < len(p.Items)-1 {
			m.cursor++
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(p.Items) {
			d := browse.Detail(p.Items[m.cursor], m.opts.Origin)
			m.selected = &d
			m.mode = detailMode
		}
	case "c":
		m.mode = clusterMode
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.query.Blur()
		m.mode = listMode
		return m, nil
	}
	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if m.query.Value() != before {
		m.resetPage()
	}
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "enter":
		m.selected = nil
		m.mode = listMode
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateClusters(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "c":
		m.mode = listMode
	case "+", "=":
		m.zoom = min(m.zoom+1, maxZoom)
	case "-":
		m.zoom = max(m.zoom-1, minZoom)
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) resetPage() {
	m.page = 1
	m.cursor = 0
}
