package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"geobox/internal/config"
	"geobox/internal/geom"
)

const sidebarWidth = 28

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom     float64
	baseZoom float64
	offsetX  int
	offsetY  int
	prec     int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	data geom.Data
	// view is data.BBox with degenerate axes padded for projection
	view geom.BBox

	// map size from the last layout pass
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	inspectPopup string

	// hover state
	hovering    bool
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	showBounds bool
	tbl        table.Model
}

func New(cfg config.View) Model {
	zoom := cfg.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	m := Model{
		helpVisible: true,
		zoom:        zoom,
		baseZoom:    zoom,
		prec:        cfg.Precision,
		status:      "geobox ready",
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
		cwd:         cfg.Dir,
		data:        geom.NewData(),
		view:        geom.NewBBox(),
		mapW:        80,
		mapH:        24,
	}
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// q and ctrl+c are handled by Update; esc must not quit from the sidebar
	m.l.KeyMap.Quit.SetEnabled(false)

	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, MULTIPOINT, LINESTRING, MULTILINESTRING, POLYGON). Enter renders, Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)

	m.tbl = table.New(
		table.WithColumns([]table.Column{{Title: "field", Width: 10}, {Title: "value", Width: 24}}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(cfg config.View, path string) Model {
	m := New(cfg)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }
