package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"geobox/internal/geom"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
	case tea.KeyMsg:
		// while the list is filtering it owns every key
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showBounds && (msg.String() == "up" || msg.String() == "down") {
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showPoints = !m.showPoints
			m.status = fmt.Sprintf("points: %v", m.showPoints)
		case "2":
			m.showLines = !m.showLines
			m.status = fmt.Sprintf("lines: %v", m.showLines)
		case "3":
			m.showPolys = !m.showPolys
			m.status = fmt.Sprintf("polys: %v", m.showPolys)
		case "l":
			all := m.showPoints && m.showLines && m.showPolys
			m.showPoints, m.showLines, m.showPolys = !all, !all, !all
			m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.zoom = m.baseZoom
			m.offsetX, m.offsetY = 0, 0
			m.status = "view reset"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
			}
			m.resize()
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.ta.Focus()
			m.status = "paste mode"
		case "h":
			m.helpVisible = !m.helpVisible
		case "b":
			if len(m.boundsRows()) == 0 {
				m.status = "no data loaded"
				break
			}
			m.showBounds = !m.showBounds
			m.resize()
		case "i":
			m.inspect()
		case "esc":
			m.inspectPopup = ""
			m.showBounds = false
			m.resize()
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY--
		case "down":
			m.offsetY++
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		d, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			log.Debug().Err(err).Msg("paste")
			return m, nil
		}
		m.selPath = ""
		m.setData(d)
		m.status = "rendered WKT  " + m.summary()
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// resize fits the widgets to the current layout.
func (m *Model) resize() {
	lay := m.layout()
	m.mapW, m.mapH = lay.mapW, lay.mapH
	m.l.SetSize(sidebarWidth-2, lay.contentH)
	m.ta.SetWidth(lay.mapW)
	m.ta.SetHeight(min(lay.mapH, 12))
	m.tbl.SetHeight(max(1, min(lay.mapH-4, 12)))
}

// inspect opens a popup describing the dataset and the vertex nearest the
// viewport centre.
func (m *Model) inspect() {
	_, _, lon, lat, ok := m.nearestVertex(m.mapW, m.mapH*2, m.mapW, m.mapH)
	if !ok {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		m.resize()
		return
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<pasted>"
	}
	b := m.data.BBox
	w, h := b.WidthHeight()
	m.inspectPopup = strings.Join([]string{
		"name: " + name,
		fmt.Sprintf("bbox: [%s, %s, %s, %s]", m.num(b.MinX), m.num(b.MinY), m.num(b.MaxX), m.num(b.MaxY)),
		fmt.Sprintf("size: %s x %s", m.num(w), m.num(h)),
		fmt.Sprintf("counts: pts=%d ls=%d poly=%d", len(m.data.Points), len(m.data.Lines), len(m.data.Polygons)),
		fmt.Sprintf("nearest: lon=%s lat=%s", m.num(lon), m.num(lat)),
	}, "\n")
	m.status = "inspect popup"
	m.resize()
}

// hover tracks the mouse over the map area.
func (m *Model) hover(x, y int) {
	lay := m.layout()
	cx, cy := x-lay.mapX, y-lay.mapY
	if cx < 0 || cx >= lay.mapW || cy < 0 || cy >= lay.mapH {
		m.hovering, m.hoverHasGeo = false, false
		return
	}
	m.hovering = true
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.cellToLonLat(cx, cy, lay.mapW, lay.mapH)
	m.hoverMicX, m.hoverMicY = cx*2, cy*4
	if bx, by, _, _, ok := m.nearestVertex(cx*2, cy*4, lay.mapW, lay.mapH); ok {
		m.hoverMicX, m.hoverMicY = bx, by
	}
}
