package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight = 1
	// status line and help line
	footerHeight = 2
)

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	popupH             int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	var l layout
	l.contentW = max(10, m.width)
	l.popupH = lipgloss.Height(m.popupView(l.contentW))
	if m.inspectPopup == "" || m.showBounds {
		l.popupH = 0
	}
	l.contentH = max(4, m.height-headerHeight-footerHeight-l.popupH)
	sb := 0
	if m.showSidebar {
		sb = sidebarWidth + 1
	}
	l.mapX, l.mapY = sb, headerHeight+l.popupH
	l.mapW = max(10, l.contentW-sb)
	l.mapH = l.contentH
	return l
}

// popupView renders the inspect popup, which sits between the header and
// the map.
func (m Model) popupView(w int) string {
	if m.inspectPopup == "" || m.showBounds {
		return ""
	}
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).
		MaxWidth(max(20, min(48, w/2))).Render(m.inspectPopup)
	return lipgloss.PlaceHorizontal(w, lipgloss.Left, box)
}

// oneLine clamps s to a single row of width w.
func oneLine(w int, s string) string {
	return lipgloss.NewStyle().Width(w).MaxWidth(w).MaxHeight(1).Render(s)
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	header := oneLine(lay.contentW, titleStyle.Render(" geobox ─ bounding boxes in the terminal "))

	var mapView string
	switch {
	case m.showBounds:
		box := boxStyle.Render(m.tbl.View())
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		mapView = m.ta.View()
	default:
		mapView = m.renderMap(lay.mapW, lay.mapH)
	}
	fit := lipgloss.NewStyle().Height(lay.mapH).MaxHeight(lay.mapH)
	body := fit.Width(lay.mapW).MaxWidth(lay.mapW).Render(mapView)
	if m.showSidebar {
		sidebar := fit.Width(sidebarWidth).MaxWidth(sidebarWidth).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", body)
	}

	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%s lat=%s  ", m.num(m.hoverLon), m.num(m.hoverLat)))
	}
	status := dimStyle.Render(" " + m.status + " ")
	spacer := strings.Repeat(" ", max(0, lay.contentW-lipgloss.Width(status)-lipgloss.Width(coords)))
	footer := lipgloss.JoinVertical(lipgloss.Left,
		oneLine(lay.contentW, status+spacer+coords),
		oneLine(lay.contentW, m.renderHelp()),
	)

	parts := []string{header}
	if popup := m.popupView(lay.contentW); lay.popupH > 0 {
		parts = append(parts, popup)
	}
	parts = append(parts, body, footer)
	return appStyle.Width(lay.contentW).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"0 reset",
		"Tab sidebar",
		"Enter open",
		"p paste",
		"b bounds",
		"i inspect",
		"l layers",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
