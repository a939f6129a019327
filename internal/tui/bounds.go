package tui

import (
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"geobox/internal/geom"
)

// displayBox pads zero-extent axes so a single point or a straight
// horizontal/vertical line can still be projected.
func displayBox(b geom.BBox) geom.BBox {
	if b.IsEmpty() {
		return b
	}
	w, h := b.WidthHeight()
	if w == 0 {
		b.MinX, b.MaxX = b.MinX-0.5, b.MaxX+0.5
	}
	if h == 0 {
		b.MinY, b.MaxY = b.MinY-0.5, b.MaxY+0.5
	}
	return b
}

// boundsRows describes the data's box and counts.
func (m Model) boundsRows() []table.Row {
	d := m.data
	if d.BBox.IsEmpty() {
		return nil
	}
	w, h := d.BBox.WidthHeight()
	return []table.Row{
		{"minX", m.num(d.BBox.MinX)},
		{"minY", m.num(d.BBox.MinY)},
		{"maxX", m.num(d.BBox.MaxX)},
		{"maxY", m.num(d.BBox.MaxY)},
		{"width", m.num(w)},
		{"height", m.num(h)},
		{"points", strconv.Itoa(len(d.Points))},
		{"lines", strconv.Itoa(len(d.Lines))},
		{"polygons", strconv.Itoa(len(d.Polygons))},
		{"vertices", strconv.Itoa(d.Vertices())},
	}
}

func (m *Model) refreshBounds() {
	rows := m.boundsRows()
	if len(rows) == 0 {
		m.showBounds = false
	}
	m.tbl.SetRows(rows)
}

func (m Model) num(v float64) string {
	return strconv.FormatFloat(v, 'f', m.prec, 64)
}
