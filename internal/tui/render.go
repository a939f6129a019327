package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// normalize maps lon/lat into [0,1] view space after zoom around the centre.
func (m Model) normalize(lon, lat float64) (zx, zy float64, ok bool) {
	b := m.view
	if !(b.MaxX > b.MinX && b.MaxY > b.MinY) {
		return 0, 0, false
	}
	w, h := b.WidthHeight()
	nx := (lon - b.MinX) / w
	ny := (lat - b.MinY) / h
	return 0.5 + (nx-0.5)*m.zoom, 0.5 + (ny-0.5)*m.zoom, true
}

// cellToLonLat converts a map cell coordinate back to lon/lat.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	b := m.view
	if !(b.MaxX > b.MinX && b.MaxY > b.MinY) || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	bw, bh := b.WidthHeight()
	return b.MinX + nx*bw, b.MinY + ny*bh, true
}

// screenXYMicro maps lon/lat into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	zx, zy, ok := m.normalize(lon, lat)
	if !ok {
		return 0, 0, false
	}
	sx := int(zx*float64(w*2-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(h*4-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps lon/lat to cell coordinates.
func (m Model) screenXY(lon, lat float64, w, h int) (int, int, bool) {
	zx, zy, ok := m.normalize(lon, lat)
	if !ok {
		return 0, 0, false
	}
	sx := int(zx*float64(w-1)) + m.offsetX
	sy := int((1.0-zy)*float64(h-1)) + m.offsetY
	return sx, sy, true
}

func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	if m.showPolys {
		for _, poly := range m.data.Polygons {
			m.drawPolygon(br, poly, w, h)
		}
	}
	if m.showLines {
		for _, ls := range m.data.Lines {
			m.drawPath(br, ls, w, h, false)
		}
	}
	if m.showPoints {
		for _, p := range m.data.Points {
			if mx, my, ok := m.screenXYMicro(p[0], p[1], w, h); ok {
				br.setPixel(mx, my)
			}
		}
	}
	lines := br.toLines()
	if m.hovering {
		cx, cy := m.hoverMicX/2, m.hoverMicY/4
		if cy >= 0 && cy < len(lines) {
			r := []rune(lines[cy])
			if cx >= 0 && cx < len(r) {
				lines[cy] = string(r[:cx]) + hoverStyle.Render("◯") + string(r[cx+1:])
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) drawPath(br *brailleBuf, pts [][2]float64, w, h int, closed bool) {
	var first, prev *[2]int
	for _, p := range pts {
		mx, my, ok := m.screenXYMicro(p[0], p[1], w, h)
		if !ok {
			continue
		}
		cur := [2]int{mx, my}
		if prev != nil {
			br.drawLineMicro(prev[0], prev[1], cur[0], cur[1])
		} else {
			br.setPixel(mx, my)
			first = &cur
		}
		prev = &cur
	}
	if closed && first != nil && prev != nil {
		br.drawLineMicro(prev[0], prev[1], first[0], first[1])
	}
}

// drawPolygon fills the outer ring with the even-odd rule per micro
// scanline, then draws every ring's edges. Holes are not cut out of the fill.
func (m Model) drawPolygon(br *brailleBuf, poly [][][2]float64, w, h int) {
	if len(poly) == 0 {
		return
	}
	var outer [][2]int
	for _, p := range poly[0] {
		if mx, my, ok := m.screenXYMicro(p[0], p[1], w, h); ok {
			outer = append(outer, [2]int{mx, my})
		}
	}
	if len(outer) >= 3 {
		for y := 0; y < h*4; y++ {
			var xs []int
			for i := range outer {
				a, b := outer[i], outer[(i+1)%len(outer)]
				if a[1] == b[1] {
					continue
				}
				if (y >= a[1] && y < b[1]) || (y >= b[1] && y < a[1]) {
					t := float64(y-a[1]) / float64(b[1]-a[1])
					xs = append(xs, int(float64(a[0])+t*float64(b[0]-a[0])))
				}
			}
			sort.Ints(xs)
			for i := 0; i+1 < len(xs); i += 2 {
				for x := max(0, xs[i]); x <= xs[i+1]; x++ {
					br.setPixel(x, y)
				}
			}
		}
	}
	for _, ring := range poly {
		m.drawPath(br, ring, w, h, true)
	}
}

// nearestVertex returns the micro coordinates of the vertex closest to
// (hx, hy), searching every visible layer.
func (m Model) nearestVertex(hx, hy, w, h int) (bx, by int, lon, lat float64, ok bool) {
	best := -1
	visit := func(p [2]float64) {
		mx, my, vis := m.screenXYMicro(p[0], p[1], w, h)
		if !vis {
			return
		}
		dx, dy := mx-hx, my-hy
		if d := dx*dx + dy*dy; best < 0 || d < best {
			best, bx, by, lon, lat = d, mx, my, p[0], p[1]
		}
	}
	for _, p := range m.data.Points {
		visit(p)
	}
	for _, ls := range m.data.Lines {
		for _, p := range ls {
			visit(p)
		}
	}
	for _, poly := range m.data.Polygons {
		for _, ring := range poly {
			for _, p := range ring {
				visit(p)
			}
		}
	}
	return bx, by, lon, lat, best >= 0
}

var hoverStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
