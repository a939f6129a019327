package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/rs/zerolog/log"

	"geobox/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		log.Warn().Err(err).Str("dir", m.cwd).Msg("read dir")
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if geom.Supported(ext) {
			items = append(items, fileItem{title: e.Name(), desc: ext, path: filepath.Join(m.cwd, e.Name())})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).title < items[j].(fileItem).title })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath loads any supported format into the model.
func (m *Model) loadPath(p string) {
	d, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		log.Warn().Err(err).Str("path", p).Msg("load")
		return
	}
	m.selPath = p
	m.setData(d)
	m.status = "loaded: " + filepath.Base(p) + "  " + m.summary()
	log.Info().Str("path", p).Int("vertices", d.Vertices()).
		Floats64("bbox", []float64{d.BBox.MinX, d.BBox.MinY, d.BBox.MaxX, d.BBox.MaxY}).
		Msg("loaded")
}

// setData replaces the dataset and resets the viewport.
func (m *Model) setData(d geom.Data) {
	m.data = d
	m.view = displayBox(d.BBox)
	m.zoom = m.baseZoom
	m.offsetX, m.offsetY = 0, 0
	m.inspectPopup = ""
	// prefer polys > lines > points for visibility
	m.showPolys = len(d.Polygons) > 0
	m.showLines = len(d.Lines) > 0 && !m.showPolys
	m.showPoints = len(d.Points) > 0 && !m.showPolys
	m.refreshBounds()
	m.resize()
}

func (m Model) summary() string {
	w, h := m.data.BBox.WidthHeight()
	return fmt.Sprintf("pts=%d ls=%d poly=%d  w=%s h=%s",
		len(m.data.Points), len(m.data.Lines), len(m.data.Polygons), m.num(w), m.num(h))
}
