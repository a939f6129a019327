package geom

// Data is a minimal geometry container for rendering
type Data struct {
	Points   [][2]float64
	Lines    [][][2]float64
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox
}

// NewData returns an empty container whose BBox is ready to be extended.
func NewData() Data {
	return Data{BBox: NewBBox()}
}

// Empty reports whether no geometry has been added.
func (d *Data) Empty() bool {
	return len(d.Points) == 0 && len(d.Lines) == 0 && len(d.Polygons) == 0
}

// Vertices counts every coordinate held by d.
func (d *Data) Vertices() int {
	n := len(d.Points)
	for _, ls := range d.Lines {
		n += len(ls)
	}
	for _, poly := range d.Polygons {
		for _, ring := range poly {
			n += len(ring)
		}
	}
	return n
}

func (d *Data) addPoint(pt [2]float64) {
	if !Valid(pt) {
		return
	}
	d.Points = append(d.Points, pt)
	d.BBox.AddPoint(pt)
}

func (d *Data) addLine(ls [][2]float64) {
	ls = validOnly(ls)
	if len(ls) == 0 {
		return
	}
	d.Lines = append(d.Lines, ls)
	for _, p := range ls {
		d.BBox.AddPoint(p)
	}
}

func (d *Data) addPolygon(poly [][][2]float64) {
	var rings [][][2]float64
	for _, ring := range poly {
		if ring = validOnly(ring); len(ring) > 0 {
			rings = append(rings, ring)
		}
	}
	if len(rings) == 0 {
		return
	}
	d.Polygons = append(d.Polygons, rings)
	for _, ring := range rings {
		for _, p := range ring {
			d.BBox.AddPoint(p)
		}
	}
}

// validOnly drops NaN vertices in place.
func validOnly(pts [][2]float64) [][2]float64 {
	out := pts[:0]
	for _, p := range pts {
		if Valid(p) {
			out = append(out, p)
		}
	}
	return out
}
