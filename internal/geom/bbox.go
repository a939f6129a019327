package geom

import "math"

// BBox is an axis-aligned bounding box given by its minimum and maximum
// corners. The zero value is a box at the origin, not an empty box; start
// from NewBBox when folding points.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// NewBBox returns an empty box. Its minimums sit at the largest finite
// float and its maximums at the smallest, so the first point added sets all
// four fields.
func NewBBox() BBox {
	return BBox{
		MinX: math.MaxFloat64,
		MinY: math.MaxFloat64,
		MaxX: -math.MaxFloat64,
		MaxY: -math.MaxFloat64,
	}
}

// BBoxOf folds pts into a new box.
func BBoxOf(pts ...[2]float64) BBox {
	b := NewBBox()
	for _, p := range pts {
		b.AddPoint(p)
	}
	return b
}

// AddPoint grows b just enough to contain pt. Points with a NaN coordinate
// are ignored as a whole.
func (b *BBox) AddPoint(pt [2]float64) {
	if !Valid(pt) {
		return
	}
	if pt[0] < b.MinX {
		b.MinX = pt[0]
	}
	if pt[1] < b.MinY {
		b.MinY = pt[1]
	}
	if pt[0] > b.MaxX {
		b.MaxX = pt[0]
	}
	if pt[1] > b.MaxY {
		b.MaxY = pt[1]
	}
}

// WidthHeight returns the extent of b along each axis. It is only
// meaningful once at least one point has been added: an empty box reports
// a large negative extent.
func (b BBox) WidthHeight() (width, height float64) {
	return b.MaxX - b.MinX, b.MaxY - b.MinY
}

// IsEmpty reports whether no point has been added to b.
func (b BBox) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Valid reports whether pt can be folded into a box.
func Valid(pt [2]float64) bool {
	return !math.IsNaN(pt[0]) && !math.IsNaN(pt[1])
}
