package geom

import (
	"errors"

	"github.com/jonas-p/go-shp"
)

// LoadSHP reads an ESRI shapefile. Multi-part shapes are split by part:
// polyline parts become lines and polygon parts become rings of one polygon.
func LoadSHP(path string) (Data, error) {
	r, err := shp.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer r.Close()
	d := NewData()
	for r.Next() {
		_, s := r.Shape()
		switch s := s.(type) {
		case *shp.Point:
			d.addPoint([2]float64{s.X, s.Y})
		case *shp.PointZ:
			d.addPoint([2]float64{s.X, s.Y})
		case *shp.PointM:
			d.addPoint([2]float64{s.X, s.Y})
		case *shp.MultiPoint:
			d.addShpPoints(s.Points)
		case *shp.MultiPointZ:
			d.addShpPoints(s.Points)
		case *shp.MultiPointM:
			d.addShpPoints(s.Points)
		case *shp.PolyLine:
			d.addShpLines(s.Parts, s.Points)
		case *shp.PolyLineZ:
			d.addShpLines(s.Parts, s.Points)
		case *shp.PolyLineM:
			d.addShpLines(s.Parts, s.Points)
		case *shp.Polygon:
			d.addPolygon(shpParts(s.Parts, s.Points))
		case *shp.PolygonZ:
			d.addPolygon(shpParts(s.Parts, s.Points))
		case *shp.PolygonM:
			d.addPolygon(shpParts(s.Parts, s.Points))
		}
	}
	if err := r.Err(); err != nil {
		return Data{}, err
	}
	if d.Empty() {
		return Data{}, errors.New("shp: no geometries found")
	}
	return d, nil
}

func (d *Data) addShpPoints(pts []shp.Point) {
	for _, p := range pts {
		d.addPoint([2]float64{p.X, p.Y})
	}
}

func (d *Data) addShpLines(parts []int32, pts []shp.Point) {
	for _, part := range shpParts(parts, pts) {
		d.addLine(part)
	}
}

// shpParts slices points at the part start indices.
func shpParts(parts []int32, points []shp.Point) [][][2]float64 {
	var out [][][2]float64
	for i, start := range parts {
		end := len(points)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}
		if int(start) < 0 || int(start) > end || end > len(points) {
			continue
		}
		part := make([][2]float64, 0, end-int(start))
		for _, p := range points[start:end] {
			part = append(part, [2]float64{p.X, p.Y})
		}
		out = append(out, part)
	}
	return out
}
