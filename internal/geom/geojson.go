package geom

import (
	"encoding/json"
	"errors"
	"os"
)

// LoadGeoJSON reads a GeoJSON file and returns Data (points, lines, polygons)
func LoadGeoJSON(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return DecodeGeoJSON(b)
}

// DecodeGeoJSON accepts a FeatureCollection, a Feature or a bare geometry.
// Coordinates beyond the second (altitude) are ignored.
func DecodeGeoJSON(b []byte) (Data, error) {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return Data{}, err
	}
	d := NewData()
	t, _ := raw["type"].(string)
	switch t {
	case "":
		return Data{}, errors.New("invalid geojson: missing type")
	case "Feature":
		if g, ok := raw["geometry"].(map[string]any); ok {
			d.walkGeoJSON(g)
		}
	case "FeatureCollection":
		fs, _ := raw["features"].([]any)
		for _, f := range fs {
			fm, _ := f.(map[string]any)
			if g, ok := fm["geometry"].(map[string]any); ok {
				d.walkGeoJSON(g)
			}
		}
	default:
		d.walkGeoJSON(raw)
	}
	if d.Empty() {
		return Data{}, errors.New("no geometries found")
	}
	return d, nil
}

func (d *Data) walkGeoJSON(g map[string]any) {
	c := g["coordinates"]
	switch g["type"] {
	case "Point":
		if pt, ok := jsonPoint(c); ok {
			d.addPoint(pt)
		}
	case "MultiPoint":
		for _, p := range jsonPoints(c) {
			d.addPoint(p)
		}
	case "LineString":
		d.addLine(jsonPoints(c))
	case "MultiLineString":
		arr, _ := c.([]any)
		for _, ls := range arr {
			d.addLine(jsonPoints(ls))
		}
	case "Polygon":
		d.addPolygon(jsonPolygon(c))
	case "MultiPolygon":
		arr, _ := c.([]any)
		for _, poly := range arr {
			d.addPolygon(jsonPolygon(poly))
		}
	case "GeometryCollection":
		gs, _ := g["geometries"].([]any)
		for _, sub := range gs {
			if sm, ok := sub.(map[string]any); ok {
				d.walkGeoJSON(sm)
			}
		}
	}
}

func jsonPoint(v any) ([2]float64, bool) {
	a, ok := v.([]any)
	if !ok || len(a) < 2 {
		return [2]float64{}, false
	}
	lon, lok := a[0].(float64)
	lat, aok := a[1].(float64)
	if !lok || !aok {
		return [2]float64{}, false
	}
	return [2]float64{lon, lat}, true
}

func jsonPoints(v any) [][2]float64 {
	arr, _ := v.([]any)
	var pts [][2]float64
	for _, el := range arr {
		if pt, ok := jsonPoint(el); ok {
			pts = append(pts, pt)
		}
	}
	return pts
}

func jsonPolygon(v any) [][][2]float64 {
	arr, _ := v.([]any)
	var poly [][][2]float64
	for _, ring := range arr {
		poly = append(poly, jsonPoints(ring))
	}
	return poly
}
