package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadKML extracts geometry coordinates from a KML file.
func LoadKML(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return DecodeKML(f)
}

// DecodeKML walks the document for <coordinates> elements at any depth.
// Coordinates under Point become points, under LineString become lines and
// under a Polygon's LinearRing become rings of that polygon.
// KML coordinates are "lon,lat[,alt]"; we ignore altitude.
func DecodeKML(r io.Reader) (Data, error) {
	dec := xml.NewDecoder(r)
	d := NewData()
	var (
		stack []string
		poly  [][][2]float64
		text  strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Data{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
			if t.Name.Local == "coordinates" {
				text.Reset()
			}
		case xml.CharData:
			if len(stack) > 0 && stack[len(stack)-1] == "coordinates" {
				text.Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			name := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			switch name {
			case "coordinates":
				pts := kmlTuples(text.String())
				switch parentOf(stack) {
				case "Point":
					for _, p := range pts {
						d.addPoint(p)
					}
				case "LineString":
					d.addLine(pts)
				case "LinearRing":
					poly = append(poly, pts)
				}
			case "Polygon":
				d.addPolygon(poly)
				poly = nil
			}
		}
	}
	if d.Empty() {
		return Data{}, errors.New("kml: no geometries found")
	}
	return d, nil
}

func parentOf(stack []string) string {
	if len(stack) == 0 {
		return ""
	}
	return stack[len(stack)-1]
}

// kmlTuples parses whitespace separated "lon,lat[,alt]" tuples.
func kmlTuples(s string) [][2]float64 {
	var out [][2]float64
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, [2]float64{lon, lat})
	}
	return out
}
