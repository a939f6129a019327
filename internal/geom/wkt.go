package geom

import (
	"errors"
	"strconv"
	"strings"
)

// ParseWKT parses a subset of WKT into Data.
// Supported: POINT(x y), MULTIPOINT(x y, ...), LINESTRING(x y, ...),
// MULTILINESTRING((x y, ...), ...), POLYGON((x y, ...), (x y, ...))
func ParseWKT(wkt string) (Data, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Data{}, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	d := NewData()
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"):
		body, err := wktBody(s, "multipoint")
		if err != nil {
			return Data{}, err
		}
		// both "MULTIPOINT(1 2, 3 4)" and "MULTIPOINT((1 2), (3 4))" occur in the wild
		body = strings.NewReplacer("(", "", ")", "").Replace(body)
		for _, p := range parseTuples(body) {
			d.addPoint(p)
		}
	case strings.HasPrefix(up, "MULTILINESTRING"):
		body, err := wktBody(s, "multilinestring")
		if err != nil {
			return Data{}, err
		}
		for _, part := range splitRings(body) {
			d.addLine(parseTuples(part))
		}
	case strings.HasPrefix(up, "POINT"):
		body, err := wktBody(s, "point")
		if err != nil {
			return Data{}, err
		}
		for _, p := range parseTuples(body) {
			d.addPoint(p)
		}
	case strings.HasPrefix(up, "LINESTRING"):
		body, err := wktBody(s, "linestring")
		if err != nil {
			return Data{}, err
		}
		d.addLine(parseTuples(body))
	case strings.HasPrefix(up, "POLYGON"):
		body, err := wktBody(s, "polygon")
		if err != nil {
			return Data{}, err
		}
		var poly [][][2]float64
		for _, part := range splitRings(body) {
			poly = append(poly, parseTuples(part))
		}
		d.addPolygon(poly)
	default:
		return Data{}, errors.New("unsupported wkt type")
	}
	if d.Empty() {
		return Data{}, errors.New("wkt: no coordinates parsed")
	}
	return d, nil
}

// wktBody returns the text between the outermost parentheses.
func wktBody(s, kind string) (string, error) {
	i := strings.Index(s, "(")
	j := strings.LastIndex(s, ")")
	if i < 0 || j <= i {
		return "", errors.New("wkt " + kind + ": invalid")
	}
	return s[i+1 : j], nil
}

// splitRings splits "(x y, ...), (x y, ...)" into the inner tuple lists.
func splitRings(body string) []string {
	var out []string
	depth, start := 0, -1
	for i, ch := range body {
		switch ch {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			depth--
			if depth == 0 && start >= 0 {
				out = append(out, body[start:i])
				start = -1
			}
		}
	}
	return out
}

// parseTuples reads comma separated "x y" tuples, skipping malformed ones.
func parseTuples(block string) [][2]float64 {
	var out [][2]float64
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			continue
		}
		out = append(out, [2]float64{x, y})
	}
	return out
}
