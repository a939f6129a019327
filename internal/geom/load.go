package geom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned by Load for file extensions it cannot read.
var ErrUnsupported = errors.New("unsupported file")

var loaders = map[string]func(string) (Data, error){
	".geojson": LoadGeoJSON,
	".json":    LoadGeoJSON,
	".csv":     LoadCSV,
	".kml":     LoadKML,
	".wkt":     loadWKT,
	".shp":     LoadSHP,
}

// Supported reports whether Load can read files with extension ext.
func Supported(ext string) bool {
	_, ok := loaders[strings.ToLower(ext)]
	return ok
}

// Load reads path with the loader matching its extension.
func Load(path string) (Data, error) {
	ext := strings.ToLower(filepath.Ext(path))
	load, ok := loaders[ext]
	if !ok {
		return Data{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	d, err := load(path)
	if err != nil {
		return Data{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return d, nil
}

func loadWKT(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, err
	}
	return ParseWKT(string(b))
}
