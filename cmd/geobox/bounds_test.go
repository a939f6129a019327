package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"geobox/internal/geom"
)

func fixture(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func fields(out string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		rows = append(rows, strings.Fields(line))
	}
	return rows
}

func TestWriteBounds(t *testing.T) {
	dir := t.TempDir()
	a := fixture(t, dir, "a.wkt", "MULTIPOINT(1 1, -2 5, 4 -3)")
	b := fixture(t, dir, "b.csv", "lon,lat\n10,0\n")

	var buf bytes.Buffer
	if err := writeBounds(&buf, []string{a, b}, 1); err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(buf.String(), "│─╭╮╰╯┼") {
		t.Fatalf("table should render without borders:\n%s", buf.String())
	}
	rows := fields(buf.String())
	if len(rows) != 4 {
		t.Fatalf("rows = %d\n%s", len(rows), buf.String())
	}
	want := [][]string{
		{"file", "minX", "minY", "maxX", "maxY", "width", "height", "vertices"},
		{"a.wkt", "-2.0", "-3.0", "4.0", "5.0", "6.0", "8.0", "3"},
		{"b.csv", "10.0", "0.0", "10.0", "0.0", "0.0", "0.0", "1"},
		{"total", "-2.0", "-3.0", "10.0", "5.0", "12.0", "8.0", "4"},
	}
	for i := range want {
		if strings.Join(rows[i], " ") != strings.Join(want[i], " ") {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}

func TestWriteBoundsSingleFileNoTotal(t *testing.T) {
	p := fixture(t, t.TempDir(), "line.wkt", "LINESTRING(0 0, 3 4)")
	var buf bytes.Buffer
	if err := writeBounds(&buf, []string{p}, 0); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "total") {
		t.Fatalf("unexpected total line:\n%s", buf.String())
	}
	if rows := fields(buf.String()); strings.Join(rows[1][5:7], " ") != "3 4" {
		t.Fatalf("width/height = %v", rows[1][5:7])
	}
}

func TestWriteBoundsError(t *testing.T) {
	var buf bytes.Buffer
	if err := writeBounds(&buf, []string{"shapes.gpx"}, 2); err == nil {
		t.Fatal("expected error for unsupported file")
	}
}

func TestFoldData(t *testing.T) {
	d, err := geom.ParseWKT("POLYGON((0 0, 3 0, 3 4, 0 0))")
	if err != nil {
		t.Fatal(err)
	}
	b := geom.NewBBox()
	foldData(&b, d)
	if b != d.BBox {
		t.Fatalf("folded %+v, want %+v", b, d.BBox)
	}
}

func TestBoundsCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	p := fixture(t, dir, "pts.geojson", `{"type": "MultiPoint", "coordinates": [[0, 0], [3, 4]]}`)
	t.Setenv("GEOBOX_PRECISION", "2")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"bounds", "--log-level", "error", p})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "3.00") || !strings.Contains(out.String(), "4.00") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestBoundsCommandRequiresPath(t *testing.T) {
	chdir(t, t.TempDir())
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"bounds"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error without paths")
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
