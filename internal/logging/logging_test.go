package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"geobox/internal/config"
)

func TestFormatEntry(t *testing.T) {
	line, err := formatEntry(zerolog.InfoLevel,
		[]byte(`{"level":"info","time":"2026-10-18 10:00:00.000","caller":"bounds:42","message":"loaded","width":6,"file":"a.wkt"}`))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"2026-10-18 10:00:00.000 | info ", "bounds:42", "| loaded |", "file=a.wkt width=6\n"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
	if _, err := formatEntry(zerolog.InfoLevel, []byte("not json")); err == nil {
		t.Error("expected error for invalid entry")
	}
}

func TestFileWriterFormatted(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(fileWriter{out: &buf, formatted: true})
	logger.Warn().Int("points", 3).Msg("bbox")
	got := buf.String()
	if !strings.Contains(got, "| warn  |") || !strings.Contains(got, "points=3") {
		t.Fatalf("unexpected formatted line %q", got)
	}

	buf.Reset()
	logger = zerolog.New(fileWriter{out: &buf})
	logger.Info().Msg("raw")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("expected raw JSON, got %q", buf.String())
	}
}

func TestShortCaller(t *testing.T) {
	if got := shortCaller("/src/geobox/internal/geom/bbox.go"); got != "bbox" {
		t.Fatalf("shortCaller = %q", got)
	}
}

func TestPruneLogs(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"a.log", "b.log", "c.log", "d.log"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		mod := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(p, mod, mod); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "keep.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := pruneLogs(dir, 2); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(dir)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if strings.Join(names, ",") != "c.log,d.log,keep.txt" {
		t.Fatalf("remaining = %v", names)
	}
}

func TestBanner(t *testing.T) {
	b := banner(time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC))
	if !strings.Contains(b, "geobox started 2026-10-18 09:30:00") {
		t.Fatalf("banner %q", b)
	}
}

func TestInitToFile(t *testing.T) {
	dir := t.TempDir()
	Init(config.Log{Level: "debug", ToFile: true, Dir: dir, FileName: "test", Formatted: true, MaxFileSize: 1}, false)
	t.Cleanup(func() { Init(config.Log{}, false) })
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Fatalf("level = %v", zerolog.GlobalLevel())
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "test_") {
		t.Fatalf("log dir = %v, %v", entries, err)
	}
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })
	for in, want := range map[string]zerolog.Level{
		"WARN":   zerolog.WarnLevel,
		"debug":  zerolog.DebugLevel,
		"bogus":  zerolog.InfoLevel,
		"":       zerolog.InfoLevel,
		"  ":     zerolog.InfoLevel,
		" warn ": zerolog.WarnLevel,
	} {
		SetLevel(in)
		if got := zerolog.GlobalLevel(); got != want {
			t.Errorf("SetLevel(%q) -> %v, want %v", in, got, want)
		}
	}
}

func TestInitConcurrent(t *testing.T) {
	t.Cleanup(func() { Init(config.Log{}, false) })
	var wg sync.WaitGroup
	for _, level := range []string{"debug", "warn", "error", "info"} {
		level := level
		wg.Add(1)
		go func() {
			defer wg.Done()
			Init(config.Log{Level: level}, false)
		}()
	}
	wg.Wait()
	if lvl := zerolog.GlobalLevel(); lvl < zerolog.DebugLevel || lvl > zerolog.ErrorLevel {
		t.Fatalf("level = %v after concurrent Init", lvl)
	}
}
