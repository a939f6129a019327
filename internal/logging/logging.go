package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"geobox/internal/config"
)

const timeFormat = "2006-01-02 15:04:05.000"

var mu sync.Mutex

// consoleWriter adapts zerolog.ConsoleWriter to zerolog.LevelWriter.
type consoleWriter struct {
	zerolog.ConsoleWriter
}

// WriteLevel reports len(p): the console output has a different length
// than the JSON entry and zerolog treats that as a short write.
func (c consoleWriter) WriteLevel(_ zerolog.Level, p []byte) (int, error) {
	_, err := c.ConsoleWriter.Write(p)
	return len(p), err
}

// fileWriter writes to a rotating file, optionally as formatted lines.
type fileWriter struct {
	out       io.Writer
	formatted bool
}

func (f fileWriter) Write(p []byte) (int, error) { return f.out.Write(p) }

func (f fileWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if !f.formatted {
		return f.out.Write(p)
	}
	line, err := formatEntry(level, p)
	if err != nil {
		return f.out.Write(p)
	}
	_, err = io.WriteString(f.out, line)
	return len(p), err
}

// formatEntry turns a zerolog JSON entry into
// "time | level | caller | message | k=v ...".
func formatEntry(level zerolog.Level, p []byte) (string, error) {
	var entry map[string]interface{}
	if err := json.Unmarshal(p, &entry); err != nil {
		return "", err
	}
	ts, _ := entry["time"].(string)
	msg, _ := entry["message"].(string)
	caller, _ := entry["caller"].(string)
	return fmt.Sprintf("%s | %-5s | %-20s | %s | %s\n",
		ts, level.String(), caller, msg, strings.Join(extraFields(entry), " ")), nil
}

func extraFields(entry map[string]interface{}) []string {
	var extras []string
	for k, v := range entry {
		switch k {
		case "time", "message", "level", "caller":
			continue
		}
		extras = append(extras, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(extras)
	return extras
}

// shortCaller trims "pkg/dir/file.go" to "file".
func shortCaller(file string) string {
	return strings.TrimSuffix(filepath.Base(file), ".go")
}

// pruneLogs removes the oldest .log files in dir until at most keep remain.
func pruneLogs(dir string, keep int) error {
	if keep <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	type logFile struct {
		name string
		mod  time.Time
	}
	var files []logFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{e.Name(), info.ModTime()})
	}
	if len(files) <= keep {
		return nil
	}
	sort.Slice(files, func(i, j int) bool { return files[i].mod.Before(files[j].mod) })
	for _, f := range files[:len(files)-keep] {
		if err := os.Remove(filepath.Join(dir, f.name)); err != nil {
			log.Err(err).Str("file", f.name).Msg("remove old log file")
		}
	}
	return nil
}

// banner marks a process start inside a shared daily log file.
func banner(now time.Time) string {
	line := fmt.Sprintf("  geobox started %s", now.Format("2006-01-02 15:04:05"))
	width := max(50, len(line)+4)
	rule := strings.Repeat("─", width)
	return fmt.Sprintf("\n┌%s┐\n│%-*s│\n└%s┘\n\n", rule, width, line, rule)
}

func newFileWriter(cfg config.Log) (*fileWriter, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	if err := pruneLogs(cfg.Dir, cfg.MaxFiles); err != nil {
		log.Err(err).Msg("prune log files")
	}
	suffix := "_json"
	if cfg.Formatted {
		suffix = ""
	}
	// one file per day, appended to by every run
	name := fmt.Sprintf("%s_%s%s.log", cfg.FileName, time.Now().Format("02-01-2006"), suffix)
	lj := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, name),
		MaxSize:    cfg.MaxFileSize,
		MaxBackups: 3,
		MaxAge:     30,
	}
	_, _ = io.WriteString(lj, banner(time.Now()))
	return &fileWriter{out: lj, formatted: cfg.Formatted}, nil
}

// Init installs the global zerolog logger. With console set, entries go to
// stderr; the terminal viewer passes false so output never lands on its
// screen. Entries go to the rotating file when cfg.ToFile is set. With
// neither sink the logger is disabled.
func Init(cfg config.Log, console bool) {
	mu.Lock()
	defer mu.Unlock()

	zerolog.TimeFieldFormat = timeFormat
	zerolog.CallerMarshalFunc = func(_ uintptr, file string, line int) string {
		return fmt.Sprintf("%s:%d", shortCaller(file), line)
	}

	var writers []io.Writer
	if console {
		writers = append(writers, consoleWriter{zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: timeFormat}})
	}
	if cfg.ToFile {
		fw, err := newFileWriter(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "geobox: log file disabled: %v\n", err)
		} else {
			writers = append(writers, fw)
		}
	}

	if len(writers) == 0 {
		log.Logger = zerolog.Nop()
	} else {
		log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
			With().
			Timestamp().
			Caller().
			Logger()
	}
	SetLevel(cfg.Level)
}

// SetLevel sets the global level from a name such as "debug" or "warn",
// falling back to info.
func SetLevel(level string) {
	level = strings.ToLower(strings.TrimSpace(level))
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
