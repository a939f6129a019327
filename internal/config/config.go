package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds every tunable of geobox.
type Config struct {
	Log  Log  `toml:"log"`
	View View `toml:"view"`
}

// Log configures the zerolog sinks.
type Log struct {
	Level       string `toml:"level" env:"GEOBOX_LOG_LEVEL,info"`
	ToFile      bool   `toml:"to_file" env:"GEOBOX_LOG_TO_FILE,false"`
	Dir         string `toml:"dir" env:"GEOBOX_LOG_DIR,./logs"`
	FileName    string `toml:"file_name" env:"GEOBOX_LOG_FILE,geobox"`
	Formatted   bool   `toml:"formatted" env:"GEOBOX_LOG_FORMATTED,true"`
	MaxFileSize int    `toml:"max_file_size_mb" env:"GEOBOX_LOG_MAX_SIZE_MB,10"`
	MaxFiles    int    `toml:"max_files" env:"GEOBOX_LOG_MAX_FILES,5"`
}

// View configures the terminal viewer and printed output.
type View struct {
	Dir       string  `toml:"dir" env:"GEOBOX_DIR,."`
	Zoom      float64 `toml:"zoom" env:"GEOBOX_ZOOM,1"`
	Precision int     `toml:"precision" env:"GEOBOX_PRECISION,5"`
}

// Load builds a Config from tag defaults, then the TOML file at path (if
// path is not empty), then a .env file in the working directory and the
// process environment. Later sources win.
func Load(path string) (Config, error) {
	var cfg Config
	if err := Decode(&cfg, path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode fills cfg, which must be a pointer to a struct, the same way Load does.
func Decode(cfg interface{}, path string) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: expected a pointer to a struct, got %T", cfg)
	}
	if err := walk(v.Elem(), defaultValue); err != nil {
		return err
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("config: %s: %w", path, err)
		}
	}
	// a missing .env is normal; anything else is a broken file
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: .env: %w", err)
	}
	return walk(v.Elem(), envValue)
}

// lookup resolves the raw value for a tag; ok is false when nothing applies.
type lookup func(key, def string, hasDef bool) (raw string, ok bool)

func defaultValue(_, def string, hasDef bool) (string, bool) { return def, hasDef }

func envValue(key, _ string, _ bool) (string, bool) {
	val := os.Getenv(key)
	return val, val != ""
}

// walk visits every tagged field, recursing into nested structs.
func walk(v reflect.Value, get lookup) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		ft := t.Field(i)
		if field.Kind() == reflect.Struct {
			if err := walk(field, get); err != nil {
				return err
			}
			continue
		}
		tag := ft.Tag.Get("env")
		if tag == "" {
			continue
		}
		key, def, hasDef := parseTag(tag)
		raw, ok := get(key, def, hasDef)
		if !ok {
			continue
		}
		if err := setField(field, ft.Name, raw); err != nil {
			return err
		}
	}
	return nil
}

// parseTag splits "ENV_KEY,default" into its parts.
func parseTag(tag string) (key, def string, hasDef bool) {
	parts := strings.SplitN(tag, ",", 2)
	key = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		return key, strings.TrimSpace(parts[1]), true
	}
	return key, "", false
}

func setField(field reflect.Value, name, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("config: field %q: cannot parse %q as int: %w", name, raw, err)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("config: field %q: cannot parse %q as bool: %w", name, raw, err)
		}
		field.SetBool(b)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("config: field %q: cannot parse %q as float: %w", name, raw, err)
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("config: field %q: unsupported type %s", name, field.Kind())
	}
	return nil
}
