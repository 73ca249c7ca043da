package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/example/regionshot/internal/render"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REGIONSHOT_"

// EnvFileVar names an explicit .env file to read overrides from.
const EnvFileVar = EnvPrefix + "ENV_FILE"

// Loader handles loading the configuration.
type Loader struct {
	Version      string // build version; "dev" also searches the working directory
	OverridePath string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the configuration file and applies environment overrides. The
// process environment beats values from the .env file, which beat the file.
func (l *Loader) Load() (*Config, error) {
	cfg := New()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		parsed, err := Parse(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cfg = parsed
		cfg.Path = path
	}

	dotenv := map[string]string{}
	if envPath := l.EnvFilePath(); envPath != "" {
		values, err := godotenv.Read(envPath)
		if err != nil {
			log.Printf("read %s: %v", envPath, err)
		} else {
			dotenv = values
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := l.lookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := ApplyEnv(cfg, lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) lookupEnv(key string) (string, bool) {
	if l.LookupEnv != nil {
		return l.LookupEnv(key)
	}
	return os.LookupEnv(key)
}

func (l *Loader) configDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "regionshot")
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".regionshotrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}
	for _, name := range []string{"config.rc", "regionshot.rc"} {
		path := filepath.Join(l.configDir(), name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// EnvFilePath returns the .env file to read, or empty string if none exists.
// REGIONSHOT_ENV_FILE wins, then ./.env in dev builds, then the config
// directory.
func (l *Loader) EnvFilePath() string {
	if alt, ok := l.lookupEnv(EnvFileVar); ok && alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}
	var candidates []string
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		candidates = append(candidates, filepath.Join(wd, ".env"))
	}
	candidates = append(candidates, filepath.Join(l.configDir(), ".env"))
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ApplyEnv overlays REGIONSHOT_* values onto cfg.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get("THEME"); ok {
		cfg.Theme = v
	}
	if v, ok := get("SAVE_DIR"); ok {
		cfg.SaveDir = v
	}
	if v, ok := get("HOTKEY"); ok {
		cfg.Hotkey = v
	}
	if v, ok := get("DETECT_WINDOW"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDETECT_WINDOW: %w", EnvPrefix, err)
		}
		cfg.Selector.DetectWindow = b
	}
	if v, ok := get("BORDER_STYLE"); ok {
		st, err := render.ParseBorderStyle(v)
		if err != nil {
			return fmt.Errorf("%sBORDER_STYLE: %w", EnvPrefix, err)
		}
		cfg.Selector.BorderStyle = st
	}
	for name, dst := range map[string]*int{
		"TOLERANCE":    &cfg.Selector.Tolerance,
		"BORDER_WIDTH": &cfg.Selector.BorderWidth,
	} {
		v, ok := get(name)
		if !ok {
			continue
		}
		n, err := positiveInt(EnvPrefix+name, v)
		if err != nil {
			return err
		}
		*dst = n
	}
	return nil
}
