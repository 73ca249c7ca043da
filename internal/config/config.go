package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/regionshot/internal/render"
	"github.com/example/regionshot/internal/selector"
	"github.com/example/regionshot/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Selector holds the overlay behaviour settings.
type Selector struct {
	DetectWindow bool
	Tolerance    int
	BorderWidth  int
	BorderStyle  render.BorderStyle
}

// Config holds the application configuration.
type Config struct {
	Theme    string
	SaveDir  string
	Hotkey   string
	Notify   Notify
	Selector Selector
	Themes   map[string]*theme.Theme

	// Path is the file the configuration was read from, if any.
	Path string
}

// DefaultHotkey is the global shortcut used by the listen command.
const DefaultHotkey = "ctrl+shift+s"

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Hotkey: DefaultHotkey,
		Selector: Selector{
			DetectWindow: true,
			Tolerance:    selector.DefaultTolerance,
			BorderWidth:  1,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// ResolveTheme returns the palette named by c.Theme. Themes defined inline in
// the configuration take precedence over the theme loader.
func (c *Config) ResolveTheme(l *theme.Loader) (*theme.Theme, error) {
	if t, ok := c.Themes[c.Theme]; ok {
		return t, nil
	}
	return l.Load(c.Theme)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Hotkey != "" {
		fmt.Fprintf(&sb, "hotkey = %s\n", c.Hotkey)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	sb.WriteString("[selector]\n")
	fmt.Fprintf(&sb, "detect_window = %v\n", c.Selector.DetectWindow)
	fmt.Fprintf(&sb, "tolerance = %d\n", c.Selector.Tolerance)
	fmt.Fprintf(&sb, "border_width = %d\n", c.Selector.BorderWidth)
	fmt.Fprintf(&sb, "border_style = %s\n", c.Selector.BorderStyle)
	sb.WriteString("\n")

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, key := range theme.Keys {
			col, _ := t.Color(key)
			fmt.Fprintf(&sb, "%s: %s\n", key, theme.Hex(col))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
