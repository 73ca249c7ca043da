package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/example/regionshot/internal/capture"
	"github.com/example/regionshot/internal/theme"
)

var (
	listMonitorsFn = capture.ListMonitors
	listWindowsFn  = capture.ListWindows
)

type monitorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseMonitorsCmd(args []string, r *root) (*monitorsCmd, error) {
	fs := flag.NewFlagSet("monitors", flag.ExitOnError)
	cmd := &monitorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *monitorsCmd) Run() error {
	monitors, err := listMonitorsFn()
	if err != nil {
		return fmt.Errorf("list monitors: %w", err)
	}
	if len(monitors) == 0 {
		fmt.Fprintln(os.Stdout, "no monitors available")
		return nil
	}
	fmt.Fprintln(os.Stdout, "monitors (* marks the primary monitor):")
	for _, m := range monitors {
		marker := " "
		if m.Primary {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %d: %-10s %s\n", marker, m.Index, m.Name, formatGeometry(m.Rect))
	}
	canvas := capture.CanvasFor(monitors)
	fmt.Fprintf(os.Stdout, "canvas: %dx%d at %d,%d\n", canvas.Size.X, canvas.Size.Y, canvas.Origin.X, canvas.Origin.Y)
	return nil
}

func (c *monitorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type windowsCmd struct {
	*root
	fs  *flag.FlagSet
	all bool
}

func parseWindowsCmd(args []string, r *root) (*windowsCmd, error) {
	fs := flag.NewFlagSet("windows", flag.ExitOnError)
	cmd := &windowsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.BoolVar(&cmd.all, "all", false, "include minimised and unmapped windows")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *windowsCmd) Run() error {
	windows, err := listWindowsFn()
	if err != nil {
		return fmt.Errorf("list windows: %w", err)
	}
	shown := 0
	for _, win := range windows {
		if !win.Viewable && !c.all {
			continue
		}
		if shown == 0 {
			fmt.Fprintln(os.Stdout, "windows, topmost first (* marks the active window):")
		}
		shown++
		marker := " "
		if win.Active {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %s\n", marker, formatWindowLabel(win))
	}
	if shown == 0 {
		fmt.Fprintln(os.Stdout, "no windows available")
	}
	return nil
}

func (c *windowsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func formatWindowLabel(win capture.WindowInfo) string {
	title := strings.TrimSpace(win.Title)
	if title == "" {
		title = "(untitled)"
	}
	label := fmt.Sprintf("%2d: 0x%08x %-20s %s", win.Index, win.ID, formatGeometry(win.Rect), title)
	if win.Class != "" {
		label += fmt.Sprintf(" [%s]", win.Class)
	}
	if !win.Viewable {
		label += " (hidden)"
	}
	return label
}

type themesCmd struct {
	*root
	fs *flag.FlagSet
}

func parseThemesCmd(args []string, r *root) (*themesCmd, error) {
	fs := flag.NewFlagSet("themes", flag.ExitOnError)
	cmd := &themesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *themesCmd) Run() error {
	names := theme.Names()
	for name := range c.config.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	active := firstNonEmpty(c.themeName, c.config.Theme, "default")
	fmt.Fprintln(os.Stdout, "themes (* marks the active theme):")
	for _, name := range names {
		marker := " "
		if strings.EqualFold(name, active) {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %s\n", marker, name)
	}
	return nil
}

func (c *themesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
