package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/regionshot/internal/config"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}
	switch args[0] {
	case "print":
		fmt.Print(c.config.String())
		return nil
	case "save":
		return c.runSave()
	case "path":
		return c.runPath()
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

func (c *configCmd) loader() *config.Loader {
	return config.NewLoader(version, configPathOverride)
}

// savePath is the file an existing configuration came from, or the XDG
// default when there is none.
func (c *configCmd) savePath() (string, error) {
	if path := c.loader().GetConfigPath(); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home dir: %w", err)
	}
	return filepath.Join(home, ".config", "regionshot", "config.rc"), nil
}

func (c *configCmd) runSave() error {
	path, err := c.savePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(c.config.String()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}

func (c *configCmd) runPath() error {
	l := c.loader()
	show := func(label, path string) {
		if path == "" {
			path = "(none)"
		}
		fmt.Fprintf(os.Stdout, "%-7s %s\n", label+":", path)
	}
	show("config", l.GetConfigPath())
	show("env", l.EnvFilePath())
	return nil
}
