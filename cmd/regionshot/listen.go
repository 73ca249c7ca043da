package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/example/regionshot/internal/hotkey"
)

var (
	executableFn = os.Executable
	commandFn    = exec.Command
)

type listenCmd struct {
	*root
	fs         *flag.FlagSet
	combo      string
	selectArgs []string
}

func parseListenCmd(args []string, r *root) (*listenCmd, error) {
	fs := flag.NewFlagSet("listen", flag.ExitOnError)
	cmd := &listenCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.combo, "hotkey", r.config.Hotkey, "key combination that opens the selector")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if _, err := hotkey.Parse(cmd.combo); err != nil {
		return nil, err
	}
	cmd.selectArgs = fs.Args()
	return cmd, nil
}

func (l *listenCmd) FlagSet() *flag.FlagSet {
	return l.fs
}

// selectCommand builds the child process for one selection. Global flags
// are forwarded so the child resolves the same theme and notifications.
func (l *listenCmd) selectCommand() (*exec.Cmd, error) {
	exe, err := executableFn()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	args := []string{
		fmt.Sprintf("-notify-capture=%t", l.captureAlerts),
		fmt.Sprintf("-notify-save=%t", l.saveAlerts),
		fmt.Sprintf("-notify-copy=%t", l.copyAlerts),
	}
	if l.themeName != "" {
		args = append(args, "-theme", l.themeName)
	}
	if l.verbose {
		args = append(args, "-v")
	}
	args = append(args, "select")
	args = append(args, l.selectArgs...)
	cmd := commandFn(exe, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func (l *listenCmd) trigger() {
	cmd, err := l.selectCommand()
	if err != nil {
		log.Printf("hotkey: %v", err)
		return
	}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Printf("select exited with status %d", exitErr.ExitCode())
			return
		}
		log.Printf("run select: %v", err)
	}
}

func (l *listenCmd) Run() error {
	listener, err := hotkey.NewListener(l.combo, l.trigger)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Fprintf(os.Stderr, "press %s to select a region, Ctrl+C to quit\n", l.combo)
	if err := listener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}
