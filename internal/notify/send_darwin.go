//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
)

func send(m Message) error {
	script := fmt.Sprintf("display notification %q with title %q", m.Body, m.Title)
	return exec.Command("osascript", "-e", script).Run()
}
