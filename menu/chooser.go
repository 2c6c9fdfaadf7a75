package menu

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Chooser runs the external menu process and launches whatever the user
// picks. There is deliberately no timeout: a hung chooser hangs the run.
type Chooser struct {
	// Command is the chooser binary, xmenu by default.
	Command string
	// Args are passed through to the chooser verbatim.
	Args []string
	// NoIcon adds xmenu's -i flag when Command is literally "xmenu".
	NoIcon bool
	// DryRun prints the selection instead of launching it.
	DryRun bool
	// Output receives the selection in dry-run mode; defaults to stdout.
	Output io.Writer
}

// Run feeds the rendered menu lines to the chooser's stdin, reads the
// selected line from its stdout and launches it. An empty reply (chooser
// dismissed or crashed) launches nothing and is not an error.
func (c *Chooser) Run(lines []string) error {
	args := c.Args
	if c.NoIcon && c.Command == "xmenu" {
		args = append(args, "-i")
	}

	cmd := exec.Command(c.Command, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("connect chooser stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("connect chooser stdout: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start chooser %s: %w", c.Command, err)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(stdin, line); err != nil {
			// Chooser went away early; fall through to read the reply.
			slog.Debug("short write to chooser", "err", err)
			break
		}
	}
	_ = stdin.Close()

	// The reply is one newline-terminated line; everything after the first
	// newline is ignored.
	reply, _ := bufio.NewReader(stdout).ReadString('\n')
	if err := cmd.Wait(); err != nil {
		slog.Debug("chooser exited abnormally", "err", err)
	}

	selection := strings.TrimSuffix(reply, "\n")
	if selection == "" {
		slog.Debug("chooser returned no selection")
		return nil
	}
	return c.launch(selection)
}

func (c *Chooser) launch(command string) error {
	if c.DryRun {
		out := c.Output
		if out == nil {
			out = os.Stdout
		}
		_, err := fmt.Fprintln(out, command)
		return err
	}

	// The trailing & detaches the application from this process.
	if err := exec.Command("sh", "-c", command+" &").Run(); err != nil {
		return fmt.Errorf("launch %q: %w", command, err)
	}
	return nil
}
