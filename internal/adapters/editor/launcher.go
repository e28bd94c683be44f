package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/kamal-hamza/alib-cli/internal/core/ports"
	"github.com/kamal-hamza/alib-cli/pkg/config"
)

// Launcher implements the EditorLauncher port by running an external editor
type Launcher struct {
	command string
}

var _ ports.EditorLauncher = (*Launcher)(nil)

// NewLauncher picks the editor from config, then $VISUAL, then $EDITOR,
// then vi
func NewLauncher(cfg *config.Config) *Launcher {
	return &Launcher{command: Preferred(cfg)}
}

// Preferred resolves the editor command line
func Preferred(cfg *config.Config) string {
	if cfg != nil && strings.TrimSpace(cfg.Editor) != "" {
		return cfg.Editor
	}
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	return "vi"
}

// Name returns the configured editor command line
func (l *Launcher) Name() string {
	return l.command
}

// Command builds the process for path with stdio attached to the terminal.
// Editor strings may carry arguments, e.g. "code --wait".
func (l *Launcher) Command(ctx context.Context, path string) (*exec.Cmd, error) {
	fields := strings.Fields(l.command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no editor configured")
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return nil, fmt.Errorf("editor %q not found: %w", fields[0], err)
	}

	args := append(fields[1:], path)
	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// Open runs the editor and waits for it to exit
func (l *Launcher) Open(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	cmd, err := l.Command(ctx, path)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s exited with error: %w", l.command, err)
	}
	return nil
}
