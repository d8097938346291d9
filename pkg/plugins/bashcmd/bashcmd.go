// Package bashcmd executes local shell commands.
package bashcmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/systemstart/testflow/pkg/plugin"
	"github.com/systemstart/testflow/pkg/vars"
)

// TypeID is the step type this plugin registers under.
const TypeID = "BASH_CMD"

type call struct {
	Cmd     string `yaml:"cmd"`
	Shell   string `yaml:"shell"`
	Timeout int    `yaml:"timeout"`
	Workdir string `yaml:"workdir"`
}

// Plugin runs a command through `shell -c` and returns its trimmed stdout.
type Plugin struct{}

// New creates the plugin.
func New() *Plugin { return &Plugin{} }

// Defaults returns the default call tree.
func (p *Plugin) Defaults() map[string]any {
	return map[string]any{
		"cmd":     "",
		"shell":   "bash",
		"timeout": 0,
		"workdir": "",
	}
}

// Augment anchors the working directory at the project directory.
func (p *Plugin) Augment(callTree map[string]any, _ *vars.Context, projectDir string) error {
	workdir, _ := callTree["workdir"].(string)
	switch {
	case workdir == "":
		callTree["workdir"] = projectDir
	case !filepath.IsAbs(workdir):
		callTree["workdir"] = filepath.Join(projectDir, workdir)
	}
	return nil
}

// Execute runs the command. A non-zero exit status is a protocol-level
// failure carrying the exit code and stderr.
func (p *Plugin) Execute(ctx context.Context, callTree map[string]any) (any, error) {
	var c call
	if err := plugin.DecodeCall(callTree, &c); err != nil {
		return nil, err
	}
	if c.Cmd == "" {
		return nil, fmt.Errorf("cmd is required")
	}
	if c.Shell == "" {
		c.Shell = "bash"
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.Timeout)*time.Second)
		defer cancel()
	}

	slog.Debug("running command", "shell", c.Shell, "cmd", c.Cmd, "workdir", c.Workdir)

	cmd := exec.CommandContext(ctx, c.Shell, "-c", c.Cmd)
	cmd.Dir = c.Workdir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("command timed out after %ds", c.Timeout)
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("command exited with code %d: %s",
				exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("running command: %w", err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
