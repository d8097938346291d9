// Package sshcmd executes commands on a remote host over SSH.
package sshcmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/systemstart/testflow/pkg/plugin"
	"github.com/systemstart/testflow/pkg/plugins/sshconn"
)

// TypeID is the step type this plugin registers under.
const TypeID = "SSH_CMD"

type call struct {
	sshconn.Config `yaml:",inline"`
	Cmd            string `yaml:"cmd"`
}

// Plugin runs one command per step over a fresh SSH session and returns the
// trimmed combined output.
type Plugin struct{}

// New creates the plugin.
func New() *Plugin { return &Plugin{} }

// Defaults returns the default call tree.
func (p *Plugin) Defaults() map[string]any {
	defaults := sshconn.Defaults()
	defaults["cmd"] = ""
	return defaults
}

// Execute connects, runs the command, and reports a non-zero remote exit
// status as a protocol-level failure.
func (p *Plugin) Execute(ctx context.Context, callTree map[string]any) (any, error) {
	var c call
	if err := plugin.DecodeCall(callTree, &c); err != nil {
		return nil, err
	}
	if c.Cmd == "" {
		return nil, fmt.Errorf("cmd is required")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client, err := c.Dial()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}
	defer session.Close()

	slog.Debug("running remote command", "host", c.Host, "cmd", c.Cmd)

	output, err := session.CombinedOutput(c.Cmd)
	if err != nil {
		return nil, fmt.Errorf("remote command failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	return strings.TrimSpace(string(output)), nil
}
