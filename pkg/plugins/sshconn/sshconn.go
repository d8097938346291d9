// Package sshconn holds the connection settings shared by the SSH-backed
// plugins.
package sshconn

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/ssh"
)

// Config is the connection part of an SSH call tree.
type Config struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
}

// Defaults returns the default connection tree. The placeholders resolve
// against environment variables unless the data file overrides them.
func Defaults() map[string]any {
	return map[string]any{
		"user":     "${REMOTE_CMD_USER}",
		"password": "${REMOTE_CMD_PASSWORD}",
		"host":     "${REMOTE_CMD_HOST}",
		"port":     22,
	}
}

// Validate checks that the connection settings are complete.
func (c Config) Validate() error {
	if c.User == "" {
		return fmt.Errorf("user is required")
	}
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

// Dial opens an SSH connection. The host key is not verified: the tool
// targets disposable test environments.
func (c Config) Dial() (*ssh.Client, error) {
	port := c.Port
	if port == 0 {
		port = 22
	}
	addr := fmt.Sprintf("%s:%d", c.Host, port)

	slog.Info("connecting", "user", c.User, "addr", addr)

	client, err := ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            c.User,
		Auth:            []ssh.AuthMethod{ssh.Password(c.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         30 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to %s@%s: %w", c.User, addr, err)
	}
	return client, nil
}
