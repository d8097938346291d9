// Package sshcopy transfers files between the local machine and a remote
// host over SFTP.
package sshcopy

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/sftp"
	"github.com/systemstart/testflow/pkg/plugin"
	"github.com/systemstart/testflow/pkg/plugins/sshconn"
	"github.com/systemstart/testflow/pkg/vars"
)

// TypeID is the step type this plugin registers under.
const TypeID = "COPY_FILES_SSH"

type call struct {
	sshconn.Config `yaml:",inline"`
	LocalPath      string   `yaml:"local_path"`
	RemotePath     string   `yaml:"remote_path"`
	Download       bool     `yaml:"download"`
	Include        []string `yaml:"include"`
}

// Plugin copies a file or directory tree in either direction. Directory
// uploads select files with glob patterns.
type Plugin struct{}

// New creates the plugin.
func New() *Plugin { return &Plugin{} }

// Defaults returns the default call tree.
func (p *Plugin) Defaults() map[string]any {
	defaults := sshconn.Defaults()
	defaults["local_path"] = ""
	defaults["remote_path"] = ""
	defaults["download"] = false
	defaults["include"] = []any{}
	return defaults
}

// Augment anchors a relative local path at the project directory.
func (p *Plugin) Augment(callTree map[string]any, _ *vars.Context, projectDir string) error {
	local, _ := callTree["local_path"].(string)
	if local != "" && !filepath.IsAbs(local) {
		callTree["local_path"] = filepath.Join(projectDir, local)
	}
	return nil
}

// Execute performs the transfer and returns a summary of the form
// {files: n, direction: upload|download}.
func (p *Plugin) Execute(ctx context.Context, callTree map[string]any) (any, error) {
	var c call
	if err := plugin.DecodeCall(callTree, &c); err != nil {
		return nil, err
	}
	if c.LocalPath == "" {
		return nil, fmt.Errorf("local_path is required")
	}
	if c.RemotePath == "" {
		return nil, fmt.Errorf("remote_path is required")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := c.Dial()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	client, err := sftp.NewClient(conn)
	if err != nil {
		return nil, fmt.Errorf("opening sftp channel: %w", err)
	}
	defer client.Close()

	direction := "upload"
	var files int
	if c.Download {
		direction = "download"
		files, err = download(client, c.RemotePath, c.LocalPath)
	} else {
		files, err = upload(client, c.LocalPath, c.RemotePath, c.Include)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("transfer complete", "direction", direction, "files", files)
	return map[string]any{"files": files, "direction": direction}, nil
}

func upload(client *sftp.Client, localPath, remotePath string, include []string) (int, error) {
	info, err := os.Stat(localPath)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", localPath, err)
	}

	if !info.IsDir() {
		if err := client.MkdirAll(remotePath); err != nil {
			return 0, fmt.Errorf("creating remote directory %s: %w", remotePath, err)
		}
		target := path.Join(remotePath, filepath.Base(localPath))
		if err := uploadFile(client, localPath, target); err != nil {
			return 0, err
		}
		return 1, nil
	}

	files, err := selectFiles(os.DirFS(localPath), include)
	if err != nil {
		return 0, err
	}

	for _, rel := range files {
		target := path.Join(remotePath, filepath.ToSlash(rel))
		if err := client.MkdirAll(path.Dir(target)); err != nil {
			return 0, fmt.Errorf("creating remote directory %s: %w", path.Dir(target), err)
		}
		if err := uploadFile(client, filepath.Join(localPath, rel), target); err != nil {
			return 0, err
		}
	}
	return len(files), nil
}

// selectFiles matches files under a directory against include globs,
// defaulting to everything.
func selectFiles(fsys fs.FS, include []string) ([]string, error) {
	if len(include) == 0 {
		include = []string{"**/*"}
	}

	var result []string
	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		result = append(result, matches...)
	}
	slices.Sort(result)
	result = slices.Compact(result)

	files := result[:0]
	for _, f := range result {
		info, err := fs.Stat(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", f, err)
		}
		if !info.IsDir() {
			files = append(files, f)
		}
	}
	return files, nil
}

func uploadFile(client *sftp.Client, localPath, remotePath string) error {
	slog.Debug("uploading file", "from", localPath, "to", remotePath)

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", localPath, err)
	}
	defer src.Close()

	dst, err := client.Create(remotePath)
	if err != nil {
		return fmt.Errorf("creating remote file %s: %w", remotePath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copying to %s: %w", remotePath, err)
	}
	return dst.Close()
}

func download(client *sftp.Client, remotePath, localPath string) (int, error) {
	info, err := client.Stat(remotePath)
	if err != nil {
		return 0, fmt.Errorf("stat remote %s: %w", remotePath, err)
	}

	if !info.IsDir() {
		if err := os.MkdirAll(localPath, 0o750); err != nil {
			return 0, fmt.Errorf("creating directory %s: %w", localPath, err)
		}
		target := filepath.Join(localPath, path.Base(remotePath))
		if err := downloadFile(client, remotePath, target); err != nil {
			return 0, err
		}
		return 1, nil
	}

	var files int
	walker := client.Walk(remotePath)
	for walker.Step() {
		if err := walker.Err(); err != nil {
			return files, fmt.Errorf("walking %s: %w", walker.Path(), err)
		}

		rel := strings.TrimPrefix(walker.Path(), remotePath)
		rel = strings.TrimPrefix(rel, "/")
		target := filepath.Join(localPath, filepath.FromSlash(rel))

		if walker.Stat().IsDir() {
			if err := os.MkdirAll(target, 0o750); err != nil {
				return files, fmt.Errorf("creating directory %s: %w", target, err)
			}
			continue
		}

		if err := downloadFile(client, walker.Path(), target); err != nil {
			return files, err
		}
		files++
	}
	return files, nil
}

func downloadFile(client *sftp.Client, remotePath, localPath string) error {
	slog.Debug("downloading file", "from", remotePath, "to", localPath)

	src, err := client.Open(remotePath)
	if err != nil {
		return fmt.Errorf("opening remote file %s: %w", remotePath, err)
	}
	defer src.Close()

	dst, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", localPath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copying to %s: %w", localPath, err)
	}
	return dst.Close()
}
