package sshcopy

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	defaults := New().Defaults()

	assert.Equal(t, "${REMOTE_CMD_USER}", defaults["user"])
	assert.Equal(t, "${REMOTE_CMD_HOST}", defaults["host"])
	assert.Equal(t, false, defaults["download"])
	assert.Equal(t, "", defaults["local_path"])
}

func TestAugment_AnchorsRelativeLocalPath(t *testing.T) {
	p := New()

	callTree := map[string]any{"local_path": "fixtures/data.txt"}
	require.NoError(t, p.Augment(callTree, nil, "/project"))
	assert.Equal(t, filepath.Join("/project", "fixtures", "data.txt"), callTree["local_path"])

	callTree = map[string]any{"local_path": "/abs/data.txt"}
	require.NoError(t, p.Augment(callTree, nil, "/project"))
	assert.Equal(t, "/abs/data.txt", callTree["local_path"])

	callTree = map[string]any{"local_path": ""}
	require.NoError(t, p.Augment(callTree, nil, "/project"))
	assert.Equal(t, "", callTree["local_path"])
}

func TestExecute_MissingPaths(t *testing.T) {
	tests := []struct {
		name    string
		call    map[string]any
		wantErr string
	}{
		{
			name:    "no local path",
			call:    map[string]any{"remote_path": "/tmp", "user": "u", "host": "h"},
			wantErr: "local_path is required",
		},
		{
			name:    "no remote path",
			call:    map[string]any{"local_path": "/tmp", "user": "u", "host": "h"},
			wantErr: "remote_path is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Execute(context.Background(), tt.call)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSelectFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.txt":        {Data: []byte("a")},
		"sub/b.txt":    {Data: []byte("b")},
		"sub/c.log":    {Data: []byte("c")},
		"sub/deep/d.t": {Data: []byte("d")},
	}

	tests := []struct {
		name    string
		include []string
		want    []string
	}{
		{
			name: "default selects everything",
			want: []string{"a.txt", "sub/b.txt", "sub/c.log", "sub/deep/d.t"},
		},
		{
			name:    "single pattern",
			include: []string{"**/*.txt"},
			want:    []string{"a.txt", "sub/b.txt"},
		},
		{
			name:    "overlapping patterns deduplicate",
			include: []string{"**/*.txt", "a.txt", "sub/*.log"},
			want:    []string{"a.txt", "sub/b.txt", "sub/c.log"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectFiles(fsys, tt.include)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectFiles_RealDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("b"), 0o600))

	got, err := selectFiles(os.DirFS(dir), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "sub/b.txt"}, got)
}
