package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/sprig/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDiagram = `
format_version = 1
[[tree]]
  [tree.root]
    id = "r"
    kind = "formula"
    label = "P"
    [[tree.root.dependents]]
      id = "a"
      kind = "formula"
      label = "A"
`

const mixedDiagram = `
format_version = 1
[[tree]]
  [tree.root]
    id = "r"
    kind = "formula"
    [[tree.root.dependents]]
      id = "a"
      kind = "formula"
    [[tree.root.dependents]]
      id = "b"
      kind = "term"
`

func TestCheckAndConvertCommands(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}
	good := write("good.toml", validDiagram)
	bad := write("bad.toml", mixedDiagram)
	conf := write("config.toml", "")
	out := filepath.Join(dir, "good.yaml")
	t.Cleanup(func() { _ = closeLog() })

	tests := []struct {
		name    string
		args    []string
		wantErr string
		stdout  string
		stderr  string
	}{
		{
			name:   "check valid",
			args:   []string{"check", good},
			stdout: "good.toml: ok (1 trees, 2 nodes)",
		},
		{
			name:    "check reports every invalid file",
			args:    []string{"check", good, bad},
			wantErr: "1 of 2 files invalid",
			stdout:  "good.toml: ok",
			stderr:  "dependents mix formula and term branches",
		},
		{
			name: "convert toml to yaml",
			args: []string{"convert", good, out},
		},
		{
			name:    "convert refuses an invalid input",
			args:    []string{"convert", bad, filepath.Join(dir, "bad.yaml")},
			wantErr: "dependents mix formula and term branches",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			rootCmd.SetOut(&stdout)
			rootCmd.SetErr(&stderr)
			rootCmd.SetArgs(append([]string{"--config", conf, "--logfile", filepath.Join(dir, "sprig.log")}, tt.args...))

			err := rootCmd.Execute()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, stdout.String(), tt.stdout)
			assert.Contains(t, stderr.String(), tt.stderr)
		})
	}

	doc, err := store.Load(out)
	require.NoError(t, err)
	require.Len(t, doc, 1)
	assert.Equal(t, "P", doc[0].Root.Label)
	assert.Equal(t, "A", doc[0].Root.Dependents[0].Label)
	_, err = os.Stat(filepath.Join(dir, "bad.yaml"))
	assert.True(t, os.IsNotExist(err), "nothing is written for an invalid input")
}
