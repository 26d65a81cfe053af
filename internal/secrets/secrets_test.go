// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/freidok/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Secrets
	}{
		{
			name: "reads email and headers and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "freidok-email", "  me@uni-freiburg.de \n")
				writeFile(t, dir, "header-X-Api-Token", "tok123\n")
				return dir
			},
			want: Secrets{UserEmail: "me@uni-freiburg.de", Headers: map[string]string{"X-Api-Token": "tok123"}},
		},
		{
			name: "missing directory is empty",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Secrets{Headers: map[string]string{}},
		},
		{
			name: "skips empty files dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "freidok-email", "   \n")
				writeFile(t, dir, ".header-Hidden", "x")
				writeFile(t, dir, "header-", "no name")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "header-Dir"), 0o755))
				return dir
			},
			want: Secrets{Headers: map[string]string{}},
		},
		{
			name: "ignores unknown files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "openalex-email", "other@example.com")
				return dir
			},
			want: Secrets{Headers: map[string]string{}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply(t *testing.T) {
	s := Secrets{UserEmail: "secret@example.org", Headers: map[string]string{"X-A": "1", "X-B": "2"}}

	cfg := types.ClientConfig{ExtraHeaders: map[string]string{"X-A": "configured"}}
	s.Apply(&cfg)
	assert.Equal(t, "secret@example.org", cfg.UserEmail)
	assert.Equal(t, map[string]string{"X-A": "configured", "X-B": "2"}, cfg.ExtraHeaders)

	cfg = types.ClientConfig{UserEmail: "flag@example.org"}
	s.Apply(&cfg)
	assert.Equal(t, "flag@example.org", cfg.UserEmail)
}
