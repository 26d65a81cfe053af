// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with args against fresh flag and
// config state and returns what was written to stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	resetFlags(rootCmd)
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestPublFromFile(t *testing.T) {
	out, err := runCLI(t, "publ", "--source", "testdata/publications.json")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Publications\n"))
	assert.Contains(t, out, "- Maria Theresa Klein, Jan Groß: **Forests in Transition**")
	assert.Contains(t, out, "<https://doi.org/10.6094/UNIFR/235841>")
	assert.Contains(t, out, "- Alan Doe: **Alpine Soils**")
	assert.NotContains(t, out, "Wälder")
}

func TestPublAuthorFormatting(t *testing.T) {
	out, err := runCLI(t, "publ", "--source", "testdata/publications.json",
		"--authors-abbrev", "--authors-reverse", "--authors-sep", "; ")
	require.NoError(t, err)
	assert.Contains(t, out, "- Klein MT; Groß J: **Forests in Transition**")

	out, err = runCLI(t, "publ", "--source", "testdata/publications.json", "--authors-abbrev=.")
	require.NoError(t, err)
	assert.Contains(t, out, "- M.T. Klein, J. Groß: **Forests in Transition**")
}

func TestPublLanguagePreference(t *testing.T) {
	out, err := runCLI(t, "publ", "--source", "testdata/publications.json", "--langs", "deu,eng")
	require.NoError(t, err)
	assert.Contains(t, out, "**Wälder im Wandel**")
	assert.NotContains(t, out, "Forests in Transition")
}

func TestPublExclusions(t *testing.T) {
	out, err := runCLI(t, "publ", "--source", "testdata/publications.json",
		"--exclude-author", "GROSS", "--exclude-author", "groß")
	require.NoError(t, err)
	assert.NotContains(t, out, "Forests in Transition")
	assert.Contains(t, out, "Alpine Soils")

	out, err = runCLI(t, "publ", "--source", "testdata/publications.json", "--exclude-title", "alpine")
	require.NoError(t, err)
	assert.Contains(t, out, "Forests in Transition")
	assert.NotContains(t, out, "Alpine Soils")
}

func TestPublJSONKeepsAllLanguages(t *testing.T) {
	out, err := runCLI(t, "publ", "--source", "testdata/publications.json", "--format", "json", "--langs", "ALL")
	require.NoError(t, err)
	assert.Contains(t, out, "Wälder im Wandel")
	assert.Contains(t, out, "Forests in Transition")
	assert.Contains(t, out, `"_extras_authors"`)
}

func TestPublWritesOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pubs.html")
	out, err := runCLI(t, "publ", "--source", "testdata/publications.json", "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<html")
	assert.Contains(t, string(data), "Forests in Transition")
}

func TestPublDryRun(t *testing.T) {
	out, err := runCLI(t, "publ", "--source", "http://127.0.0.1:1/jsonApi/v1/",
		"--dryrun", "--id", "7", "--fields", "id,titles", "--maxitems", "5")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out,
		"GET /jsonApi/v1/publications?field=id%2Ctitles&maxRows=5&publicationId=7&sortfield=id%2Bdesc HTTP/1.1\n"), out)
	assert.Contains(t, out, "Host: 127.0.0.1:1\n")
}

func TestPublUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad language", []string{"--langs", "en"}},
		{"ALL mixed", []string{"--langs", "ALL,eng"}},
		{"bad years", []string{"--years", "23"}},
		{"maxitems too large", []string{"--maxitems", "101"}},
		{"negative startitem", []string{"--startitem", "-1"}},
		{"unknown field", []string{"--fields", "id,colour"}},
		{"unknown fieldset", []string{"--fieldset", "nope"}},
		{"fields and fieldset", []string{"--fields", "id", "--fieldset", "default"}},
		{"bad params", []string{"--params", "novalue"}},
		{"unknown format", []string{"--format", "pdf"}},
		{"unknown flag", []string{"--colour"}},
		{"missing selector", []string{"--source", "http://127.0.0.1:1/", "--dryrun"}},
		{"reversed years", []string{"--source", "http://127.0.0.1:1/", "--dryrun", "--id", "1", "--years", "2023-2020"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"publ", "--source", "testdata/publications.json"}, tt.args...)
			_, err := runCLI(t, args...)
			require.Error(t, err)
			assert.Equal(t, ExitUsageError, exitCode(err), err.Error())
		})
	}
}

func TestPublMissingFile(t *testing.T) {
	_, err := runCLI(t, "publ", "--source", "testdata/nope.json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, exitCode(err))
}

func TestInstFromFile(t *testing.T) {
	out, err := runCLI(t, "inst", "--source", "testdata/institutions.json", "--langs", "deu")
	require.NoError(t, err)
	assert.Contains(t, out, "- **Institut für Forstwissenschaften** (1920-)")
	assert.Contains(t, out, "  - Eva Berg (2019-)")
}

func TestInstRejectsCSL(t *testing.T) {
	_, err := runCLI(t, "inst", "--source", "testdata/institutions.json", "--format", "csl")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, exitCode(err))
}

func TestCacheCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cache", "responses.db")

	out, err := runCLI(t, "cache", "list", "--cache", db)
	require.NoError(t, err)
	assert.Equal(t, "# cache is empty\n", out)

	out, err = runCLI(t, "cache", "clear", "--cache", db)
	require.NoError(t, err)
	assert.Equal(t, "removed 0 entries\n", out)

	_, err = runCLI(t, "cache", "list")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, exitCode(err))
}

func TestPublUsesCache(t *testing.T) {
	payload, err := os.ReadFile("testdata/publications.json")
	require.NoError(t, err)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/jsonApi/v1/publications", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("persId"))
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	}))
	defer srv.Close()

	db := filepath.Join(t.TempDir(), "responses.db")
	args := []string{"publ", "--source", srv.URL + "/jsonApi/v1/", "--pers-id", "42", "--cache", db}

	first, err := runCLI(t, args...)
	require.NoError(t, err)
	second, err := runCLI(t, args...)
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
	assert.Contains(t, second, "Forests in Transition")
	assert.Equal(t, lineCount(first), lineCount(second))

	out, err := runCLI(t, "cache", "list", "--cache", db)
	require.NoError(t, err)
	assert.Contains(t, out, "/jsonApi/v1/publications?")
	assert.Contains(t, out, "expired: false")
}

func lineCount(s string) int { return strings.Count(s, "\n") }

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "freidok dev ("+runtime.Version()+" "), out)

	out, err = runCLI(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
	assert.Equal(t, "freidok/dev", userAgent())
}
