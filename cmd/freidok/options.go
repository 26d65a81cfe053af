// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/freidok/internal/client"
	"github.com/pdiddy/freidok/internal/export"
	"github.com/pdiddy/freidok/pkg/types"
)

const (
	defaultLangs    = "eng,deu"
	maxItemsLimit   = 100
	defaultCacheTTL = 24 * time.Hour
)

// addCommonFlags registers the retrieval, language and output flags shared
// by publ and inst.
func addCommonFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("format", "", "output format: markdown, html, json, csl (ignored with --template)")
	f.String("template", "", "custom Go template file (env: FREIDOK_TEMPLATE)")
	f.String("out", "", "output file (default: stdout)")
	f.String("source", client.DefaultBaseURL, "FreiDok API URL or path to a JSON file (env: FREIDOK_URL)")
	f.Int("maxitems", maxItemsLimit, "maximum number of items to retrieve (1-100)")
	f.Int("startitem", 0, "index of the first item to retrieve")
	f.String("langs", defaultLangs, "preferred 3-letter language codes in decreasing preference, or ALL (env: FREIDOK_LANGUAGES)")
	f.BoolP("dryrun", "n", false, "print the API request instead of sending it")
	f.String("cache", "", "SQLite file for caching API responses")
	f.Duration("cache-ttl", defaultCacheTTL, "how long cached responses stay valid (0 keeps them forever)")
	f.Duration("timeout", 30*time.Second, "HTTP request timeout")
	f.String("user-email", "", "requester e-mail sent as X-User-Email (default: .secrets/freidok-email)")
}

// bindFlags makes cmd's flags the highest-precedence source for viper.
// Binding happens per run because publ and inst share flag names.
func bindFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// userAgent identifies freidok and its version to the API operators.
func userAgent() string {
	return "freidok/" + version
}

func clientConfig() (types.ClientConfig, error) {
	maxItems := viper.GetInt("maxitems")
	if maxItems < 1 || maxItems > maxItemsLimit {
		return types.ClientConfig{}, usageErrorf("--maxitems must be between 1 and %d, got %d", maxItemsLimit, maxItems)
	}
	cfg := types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: userAgent(),
		},
		Source:          viper.GetString("source"),
		UserEmail:       viper.GetString("user-email"),
		ExtraHeaders:    viper.GetStringMapString("headers"),
		DefaultMaxItems: maxItems,
		DryRun:          viper.GetBool("dryrun"),
	}
	loadedSecrets.Apply(&cfg)
	return cfg, nil
}

func cacheConfig() types.CacheConfig {
	return types.CacheConfig{
		Path: viper.GetString("cache"),
		TTL:  viper.GetDuration("cache-ttl"),
	}
}

func exportConfig() (types.ExportConfig, error) {
	format := types.OutputFormat(viper.GetString("format"))
	if format != "" && !isFormat(format) {
		return types.ExportConfig{}, usageErrorf("unknown --format %q", format)
	}
	cfg := types.ExportConfig{
		Template: viper.GetString("template"),
		Out:      viper.GetString("out"),
	}
	cfg.Format = export.DetectFormat(format, cfg.Template, cfg.Out)
	return cfg, nil
}

func isFormat(f types.OutputFormat) bool {
	for _, known := range export.Formats() {
		if f == known {
			return true
		}
	}
	return false
}

// splitList splits a comma-separated list and drops empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var languageCode = regexp.MustCompile(`^[a-zA-Z]{3}$`)

// parseLanguages reads the --langs list. ALL is accepted as the only entry.
func parseLanguages(s string) ([]string, error) {
	langs := splitList(s)
	if len(langs) == 0 {
		return nil, usageErrorf("--langs is empty")
	}
	for _, l := range langs {
		if !languageCode.MatchString(l) {
			return nil, usageErrorf("invalid 3-letter language code %q", l)
		}
	}
	return langs, nil
}

func parseIntList(s string) ([]int, error) {
	var ids []int
	for _, part := range splitList(s) {
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, usageErrorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

var yearRange = regexp.MustCompile(`^(\d{4})(?:-(\d{4}))?$`)

// parseYears reads YYYY or YYYY-YYYY. An empty string means no bounds.
func parseYears(s string) (from, to int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	m := yearRange.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, usageErrorf("%q is not a valid year range", s)
	}
	from, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		to, _ = strconv.Atoi(m[2])
	}
	return from, to, nil
}

// parseParams reads space-separated key=value pairs.
func parseParams(s string) (map[string]string, error) {
	items := strings.Fields(s)
	if len(items) == 0 {
		return nil, nil
	}
	params := make(map[string]string, len(items))
	for _, item := range items {
		if strings.Count(item, "=") != 1 {
			return nil, usageErrorf("invalid API parameter %q in %q", item, s)
		}
		k, v, _ := strings.Cut(item, "=")
		if k == "" {
			return nil, usageErrorf("invalid API parameter %q in %q", item, s)
		}
		params[k] = v
	}
	return params, nil
}

// stringList reads a repeatable flag. Values given on the command line
// keep embedded commas; otherwise the list under configKey is used.
func stringList(cmd *cobra.Command, name, configKey string) []string {
	if cmd.Flags().Changed(name) {
		v, _ := cmd.Flags().GetStringArray(name)
		return v
	}
	return viper.GetStringSlice(configKey)
}

func startItem() (int, error) {
	n := viper.GetInt("startitem")
	if n < 0 {
		return 0, usageErrorf("--startitem must not be negative, got %d", n)
	}
	return n, nil
}
