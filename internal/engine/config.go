// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/freidok/pkg/types"
)

// ErrInvalidConfig is returned by Validate for settings the engine cannot
// run with.
var ErrInvalidConfig = errors.New("invalid engine config")

// Validate checks cfg before any record is touched.
func Validate(cfg types.EngineConfig) error {
	if err := validateLanguages(cfg.Languages); err != nil {
		return err
	}
	for i, t := range cfg.PreferredIDTypes {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("%w: identifier type %d is empty", ErrInvalidConfig, i)
		}
	}
	if err := validatePatterns("author", cfg.ExcludeAuthors); err != nil {
		return err
	}
	return validatePatterns("title", cfg.ExcludeTitles)
}

func validateLanguages(langs []string) error {
	if len(langs) == 0 {
		return fmt.Errorf("%w: no languages given", ErrInvalidConfig)
	}
	if len(langs) == 1 && langs[0] == types.AllLanguages {
		return nil
	}
	seen := make(map[string]bool, len(langs))
	for _, l := range langs {
		if l == types.AllLanguages {
			return fmt.Errorf("%w: %s cannot be combined with other languages", ErrInvalidConfig, types.AllLanguages)
		}
		if !isLanguageCode(l) {
			return fmt.Errorf("%w: language %q is not a 3-letter code", ErrInvalidConfig, l)
		}
		if seen[l] {
			return fmt.Errorf("%w: language %q given twice", ErrInvalidConfig, l)
		}
		seen[l] = true
	}
	return nil
}

func isLanguageCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, c := range []byte(s) {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

func validatePatterns(kind string, pats []string) error {
	for _, p := range pats {
		if p == "" {
			return fmt.Errorf("%w: empty %s exclusion pattern", ErrInvalidConfig, kind)
		}
	}
	return nil
}

// pruneAll reports whether the language list is the wildcard.
func pruneAll(cfg types.EngineConfig) bool {
	return len(cfg.Languages) == 1 && cfg.Languages[0] == types.AllLanguages
}
