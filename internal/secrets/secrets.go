// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads requester credentials from a directory of
// plain-text files. The filename is the key and the trimmed file content
// is the value.
//
// Recognized files: freidok-email (sent as X-User-Email) and
// header-<Name> (sent as the HTTP header <Name>).
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/freidok/pkg/types"
)

const (
	emailKey     = "freidok-email"
	headerPrefix = "header-"
)

// Secrets holds the values found in a secrets directory.
type Secrets struct {
	UserEmail string
	Headers   map[string]string
}

// Load reads dir. A missing directory yields empty Secrets. Unreadable
// files are logged and skipped.
func Load(dir string, log *zap.Logger) (Secrets, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := Secrets{Headers: map[string]string{}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}
		value := strings.TrimSpace(string(data))
		if value == "" {
			continue
		}

		switch {
		case name == emailKey:
			s.UserEmail = value
		case strings.HasPrefix(name, headerPrefix) && len(name) > len(headerPrefix):
			s.Headers[strings.TrimPrefix(name, headerPrefix)] = value
		default:
			log.Debug("ignoring unknown secret", zap.String("name", name))
		}
	}
	return s, nil
}

// Apply fills unset client settings from s. Values already configured
// take precedence.
func (s Secrets) Apply(cfg *types.ClientConfig) {
	if cfg.UserEmail == "" {
		cfg.UserEmail = s.UserEmail
	}
	if len(s.Headers) == 0 {
		return
	}
	if cfg.ExtraHeaders == nil {
		cfg.ExtraHeaders = make(map[string]string, len(s.Headers))
	}
	for k, v := range s.Headers {
		if _, ok := cfg.ExtraHeaders[k]; !ok {
			cfg.ExtraHeaders[k] = v
		}
	}
}
