// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client retrieves FreiDok payloads from the JSON API or from a
// local export file. Payloads are returned as undecoded trees; typing and
// normalization happen downstream.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/freidok/internal/httputil"
	"github.com/pdiddy/freidok/internal/tree"
	"github.com/pdiddy/freidok/pkg/types"
)

// DefaultBaseURL is the public FreiDok JSON API.
const DefaultBaseURL = "https://freidok.uni-freiburg.de/jsonApi/v1/"

const defaultTimeout = 30 * time.Second

// ErrDryRun is returned after a request has been printed instead of sent.
var ErrDryRun = errors.New("dry run")

// Reader retrieves payloads for a query.
type Reader interface {
	Publications(ctx context.Context, q PublicationQuery) (tree.Node, error)
	Institutions(ctx context.Context, q InstitutionQuery) (tree.Node, error)
}

// NewReader returns an APIClient for http(s) sources and a FileReader for
// anything else.
func NewReader(cfg types.ClientConfig, log *zap.Logger) (Reader, error) {
	if cfg.Source == "" || strings.HasPrefix(cfg.Source, "http://") || strings.HasPrefix(cfg.Source, "https://") {
		return NewAPIClient(cfg, log)
	}
	return &FileReader{Path: cfg.Source, Log: log}, nil
}

// APIClient queries the FreiDok JSON API.
type APIClient struct {
	// HTTP sends the requests. Its Timeout comes from the config.
	HTTP *http.Client
	// DryRunOut receives the printed request in dry-run mode.
	DryRunOut io.Writer

	base *url.URL
	cfg  types.ClientConfig
	log  *zap.Logger
}

// NewAPIClient builds a client for cfg.Source, or DefaultBaseURL when
// Source is empty.
func NewAPIClient(cfg types.ClientConfig, log *zap.Logger) (*APIClient, error) {
	source := cfg.Source
	if source == "" {
		source = DefaultBaseURL
	}
	base, err := url.Parse(source)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid FreiDok API URL %q", source)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &APIClient{
		HTTP:      &http.Client{Timeout: timeout},
		DryRunOut: os.Stdout,
		base:      base,
		cfg:       cfg,
		log:       log,
	}, nil
}

// Publications retrieves the publications matching q.
func (c *APIClient) Publications(ctx context.Context, q PublicationQuery) (tree.Node, error) {
	params, err := q.values(c.cfg.DefaultMaxItems)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "publications", params)
}

// Institutions retrieves the institutions matching q.
func (c *APIClient) Institutions(ctx context.Context, q InstitutionQuery) (tree.Node, error) {
	params, err := q.values(c.cfg.DefaultMaxItems)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, "institutions", params)
}

// URL returns the request URL for endpoint and params.
func (c *APIClient) URL(endpoint string, params url.Values) string {
	u := c.base.JoinPath(endpoint)
	u.RawQuery = params.Encode()
	return u.String()
}

func (c *APIClient) get(ctx context.Context, endpoint string, params url.Values) (tree.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(endpoint, params), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	if c.cfg.DryRun {
		if err := printRequest(c.DryRunOut, req); err != nil {
			return nil, err
		}
		return nil, ErrDryRun
	}

	c.log.Debug("requesting", zap.String("url", req.URL.String()))
	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.cfg.MaxRetries, c.log)
	if err != nil {
		return nil, fmt.Errorf("FreiDok API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("FreiDok API returned HTTP %d", resp.StatusCode)
	}

	n, err := tree.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing FreiDok response: %w", err)
	}
	return n, nil
}

func (c *APIClient) setHeaders(req *http.Request) {
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if c.cfg.UserEmail != "" {
		req.Header.Set("X-User-Email", c.cfg.UserEmail)
	}
	for k, v := range c.cfg.ExtraHeaders {
		req.Header.Set(k, v)
	}
}

// printRequest writes the request line and headers in HTTP/1.1 form.
func printRequest(w io.Writer, req *http.Request) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s HTTP/1.1\n", req.Method, req.URL.RequestURI())
	fmt.Fprintf(&b, "Host: %s\n", req.URL.Host)
	keys := make([]string, 0, len(req.Header))
	for k := range req.Header {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\n", k, strings.Join(req.Header[k], ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// FileReader returns the whole content of a local JSON file. Query
// filters cannot be applied to a file; they are logged and ignored.
type FileReader struct {
	Path string
	Log  *zap.Logger
}

// Publications reads the file.
func (r *FileReader) Publications(_ context.Context, q PublicationQuery) (tree.Node, error) {
	if q.filtered() {
		r.warnIgnored()
	}
	return r.read()
}

// Institutions reads the file.
func (r *FileReader) Institutions(_ context.Context, q InstitutionQuery) (tree.Node, error) {
	if q.filtered() {
		r.warnIgnored()
	}
	return r.read()
}

func (r *FileReader) warnIgnored() {
	if r.Log != nil {
		r.Log.Warn("query filters cannot be applied to local files", zap.String("path", r.Path))
	}
}

func (r *FileReader) read() (tree.Node, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", r.Path, err)
	}
	defer f.Close()
	n, err := tree.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", r.Path, err)
	}
	return n, nil
}
