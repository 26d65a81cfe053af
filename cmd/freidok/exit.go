// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/pdiddy/freidok/internal/client"
	"github.com/pdiddy/freidok/internal/engine"
)

// Exit codes.
const (
	ExitSuccess    = 0 // Successful execution, including dry runs
	ExitFailure    = 1 // Retrieval, validation or export failed
	ExitUsageError = 2 // Invalid flags, configuration or query
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(err error) error {
	return &ExitError{Code: ExitUsageError, Err: err}
}

func usageErrorf(format string, args ...any) error {
	return usageError(fmt.Errorf(format, args...))
}

// exitCode maps err to a process exit code.
func exitCode(err error) int {
	if err == nil || errors.Is(err, client.ErrDryRun) {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	switch {
	case errors.Is(err, engine.ErrInvalidConfig),
		errors.Is(err, client.ErrMissingSelector),
		errors.Is(err, client.ErrInvalidQuery):
		return ExitUsageError
	}
	return ExitFailure
}
