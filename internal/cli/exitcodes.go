package cli

import (
	"errors"
	"io/fs"
	"syscall"

	"github.com/yaklabco/golift/internal/configloader"
	"github.com/yaklabco/golift/pkg/block"
	"github.com/yaklabco/golift/pkg/fsutil"
	"github.com/yaklabco/golift/pkg/paf"
)

// Exit codes for golift.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitMismatch indicates a round trip completed with failing records
	// and --fail-on-mismatch was given.
	ExitMismatch = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates an invalid configuration or block file.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrRoundTripMismatch is returned when --fail-on-mismatch is set and at
// least one record did not pass.
var ErrRoundTripMismatch = errors.New("round trip mismatches found")

// ErrCheckFailed is returned by check when a block file is invalid.
var ErrCheckFailed = errors.New("block file check failed")

// ExitError attaches an exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitInvalidUsage, Err: err}
}

func dataError(err error) error {
	return &ExitError{Code: ExitDataError, Err: err}
}

// ExitCode maps an error returned by a command to the process exit code.
// A write to a closed pipe is not a failure: the reader has seen enough.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, syscall.EPIPE) {
		return ExitSuccess
	}
	if errors.Is(err, ErrRoundTripMismatch) {
		return ExitMismatch
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var (
		verr  *configloader.ValidationError
		perr  *block.ParseError
		pathE *fs.PathError
	)
	switch {
	case errors.As(err, &verr),
		errors.As(err, &perr),
		errors.Is(err, block.ErrInvalidBlock),
		errors.Is(err, block.ErrMalformedRecord),
		errors.Is(err, paf.ErrMalformedLine),
		errors.Is(err, paf.ErrMissingCIGAR),
		errors.Is(err, paf.ErrMalformedCIGAR):
		return ExitDataError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.As(err, &pathE):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// Silent reports whether err only signals an exit code and needs no log line.
func Silent(err error) bool {
	return ExitCode(err) == ExitSuccess || errors.Is(err, ErrRoundTripMismatch)
}
