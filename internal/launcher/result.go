// Package launcher runs external executables and reports their outcome as
// values. Every operation in relkit that touches another process goes through
// this package, and every outcome is a Result - expected failures are never
// raised as panics across package boundaries.
package launcher

import (
	"math"
	"strings"
)

// Classification codes shared with callers and surfaced as process exit codes
// by the CLI. External tools keep their own non-zero codes; these constants
// cover the outcomes relkit itself produces.
const (
	// CodeOK indicates the operation completed successfully.
	CodeOK = 0

	// CodeFailure indicates a generic runtime failure.
	CodeFailure = 1

	// CodeInvalidParameter indicates a malformed argument (tag, URL)
	// detected before any I/O was attempted.
	CodeInvalidParameter = 2

	// CodeAlreadyExists indicates a clone target that is already present.
	CodeAlreadyExists = 3

	// CodeWrongBranch indicates a production tag was requested outside the
	// release branch.
	CodeWrongBranch = 4

	// CodeInternal is the reserved sentinel for launch failures and other
	// internal faults that never came from the external tool itself.
	CodeInternal = math.MaxInt32
)

// Result reports the outcome of one external-process invocation: the exit
// code plus the output lines in the order they were produced. Code 0 means
// success; anything else is a failure, with CodeInternal reserved for
// launch faults.
type Result struct {
	Code   int
	Output []string
}

// New returns a Result in the failed sentinel state. Callers must overwrite
// Code with a real outcome; a forgotten assignment reads as a failure, never
// as an accidental success.
func New() Result {
	return Result{Code: CodeInternal}
}

// Success returns a successful Result with no output.
func Success() Result {
	return Result{Code: CodeOK}
}

// Fail returns a Result carrying the sentinel failure code and the given
// diagnostic message as its only output line.
func Fail(message string) Result {
	return Result{Code: CodeInternal, Output: []string{message}}
}

// FailCode returns a failed Result with a specific classification code.
func FailCode(code int, message string) Result {
	return Result{Code: code, Output: []string{message}}
}

// IsSuccess reports whether the result represents success.
func (r Result) IsSuccess() bool {
	return r.Code == CodeOK
}

// FirstLine returns the first output line with surrounding whitespace
// trimmed, or "" when there is no output. Git plumbing commands answer on a
// single line, so this is the usual way results are consumed.
func (r Result) FirstLine() string {
	if len(r.Output) == 0 {
		return ""
	}
	return strings.TrimSpace(r.Output[0])
}
