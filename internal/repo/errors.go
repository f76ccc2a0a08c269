package repo

import (
	"fmt"
	"strings"

	"github.com/bitshepherds/relkit/internal/launcher"
)

// Coded is implemented by errors that carry a process-exit classification.
type Coded interface {
	Code() int
}

type InvalidTagError struct {
	Value string
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("'%s' is not a valid tag - expected major.minor.patch", e.Value)
}

func (e *InvalidTagError) Code() int { return launcher.CodeInvalidParameter }

type InvalidURLError struct {
	URL string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("'%s' is not a valid repository URL", e.URL)
}

func (e *InvalidURLError) Code() int { return launcher.CodeInvalidParameter }

type CloneExistsError struct {
	Path string
}

func (e *CloneExistsError) Error() string {
	return fmt.Sprintf("clone target already exists: %s", e.Path)
}

func (e *CloneExistsError) Code() int { return launcher.CodeAlreadyExists }

type NotOnReleaseBranchError struct {
	Current string
	Release string
}

func (e *NotOnReleaseBranchError) Error() string {
	return fmt.Sprintf(
		"production tags require branch '%s', currently on '%s'",
		e.Release,
		e.Current,
	)
}

func (e *NotOnReleaseBranchError) Code() int { return launcher.CodeWrongBranch }

type BranchMissingError struct {
	Name string
}

func (e *BranchMissingError) Error() string {
	return fmt.Sprintf("branch '%s' does not exist", e.Name)
}

func (e *BranchMissingError) Code() int { return launcher.CodeFailure }

// GitError reports a git invocation that completed with a failure Result.
// The external tool's exit code and diagnostic lines are preserved verbatim.
type GitError struct {
	Op     string
	Result launcher.Result
}

func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed (exit %d)", e.Op, e.Result.Code)
	if len(e.Result.Output) > 0 {
		msg += ": " + strings.Join(e.Result.Output, "; ")
	}
	return msg
}

func (e *GitError) Code() int { return e.Result.Code }
