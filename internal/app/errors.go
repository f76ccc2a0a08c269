package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bitshepherds/relkit/internal/launcher"
	"github.com/bitshepherds/relkit/internal/repo"
)

// ToolError reports a launched command that did not succeed. The wrapped
// Result preserves the tool's exit code and any captured output.
type ToolError struct {
	Result launcher.Result
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("command failed (exit %d)", e.Result.Code)
	if len(e.Result.Output) > 0 {
		msg += ": " + strings.Join(e.Result.Output, "\n")
	}
	return msg
}

func (e *ToolError) Code() int { return e.Result.Code }

// ExitCode maps an error returned by Run to the process exit code. Errors
// carrying a classification report it; anything else is a generic failure.
func ExitCode(err error) int {
	if err == nil {
		return launcher.CodeOK
	}
	var coded repo.Coded
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return launcher.CodeFailure
}
