package launcher

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// Spec fully describes one external-process invocation. Specs are built per
// call and never reused, so the launcher itself holds no mutable state
// between invocations.
type Spec struct {
	WorkingDir     string
	Executable     string
	Args           []string
	RedirectOutput bool
	Verbose        bool
	UseShell       bool
}

// Launcher starts external executables. The zero value is not usable; create
// one with New so it carries a logger for the diagnostic channel.
type Launcher struct {
	logger *slog.Logger
}

// NewLauncher creates a Launcher that reports verbose invocations and
// detached-process faults through the given logger.
func NewLauncher(logger *slog.Logger) *Launcher {
	return &Launcher{logger: logger.With("component", "launcher")}
}

// Run starts the executable described by spec and blocks until it exits.
// With RedirectOutput set, stdout and stderr are read line by line to
// completion and appended to Result.Output in the order read; without it only
// the exit code is reported. Run never returns an error and never panics:
// a process that could not be started at all yields CodeInternal with the
// launch error text in Output, and any non-zero exit code from the tool is
// passed through verbatim.
func (l *Launcher) Run(ctx context.Context, spec Spec) Result {
	cmd := l.command(ctx, spec)

	if spec.Verbose {
		l.logger.Info("launching", "dir", spec.WorkingDir, "exe", spec.Executable, "args", spec.Args)
	}

	var res Result
	if spec.RedirectOutput {
		res = l.runCaptured(cmd)
	} else {
		res = l.runSilent(cmd)
	}

	if spec.Verbose {
		l.logger.Info("finished", "exe", spec.Executable, "code", res.Code)
	}
	return res
}

// LaunchDetached verifies that workingDir/executable exists, then starts it
// in a background goroutine and returns Success without waiting for the
// child to exit. The returned channel is buffered and receives the final
// Result of the detached run; callers that want the historical
// fire-and-forget contract simply ignore it. Post-launch failures are
// delivered on the channel and logged, never reflected in the synchronous
// Result.
func (l *Launcher) LaunchDetached(workingDir, executable string, args ...string) (Result, <-chan Result) {
	done := make(chan Result, 1)

	path := filepath.Join(workingDir, executable)
	if _, err := os.Stat(path); err != nil {
		res := Fail("executable not found: " + path)
		done <- res
		close(done)
		return res, done
	}
	// An absolute path keeps exec.Cmd from re-resolving the executable
	// against the child's working directory.
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	go func() {
		defer close(done)
		res := l.Run(context.Background(), Spec{
			WorkingDir: workingDir,
			Executable: path,
			Args:       args,
		})
		if !res.IsSuccess() {
			l.logger.Error("detached process failed", "exe", path, "code", res.Code)
		}
		done <- res
	}()

	return Success(), done
}

func (l *Launcher) command(ctx context.Context, spec Spec) *exec.Cmd {
	var cmd *exec.Cmd
	if spec.UseShell {
		line := strings.Join(append([]string{spec.Executable}, spec.Args...), " ")
		cmd = exec.CommandContext(ctx, "sh", "-c", line)
	} else {
		cmd = exec.CommandContext(ctx, spec.Executable, spec.Args...)
	}
	cmd.Dir = spec.WorkingDir
	return cmd
}

func (l *Launcher) runSilent(cmd *exec.Cmd) Result {
	if err := cmd.Run(); err != nil {
		return resultFromRunError(err, nil)
	}
	return Success()
}

func (l *Launcher) runCaptured(cmd *exec.Cmd) Result {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Fail(err.Error())
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Fail(err.Error())
	}

	if err := cmd.Start(); err != nil {
		return Fail(err.Error())
	}

	// Both streams are drained concurrently so a child filling one pipe
	// cannot deadlock against us reading the other. Lines keep their
	// per-stream emission order.
	var mu sync.Mutex
	var lines []string
	var wg sync.WaitGroup
	collect := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			mu.Lock()
			lines = append(lines, scanner.Text())
			mu.Unlock()
		}
	}
	wg.Add(2)
	go collect(stdout)
	go collect(stderr)
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		res := resultFromRunError(err, lines)
		return res
	}
	return Result{Code: CodeOK, Output: lines}
}

// resultFromRunError converts an error from exec.Cmd into a Result: real
// tool exits keep their code and captured output, anything else (launch
// failure, faulted stream) becomes the internal sentinel with the error text
// appended.
func resultFromRunError(err error, lines []string) Result {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{Code: exitErr.ExitCode(), Output: lines}
	}
	return Result{Code: CodeInternal, Output: append(lines, err.Error())}
}
