package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitshepherds/relkit/internal/config"
	"github.com/bitshepherds/relkit/internal/launcher"
)

// CLIGitter is the concrete implementation of Gitter using the git CLI.
// Every operation builds a fresh launcher.Spec, so the type holds no mutable
// state and no tag is ever cached between calls.
type CLIGitter struct {
	cfg     *config.Config
	runner  Runner
	workDir string
}

// NewCLIGitter creates a CLIGitter operating on the given working directory.
func NewCLIGitter(cfg *config.Config, runner Runner, workDir string) *CLIGitter {
	return &CLIGitter{cfg: cfg, runner: runner, workDir: workDir}
}

// Ensure the interface is satisfied.
var _ Gitter = (*CLIGitter)(nil)

// git runs one git command in the working directory with output captured.
func (g *CLIGitter) git(ctx context.Context, args ...string) launcher.Result {
	return g.runner.Run(ctx, launcher.Spec{
		WorkingDir:     g.workDir,
		Executable:     g.cfg.GitExecutable,
		Args:           args,
		RedirectOutput: true,
		Verbose:        g.cfg.VerboseLaunch,
	})
}

// gitIn is git with an explicit working directory, used by Clone before the
// project directory exists.
func (g *CLIGitter) gitIn(ctx context.Context, dir string, args ...string) launcher.Result {
	return g.runner.Run(ctx, launcher.Spec{
		WorkingDir:     dir,
		Executable:     g.cfg.GitExecutable,
		Args:           args,
		RedirectOutput: true,
		Verbose:        g.cfg.VerboseLaunch,
	})
}

func (g *CLIGitter) CurrentTag(ctx context.Context) (Tag, bool, error) {
	res := g.git(ctx, "describe", "--tags", "--abbrev=0")
	if res.Code == launcher.CodeInternal {
		return Tag{}, false, &GitError{Op: "describe", Result: res}
	}
	if !res.IsSuccess() {
		// No tag reachable from the current commit. A valid state, not
		// a failure.
		return Tag{}, false, nil
	}

	tag, err := ParseTag(res.FirstLine())
	if err != nil {
		return Tag{}, false, err
	}
	return tag, true, nil
}

func (g *CLIGitter) SetTag(ctx context.Context, tag Tag) error {
	res := g.git(ctx, "tag", "--force", tag.String())
	if !res.IsSuccess() {
		return &GitError{Op: "tag", Result: res}
	}
	return nil
}

func (g *CLIGitter) StageTag(ctx context.Context) (Tag, error) {
	cur, ok, err := g.CurrentTag(ctx)
	if err != nil {
		return Tag{}, err
	}
	if !ok {
		cur = ZeroTag
	}
	return cur.NextStage(), nil
}

func (g *CLIGitter) ProdTag(ctx context.Context) (Tag, error) {
	branch, err := g.CurrentBranch(ctx)
	if err != nil {
		return Tag{}, err
	}
	if branch != g.cfg.ReleaseBranch {
		return Tag{}, &NotOnReleaseBranchError{Current: branch, Release: g.cfg.ReleaseBranch}
	}

	cur, ok, err := g.CurrentTag(ctx)
	if err != nil {
		return Tag{}, err
	}
	if !ok {
		cur = ZeroTag
	}
	return cur.NextProd(), nil
}

func (g *CLIGitter) PushTag(ctx context.Context, tag Tag) error {
	res := g.git(ctx, "push", g.cfg.Remote, tag.String())
	if !res.IsSuccess() {
		return &GitError{Op: "push", Result: res}
	}
	return nil
}

func (g *CLIGitter) DeleteTag(ctx context.Context, tag Tag, remote bool) error {
	var res launcher.Result
	if remote {
		res = g.git(ctx, "push", g.cfg.Remote, "--delete", "refs/tags/"+tag.String())
	} else {
		res = g.git(ctx, "tag", "--delete", tag.String())
	}
	if !res.IsSuccess() {
		return &GitError{Op: "tag delete", Result: res}
	}
	return nil
}

func (g *CLIGitter) LocalTags(ctx context.Context) ([]Tag, error) {
	res := g.git(ctx, "tag", "--list")
	if !res.IsSuccess() {
		return nil, &GitError{Op: "tag list", Result: res}
	}
	return parseTagLines(res.Output, func(line string) string {
		return strings.TrimSpace(line)
	}), nil
}

func (g *CLIGitter) RemoteTags(ctx context.Context) ([]Tag, error) {
	res := g.git(ctx, "ls-remote", "--tags", g.cfg.Remote)
	if !res.IsSuccess() {
		return nil, &GitError{Op: "ls-remote", Result: res}
	}
	// Lines look like "<hash>\trefs/tags/<name>"; peeled "^{}" entries
	// duplicate annotated tags and are skipped.
	return parseTagLines(res.Output, func(line string) string {
		_, ref, found := strings.Cut(line, "\t")
		if !found || strings.HasSuffix(ref, "^{}") {
			return ""
		}
		return strings.TrimPrefix(strings.TrimSpace(ref), "refs/tags/")
	}), nil
}

// parseTagLines extracts version tags from git output, preserving the
// repository-reported order. Lines that do not name a version tag are
// skipped. The result is never nil.
func parseTagLines(lines []string, extract func(string) string) []Tag {
	tags := make([]Tag, 0, len(lines))
	for _, line := range lines {
		name := extract(line)
		if name == "" {
			continue
		}
		if tag, err := ParseTag(name); err == nil {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (g *CLIGitter) CurrentBranch(ctx context.Context) (string, error) {
	res := g.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if !res.IsSuccess() {
		return "", &GitError{Op: "rev-parse", Result: res}
	}
	return res.FirstLine(), nil
}

func (g *CLIGitter) BranchExists(ctx context.Context, name string) (bool, error) {
	res := g.git(ctx, "show-ref", "--verify", "--quiet", "refs/heads/"+name)
	switch res.Code {
	case launcher.CodeOK:
		return true, nil
	case 1:
		return false, nil
	default:
		return false, &GitError{Op: "show-ref", Result: res}
	}
}

func (g *CLIGitter) CheckoutBranch(ctx context.Context, name string, create bool) error {
	exists, err := g.BranchExists(ctx, name)
	if err != nil {
		return err
	}

	args := []string{"checkout", name}
	if !exists {
		if !create {
			return &BranchMissingError{Name: name}
		}
		args = []string{"checkout", "-b", name}
	}

	if res := g.git(ctx, args...); !res.IsSuccess() {
		return &GitError{Op: "checkout", Result: res}
	}
	return nil
}

func (g *CLIGitter) Clone(ctx context.Context, repoURL, parentDir string) (string, error) {
	if err := ValidateRepoURL(repoURL); err != nil {
		return "", err
	}

	project := ProjectNameFromURL(repoURL)
	target := filepath.Join(parentDir, project)

	if _, err := os.Stat(target); err == nil {
		return "", &CloneExistsError{Path: target}
	}
	if err := os.MkdirAll(parentDir, 0o755); err != nil {
		return "", err
	}

	if res := g.gitIn(ctx, parentDir, "clone", repoURL, project); !res.IsSuccess() {
		return "", &GitError{Op: "clone", Result: res}
	}

	// Success means the project directory is actually there, not merely
	// that git exited zero.
	if _, err := os.Stat(target); err != nil {
		return "", fmt.Errorf("clone reported success but %s is missing: %w", target, err)
	}
	return target, nil
}
