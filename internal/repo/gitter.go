// Package repo implements the version tag engine: git tags are the
// authoritative source of the product version, and every repository
// operation is a git subprocess invocation dispatched through the launcher.
// The line-oriented text contract with git lives entirely behind the Gitter
// interface, so a change in git's output format touches one file.
package repo

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/bitshepherds/relkit/internal/launcher"
)

// Runner dispatches one external-process invocation. *launcher.Launcher is
// the production implementation; tests substitute fakes for failure paths.
type Runner interface {
	Run(ctx context.Context, spec launcher.Spec) launcher.Result
}

// Gitter defines the version tag engine over a git working tree.
//
// Operations are single attempts with no retry and no locking: two engine
// calls against the same working tree must be serialized by the caller.
type Gitter interface {
	// CurrentTag returns the tag reachable from the current commit.
	// An untagged repository is a valid state, reported as ok=false.
	CurrentTag(ctx context.Context) (Tag, bool, error)

	// SetTag creates or overwrites the tag at the current commit.
	SetTag(ctx context.Context, tag Tag) error

	// StageTag computes the next stage version: current tag (0.0.0 when
	// untagged) with the patch component incremented. Pure computation;
	// callers apply it with SetTag.
	StageTag(ctx context.Context) (Tag, error)

	// ProdTag computes the next production version: minor incremented,
	// patch reset. Hard-fails unless the release branch is checked out.
	ProdTag(ctx context.Context) (Tag, error)

	// PushTag pushes the tag to the configured remote. The returned error
	// reflects whether the remote operation succeeded, not merely whether
	// the command was dispatched.
	PushTag(ctx context.Context, tag Tag) error

	// DeleteTag deletes the tag locally, or on the configured remote when
	// remote is set.
	DeleteTag(ctx context.Context, tag Tag, remote bool) error

	// LocalTags lists version tags in repository-reported order. An
	// untagged repository yields an empty slice, not an error.
	LocalTags(ctx context.Context) ([]Tag, error)

	// RemoteTags lists version tags on the configured remote.
	RemoteTags(ctx context.Context) ([]Tag, error)

	// CurrentBranch returns the name of the checked-out branch.
	CurrentBranch(ctx context.Context) (string, error)

	// BranchExists reports whether a local branch with the name exists.
	BranchExists(ctx context.Context, name string) (bool, error)

	// CheckoutBranch switches to the named branch. With create set, the
	// branch is created if absent; without it, a missing branch is an
	// error.
	CheckoutBranch(ctx context.Context, name string, create bool) error

	// Clone clones the repository URL into parentDir/<project>, creating
	// parentDir as needed. It never overwrites an existing project
	// directory, and reports success only if the directory is present
	// afterwards. Returns the project directory path.
	Clone(ctx context.Context, repoURL, parentDir string) (string, error)
}

// scpLikePattern matches git's scp-like remote syntax, e.g.
// git@github.com:owner/repo.git.
var scpLikePattern = regexp.MustCompile(`^[\w.~-]+@[\w.-]+:\S+$`)

var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ssh":   true,
	"git":   true,
	"file":  true,
}

// ValidateRepoURL checks that a repository URL is well-formed before any I/O
// is attempted. Accepted forms are scheme URLs (http, https, ssh, git, file)
// and scp-like remotes.
func ValidateRepoURL(repoURL string) error {
	if repoURL == "" {
		return &InvalidURLError{URL: repoURL}
	}
	if scpLikePattern.MatchString(repoURL) {
		return nil
	}
	u, err := url.Parse(repoURL)
	if err != nil || !allowedSchemes[u.Scheme] {
		return &InvalidURLError{URL: repoURL}
	}
	if u.Scheme != "file" && u.Host == "" {
		return &InvalidURLError{URL: repoURL}
	}
	return nil
}

// ProjectNameFromURL derives the project name from a repository URL: the
// last path segment with a trailing .git extension stripped. Handles both
// slash-separated URLs and scp-like remotes.
func ProjectNameFromURL(repoURL string) string {
	name := strings.TrimSuffix(strings.TrimRight(repoURL, "/"), ".git")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, ":"); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
