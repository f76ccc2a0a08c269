package repo

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitshepherds/relkit/internal/config"
	"github.com/bitshepherds/relkit/internal/launcher"
)

// gitCmd runs a raw git command for fixture setup, outside the code under test.
func gitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, out)
	return string(out)
}

// setupTestRepo creates a repository with one commit on branch main.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	gitCmd(t, dir, "init")
	gitCmd(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	gitCmd(t, dir, "config", "user.email", "test@example.com")
	gitCmd(t, dir, "config", "user.name", "Test User")
	gitCmd(t, dir, "commit", "--allow-empty", "-m", "initial commit")

	return dir
}

// setupBareRemote creates a bare repository and wires it up as origin.
func setupBareRemote(t *testing.T, repoDir string) string {
	t.Helper()
	bare := filepath.Join(t.TempDir(), "origin.git")
	require.NoError(t, os.MkdirAll(bare, 0o755))
	gitCmd(t, bare, "init", "--bare")
	gitCmd(t, repoDir, "remote", "add", "origin", bare)
	gitCmd(t, repoDir, "push", "origin", "main")
	return bare
}

func newTestGitter(t *testing.T, workDir string) *CLIGitter {
	t.Helper()
	l := launcher.NewLauncher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewCLIGitter(config.Default(), l, workDir)
}

func TestCLIGitter_CurrentTag(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("untagged repository is a valid state", func(t *testing.T) {
		t.Parallel()
		g := newTestGitter(t, setupTestRepo(t))

		_, ok, err := g.CurrentTag(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("reads the reachable tag", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		gitCmd(t, dir, "tag", "1.2.3")
		g := newTestGitter(t, dir)

		tag, ok, err := g.CurrentTag(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "1.2.3", tag.String())
	})

	t.Run("upstream suffix is stripped", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		gitCmd(t, dir, "tag", "2.0.1.windows.1")
		g := newTestGitter(t, dir)

		tag, ok, err := g.CurrentTag(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "2.0.1", tag.String())
	})

	t.Run("non-version tag is an error", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		gitCmd(t, dir, "tag", "nightly")
		g := newTestGitter(t, dir)

		_, _, err := g.CurrentTag(ctx)
		require.Error(t, err)
		var tagErr *InvalidTagError
		assert.ErrorAs(t, err, &tagErr)
	})

	t.Run("missing git executable is an internal error", func(t *testing.T) {
		t.Parallel()
		cfg := config.Default()
		cfg.GitExecutable = "definitely-not-git-bin"
		l := launcher.NewLauncher(slog.New(slog.NewTextHandler(io.Discard, nil)))
		g := NewCLIGitter(cfg, l, setupTestRepo(t))

		_, _, err := g.CurrentTag(ctx)
		require.Error(t, err)
		var gitErr *GitError
		require.ErrorAs(t, err, &gitErr)
		assert.Equal(t, launcher.CodeInternal, gitErr.Code())
	})
}

func TestCLIGitter_StageTag(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("untagged repository stages 0.0.1", func(t *testing.T) {
		t.Parallel()
		g := newTestGitter(t, setupTestRepo(t))

		tag, err := g.StageTag(ctx)
		require.NoError(t, err)
		assert.Equal(t, "0.0.1", tag.String())
	})

	t.Run("bumps only the patch component", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		gitCmd(t, dir, "tag", "1.2.3")
		g := newTestGitter(t, dir)

		tag, err := g.StageTag(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1.2.4", tag.String())
	})

	t.Run("computation does not apply the tag", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		gitCmd(t, dir, "tag", "1.2.3")
		g := newTestGitter(t, dir)

		_, err := g.StageTag(ctx)
		require.NoError(t, err)

		cur, ok, err := g.CurrentTag(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "1.2.3", cur.String())
	})

	t.Run("sequential stage and set increments accumulate", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		gitCmd(t, dir, "tag", "1.2.3")
		g := newTestGitter(t, dir)

		for n := 0; n < 3; n++ {
			next, err := g.StageTag(ctx)
			require.NoError(t, err)
			require.NoError(t, g.SetTag(ctx, next))
		}

		cur, ok, err := g.CurrentTag(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "1.2.6", cur.String())
	})
}

func TestCLIGitter_ProdTag(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("on release branch bumps minor and resets patch", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		gitCmd(t, dir, "tag", "1.2.3")
		g := newTestGitter(t, dir)

		tag, err := g.ProdTag(ctx)
		require.NoError(t, err)
		assert.Equal(t, "1.3.0", tag.String())
	})

	t.Run("off the release branch is a hard failure", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		gitCmd(t, dir, "tag", "1.2.3")
		gitCmd(t, dir, "checkout", "-b", "feature/x")
		g := newTestGitter(t, dir)

		_, err := g.ProdTag(ctx)
		require.Error(t, err)
		var branchErr *NotOnReleaseBranchError
		require.ErrorAs(t, err, &branchErr)
		assert.Equal(t, "feature/x", branchErr.Current)

		// No tag was touched.
		tags, err := g.LocalTags(ctx)
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "1.2.3", tags[0].String())
	})
}

func TestCLIGitter_SetTag(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := setupTestRepo(t)
	g := newTestGitter(t, dir)

	tag, err := ParseTag("0.1.0")
	require.NoError(t, err)
	require.NoError(t, g.SetTag(ctx, tag))

	cur, ok, err := g.CurrentTag(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "0.1.0", cur.String())

	// Overwriting at the same commit succeeds.
	require.NoError(t, g.SetTag(ctx, tag))
}

func TestCLIGitter_TagListing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("empty repository lists no tags", func(t *testing.T) {
		t.Parallel()
		g := newTestGitter(t, setupTestRepo(t))

		tags, err := g.LocalTags(ctx)
		require.NoError(t, err)
		assert.Empty(t, tags)
	})

	t.Run("lists version tags and skips others", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		gitCmd(t, dir, "tag", "0.1.0")
		gitCmd(t, dir, "tag", "0.2.0")
		gitCmd(t, dir, "tag", "nightly")
		g := newTestGitter(t, dir)

		tags, err := g.LocalTags(ctx)
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "0.1.0", tags[0].String())
		assert.Equal(t, "0.2.0", tags[1].String())
	})

	t.Run("delete removes a local tag", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		gitCmd(t, dir, "tag", "0.1.0")
		g := newTestGitter(t, dir)

		tag, err := ParseTag("0.1.0")
		require.NoError(t, err)
		require.NoError(t, g.DeleteTag(ctx, tag, false))

		tags, err := g.LocalTags(ctx)
		require.NoError(t, err)
		assert.Empty(t, tags)
	})
}

func TestCLIGitter_RemoteTags(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := setupTestRepo(t)
	setupBareRemote(t, dir)
	g := newTestGitter(t, dir)

	tags, err := g.RemoteTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)

	tag, err := ParseTag("0.1.0")
	require.NoError(t, err)
	require.NoError(t, g.SetTag(ctx, tag))
	require.NoError(t, g.PushTag(ctx, tag))

	tags, err = g.RemoteTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "0.1.0", tags[0].String())

	// Remote delete reflects the remote's state, not just dispatch.
	require.NoError(t, g.DeleteTag(ctx, tag, true))
	tags, err = g.RemoteTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)

	require.Error(t, g.DeleteTag(ctx, tag, true))
}

func TestCLIGitter_Branches(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("current branch", func(t *testing.T) {
		t.Parallel()
		g := newTestGitter(t, setupTestRepo(t))

		branch, err := g.CurrentBranch(ctx)
		require.NoError(t, err)
		assert.Equal(t, "main", branch)
	})

	t.Run("branch existence", func(t *testing.T) {
		t.Parallel()
		g := newTestGitter(t, setupTestRepo(t))

		exists, err := g.BranchExists(ctx, "main")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = g.BranchExists(ctx, "release/1.0")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("checkout with create", func(t *testing.T) {
		t.Parallel()
		g := newTestGitter(t, setupTestRepo(t))

		require.NoError(t, g.CheckoutBranch(ctx, "release/1.0", true))

		branch, err := g.CurrentBranch(ctx)
		require.NoError(t, err)
		assert.Equal(t, "release/1.0", branch)
	})

	t.Run("checkout without create requires existence", func(t *testing.T) {
		t.Parallel()
		g := newTestGitter(t, setupTestRepo(t))

		err := g.CheckoutBranch(ctx, "release/1.0", false)
		require.Error(t, err)
		var missingErr *BranchMissingError
		assert.ErrorAs(t, err, &missingErr)
	})

	t.Run("checkout existing branch without create", func(t *testing.T) {
		t.Parallel()
		dir := setupTestRepo(t)
		gitCmd(t, dir, "branch", "develop")
		g := newTestGitter(t, dir)

		require.NoError(t, g.CheckoutBranch(ctx, "develop", false))

		branch, err := g.CurrentBranch(ctx)
		require.NoError(t, err)
		assert.Equal(t, "develop", branch)
	})
}

func TestCLIGitter_Clone(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("malformed URL fails before any I/O", func(t *testing.T) {
		t.Parallel()
		g := newTestGitter(t, t.TempDir())
		parent := filepath.Join(t.TempDir(), "never-created")

		_, err := g.Clone(ctx, "not a url", parent)
		require.Error(t, err)
		var urlErr *InvalidURLError
		assert.ErrorAs(t, err, &urlErr)

		_, statErr := os.Stat(parent)
		assert.True(t, os.IsNotExist(statErr), "no filesystem writes on validation failure")
	})

	t.Run("existing project directory is never overwritten", func(t *testing.T) {
		t.Parallel()
		g := newTestGitter(t, t.TempDir())
		parent := t.TempDir()
		target := filepath.Join(parent, "project")
		require.NoError(t, os.MkdirAll(target, 0o755))
		marker := filepath.Join(target, "keep.txt")
		require.NoError(t, os.WriteFile(marker, []byte("keep"), 0o644))

		_, err := g.Clone(ctx, "https://example.com/owner/project.git", parent)
		require.Error(t, err)
		var existsErr *CloneExistsError
		require.ErrorAs(t, err, &existsErr)
		assert.Equal(t, target, existsErr.Path)

		data, readErr := os.ReadFile(marker)
		require.NoError(t, readErr)
		assert.Equal(t, "keep", string(data))
	})

	t.Run("clones into parent and creates it as needed", func(t *testing.T) {
		t.Parallel()
		src := setupTestRepo(t)
		bare := setupBareRemote(t, src)
		g := newTestGitter(t, t.TempDir())

		parent := filepath.Join(t.TempDir(), "workspace", "checkouts")
		target, err := g.Clone(ctx, "file://"+bare, parent)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(parent, "origin"), target)

		info, statErr := os.Stat(target)
		require.NoError(t, statErr)
		assert.True(t, info.IsDir())
	})

	t.Run("unreachable repository is a git failure", func(t *testing.T) {
		t.Parallel()
		g := newTestGitter(t, t.TempDir())

		_, err := g.Clone(ctx, "file:///does/not/exist.git", t.TempDir())
		require.Error(t, err)
		var gitErr *GitError
		assert.ErrorAs(t, err, &gitErr)
	})
}

// fakeRunner returns canned results, for paths a real git cannot produce.
type fakeRunner struct {
	result launcher.Result
	specs  []launcher.Spec
}

func (f *fakeRunner) Run(_ context.Context, spec launcher.Spec) launcher.Result {
	f.specs = append(f.specs, spec)
	return f.result
}

func TestCLIGitter_FakeRunnerPaths(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("show-ref internal failure surfaces as error", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{result: launcher.Fail("git exploded")}
		g := NewCLIGitter(config.Default(), runner, "/tmp")

		_, err := g.BranchExists(ctx, "main")
		require.Error(t, err)
		var gitErr *GitError
		assert.ErrorAs(t, err, &gitErr)
	})

	t.Run("push failure reflects the remote outcome", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{result: launcher.Result{Code: 128, Output: []string{"fatal: remote rejected"}}}
		g := NewCLIGitter(config.Default(), runner, "/tmp")

		tag, err := ParseTag("1.0.0")
		require.NoError(t, err)
		err = g.PushTag(ctx, tag)
		require.Error(t, err)
		var gitErr *GitError
		require.ErrorAs(t, err, &gitErr)
		assert.Equal(t, 128, gitErr.Code())
		assert.Contains(t, gitErr.Error(), "remote rejected")
	})

	t.Run("every invocation uses the configured executable", func(t *testing.T) {
		t.Parallel()
		cfg := config.Default()
		cfg.GitExecutable = "/opt/git/bin/git"
		runner := &fakeRunner{result: launcher.Success()}
		g := NewCLIGitter(cfg, runner, "/work/project")

		_, _ = g.CurrentBranch(ctx)
		require.Len(t, runner.specs, 1)
		assert.Equal(t, "/opt/git/bin/git", runner.specs[0].Executable)
		assert.Equal(t, "/work/project", runner.specs[0].WorkingDir)
		assert.True(t, runner.specs[0].RedirectOutput)
	})
}
