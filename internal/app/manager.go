package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/bitshepherds/relkit/internal/launcher"
	"github.com/bitshepherds/relkit/internal/repo"
	"github.com/bitshepherds/relkit/internal/report"
)

// Manager defines the business logic behind each relkit command.
type Manager interface {
	Status(ctx context.Context, format string, useColour bool) error
	WatchStatus(ctx context.Context, format string, useColour bool, readyChan chan<- struct{}) error
	StageTag(ctx context.Context, apply, push bool) (repo.Tag, error)
	ProdTag(ctx context.Context, apply, push bool) (repo.Tag, error)
	SetTag(ctx context.Context, tag string) error
	PushTag(ctx context.Context, tag string) error
	DeleteTag(ctx context.Context, tag string, remote bool) error
	ListTags(ctx context.Context, remote bool, format string, useColour bool) error
	Checkout(ctx context.Context, branch string, create bool) error
	Clone(ctx context.Context, urls []string, into string) error
	Exec(ctx context.Context, argv []string, detach, capture bool) error
	WorkDir() string
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation,
// allowing for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// This is used by PersistentPreRunE to skip initialization if already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) Status(ctx context.Context, format string, useColour bool) error {
	return l.check().Status(ctx, format, useColour)
}

func (l *LazyManager) WatchStatus(ctx context.Context, format string, useColour bool,
	readyChan chan<- struct{},
) error {
	return l.check().WatchStatus(ctx, format, useColour, readyChan)
}

func (l *LazyManager) StageTag(ctx context.Context, apply, push bool) (repo.Tag, error) {
	return l.check().StageTag(ctx, apply, push)
}

func (l *LazyManager) ProdTag(ctx context.Context, apply, push bool) (repo.Tag, error) {
	return l.check().ProdTag(ctx, apply, push)
}

func (l *LazyManager) SetTag(ctx context.Context, tag string) error {
	return l.check().SetTag(ctx, tag)
}

func (l *LazyManager) PushTag(ctx context.Context, tag string) error {
	return l.check().PushTag(ctx, tag)
}

func (l *LazyManager) DeleteTag(ctx context.Context, tag string, remote bool) error {
	return l.check().DeleteTag(ctx, tag, remote)
}

func (l *LazyManager) ListTags(ctx context.Context, remote bool, format string, useColour bool) error {
	return l.check().ListTags(ctx, remote, format, useColour)
}

func (l *LazyManager) Checkout(ctx context.Context, branch string, create bool) error {
	return l.check().Checkout(ctx, branch, create)
}

func (l *LazyManager) Clone(ctx context.Context, urls []string, into string) error {
	return l.check().Clone(ctx, urls, into)
}

func (l *LazyManager) Exec(ctx context.Context, argv []string, detach, capture bool) error {
	return l.check().Exec(ctx, argv, detach, capture)
}

func (l *LazyManager) WorkDir() string {
	return l.check().WorkDir()
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger         *slog.Logger
	gitter         repo.Gitter
	launcher       *launcher.Launcher
	workDir        string
	cloneParentDir string
	reporterWriter io.Writer
}

func NewCLIManager(
	l *slog.Logger,
	g repo.Gitter,
	la *launcher.Launcher,
	workDir string,
	cloneParentDir string,
) *CLIManager {
	return &CLIManager{
		logger:         l,
		gitter:         g,
		launcher:       la,
		workDir:        workDir,
		cloneParentDir: cloneParentDir,
		reporterWriter: os.Stdout,
	}
}

func (m *CLIManager) WorkDir() string {
	return m.workDir
}

func (m *CLIManager) reporter(format string, useColour bool) report.Reporter {
	switch format {
	case "json":
		return &report.JSONReporter{}
	default:
		return &report.TextReporter{UseColour: useColour}
	}
}

func (m *CLIManager) Status(ctx context.Context, format string, useColour bool) error {
	m.logger.Debug("reporting status", "workDir", m.workDir, "format", format)

	branch, err := m.gitter.CurrentBranch(ctx)
	if err != nil {
		return err
	}

	tag, tagged, err := m.gitter.CurrentTag(ctx)
	if err != nil {
		return err
	}

	s := &report.Status{
		WorkDir:   m.workDir,
		Branch:    branch,
		Tagged:    tagged,
		NextStage: tag.NextStage().String(),
		NextProd:  tag.NextProd().String(),
	}
	if tagged {
		s.Tag = tag.String()
	}

	return m.reporter(format, useColour).WriteStatus(m.reporterWriter, s)
}

// WatchStatus re-reports the repository status whenever the checked-out
// branch or the tag set changes. If you want to know when the watcher is
// ready to start listening to changes, pass a non-nil readyChan to be
// notified.
func (m *CLIManager) WatchStatus(ctx context.Context, format string, useColour bool,
	readyChan chan<- struct{},
) error {
	m.logger.Debug("watching status", "workDir", m.workDir, "format", format)

	watcher := repo.NewWatcher(m.workDir, m.logger)

	callback := func() {
		if err := m.Status(ctx, format, useColour); err != nil {
			m.logger.Error("status report failed", "error", err)
		}
	}

	// Forward watcher Ready signal if caller wants notification
	if readyChan != nil {
		go func() {
			<-watcher.Ready
			readyChan <- struct{}{}
		}()
	}

	// Report once up front so the terminal is never blank until the first
	// change arrives.
	callback()

	return watcher.Watch(ctx, callback)
}

// StageTag computes the next stage version. With apply set the tag is
// written to the repository; with push set it is also pushed to the remote.
func (m *CLIManager) StageTag(ctx context.Context, apply, push bool) (repo.Tag, error) {
	m.logger.Debug("computing stage tag", "apply", apply, "push", push)

	next, err := m.gitter.StageTag(ctx)
	if err != nil {
		return repo.Tag{}, err
	}
	return next, m.applyTag(ctx, next, apply, push)
}

// ProdTag computes the next production version. It fails unless the release
// branch is checked out.
func (m *CLIManager) ProdTag(ctx context.Context, apply, push bool) (repo.Tag, error) {
	m.logger.Debug("computing production tag", "apply", apply, "push", push)

	next, err := m.gitter.ProdTag(ctx)
	if err != nil {
		return repo.Tag{}, err
	}
	return next, m.applyTag(ctx, next, apply, push)
}

func (m *CLIManager) applyTag(ctx context.Context, next repo.Tag, apply, push bool) error {
	if !apply {
		fmt.Fprintf(m.reporterWriter, "Next version: %s\n", next)
		return nil
	}

	if err := m.gitter.SetTag(ctx, next); err != nil {
		return err
	}
	fmt.Fprintf(m.reporterWriter, "🏷️  Tagged %s\n", next)

	if !push {
		return nil
	}
	if err := m.gitter.PushTag(ctx, next); err != nil {
		m.logger.Warn("tag was created but could not be pushed", "tag", next, "error", err)
		return err
	}
	fmt.Fprintf(m.reporterWriter, "🏷️  Pushed %s\n", next)
	return nil
}

func (m *CLIManager) SetTag(ctx context.Context, tag string) error {
	m.logger.Debug("setting tag", "tag", tag)

	t, err := repo.ParseTag(tag)
	if err != nil {
		return err
	}
	if err := m.gitter.SetTag(ctx, t); err != nil {
		return err
	}
	fmt.Fprintf(m.reporterWriter, "🏷️  Tagged %s\n", t)
	return nil
}

func (m *CLIManager) PushTag(ctx context.Context, tag string) error {
	m.logger.Debug("pushing tag", "tag", tag)

	t, err := repo.ParseTag(tag)
	if err != nil {
		return err
	}
	if err := m.gitter.PushTag(ctx, t); err != nil {
		return err
	}
	fmt.Fprintf(m.reporterWriter, "🏷️  Pushed %s\n", t)
	return nil
}

func (m *CLIManager) DeleteTag(ctx context.Context, tag string, remote bool) error {
	m.logger.Debug("deleting tag", "tag", tag, "remote", remote)

	t, err := repo.ParseTag(tag)
	if err != nil {
		return err
	}
	if err := m.gitter.DeleteTag(ctx, t, remote); err != nil {
		return err
	}
	if remote {
		fmt.Fprintf(m.reporterWriter, "🏷️  Deleted %s from remote\n", t)
	} else {
		fmt.Fprintf(m.reporterWriter, "🏷️  Deleted %s\n", t)
	}
	return nil
}

func (m *CLIManager) ListTags(ctx context.Context, remote bool, format string, useColour bool) error {
	m.logger.Debug("listing tags", "remote", remote, "format", format)

	var tags []repo.Tag
	var err error
	scope := "local"
	if remote {
		scope = "remote"
		tags, err = m.gitter.RemoteTags(ctx)
	} else {
		tags, err = m.gitter.LocalTags(ctx)
	}
	if err != nil {
		return err
	}

	l := &report.TagList{Scope: scope}
	for _, t := range tags {
		l.Tags = append(l.Tags, t.String())
	}
	if latest, ok := repo.LatestTag(tags); ok {
		l.Latest = latest.String()
	}

	return m.reporter(format, useColour).WriteTags(m.reporterWriter, l)
}

func (m *CLIManager) Checkout(ctx context.Context, branch string, create bool) error {
	m.logger.Debug("checking out branch", "branch", branch, "create", create)

	if err := m.gitter.CheckoutBranch(ctx, branch, create); err != nil {
		return err
	}
	fmt.Fprintf(m.reporterWriter, "Switched to branch %s\n", branch)
	return nil
}

// Clone clones every URL into the parent directory concurrently. URLs are
// validated up front so a typo in one never leaves a partial batch behind.
func (m *CLIManager) Clone(ctx context.Context, urls []string, into string) error {
	parentDir := into
	if parentDir == "" {
		parentDir = m.cloneParentDir
	}
	m.logger.Debug("cloning", "urls", urls, "parentDir", parentDir)

	for _, u := range urls {
		if err := repo.ValidateRepoURL(u); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	dirs := make([]string, len(urls))
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			dir, err := m.gitter.Clone(gctx, u, parentDir)
			if err != nil {
				return err
			}
			dirs[i] = dir
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, dir := range dirs {
		fmt.Fprintf(m.reporterWriter, "📂 Cloned into %s\n", dir)
	}
	return nil
}

// Exec launches an arbitrary command in the working directory. With detach
// set the command is fired and forgotten; with capture set its output is
// echoed line by line.
func (m *CLIManager) Exec(ctx context.Context, argv []string, detach, capture bool) error {
	if len(argv) == 0 {
		return &ToolError{Result: launcher.FailCode(launcher.CodeInvalidParameter, "no command given")}
	}
	m.logger.Debug("launching", "argv", argv, "detach", detach, "capture", capture)

	if detach {
		res, _ := m.launcher.LaunchDetached(m.workDir, argv[0], argv[1:]...)
		if !res.IsSuccess() {
			return &ToolError{Result: res}
		}
		fmt.Fprintf(m.reporterWriter, "Launched %s\n", argv[0])
		return nil
	}

	res := m.launcher.Run(ctx, launcher.Spec{
		WorkingDir:     m.workDir,
		Executable:     argv[0],
		Args:           argv[1:],
		RedirectOutput: capture,
	})
	if capture {
		for _, line := range res.Output {
			fmt.Fprintln(m.reporterWriter, line)
		}
	}
	if !res.IsSuccess() {
		return &ToolError{Result: res}
	}
	return nil
}
