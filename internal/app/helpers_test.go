package app

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/bitshepherds/relkit/internal/repo"
)

// mockEnvProvider is a test implementation of fs.EnvProvider.
type mockEnvProvider struct {
	values map[string]string
}

func (m *mockEnvProvider) Get(key string) string {
	return m.values[key]
}

type MockManager struct {
	mock.Mock
	workDir string
}

func (m *MockManager) Status(ctx context.Context, format string, useColour bool) error {
	args := m.Called(ctx, format, useColour)
	return args.Error(0)
}

func (m *MockManager) WatchStatus(ctx context.Context, format string, useColour bool,
	readyChan chan<- struct{},
) error {
	args := m.Called(ctx, format, useColour, readyChan)
	return args.Error(0)
}

func (m *MockManager) StageTag(ctx context.Context, apply, push bool) (repo.Tag, error) {
	args := m.Called(ctx, apply, push)
	t, _ := args.Get(0).(repo.Tag)
	return t, args.Error(1)
}

func (m *MockManager) ProdTag(ctx context.Context, apply, push bool) (repo.Tag, error) {
	args := m.Called(ctx, apply, push)
	t, _ := args.Get(0).(repo.Tag)
	return t, args.Error(1)
}

func (m *MockManager) SetTag(ctx context.Context, tag string) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockManager) PushTag(ctx context.Context, tag string) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockManager) DeleteTag(ctx context.Context, tag string, remote bool) error {
	args := m.Called(ctx, tag, remote)
	return args.Error(0)
}

func (m *MockManager) ListTags(ctx context.Context, remote bool, format string, useColour bool) error {
	args := m.Called(ctx, remote, format, useColour)
	return args.Error(0)
}

func (m *MockManager) Checkout(ctx context.Context, branch string, create bool) error {
	args := m.Called(ctx, branch, create)
	return args.Error(0)
}

func (m *MockManager) Clone(ctx context.Context, urls []string, into string) error {
	args := m.Called(ctx, urls, into)
	return args.Error(0)
}

func (m *MockManager) Exec(ctx context.Context, argv []string, detach, capture bool) error {
	args := m.Called(ctx, argv, detach, capture)
	return args.Error(0)
}

func (m *MockManager) WorkDir() string {
	return m.workDir
}
