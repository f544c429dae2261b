package github

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAPI is a mock implementation of the API interface for testing.
type MockAPI struct {
	mock.Mock
}

// Status mocks the Status method.
func (m *MockAPI) Status(ctx context.Context) (*Connection, error) {
	args := m.Called(ctx)
	if conn := args.Get(0); conn != nil {
		return conn.(*Connection), args.Error(1)
	}
	return nil, args.Error(1)
}

// Connect mocks the Connect method.
func (m *MockAPI) Connect(ctx context.Context, token string) (*Connection, error) {
	args := m.Called(ctx, token)
	if conn := args.Get(0); conn != nil {
		return conn.(*Connection), args.Error(1)
	}
	return nil, args.Error(1)
}

// Disconnect mocks the Disconnect method.
func (m *MockAPI) Disconnect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ListRepos mocks the ListRepos method.
func (m *MockAPI) ListRepos(ctx context.Context, repoType, sort string) ([]Repo, error) {
	args := m.Called(ctx, repoType, sort)
	if repos := args.Get(0); repos != nil {
		return repos.([]Repo), args.Error(1)
	}
	return nil, args.Error(1)
}

// Tree mocks the Tree method.
func (m *MockAPI) Tree(ctx context.Context, owner, repo string) ([]TreeItem, error) {
	args := m.Called(ctx, owner, repo)
	if tree := args.Get(0); tree != nil {
		return tree.([]TreeItem), args.Error(1)
	}
	return nil, args.Error(1)
}

// File mocks the File method.
func (m *MockAPI) File(ctx context.Context, owner, repo, path string) (*FileContent, error) {
	args := m.Called(ctx, owner, repo, path)
	if file := args.Get(0); file != nil {
		return file.(*FileContent), args.Error(1)
	}
	return nil, args.Error(1)
}

// Readme mocks the Readme method.
func (m *MockAPI) Readme(ctx context.Context, owner, repo string) (string, error) {
	args := m.Called(ctx, owner, repo)
	return args.String(0), args.Error(1)
}

// SearchCode mocks the SearchCode method.
func (m *MockAPI) SearchCode(ctx context.Context, query, owner, repo string) ([]SearchResult, error) {
	args := m.Called(ctx, query, owner, repo)
	if results := args.Get(0); results != nil {
		return results.([]SearchResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// CreateIssue mocks the CreateIssue method.
func (m *MockAPI) CreateIssue(ctx context.Context, owner, repo string, req IssueRequest) (*Issue, error) {
	args := m.Called(ctx, owner, repo, req)
	if issue := args.Get(0); issue != nil {
		return issue.(*Issue), args.Error(1)
	}
	return nil, args.Error(1)
}

// Analyze mocks the Analyze method.
func (m *MockAPI) Analyze(ctx context.Context, owner, repo string, req AnalyzeRequest) (*Analysis, error) {
	args := m.Called(ctx, owner, repo, req)
	if analysis := args.Get(0); analysis != nil {
		return analysis.(*Analysis), args.Error(1)
	}
	return nil, args.Error(1)
}
