package llm

import (
	"context"
	"sync"
)

// MockClient is a test double for TextClient with function fields.
type MockClient struct {
	CompleteFunc func(ctx context.Context, req CompletionRequest) (string, error)
	ProviderName string

	mu            sync.Mutex
	completeCalls []CompletionRequest
}

var _ TextClient = (*MockClient)(nil)

// NewMockClient creates a mock that returns the given response for every call.
func NewMockClient(name, response string) *MockClient {
	return &MockClient{
		ProviderName: name,
		CompleteFunc: func(ctx context.Context, req CompletionRequest) (string, error) {
			return response, nil
		},
	}
}

// NewFailingMockClient creates a mock that returns the given error for every call.
func NewFailingMockClient(name string, err error) *MockClient {
	return &MockClient{
		ProviderName: name,
		CompleteFunc: func(ctx context.Context, req CompletionRequest) (string, error) {
			return "", err
		},
	}
}

func (m *MockClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	m.mu.Lock()
	m.completeCalls = append(m.completeCalls, req)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", nil
}

func (m *MockClient) Provider() string {
	if m.ProviderName != "" {
		return m.ProviderName
	}
	return "mock"
}

// CompleteCallCount returns how many times Complete was invoked.
func (m *MockClient) CompleteCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.completeCalls)
}

// LastRequest returns the most recent request, or nil if none were made.
func (m *MockClient) LastRequest() *CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.completeCalls) == 0 {
		return nil
	}
	req := m.completeCalls[len(m.completeCalls)-1]
	return &req
}
