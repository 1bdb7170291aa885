package scoring

import (
	"context"
	"errors"
	"sync"
)

// MockJudge replays scripted replies, in order, repeating the last one when
// the script runs out. It records how many times it was invoked, which lets
// tests assert that validation failures never reach the judge.
type MockJudge struct {
	mu      sync.Mutex
	replies []string
	calls   int

	// Err, when set, is returned from every call instead of a reply.
	Err error
}

// NewMockJudge builds a judge that replays the given replies.
func NewMockJudge(replies ...string) *MockJudge {
	return &MockJudge{replies: replies}
}

// Name implements [Judge].
func (m *MockJudge) Name() string {
	return "mock"
}

// Judge implements [Judge].
func (m *MockJudge) Judge(_ context.Context, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.replies) == 0 {
		return "", errors.New("mock judge has no scripted replies")
	}

	idx := m.calls - 1
	if idx >= len(m.replies) {
		idx = len(m.replies) - 1
	}
	return m.replies[idx], nil
}

// Calls returns how many times Judge was invoked.
func (m *MockJudge) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
