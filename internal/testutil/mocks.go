package testutil

import (
	"context"
	"fmt"
)

// MockProvider is a scriptable translation provider
type MockProvider struct {
	Responses map[string]string
	Errors    map[string]error
	// Fail makes every call without a scripted response fail
	Fail  error
	Calls []string
	// OnCall runs before each translation, e.g. to simulate a crash
	OnCall func(text string)
}

// NewMockProvider creates a provider that answers "target(text)" by default, e.g. "en(zwei)"
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Responses: make(map[string]string),
		Errors:    make(map[string]error),
	}
}

// Name returns the provider name
func (m *MockProvider) Name() string {
	return "mock"
}

// Translate records the call and returns the scripted result
func (m *MockProvider) Translate(ctx context.Context, text, source, target string) (string, error) {
	m.Calls = append(m.Calls, text)
	if m.OnCall != nil {
		m.OnCall(text)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := m.Errors[text]; ok {
		return "", err
	}
	if resp, ok := m.Responses[text]; ok {
		return resp, nil
	}
	if m.Fail != nil {
		return "", m.Fail
	}

	return fmt.Sprintf("%s(%s)", target, text), nil
}

// CallCount returns how often text was sent to the provider
func (m *MockProvider) CallCount(text string) int {
	n := 0
	for _, call := range m.Calls {
		if call == text {
			n++
		}
	}
	return n
}
