package speech

import (
	"context"
	"sync"
)

// MockSynthesizer returns a fixed payload, or Err when set, and records
// every text it was asked to speak.
type MockSynthesizer struct {
	mu    sync.Mutex
	Data  []byte
	Err   error
	Texts []string
}

func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{Data: []byte("ID3mock")}
}

func (m *MockSynthesizer) Voice() string { return "mock" }

func (m *MockSynthesizer) Synthesize(_ context.Context, text string) (*Audio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Texts = append(m.Texts, text)
	if m.Err != nil {
		return nil, m.Err
	}
	return &Audio{Data: m.Data, MIMEType: "audio/mpeg"}, nil
}

// Calls returns how many times Synthesize ran.
func (m *MockSynthesizer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Texts)
}
