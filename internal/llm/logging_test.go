package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/abhisek/sensei/internal/store"
)

type fakeEventRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (f *fakeEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, data)
	return f.err
}

func (f *fakeEventRepo) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMRequestEventRecord, error) {
	return nil, nil
}

func (f *fakeEventRepo) GetLLMEvent(context.Context, int) (*store.LLMRequestEventRecord, error) {
	return nil, nil
}

func (f *fakeEventRepo) LLMUsageByPurpose(context.Context) ([]store.LLMUsageStats, error) {
	return nil, nil
}

func (f *fakeEventRepo) LLMUsageByModel(context.Context) ([]store.LLMModelUsage, error) {
	return nil, nil
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &fakeEventRepo{}
	mock := NewMockProvider(MockResponse{Text: "Relax your shoulders.", Usage: Usage{InputTokens: 120, OutputTokens: 8}})
	p := WithLogging(mock, "mock", repo, nil)

	ctx := WithSession(WithPurpose(context.Background(), "feedback"), "sess-1")
	_, err := p.Generate(ctx, Request{Messages: []Message{{
		Role:    RoleUser,
		Content: "Analyze my ikkyo.",
		Images:  []Image{JPEG(make([]byte, 42))},
	}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if !ev.Success || ev.Purpose != "feedback" || ev.Provider != "mock" || ev.SessionID != "sess-1" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.InputTokens != 120 || ev.OutputTokens != 8 {
		t.Fatalf("unexpected token counts: %d/%d", ev.InputTokens, ev.OutputTokens)
	}
	if ev.ResponseBody != "Relax your shoulders." {
		t.Fatalf("unexpected response body %q", ev.ResponseBody)
	}
	if !strings.Contains(ev.RequestBody, "[image 1: image/jpeg, 42 bytes]") {
		t.Fatalf("expected image summary in request body, got %q", ev.RequestBody)
	}
	if !strings.Contains(ev.RequestBody, "Analyze my ikkyo.") {
		t.Fatalf("expected prompt in request body, got %q", ev.RequestBody)
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &fakeEventRepo{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}})
	p := WithLogging(mock, "mock", repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(repo.events) != 1 || repo.events[0].Success {
		t.Fatalf("expected one failed event, got %+v", repo.events)
	}
	if repo.events[0].ErrorMessage == "" {
		t.Fatal("expected error message to be recorded")
	}
	if repo.events[0].Purpose != "unknown" {
		t.Fatalf("expected unknown purpose, got %q", repo.events[0].Purpose)
	}
}

func TestLoggingProvider_RepoErrorDoesNotFailRequest(t *testing.T) {
	repo := &fakeEventRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Text: "ok"})
	p := WithLogging(mock, "mock", repo, nil)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "ok" {
		t.Fatalf("unexpected text %q", resp.Text)
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Text: "ok"}), "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock model id, got %q", p.ModelID())
	}
}

func TestTags(t *testing.T) {
	ctx := context.Background()
	if got := TagsFrom(ctx); got.Purpose != "unknown" || got.SessionID != "" {
		t.Fatalf("empty context tags = %+v", got)
	}

	ctx = WithSession(ctx, "abc")
	ctx = WithPurpose(ctx, "feedback")
	if got := TagsFrom(ctx); got != (Tags{Purpose: "feedback", SessionID: "abc"}) {
		t.Fatalf("tags = %+v", got)
	}
	if PurposeFrom(ctx) != "feedback" {
		t.Fatalf("purpose = %q", PurposeFrom(ctx))
	}
}
