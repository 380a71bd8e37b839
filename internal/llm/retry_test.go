package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func TestRetry_Attempts(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		attempts  int
		wantText  string
		wantCalls int
	}{
		{
			name:      "first attempt succeeds",
			responses: []MockResponse{{Text: "Excelente!"}},
			attempts:  3,
			wantText:  "Excelente!",
			wantCalls: 1,
		},
		{
			name:      "transient then success",
			responses: []MockResponse{unavailable(), {Text: "Excelente!"}},
			attempts:  3,
			wantText:  "Excelente!",
			wantCalls: 2,
		},
		{
			name:      "all attempts fail",
			responses: []MockResponse{unavailable(), unavailable(), unavailable()},
			attempts:  3,
			wantCalls: 3,
		},
		{
			name:      "max tokens is permanent",
			responses: []MockResponse{{Err: &ErrMaxTokensExceeded{}}, {Text: "unreached"}},
			attempts:  3,
			wantCalls: 1,
		},
		{
			name:      "rejected request is permanent",
			responses: []MockResponse{{Err: &ErrRejected{StatusCode: 401, Err: errors.New("bad key")}}, {Text: "unreached"}},
			attempts:  3,
			wantCalls: 1,
		},
		{
			name: "invalid response retried once",
			responses: []MockResponse{
				{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
				{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
				{Text: "unreached"},
			},
			attempts:  3,
			wantCalls: 2,
		},
		{
			name:      "rate limit waits RetryAfter",
			responses: []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}, {Text: "Excelente!"}},
			attempts:  3,
			wantText:  "Excelente!",
			wantCalls: 2,
		},
		{
			name:      "single attempt disables retries",
			responses: []MockResponse{unavailable(), {Text: "unreached"}},
			attempts:  1,
			wantCalls: 1,
		},
		{
			name:      "zero attempts still calls once",
			responses: []MockResponse{{Text: "ok"}},
			attempts:  0,
			wantText:  "ok",
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			cfg := retryConfig()
			cfg.MaxAttempts = tt.attempts

			resp, err := WithRetry(mock, cfg).Generate(context.Background(), Request{})
			if tt.wantText == "" {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantText, resp.Text)
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_PreservesErrorType(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrMaxTokensExceeded{}})
	_, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})

	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), MockResponse{Text: "Excelente!"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, retryConfig()).Generate(ctx, Request{})
	assert.Error(t, err)
}

func TestRetry_GivesUpWhenWaitOutlivesDeadline(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Hour, Err: errors.New("429")}},
		MockResponse{Text: "unreached"},
	)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	_, err := WithRetry(mock, retryConfig()).Generate(ctx, Request{})

	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
	assert.Equal(t, 1, mock.CallCount())
	assert.Less(t, time.Since(start), time.Second)
}

func TestRetry_BackoffBounds(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}

	for attempt, base := range []time.Duration{100, 200, 300, 300} {
		base *= time.Millisecond
		for range 20 {
			got := r.backoff(attempt, errors.New("x"))
			assert.GreaterOrEqual(t, got, base*8/10, "attempt %d", attempt)
			assert.LessOrEqual(t, got, base*12/10, "attempt %d", attempt)
		}
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	assert.Equal(t, "mock", WithRetry(NewMockProvider(), retryConfig()).ModelID())
}
