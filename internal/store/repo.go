package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	// SessionID links the request to the analysis that issued it.
	SessionID    string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates token usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and reads LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)
	// GetLLMEvent returns nil when no event has the given ID.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// AnalysisEventData is the outcome of one analysis session.
type AnalysisEventData struct {
	SessionID      string          `json:"session_id"`
	Technique      string          `json:"technique"`
	Locale         string          `json:"locale"`
	Verdict        string          `json:"verdict,omitempty"`
	FrameCount     int             `json:"frame_count"`
	Observations   json.RawMessage `json:"observations,omitempty"`
	Metrics        json.RawMessage `json:"metrics,omitempty"`
	Prompt         string          `json:"prompt,omitempty"`
	Feedback       string          `json:"feedback,omitempty"`
	AudioPath      string          `json:"-"`
	SynthesisError string          `json:"synthesis_error,omitempty"`
	Success        bool            `json:"success"`
	ErrorMessage   string          `json:"error,omitempty"`
	LatencyMs      int64           `json:"latency_ms"`
}

// AnalysisRecord is a stored analysis event.
type AnalysisRecord struct {
	ID        int       `json:"id"`
	Sequence  int64     `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
	AnalysisEventData
}

// AnalysisQuery filters analysis listings.
type AnalysisQuery struct {
	QueryOpts
	Technique string
}

// AnalysisRepo records and reads analysis events.
type AnalysisRepo interface {
	AppendAnalysis(ctx context.Context, data AnalysisEventData) (int64, error)
	QueryAnalyses(ctx context.Context, q AnalysisQuery) ([]AnalysisRecord, error)
	// GetAnalysis returns nil when no analysis has the given session ID.
	GetAnalysis(ctx context.Context, sessionID string) (*AnalysisRecord, error)
}
