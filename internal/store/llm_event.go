package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo and AnalysisRepo over the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

var llmEventColumns = []string{
	"id", "sequence", "created_at", "provider", "model", "purpose", "session_id",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableLLMEvents).
		Columns(llmEventColumns[1:]...).
		Values(
			seqNum,
			r.now().UnixMilli(),
			data.Provider,
			data.Model,
			data.Purpose,
			data.SessionID,
			data.InputTokens,
			data.OutputTokens,
			data.LatencyMs,
			data.Success,
			data.ErrorMessage,
			data.RequestBody,
			data.ResponseBody,
		).Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	t := builder().Table(tableLLMEvents)
	sel := builder().Select(columns(t, llmEventColumns)...).From(t)
	applyOpts(sel, t, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEventRecord
	for rows.Next() {
		rec, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	t := builder().Table(tableLLMEvents)
	query, args := builder().Select(columns(t, llmEventColumns)...).
		From(t).
		Where(entsql.EQ(t.C("id"), id)).
		Query()

	rec, err := scanLLMEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	t := builder().Table(tableLLMEvents)
	query, args := builder().Select(
		t.C("purpose"),
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum(t.C("input_tokens")), "input_total"),
		entsql.As(entsql.Sum(t.C("output_tokens")), "output_total"),
		entsql.As(entsql.Avg(t.C("latency_ms")), "avg_latency"),
	).
		From(t).
		GroupBy(t.C("purpose")).
		OrderBy(entsql.Desc("calls")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	defer rows.Close()

	var out []LLMUsageStats
	for rows.Next() {
		var (
			st  LLMUsageStats
			avg float64
		)
		if err := rows.Scan(&st.Purpose, &st.Calls, &st.InputTokens, &st.OutputTokens, &avg); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		st.AvgLatencyMs = int64(avg)
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error) {
	t := builder().Table(tableLLMEvents)
	query, args := builder().Select(
		t.C("model"),
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum(t.C("input_tokens")), "input_total"),
		entsql.As(entsql.Sum(t.C("output_tokens")), "output_total"),
	).
		From(t).
		Where(entsql.EQ(t.C("success"), true)).
		GroupBy(t.C("model")).
		OrderBy(entsql.Desc("calls")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	defer rows.Close()

	var out []LLMModelUsage
	for rows.Next() {
		var mu LLMModelUsage
		if err := rows.Scan(&mu.Model, &mu.Calls, &mu.InputTokens, &mu.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan model usage: %w", err)
		}
		out = append(out, mu)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row scanner) (*LLMRequestEventRecord, error) {
	var (
		rec LLMRequestEventRecord
		ms  int64
	)
	err := row.Scan(
		&rec.ID, &rec.Sequence, &ms,
		&rec.Provider, &rec.Model, &rec.Purpose, &rec.SessionID,
		&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &rec.Success,
		&rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	rec.Timestamp = time.UnixMilli(ms).UTC()
	return &rec, nil
}

func columns(t *entsql.SelectTable, names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = t.C(n)
	}
	return out
}

// applyOpts adds the QueryOpts filters and orders newest first.
func applyOpts(sel *entsql.Selector, t *entsql.SelectTable, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT(t.C("sequence"), opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT(t.C("sequence"), opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(t.C("created_at"), opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(t.C("created_at"), opts.To.UnixMilli()))
	}
	sel.OrderBy(entsql.Desc(t.C("sequence")))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
