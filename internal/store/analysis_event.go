package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var analysisColumns = []string{
	"id", "sequence", "created_at", "session_id", "technique", "locale",
	"verdict", "frame_count", "observations", "metrics", "prompt", "feedback",
	"audio_path", "synthesis_error", "success", "error_message", "latency_ms",
}

func (r *eventRepo) AppendAnalysis(ctx context.Context, data AnalysisEventData) (int64, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableAnalysisEvents).
		Columns(analysisColumns[1:]...).
		Values(
			seqNum,
			r.now().UnixMilli(),
			data.SessionID,
			data.Technique,
			data.Locale,
			data.Verdict,
			data.FrameCount,
			string(data.Observations),
			string(data.Metrics),
			data.Prompt,
			data.Feedback,
			data.AudioPath,
			data.SynthesisError,
			data.Success,
			data.ErrorMessage,
			data.LatencyMs,
		).Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("save analysis event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("analysis event id: %w", err)
	}
	return id, nil
}

func (r *eventRepo) QueryAnalyses(ctx context.Context, q AnalysisQuery) ([]AnalysisRecord, error) {
	t := builder().Table(tableAnalysisEvents)
	sel := builder().Select(columns(t, analysisColumns)...).From(t)
	if q.Technique != "" {
		sel.Where(entsql.EQ(t.C("technique"), q.Technique))
	}
	applyOpts(sel, t, q.QueryOpts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetAnalysis(ctx context.Context, sessionID string) (*AnalysisRecord, error) {
	t := builder().Table(tableAnalysisEvents)
	query, args := builder().Select(columns(t, analysisColumns)...).
		From(t).
		Where(entsql.EQ(t.C("session_id"), sessionID)).
		Query()

	rec, err := scanAnalysis(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func scanAnalysis(row scanner) (*AnalysisRecord, error) {
	var (
		rec          AnalysisRecord
		ms           int64
		observations string
		metrics      string
	)
	err := row.Scan(
		&rec.ID, &rec.Sequence, &ms,
		&rec.SessionID, &rec.Technique, &rec.Locale,
		&rec.Verdict, &rec.FrameCount, &observations, &metrics,
		&rec.Prompt, &rec.Feedback, &rec.AudioPath, &rec.SynthesisError,
		&rec.Success, &rec.ErrorMessage, &rec.LatencyMs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan analysis: %w", err)
	}
	rec.Timestamp = time.UnixMilli(ms).UTC()
	if observations != "" {
		rec.Observations = []byte(observations)
	}
	if metrics != "" {
		rec.Metrics = []byte(metrics)
	}
	return &rec, nil
}
