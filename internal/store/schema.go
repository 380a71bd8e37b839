package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableLLMEvents      = "llm_request_events"
	tableAnalysisEvents = "analysis_events"
)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// eventTable starts a table with the columns every event row carries.
func eventTable(name string) *schema.Table {
	t := schema.NewTable(name)
	t.AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt64, Increment: true})
	t.AddColumn(&schema.Column{Name: "sequence", Type: field.TypeInt64})
	// Unix milliseconds.
	t.AddColumn(&schema.Column{Name: "created_at", Type: field.TypeInt64})
	return t
}

func text(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString, Default: ""}
}

func integer(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeInt64, Default: 0}
}

func addColumns(t *schema.Table, cols ...*schema.Column) *schema.Table {
	for _, c := range cols {
		t.AddColumn(c)
	}
	return t
}

func tables() []*schema.Table {
	llmEvents := addColumns(eventTable(tableLLMEvents),
		text("provider"),
		text("model"),
		text("purpose"),
		text("session_id"),
		integer("input_tokens"),
		integer("output_tokens"),
		integer("latency_ms"),
		integer("success"),
		text("error_message"),
		text("request_body"),
		text("response_body"),
	)
	llmEvents.AddIndex("llmrequestevent_session_id", false, []string{"session_id"})

	analyses := addColumns(eventTable(tableAnalysisEvents),
		&schema.Column{Name: "session_id", Type: field.TypeString, Unique: true},
		text("technique"),
		text("locale"),
		text("verdict"),
		integer("frame_count"),
		text("observations"),
		text("metrics"),
		text("prompt"),
		text("feedback"),
		text("audio_path"),
		text("synthesis_error"),
		integer("success"),
		text("error_message"),
		integer("latency_ms"),
	)
	analyses.AddIndex("analysisevent_technique", false, []string{"technique"})

	return []*schema.Table{llmEvents, analyses}
}

// migrate creates missing tables, columns and indexes. Existing data is
// never dropped.
func migrate(ctx context.Context, db *sql.DB) error {
	m, err := schema.NewMigrate(entsql.OpenDB(dialect.SQLite, db), schema.WithForeignKeys(false))
	if err != nil {
		return fmt.Errorf("init migration: %w", err)
	}
	if err := m.Create(ctx, tables()...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
