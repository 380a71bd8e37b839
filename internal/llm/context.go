package llm

import "context"

// Tags label a request in the event log.
type Tags struct {
	Purpose   string
	SessionID string
}

type tagsKey struct{}

// WithPurpose tags requests made with ctx with purpose, keeping any
// session already attached.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	t := tagsFrom(ctx)
	t.Purpose = purpose
	return context.WithValue(ctx, tagsKey{}, t)
}

// WithSession tags requests made with ctx with an analysis session id.
func WithSession(ctx context.Context, sessionID string) context.Context {
	t := tagsFrom(ctx)
	t.SessionID = sessionID
	return context.WithValue(ctx, tagsKey{}, t)
}

// TagsFrom returns the tags on ctx. Purpose is "unknown" when unset.
func TagsFrom(ctx context.Context) Tags {
	t := tagsFrom(ctx)
	if t.Purpose == "" {
		t.Purpose = "unknown"
	}
	return t
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string { return TagsFrom(ctx).Purpose }

func tagsFrom(ctx context.Context) Tags {
	t, _ := ctx.Value(tagsKey{}).(Tags)
	return t
}
