// Package speech turns coaching feedback into spoken audio.
package speech

import (
	"context"
	"fmt"
)

// Synthesizer converts text into an audio payload.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*Audio, error)

	// Voice returns the voice identifier requests are sent with.
	Voice() string
}

// Audio is a synthesized payload.
type Audio struct {
	Data     []byte
	MIMEType string
}

// Ext returns the file extension matching the audio MIME type.
func (a *Audio) Ext() string {
	switch a.MIMEType {
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/ogg":
		return ".ogg"
	case "audio/pcm":
		return ".pcm"
	default:
		return ".mp3"
	}
}

// APIError is a non-success answer from a synthesis service.
type APIError struct {
	Service    string
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %s", e.Service, e.Status)
	}
	return fmt.Sprintf("%s: %s: %s", e.Service, e.Status, e.Body)
}
