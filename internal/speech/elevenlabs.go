package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const defaultElevenLabsBaseURL = "https://api.elevenlabs.io"

// ElevenLabs synthesizes speech with the ElevenLabs text-to-speech API.
type ElevenLabs struct {
	c   *http.Client
	cfg ElevenLabsConfig
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

// NewElevenLabs creates a client. A nil http client means http.DefaultClient.
func NewElevenLabs(cfg ElevenLabsConfig, c *http.Client) (*ElevenLabs, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("elevenlabs API key is required")
	}
	if cfg.Voice == "" {
		return nil, fmt.Errorf("elevenlabs voice is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultElevenLabsBaseURL
	}
	if c == nil {
		c = http.DefaultClient
	}
	return &ElevenLabs{c: c, cfg: cfg}, nil
}

func (e *ElevenLabs) Voice() string { return e.cfg.Voice }

func (e *ElevenLabs) Synthesize(ctx context.Context, text string) (*Audio, error) {
	payload, err := json.Marshal(ttsRequest{
		Text:    text,
		ModelID: e.cfg.Model,
		VoiceSettings: voiceSettings{
			Stability:       e.cfg.Stability,
			SimilarityBoost: e.cfg.SimilarityBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("elevenlabs encode: %w", err)
	}

	endpoint := strings.TrimRight(e.cfg.BaseURL, "/") + "/v1/text-to-speech/" + url.PathEscape(e.cfg.Voice)
	if e.cfg.OutputFormat != "" {
		endpoint += "?output_format=" + url.QueryEscape(e.cfg.OutputFormat)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", e.cfg.APIKey)

	resp, err := e.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		const maxErr = 4096
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErr))
		return nil, &APIError{
			Service:    "elevenlabs",
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs read: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("elevenlabs: empty audio payload")
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "audio/mpeg"
	}
	return &Audio{Data: data, MIMEType: mime}, nil
}
