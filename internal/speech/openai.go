package speech

import (
	"context"
	"errors"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI synthesizes speech with the OpenAI audio API.
type OpenAI struct {
	client *openai.Client
	cfg    OpenAIConfig
}

func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(config), cfg: cfg}, nil
}

func (o *OpenAI) Voice() string { return o.cfg.Voice }

func (o *OpenAI) Synthesize(ctx context.Context, text string) (*Audio, error) {
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.cfg.Model),
		Input:          text,
		Voice:          openai.SpeechVoice(o.cfg.Voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, &APIError{
				Service:    "openai",
				StatusCode: apiErr.HTTPStatusCode,
				Status:     apiErr.HTTPStatus,
				Body:       apiErr.Message,
			}
		}
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("openai speech read: %w", err)
	}
	return &Audio{Data: data, MIMEType: "audio/mpeg"}, nil
}
