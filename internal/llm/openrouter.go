package llm

import (
	"fmt"
	"net/http"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider talks to OpenRouter's OpenAI-compatible endpoint. Model
// IDs are vendor-prefixed ("openai/gpt-4o") and sent unchanged.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	return newOpenRouterProvider(cfg, http.DefaultTransport)
}

func newOpenRouterProvider(cfg OpenRouterConfig, base http.RoundTripper) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}

	headers := http.Header{}
	if cfg.AppURL != "" {
		headers.Set("HTTP-Referer", cfg.AppURL)
	}
	if cfg.AppName != "" {
		headers.Set("X-Title", cfg.AppName)
	}

	inner, err := newOpenAIProvider(
		OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL},
		&http.Client{Transport: &headerTransport{base: base, headers: headers}},
	)
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// headerTransport adds fixed headers to every request.
type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) > 0 {
		req = req.Clone(req.Context())
		for k, v := range t.headers {
			req.Header[k] = v
		}
	}
	return t.base.RoundTrip(req)
}
