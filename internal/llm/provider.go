package llm

import "context"

// Provider is the core abstraction for generative text services.
// Consumers send a prompt, optionally with images, and receive plain text.
type Provider interface {
	// Generate sends the request and returns the generated text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt. Optional; the coaching prompt is sent
	// as a single user message.
	System string

	// Messages is the conversation. Analysis requests carry one user
	// message with the prompt and its images.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64

	// ImageDetail is a fidelity hint for providers that support one
	// ("low", "high" or "auto"). Empty means "low".
	ImageDetail string
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
	// Images are attached ahead of Content, in order.
	Images []Image
}

// Image is an encoded picture attached to a message.
type Image struct {
	MIMEType string
	Data     []byte
}

// JPEG wraps encoded JPEG bytes as an Image.
func JPEG(data []byte) Image {
	return Image{MIMEType: "image/jpeg", Data: data}
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the model's output.
type Response struct {
	// Text is the generated text.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
