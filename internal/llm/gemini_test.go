package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiContents_ImagesBeforeText(t *testing.T) {
	contents := buildGeminiContents([]Message{{
		Role:    RoleUser,
		Content: "how is my stance?",
		Images:  []Image{JPEG([]byte{1, 2}), JPEG([]byte{3})},
	}})

	if len(contents) != 1 {
		t.Fatalf("expected 1 content, got %d", len(contents))
	}
	parts := contents[0].Parts
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	if parts[0].InlineData == nil || parts[0].InlineData.MIMEType != "image/jpeg" {
		t.Fatalf("expected first part to be a jpeg blob, got %+v", parts[0])
	}
	if len(parts[1].InlineData.Data) != 1 {
		t.Fatalf("expected second image to keep its order")
	}
	if parts[2].Text != "how is my stance?" {
		t.Fatalf("expected text last, got %q", parts[2].Text)
	}
	if contents[0].Role != "user" {
		t.Fatalf("expected role user, got %q", contents[0].Role)
	}
}
