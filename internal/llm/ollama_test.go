package llm

import (
	"testing"

	"github.com/tmc/langchaingo/llms"
)

func TestNewOllamaClient(t *testing.T) {
	tests := []struct {
		name        string
		model       string
		baseURL     string
		wantBaseURL string
		wantErr     bool
	}{
		{name: "default server", model: "llama3", wantBaseURL: defaultOllamaBaseURL},
		{name: "custom server", model: "qwen2.5", baseURL: "http://gpu-box:11434", wantBaseURL: "http://gpu-box:11434"},
		{name: "missing model", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewOllamaClient(tt.model, tt.baseURL)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.baseURL != tt.wantBaseURL {
				t.Errorf("baseURL = %q, want %q", client.baseURL, tt.wantBaseURL)
			}
			if client.model != tt.model {
				t.Errorf("model = %q, want %q", client.model, tt.model)
			}
		})
	}
}

func TestToLangChainMessages(t *testing.T) {
	msgs := []Message{
		{Role: RoleSystem, Content: "plan my day"},
		{Role: "User", Content: "lunch at noon"},
		{Role: RoleAssistant, Content: "{}"},
		{Role: "tool", Content: "ignored role"},
	}
	want := []llms.ChatMessageType{
		llms.ChatMessageTypeSystem,
		llms.ChatMessageTypeHuman,
		llms.ChatMessageTypeAI,
		llms.ChatMessageTypeHuman,
	}

	got := toLangChainMessages(msgs)
	if len(got) != len(want) {
		t.Fatalf("got %d messages, want %d", len(got), len(want))
	}
	for i, m := range got {
		if m.Role != want[i] {
			t.Errorf("message %d role = %q, want %q", i, m.Role, want[i])
		}
		if len(m.Parts) != 1 {
			t.Fatalf("message %d has %d parts", i, len(m.Parts))
		}
		text, ok := m.Parts[0].(llms.TextContent)
		if !ok || text.Text != msgs[i].Content {
			t.Errorf("message %d text = %#v, want %q", i, m.Parts[0], msgs[i].Content)
		}
	}
}
