package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "raw json object",
			input:    `{"events": []}`,
			expected: `{"events": []}`,
		},
		{
			name:     "json with leading text",
			input:    `Here you go: {"events": [{"title": "Lunch"}]} hope it helps`,
			expected: `{"events": [{"title": "Lunch"}]}`,
		},
		{
			name:     "json in code block",
			input:    "```json\n{\"events\": []}\n```",
			expected: `{"events": []}`,
		},
		{
			name:     "json in plain code block",
			input:    "```\n{\"events\": []}\n```",
			expected: `{"events": []}`,
		},
		{
			name:     "json array",
			input:    `[{"id": 1}, {"id": 2}]`,
			expected: `[{"id": 1}, {"id": 2}]`,
		},
		{
			name:     "braces inside strings",
			input:    `ok {"title": "fix } bug", "description": "a \" { b"} done`,
			expected: `{"title": "fix } bug", "description": "a \" { b"}`,
		},
		{
			name:     "no json",
			input:    `sorry, I cannot help`,
			expected: `sorry, I cannot help`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.input)
			if got != tt.expected {
				t.Errorf("extractJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var resp DraftResponse
	if err := decodeJSON("```json\n{\"events\":[{\"title\":\"Gym\"}],\"warnings\":[\"guessed\"]}\n```", &resp); err != nil {
		t.Fatalf("decodeJSON() error = %v", err)
	}
	if len(resp.Events) != 1 || resp.Events[0].Title != "Gym" {
		t.Errorf("events = %+v", resp.Events)
	}
	if len(resp.Warnings) != 1 {
		t.Errorf("warnings = %v", resp.Warnings)
	}

	if err := decodeJSON("not json", &resp); err == nil {
		t.Error("expected error for non-JSON content")
	}
}
