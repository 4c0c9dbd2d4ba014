package tokencount

import "testing"

func TestNormalizeModelName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"gpt-4o-mini", "gpt-4o"},
		{"GPT-4-turbo", "gpt-4"},
		{"openai/gpt-3.5-turbo-0125", "gpt-3.5-turbo"},
		{"text-embedding-3-small", "text-embedding-3-small"},
		{"meta-llama/llama-3.1-8b-instruct", "gpt-4"},
		{"", "gpt-4"},
	}
	for _, tt := range tests {
		if got := normalizeModelName(tt.in); got != tt.want {
			t.Errorf("normalizeModelName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEstimate(t *testing.T) {
	if got := Estimate(""); got != 0 {
		t.Fatalf("Estimate(\"\") = %d", got)
	}
	if got := Estimate("abcdefgh"); got != 2 {
		t.Fatalf("Estimate = %d, want 2", got)
	}
}
