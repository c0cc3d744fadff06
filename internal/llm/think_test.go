package llm

import "testing"

func TestStripReasoning(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "removes think block",
			input: "<think>let me reason about this</think>\nThe answer is 42.",
			want:  "The answer is 42.",
		},
		{
			name:  "removes multiline think block",
			input: "<think>\nstep one\nstep two\n</think>\n\nSummary here.",
			want:  "Summary here.",
		},
		{
			name:  "no think block passes through",
			input: "Plain summary without reasoning.",
			want:  "Plain summary without reasoning.",
		},
		{
			name:  "removes multiple think blocks",
			input: "<think>a</think>first<think>b</think> second",
			want:  "first second",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := StripReasoning(tt.input); got != tt.want {
				t.Errorf("StripReasoning() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractFinalSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "splits on marker",
			input: "Thought Process:\n- analyzed sources\n\nFinal Summary:\n1. Overview\n2. Key Findings",
			want:  "1. Overview\n2. Key Findings",
		},
		{
			name:  "marker absent returns whole text",
			input: "Just a summary without structure.",
			want:  "Just a summary without structure.",
		},
		{
			name:  "think block removed before split",
			input: "<think>Final Summary: decoy inside reasoning</think>Some prose.",
			want:  "Some prose.",
		},
		{
			name:  "uses last marker",
			input: "Final Summary: mentioned early\nmore thought\nFinal Summary:\nthe real one",
			want:  "the real one",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ExtractFinalSummary(tt.input); got != tt.want {
				t.Errorf("ExtractFinalSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}
