package llm

import (
	"regexp"
	"strings"
)

// finalSummaryMarker is the heading the consolidation prompt asks the model
// to place before the structured answer.
const finalSummaryMarker = "Final Summary:"

// thinkBlockRe matches the inline reasoning blocks that DeepSeek-style
// models emit before their answer.
var thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripReasoning removes <think> blocks from a completion. The remaining
// text is trimmed. Completions without reasoning pass through unchanged.
func StripReasoning(s string) string {
	return strings.TrimSpace(thinkBlockRe.ReplaceAllString(s, ""))
}

// ExtractFinalSummary returns the text after the last "Final Summary:"
// marker with reasoning blocks removed, for display without the model's
// thought process. When the marker is absent, the whole completion minus
// reasoning blocks is returned, so a model that skips the requested
// structure still produces output.
func ExtractFinalSummary(s string) string {
	cleaned := StripReasoning(s)
	if idx := strings.LastIndex(cleaned, finalSummaryMarker); idx >= 0 {
		return strings.TrimSpace(cleaned[idx+len(finalSummaryMarker):])
	}
	return cleaned
}
