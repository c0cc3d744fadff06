package llm

import (
	"fmt"
	"strings"

	"github.com/topicscan/topicscan/internal/model"
)

// summaryPrompt asks for a three-point summary of one page of text.
func summaryPrompt(text string) string {
	return fmt.Sprintf(`Please summarize the following text concisely into 3 main points:

%s

Key points to include:
- Main topics and themes
- Important facts and figures
- Key announcements or updates
`, text)
}

// consolidatePrompt asks for a structured report over the per-source
// summaries. The model is told to show its thought process first and mark
// the answer with a "Final Summary:" heading so the display layer can
// separate the two.
func consolidatePrompt(topic string, summaries []model.SourceSummary) string {
	var combined strings.Builder
	fmt.Fprintf(&combined, "Topic: %s\n\nSource Summaries:\n\n", topic)
	for _, s := range summaries {
		fmt.Fprintf(&combined, "Source: %s\n%s\n\n", s.Title, s.Summary)
	}

	return fmt.Sprintf(`Please create a comprehensive summary of the following research about '%s'.
First, explain your thought process for analyzing and structuring the information.
Then, provide a structured summary.

%s

Please structure your response as follows:

Thought Process:
- Explain how you're analyzing the sources
- Describe your approach to organizing the information
- Note any particular points of interest or challenges

Final Summary:
1. Overview
2. Key Findings
3. Different Perspectives (if any)
4. Conclusions
`, topic, combined.String())
}
