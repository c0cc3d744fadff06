// Package llm generates summaries through the Groq chat completion API.
//
// Groq exposes an OpenAI-compatible endpoint, so the client is a thin wrapper
// over the go-openai SDK pointed at Groq's base URL. Two operations are
// offered: summarizing one page of extracted text into three main points, and
// consolidating several per-source summaries into a structured research
// report. Reasoning models emit their thought process inline; the package
// also provides helpers to separate it from the final answer.
package llm
