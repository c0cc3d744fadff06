// Package pipeline executes the research phases in sequence.
//
// A research run moves through three stages: searching for sources,
// summarizing each source, and consolidating the per-source summaries into
// one report. Each stage is implemented as a Step that receives the
// accumulating research result and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context between long-running stages
//
// Per-source failures are recorded in the result and do not stop the run;
// only stage-level failures (no sources found, cancellation) abort it.
package pipeline
