package observability

import "time"

// GenerationUsage is reported once per LLM call: token counts and latency.
type GenerationUsage struct {
	Model        string
	InputTokens  int
	OutputTokens int
	Latency      time.Duration
	Err          error
}

// UsageObserver receives per-call usage records. Implementations must never
// block or fail the main flow; the client invokes them fire-and-forget.
type UsageObserver func(u GenerationUsage)

// LogUsage is the default observer: one structured log line per call.
func LogUsage(u GenerationUsage) {
	l := logger.With(
		"model", u.Model,
		"input_tokens", u.InputTokens,
		"output_tokens", u.OutputTokens,
		"latency_ms", u.Latency.Milliseconds(),
	)
	if u.Err != nil {
		l.Warn("llm call failed", "error", u.Err)
		return
	}
	l.Info("llm call")
}
