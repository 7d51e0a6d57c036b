// ABOUTME: Round-trip latency probe for backend calls
// ABOUTME: Classifies latency as Local (<50ms), Fast (<500ms), or Slow (>=500ms)

package perf

import (
	"context"
	"fmt"
	"time"
)

// LatencyClass categorizes network latency.
type LatencyClass int

const (
	LatencyLocal LatencyClass = iota // <50ms
	LatencyFast                      // <500ms
	LatencySlow                      // >=500ms
)

// String returns the human-readable name of the latency class.
func (l LatencyClass) String() string {
	switch l {
	case LatencyLocal:
		return "local"
	case LatencyFast:
		return "fast"
	case LatencySlow:
		return "slow"
	default:
		return "unknown"
	}
}

// MarshalText lets the class appear by name in JSON output.
func (l LatencyClass) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText parses a class name written by MarshalText.
func (l *LatencyClass) UnmarshalText(b []byte) error {
	for _, c := range []LatencyClass{LatencyLocal, LatencyFast, LatencySlow} {
		if c.String() == string(b) {
			*l = c
			return nil
		}
	}
	return fmt.Errorf("unknown latency class %q", b)
}

// ProbeResult holds the outcome of a timed call.
type ProbeResult struct {
	Elapsed time.Duration
	Latency LatencyClass
	Err     error
}

// Probe times fn. A failed call is always classed LatencySlow.
func Probe(ctx context.Context, fn func(ctx context.Context) error) ProbeResult {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	if err != nil {
		return ProbeResult{Elapsed: elapsed, Latency: LatencySlow, Err: err}
	}
	return ProbeResult{Elapsed: elapsed, Latency: classifyLatency(elapsed)}
}

// classifyLatency maps a round-trip duration to a LatencyClass.
func classifyLatency(d time.Duration) LatencyClass {
	switch {
	case d < 50*time.Millisecond:
		return LatencyLocal
	case d < 500*time.Millisecond:
		return LatencyFast
	default:
		return LatencySlow
	}
}
