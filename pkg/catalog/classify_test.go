// ABOUTME: Tests for speed/size classification and speed indicator lookup
// ABOUTME: Covers table precedence, numeric fallbacks, defaults, and determinism

package catalog

import (
	"math"
	"testing"
)

func TestClassifySpeed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want Speed
	}{
		{"meta/llama-3.1-8b-instruct", SpeedFast},
		{"microsoft/phi-3-mini-4k-instruct", SpeedFast},
		{"Llama-3.1-70B", SpeedMedium},
		{"mistralai/mixtral-8x22b-instruct-v0.1", SpeedMedium},
		{"deepseek-ai/deepseek-r1-distill-qwen-32b", SpeedMedium},
		{"meta/llama-3.3-70b-instruct", SpeedSlow},
		{"qwen/qwen3-coder-480b-a35b-instruct", SpeedSlow},
		{"deepseek-ai/deepseek-v3", SpeedSlow},
		{"deepseek-ai/deepseek-r1", SpeedSlow},
		// fallbacks
		{"ibm/granite-3.0-8b-instruct", SpeedFast},
		{"foo-13b", SpeedFast},
		{"acme/big-70b", SpeedMedium},
		{"meta/llama-3.1-405b-instruct", SpeedSlow},
		{"claude-v3-opus", SpeedSlow},
		// default
		{"gpt-4o", SpeedMedium},
		{"nvidia/nemotron-4-340b-instruct", SpeedMedium},
		{"", SpeedMedium},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()
			if got := ClassifySpeed(tt.id); got != tt.want {
				t.Errorf("ClassifySpeed(%q) = %q; want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestClassifySpeedDeterministicAndTotal(t *testing.T) {
	t.Parallel()

	ids := []string{"", "x", "ÄÖÜ-7B", "deepseek-v3", "llama-3.1-8b", "???", "r1"}
	for _, id := range ids {
		first := ClassifySpeed(id)
		switch first {
		case SpeedFast, SpeedMedium, SpeedSlow:
		default:
			t.Fatalf("ClassifySpeed(%q) = %q; not a known speed", id, first)
		}
		for range 5 {
			if got := ClassifySpeed(id); got != first {
				t.Fatalf("ClassifySpeed(%q) unstable: %q then %q", id, first, got)
			}
		}
	}
}

func TestClassifySize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want int
	}{
		{"qwen3-coder-480b", 480},
		{"phi-3", DefaultSize},
		{"Llama-3.1-70B", 70},
		{"deepseek-coder-6.7b", 7},
		{"mixtral-8x22b", 22},
		{"gpt-4o", DefaultSize},
		{"model-99999999999999999999999b", math.MaxInt},
	}

	for _, tt := range tests {
		if got := ClassifySize(tt.id); got != tt.want {
			t.Errorf("ClassifySize(%q) = %d; want %d", tt.id, got, tt.want)
		}
	}
}

func TestSpeedIndicator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		speed Speed
		emoji string
		label string
		color string
	}{
		{SpeedFast, "⚡", "Fast", "#10b981"},
		{SpeedMedium, "🚀", "Medium", "#f59e0b"},
		{SpeedSlow, "🐢", "Slow", "#ef4444"},
		{Speed("warp"), "🚀", "Medium", "#f59e0b"},
	}

	for _, tt := range tests {
		got := SpeedIndicator(tt.speed)
		if got.Emoji != tt.emoji || got.Label != tt.label || got.Color != tt.color {
			t.Errorf("SpeedIndicator(%q) = %+v; want {%s %s %s}", tt.speed, got, tt.emoji, tt.label, tt.color)
		}
	}
}

func TestParseSpeed(t *testing.T) {
	t.Parallel()

	if s, err := ParseSpeed(" Fast "); err != nil || s != SpeedFast {
		t.Errorf("ParseSpeed(Fast) = %q, %v", s, err)
	}
	if _, err := ParseSpeed("warp"); err == nil {
		t.Error("ParseSpeed(warp) returned nil error")
	}
}

func TestSpeedRank(t *testing.T) {
	t.Parallel()

	if !(SpeedFast.Rank() < SpeedMedium.Rank() && SpeedMedium.Rank() < SpeedSlow.Rank()) {
		t.Errorf("ranks not ordered: fast=%d medium=%d slow=%d",
			SpeedFast.Rank(), SpeedMedium.Rank(), SpeedSlow.Rank())
	}
}
