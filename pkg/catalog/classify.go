// ABOUTME: Heuristic speed and parameter-size classification derived from model identifiers
// ABOUTME: Ordered rule chain: known-family tables first, numeric token fallbacks second

package catalog

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Speed is the heuristic latency class of a model.
type Speed string

const (
	SpeedFast   Speed = "fast"
	SpeedMedium Speed = "medium"
	SpeedSlow   Speed = "slow"
)

// Rank orders speeds for sorting: fast < medium < slow.
// Unknown values rank with medium.
func (s Speed) Rank() int {
	switch s {
	case SpeedFast:
		return 0
	case SpeedSlow:
		return 2
	default:
		return 1
	}
}

// ParseSpeed converts a user-supplied string into a Speed.
func ParseSpeed(s string) (Speed, error) {
	switch Speed(strings.ToLower(strings.TrimSpace(s))) {
	case SpeedFast:
		return SpeedFast, nil
	case SpeedMedium:
		return SpeedMedium, nil
	case SpeedSlow:
		return SpeedSlow, nil
	}
	return "", fmt.Errorf("unknown speed %q (want fast, medium or slow)", s)
}

// DefaultSize is the parameter count (billions) reported when an ID carries no size token.
const DefaultSize = 50

// speedRule maps a set of substrings to a speed. The first rule with a
// matching token wins.
type speedRule struct {
	tokens []string
	speed  Speed
}

// Known model families. Table order is significant.
var familyRules = []speedRule{
	{speed: SpeedFast, tokens: []string{
		"llama-3.1-8b", "llama-3.2-1b", "llama-3.2-3b", "gemma-2-2b", "gemma-2-9b",
		"phi-3", "qwen2-7b", "mistral-7b", "yi-6b", "deepseek-coder-6.7b",
	}},
	{speed: SpeedMedium, tokens: []string{
		"llama-3.1-70b", "mixtral", "qwen2-72b", "yi-34b", "deepseek-v2",
		"nemotron-70b", "qwq-32b", "deepseek-r1-distill-qwen-32b",
	}},
	{speed: SpeedSlow, tokens: []string{
		"llama-3.3-70b", "qwen3-coder-480b", "deepseek-v3", "deepseek-r1",
	}},
}

// Parameter-count and generation tokens, consulted only when no family matched.
var fallbackRules = []speedRule{
	{speed: SpeedFast, tokens: []string{"8b", "7b", "6b", "3b", "2b", "1b"}},
	{speed: SpeedMedium, tokens: []string{"70b", "72b", "34b", "32b"}},
	{speed: SpeedSlow, tokens: []string{"480b", "v3", "r1", "405b"}},
}

// ClassifySpeed derives a speed class from a model identifier.
// Always returns one of SpeedFast, SpeedMedium or SpeedSlow.
func ClassifySpeed(modelID string) Speed {
	id := strings.ToLower(modelID)
	if s, ok := matchRules(familyRules, id); ok {
		return s
	}
	if s, ok := matchRules(fallbackRules, id); ok {
		return s
	}
	return SpeedMedium
}

func matchRules(rules []speedRule, id string) (Speed, bool) {
	for _, r := range rules {
		for _, tok := range r.tokens {
			if strings.Contains(id, tok) {
				return r.speed, true
			}
		}
	}
	return "", false
}

var sizeRe = regexp.MustCompile(`(?i)(\d+)b`)

// ClassifySize extracts the approximate parameter count in billions from the
// first "<digits>b" token of the identifier. Display-only; returns DefaultSize
// when there is no such token and math.MaxInt when the digits overflow int.
func ClassifySize(modelID string) int {
	m := sizeRe.FindStringSubmatch(modelID)
	if m == nil {
		return DefaultSize
	}
	n, err := strconv.Atoi(m[1])
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	if err != nil {
		return DefaultSize
	}
	return n
}

// Indicator is the visual badge for a speed class.
type Indicator struct {
	Emoji string
	Label string
	Color string // hex RGB
}

var indicators = map[Speed]Indicator{
	SpeedFast:   {Emoji: "⚡", Label: "Fast", Color: "#10b981"},
	SpeedMedium: {Emoji: "🚀", Label: "Medium", Color: "#f59e0b"},
	SpeedSlow:   {Emoji: "🐢", Label: "Slow", Color: "#ef4444"},
}

// SpeedIndicator returns the badge for s, falling back to the medium badge.
func SpeedIndicator(s Speed) Indicator {
	if ind, ok := indicators[s]; ok {
		return ind
	}
	return indicators[SpeedMedium]
}
