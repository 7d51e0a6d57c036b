// ABOUTME: Fuzzy "did you mean" suggestions for model IDs missing from the listing
// ABOUTME: Thin adapter over sahilm/fuzzy using the listing as a fuzzy.Source

package catalog

import "github.com/sahilm/fuzzy"

// modelSource exposes model IDs to fuzzy.FindFrom without copying them.
type modelSource []Model

func (s modelSource) String(i int) string { return s[i].ID }
func (s modelSource) Len() int            { return len(s) }

// Contains reports whether id is present in models (exact match).
func Contains(models []Model, id string) bool {
	for _, m := range models {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Suggest returns up to limit model IDs that fuzzy-match id, best first.
func Suggest(models []Model, id string, limit int) []string {
	if id == "" || limit <= 0 {
		return nil
	}
	matches := fuzzy.FindFrom(id, modelSource(models))
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
