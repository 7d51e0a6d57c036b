// ABOUTME: Model and ActiveModel types as served by the backend's model endpoints
// ABOUTME: Wire-compatible JSON tags; settings are opaque and rendered as-is

package catalog

import (
	"fmt"
	"sort"
)

// Model is one entry of the backend's model listing.
type Model struct {
	ID      string `json:"id"`
	OwnedBy string `json:"owned_by,omitempty"`
}

// ActiveModel is the model the backend currently routes requests to.
type ActiveModel struct {
	Model
	Settings map[string]any `json:"settings,omitempty"`
}

// SettingLines renders settings as "key: value" lines sorted by key.
// Returns nil when there are no settings.
func (a *ActiveModel) SettingLines() []string {
	if a == nil || len(a.Settings) == 0 {
		return nil
	}
	keys := make([]string, 0, len(a.Settings))
	for k := range a.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("%s: %v", k, a.Settings[k])
	}
	return lines
}
