// ABOUTME: Maps the locale, sort, and speed_filter settings onto the initial catalog query
// ABOUTME: Unknown sort or filter names are configuration errors; bad locales fall back to English

package config

import (
	"fmt"

	"golang.org/x/text/language"

	pilog "github.com/mauromedda/nimdeck/internal/log"
	"github.com/mauromedda/nimdeck/pkg/catalog"
)

// Query returns the catalog query the settings start with.
func (s *Settings) Query() (catalog.Query, error) {
	sort, err := catalog.ParseSortKey(s.Sort)
	if err != nil {
		return catalog.Query{}, fmt.Errorf("sort setting: %w", err)
	}
	filter, err := catalog.ParseSpeedFilter(s.SpeedFilter)
	if err != nil {
		return catalog.Query{}, fmt.Errorf("speed_filter setting: %w", err)
	}
	return catalog.Query{Sort: sort, Filter: filter, Locale: s.Tag()}, nil
}

// Tag parses the locale setting. Malformed locales yield English.
func (s *Settings) Tag() language.Tag {
	if s.Locale == "" {
		return language.English
	}
	tag, err := language.Parse(s.Locale)
	if err != nil {
		pilog.Warn("config: locale %q: %v; using en", s.Locale, err)
		return language.English
	}
	return tag
}
