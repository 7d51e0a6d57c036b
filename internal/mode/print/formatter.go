// ABOUTME: Text and JSON formatters for headless output
// ABOUTME: Text tables pad by display width so emoji badges line up

package print

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mauromedda/nimdeck/pkg/api"
	"github.com/mauromedda/nimdeck/pkg/catalog"
	"github.com/mauromedda/nimdeck/pkg/tui/width"
)

// formatter abstracts output formatting.
type formatter interface {
	models(items []catalog.DisplayItem) error
	current(m *catalog.ActiveModel) error
	switched(res *api.SwitchResult) error
	reply(text string) error
	status(st StatusReport) error
}

func newFormatter(format string, w io.Writer) formatter {
	if format == "json" {
		return &jsonFormatter{w: w}
	}
	return &textFormatter{w: w}
}

type textFormatter struct{ w io.Writer }

func (f *textFormatter) models(items []catalog.DisplayItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(f.w, "No models found")
		return err
	}

	idWidth := len("MODEL")
	for _, it := range items {
		idWidth = max(idWidth, width.VisibleWidth(it.ID))
	}

	var b strings.Builder
	b.WriteString("  " + width.PadRight("SPEED", 10) + width.PadRight("SIZE", 6) + width.PadRight("MODEL", idWidth+2) + "OWNER\n")
	for _, it := range items {
		mark := "  "
		if it.Selected {
			mark = "* "
		}
		ind := catalog.SpeedIndicator(it.Speed)
		row := mark +
			width.PadRight(ind.Emoji+" "+ind.Label, 10) +
			width.PadRight(fmt.Sprintf("%dB", it.Size), 6) +
			width.PadRight(it.ID, idWidth+2) +
			it.OwnedBy
		b.WriteString(strings.TrimRight(row, " ") + "\n")
	}
	_, err := io.WriteString(f.w, b.String())
	return err
}

func (f *textFormatter) current(m *catalog.ActiveModel) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", m.ID)
	if m.OwnedBy != "" {
		fmt.Fprintf(&b, "  owner: %s\n", m.OwnedBy)
	}
	ind := catalog.SpeedIndicator(catalog.ClassifySpeed(m.ID))
	fmt.Fprintf(&b, "  speed: %s %s, size: %dB\n", ind.Emoji, ind.Label, catalog.ClassifySize(m.ID))

	settings := m.SettingLines()
	if len(settings) == 0 {
		b.WriteString("  No settings available\n")
	}
	for _, line := range settings {
		fmt.Fprintf(&b, "  %s\n", line)
	}
	_, err := io.WriteString(f.w, b.String())
	return err
}

func (f *textFormatter) switched(res *api.SwitchResult) error {
	msg := res.Message
	if msg == "" {
		msg = "Switched to " + res.ID
	}
	if res.PreviousModel != "" && res.PreviousModel != res.ID {
		msg += fmt.Sprintf(" (was %s)", res.PreviousModel)
	}
	_, err := fmt.Fprintln(f.w, msg)
	return err
}

func (f *textFormatter) reply(text string) error {
	_, err := fmt.Fprintln(f.w, text)
	return err
}

func (f *textFormatter) status(st StatusReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "backend: %s\n", st.BaseURL)
	if st.Current != nil {
		fmt.Fprintf(&b, "current: %s\n", st.Current.ID)
	} else {
		b.WriteString("current: unknown\n")
	}
	fmt.Fprintf(&b, "models:  %d", st.Total)
	for _, s := range []catalog.Speed{catalog.SpeedFast, catalog.SpeedMedium, catalog.SpeedSlow} {
		ind := catalog.SpeedIndicator(s)
		fmt.Fprintf(&b, "  %s %d", ind.Emoji, st.BySpeed[s])
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "latency: %dms (%s)\n", st.LatencyMS, st.Latency)
	for _, e := range st.Errors {
		fmt.Fprintf(&b, "error: %s\n", e)
	}
	_, err := io.WriteString(f.w, b.String())
	return err
}

// jsonFormatter writes one JSON document per command.
type jsonFormatter struct{ w io.Writer }

type jsonModel struct {
	ID      string        `json:"id"`
	OwnedBy string        `json:"owned_by,omitempty"`
	Speed   catalog.Speed `json:"speed"`
	Size    int           `json:"size_b"`
	Current bool          `json:"current"`
}

func (f *jsonFormatter) encode(v any) error {
	enc := json.NewEncoder(f.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (f *jsonFormatter) models(items []catalog.DisplayItem) error {
	out := make([]jsonModel, len(items))
	for i, it := range items {
		out[i] = jsonModel{ID: it.ID, OwnedBy: it.OwnedBy, Speed: it.Speed, Size: it.Size, Current: it.Selected}
	}
	return f.encode(out)
}

func (f *jsonFormatter) current(m *catalog.ActiveModel) error { return f.encode(m) }

func (f *jsonFormatter) switched(res *api.SwitchResult) error { return f.encode(res) }

func (f *jsonFormatter) reply(text string) error {
	return f.encode(map[string]string{"text": text})
}

func (f *jsonFormatter) status(st StatusReport) error { return f.encode(st) }
