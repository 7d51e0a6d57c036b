// ABOUTME: ChatPaneModel shows the chat transcript in a scrolling viewport with an input line
// ABOUTME: Assistant replies render as markdown; loading entries show a spinner

package btea

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/nimdeck/internal/chat"
)

const chatPlaceholder = "Type a message and press enter"

// ChatPaneModel renders the transcript and owns the chat input.
type ChatPaneModel struct {
	input   textinput.Model
	view    viewport.Model
	spin    spinner.Model
	md      *MarkdownRenderer
	entries []chat.Entry
	focused bool
	width   int
}

// NewChatPaneModel creates a chat pane with an empty transcript.
func NewChatPaneModel() ChatPaneModel {
	in := textinput.New()
	in.Placeholder = chatPlaceholder
	in.Prompt = "› "
	in.CharLimit = 4000

	return ChatPaneModel{
		input: in,
		view:  viewport.New(80, 8),
		spin:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		md:    NewMarkdownRenderer(),
		width: 80,
	}
}

// Init starts the spinner.
func (m ChatPaneModel) Init() tea.Cmd {
	return m.spin.Tick
}

// Update routes spinner ticks, scroll keys, and input keys.
func (m ChatPaneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.hasLoading() {
			m.refresh()
		}
		return m, cmd

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch msg.String() {
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}

	if !m.focused {
		return m, nil
	}
	// cursor blink
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Focus gives the chat input keyboard focus.
func (m ChatPaneModel) Focus() (ChatPaneModel, tea.Cmd) {
	m.focused = true
	return m, m.input.Focus()
}

// Blur removes keyboard focus.
func (m ChatPaneModel) Blur() ChatPaneModel {
	m.focused = false
	m.input.Blur()
	return m
}

// Value returns the current input text.
func (m ChatPaneModel) Value() string {
	return m.input.Value()
}

// ResetInput clears the input line.
func (m ChatPaneModel) ResetInput() ChatPaneModel {
	m.input.Reset()
	return m
}

// SetEntries replaces the transcript and scrolls to the newest entry.
func (m ChatPaneModel) SetEntries(entries []chat.Entry) ChatPaneModel {
	m.entries = entries
	m.refresh()
	m.view.GotoBottom()
	return m
}

// SetSize sets the pane width and transcript height.
func (m ChatPaneModel) SetSize(w, h int) ChatPaneModel {
	m.width = max(w, 20)
	m.view.Width = m.width
	m.view.Height = max(h, 1)
	m.input.Width = max(m.width-4, 10)
	m.refresh()
	return m
}

// View renders the transcript above the input line.
func (m ChatPaneModel) View() string {
	return m.view.View() + "\n" + m.input.View()
}

func (m ChatPaneModel) hasLoading() bool {
	for _, e := range m.entries {
		if e.Role == chat.RoleLoading {
			return true
		}
	}
	return false
}

// refresh re-renders the transcript into the viewport. m.view is a value,
// so callers must be working on the model they return.
func (m *ChatPaneModel) refresh() {
	m.view.SetContent(m.renderTranscript())
}

func (m ChatPaneModel) renderTranscript() string {
	s := Styles()
	if len(m.entries) == 0 {
		return s.Muted.Render("No messages yet.")
	}

	blocks := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		switch e.Role {
		case chat.RoleUser:
			blocks = append(blocks, s.User.Render("You: ")+e.Text)
		case chat.RoleAssistant:
			blocks = append(blocks, s.Assistant.Render("Assistant:")+"\n"+m.md.Render(e.Text, m.width-2))
		case chat.RoleError:
			blocks = append(blocks, s.Error.Render("Error: "+e.Text))
		case chat.RoleSystem:
			blocks = append(blocks, s.System.Render(e.Text))
		case chat.RoleLoading:
			blocks = append(blocks, m.spin.View()+" "+s.Muted.Render(e.Text))
		}
	}
	return strings.Join(blocks, "\n\n")
}
