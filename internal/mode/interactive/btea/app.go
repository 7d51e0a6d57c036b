// ABOUTME: Root AppModel wiring the model list, search box, and chat pane
// ABOUTME: Handles focus, key dispatch, backend commands, and transient notifications

package btea

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/nimdeck/internal/chat"
	pilog "github.com/mauromedda/nimdeck/internal/log"
	"github.com/mauromedda/nimdeck/pkg/api"
	"github.com/mauromedda/nimdeck/pkg/catalog"
	"github.com/mauromedda/nimdeck/pkg/tui/clipboard"
)

// NotificationTTL is how long a notification stays on screen.
const NotificationTTL = 3 * time.Second

// NoSettingsText is shown when the active model carries no settings.
const NoSettingsText = "No settings available"

// Focus identifies which pane receives keys.
type Focus int

const (
	FocusModels Focus = iota
	FocusSearch
	FocusChat
)

// String returns the human-readable label for the focus.
func (f Focus) String() string {
	switch f {
	case FocusModels:
		return "models"
	case FocusSearch:
		return "search"
	case FocusChat:
		return "chat"
	default:
		return "unknown"
	}
}

type notificationKind int

const (
	noteSuccess notificationKind = iota
	noteError
)

type notification struct {
	text string
	kind notificationKind
	seq  int
}

// AppModel is the root Bubble Tea model for the dashboard.
type AppModel struct {
	deps    AppDeps
	state   *catalog.State
	session *chat.Session

	list   ModelListModel
	search textinput.Model
	chat   ChatPaneModel

	focus     Focus
	switching string
	note      *notification
	noteSeq   int

	width, height int
}

// NewAppModel creates the dashboard. Backend calls start from Init.
func NewAppModel(deps AppDeps) AppModel {
	state := deps.State
	if state == nil {
		state = catalog.NewState()
	}
	if deps.Copy == nil {
		deps.Copy = clipboard.Write
	}
	opts := deps.Chat
	if opts.CurrentModel == nil {
		opts.CurrentModel = state.CurrentID
	}

	search := textinput.New()
	search.Placeholder = "Search by name or provider"
	search.Prompt = "/ "
	search.SetValue(state.Query().Search)

	return AppModel{
		deps:    deps,
		state:   state,
		session: chat.NewSession(opts),
		list:    NewModelListModel(),
		search:  search,
		chat:    NewChatPaneModel(),
		focus:   FocusModels,
	}
}

// Init fetches the current model and the listing concurrently.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		loadCurrentCmd(m.deps.Backend),
		loadModelsCmd(m.deps.Backend),
		m.chat.Init(),
	)
}

// Update dispatches messages to the focused pane and handles backend results.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m.layout(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case CurrentLoadedMsg:
		if msg.Err != nil {
			pilog.Debug("btea: load current model: %v", msg.Err)
			return m.notify(noteError, "Error loading current model: "+api.Message(msg.Err))
		}
		m.state.SetCurrent(msg.Model)
		return m.refreshList(), nil

	case ModelsLoadedMsg:
		if msg.Err != nil {
			pilog.Debug("btea: load models: %v", msg.Err)
			text := api.Message(msg.Err)
			m.list = m.list.SetLoadError(text)
			return m.notify(noteError, "Error loading models: "+text)
		}
		m.state.SetModels(msg.Models)
		m.list = m.list.SetLoadError("")
		return m.refreshList(), nil

	case SwitchDoneMsg:
		m.switching = ""
		m.list = m.list.SetSwitching("")
		if msg.Err != nil {
			return m.notify(noteError, "Error switching model: "+api.Message(msg.Err))
		}
		active := msg.Result.ActiveModel
		if active.ID == "" {
			active.ID = msg.ID
		}
		m.state.SetCurrent(&active)
		m = m.refreshList()
		text := msg.Result.Message
		if text == "" {
			text = "Switched to " + msg.ID
		}
		return m.notify(noteSuccess, text)

	case ChatReplyMsg:
		m.session.Complete(msg.Pending, msg.Response, msg.Err)
		m.chat = m.chat.SetEntries(m.session.Transcript())
		return m, nil

	case CopyDoneMsg:
		if msg.Err != nil {
			return m.notify(noteError, "Copy failed: "+msg.Err.Error())
		}
		return m.notify(noteSuccess, "Copied "+msg.ID)

	case notificationExpiredMsg:
		if m.note != nil && m.note.seq == msg.seq {
			m.note = nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	var updated tea.Model
	updated, cmd = m.chat.Update(msg)
	m.chat = updated.(ChatPaneModel)
	if m.focus == FocusSearch {
		var scmd tea.Cmd
		m.search, scmd = m.search.Update(msg)
		cmd = tea.Batch(cmd, scmd)
	}
	return m, cmd
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m.setFocus((m.focus + 1) % 3)
	case "shift+tab":
		return m.setFocus((m.focus + 2) % 3)
	case "ctrl+l":
		m.session.Clear()
		m.chat = m.chat.SetEntries(m.session.Transcript())
		return m, nil
	}

	switch m.focus {
	case FocusSearch:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			return m.setFocus(FocusModels)
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.state.SetSearch(m.search.Value())
		return m.refreshList(), cmd

	case FocusChat:
		switch msg.Type {
		case tea.KeyEsc:
			return m.setFocus(FocusModels)
		case tea.KeyEnter:
			return m.sendChat()
		}
		updated, cmd := m.chat.Update(msg)
		m.chat = updated.(ChatPaneModel)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		return m.setFocus(FocusSearch)
	case "s":
		m.state.SetSort(m.state.Query().Sort.Next())
		return m.refreshList(), nil
	case "f":
		m.state.SetFilter(m.state.Query().Filter.Next())
		return m.refreshList(), nil
	case "r":
		return m, tea.Batch(loadCurrentCmd(m.deps.Backend), loadModelsCmd(m.deps.Backend))
	case "enter":
		return m.switchHighlighted()
	case "y":
		id := m.list.Highlighted()
		if id == "" {
			return m, nil
		}
		return m, copyCmd(m.deps.Copy, id)
	}

	updated, cmd := m.list.Update(msg)
	m.list = updated.(ModelListModel)
	return m, cmd
}

func (m AppModel) setFocus(f Focus) (tea.Model, tea.Cmd) {
	m.focus = f
	m.search.Blur()
	m.chat = m.chat.Blur()

	var cmd tea.Cmd
	switch f {
	case FocusSearch:
		cmd = m.search.Focus()
	case FocusChat:
		m.chat, cmd = m.chat.Focus()
	}
	return m, cmd
}

// switchHighlighted switches to the model under the cursor. The current
// model and any request while a switch is in flight are ignored.
func (m AppModel) switchHighlighted() (tea.Model, tea.Cmd) {
	it, ok := m.list.HighlightedItem()
	if !ok || it.Selected || m.switching != "" {
		return m, nil
	}
	m.switching = it.ID
	m.list = m.list.SetSwitching(it.ID)
	return m, switchCmd(m.deps.Backend, it.ID)
}

func (m AppModel) sendChat() (tea.Model, tea.Cmd) {
	p, ok := m.session.Begin(m.chat.Value())
	if !ok {
		return m, nil
	}
	m.chat = m.chat.ResetInput().SetEntries(m.session.Transcript())
	return m, sendCmd(m.deps.Backend, p)
}

func (m AppModel) refreshList() AppModel {
	m.list = m.list.SetItems(m.state.DisplayList())
	return m
}

func (m AppModel) notify(kind notificationKind, text string) (tea.Model, tea.Cmd) {
	m.noteSeq++
	seq := m.noteSeq
	m.note = &notification{text: text, kind: kind, seq: seq}
	return m, tea.Tick(NotificationTTL, func(time.Time) tea.Msg {
		return notificationExpiredMsg{seq: seq}
	})
}

// layout splits the terminal between the list and the chat pane.
func (m AppModel) layout() AppModel {
	inner := max(m.width-4, 20)
	m.search.Width = max(inner-30, 10)

	free := max(m.height-12, 6)
	listRows := max(free/2, 3)
	chatRows := max(free-listRows, 3)

	m.list = m.list.SetSize(inner, listRows)
	m.chat = m.chat.SetSize(inner, chatRows)
	return m
}

// View renders header, controls, list, chat, and the notification line.
func (m AppModel) View() string {
	s := Styles()

	pane := func(f Focus, body string) string {
		st := s.BlurredPane
		if m.focus == f {
			st = s.FocusedPane
		}
		if m.width > 0 {
			st = st.Width(max(m.width-2, 10))
		}
		return st.Render(body)
	}

	q := m.state.Query()
	controls := fmt.Sprintf("%s   %s %s   %s %s",
		m.search.View(),
		s.Muted.Render("Sort:"), s.Bold.Render(string(q.Sort)),
		s.Muted.Render("Filter:"), s.Bold.Render(string(q.Filter)),
	)

	parts := []string{
		m.viewHeader(),
		pane(FocusSearch, controls),
		pane(FocusModels, m.list.View()),
		pane(FocusChat, m.chat.View()),
	}
	if m.note != nil {
		st := s.Success
		if m.note.kind == noteError {
			st = s.Error
		}
		parts = append(parts, st.Render(m.note.text))
	}
	parts = append(parts, s.Muted.Render("tab focus · / search · s sort · f filter · enter switch/send · y copy id · ctrl+l clear · r reload · ctrl+c quit"))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m AppModel) viewHeader() string {
	s := Styles()

	title := s.Title.Render("nimdeck")
	if m.deps.Version != "" {
		title += " " + s.Muted.Render(m.deps.Version)
	}
	if m.deps.BaseURL != "" {
		title += " " + s.Muted.Render(m.deps.BaseURL)
	}

	cur := m.state.Current()
	if cur == nil {
		return title + "\n" + s.Muted.Render("Current model: unknown")
	}

	line := s.Muted.Render("Current model: ") + s.Bold.Render(cur.ID)
	if cur.OwnedBy != "" {
		line += s.Muted.Render(" by " + cur.OwnedBy)
	}
	settings := cur.SettingLines()
	if len(settings) == 0 {
		return title + "\n" + line + "\n" + s.Muted.Render(NoSettingsText)
	}
	return title + "\n" + line + "\n" + s.Muted.Render(strings.Join(settings, " · "))
}

func loadCurrentCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		cur, err := b.CurrentModel(context.Background())
		return CurrentLoadedMsg{Model: cur, Err: err}
	}
}

func loadModelsCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		models, err := b.ListModels(context.Background())
		return ModelsLoadedMsg{Models: models, Err: err}
	}
}

func switchCmd(b Backend, id string) tea.Cmd {
	return func() tea.Msg {
		res, err := b.SwitchModel(context.Background(), id)
		return SwitchDoneMsg{ID: id, Result: res, Err: err}
	}
}

func copyCmd(w clipboard.Writer, id string) tea.Cmd {
	return func() tea.Msg {
		return CopyDoneMsg{ID: id, Err: w(id)}
	}
}

func sendCmd(b Backend, p chat.Pending) tea.Cmd {
	return func() tea.Msg {
		resp, err := b.SendMessage(context.Background(), p.Request)
		return ChatReplyMsg{Pending: p, Response: resp, Err: err}
	}
}
