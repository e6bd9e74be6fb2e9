// Package tui implements the notification host surface: a Bubble Tea
// program that projects the lifecycle engine's tracked set as a toast
// stack and offers manual dismissal.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/core/styles"
	"github.com/colonyops/beacon/internal/notifier"
)

type keyMap struct {
	Error   key.Binding
	Warning key.Binding
	Success key.Binding
	Info    key.Binding
	Sticky  key.Binding
	Dismiss key.Binding
	Clear   key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Error:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "error toast")),
		Warning: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warning toast")),
		Success: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "success toast")),
		Info:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info toast")),
		Sticky:  key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sticky toast")),
		Dismiss: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss newest")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear all")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Error, k.Warning, k.Success, k.Info, k.Sticky, k.Dismiss, k.Clear, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Error, k.Warning, k.Success, k.Info},
		{k.Sticky, k.Dismiss, k.Clear, k.Quit},
	}
}

// ThemeChangedMsg asks the surface to switch to a new palette. Style
// globals are only written from the update loop, never from watcher or
// timer goroutines, so renders never race a theme change.
type ThemeChangedMsg struct {
	Palette styles.Palette
}

// Deps are the collaborators the host surface projects.
type Deps struct {
	Manager *notifier.Manager
	Buffer  *NotificationBuffer
}

// Model is the demo host surface. It holds the handles it created so the
// dismiss key can retire toasts newest-first.
type Model struct {
	manager *notifier.Manager
	buffer  *NotificationBuffer
	view    *ToastView
	keys    keyMap
	help    help.Model

	handles []notifier.Handle
	width   int
	height  int
}

// New constructs the host surface model.
func New(deps Deps, maxVisible int) Model {
	return Model{
		manager: deps.Manager,
		buffer:  deps.Buffer,
		view:    NewToastView(maxVisible),
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// Init starts listening for lifecycle changes.
func (m Model) Init() tea.Cmd {
	return m.buffer.WaitForSignal()
}

// Update handles key presses and repaint signals.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ThemeChangedMsg:
		styles.SetTheme(msg.Palette)
		return m, nil

	case drainNotificationsMsg:
		// The manager snapshot is the source of truth; draining just
		// acknowledges the repaint signal.
		m.buffer.Drain()
		return m, m.buffer.WaitForSignal()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Error):
		m.track(m.manager.Errorf("upload failed: connection reset"))
	case key.Matches(msg, m.keys.Warning):
		m.track(m.manager.Warnf("disk usage above 90%%"))
	case key.Matches(msg, m.keys.Success):
		m.track(m.manager.Successf("changes saved"))
	case key.Matches(msg, m.keys.Info):
		m.track(m.manager.Infof("sync scheduled"))
	case key.Matches(msg, m.keys.Sticky):
		m.track(m.manager.NotifyFor("pinned until dismissed", notify.KindSuccess, 0))

	case key.Matches(msg, m.keys.Dismiss):
		if n := len(m.handles); n > 0 {
			m.manager.Dismiss(m.handles[n-1])
			m.handles = m.handles[:n-1]
		}

	case key.Matches(msg, m.keys.Clear):
		m.handles = m.handles[:0]
		m.manager.ClearAll()
	}

	return m, nil
}

// track remembers a handle so the dismiss key can retire it later. Inert
// handles from dropped notifications are not tracked.
func (m *Model) track(h notifier.Handle) {
	if h.ID() == "" {
		return
	}
	m.handles = append(m.handles, h)
}

// View renders the header, the key help, and the toast stack anchored to
// the lower-right corner.
func (m Model) View() string {
	header := styles.TitleStyle.Render("beacon") + " " +
		styles.MutedStyle.Render("notification demo")
	body := lipgloss.JoinVertical(lipgloss.Left, header, m.help.View(m.keys))

	toasts := m.view.View(m.manager.Snapshot())
	if m.width == 0 || m.height == 0 {
		if toasts == "" {
			return body
		}
		return lipgloss.JoinVertical(lipgloss.Left, body, toasts)
	}

	remaining := m.height - lipgloss.Height(body)
	if remaining < lipgloss.Height(toasts) {
		remaining = lipgloss.Height(toasts)
	}

	stack := lipgloss.Place(m.width, remaining, lipgloss.Right, lipgloss.Bottom, toasts)
	return lipgloss.JoinVertical(lipgloss.Left, body, stack)
}
