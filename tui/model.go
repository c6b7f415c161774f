package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/djh816/Rustle/config"
	"github.com/djh816/Rustle/feed"
)

const (
	appName = "Rustle"

	// chromeLines is the vertical space outside the feed viewport:
	// header, tab bar, status bar.
	chromeLines = 3

	// unitsPerLine converts terminal rows to the layout units the
	// controller's scroll threshold is expressed in. Rows are coarse
	// compared to pixels; one row stands in for roughly one line of
	// rendered post card.
	unitsPerLine = 25.0
)

// stateMsg tells the model the controller published new state.
type stateMsg struct{}

type mode int

const (
	modeFeed mode = iota
	modeSettings
)

// keyMap is the set of bindings handled by the model itself; scrolling
// is delegated to the viewport's own keymap.
type keyMap struct {
	NextFeed key.Binding
	PrevFeed key.Binding
	Refresh  key.Binding
	Settings key.Binding
	Dismiss  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextFeed: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next feed")),
		PrevFeed: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous feed")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Dismiss:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss error")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the bubbletea model for the feed browser. It never blocks
// on network I/O: commands go to the controller, state comes back via
// Snapshot, and a background command waits on the controller's wake
// channel to know when to repaint.
type Model struct {
	ctrl  *feed.Controller
	theme Theme
	keys  keyMap

	mode mode
	form settingsForm

	vp     viewport.Model
	snap   feed.Snapshot
	width  int
	height int
	ready  bool
}

// NewModel builds the model. When no credentials are stored yet the
// settings form is shown first.
func NewModel(ctrl *feed.Controller) Model {
	settings := ctrl.Settings()
	theme := themeFor(settings.DarkMode)

	m := Model{
		ctrl:  ctrl,
		theme: theme,
		keys:  defaultKeyMap(),
		snap:  ctrl.Snapshot(),
	}
	if !settings.HasCredentials() {
		m.mode = modeSettings
		m.form = newSettingsForm(theme, settings, true)
	}
	return m
}

// Init starts the wake-channel listener.
func (m Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

// waitForUpdate blocks on the controller's wake channel and delivers a
// stateMsg when it fires. Re-issued after every delivery.
func (m Model) waitForUpdate() tea.Cmd {
	updates := m.ctrl.Updates()
	return func() tea.Msg {
		<-updates
		return stateMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-chromeLines)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - chromeLines
		}
		m.refreshContent()
		return m, nil

	case stateMsg:
		previous := m.snap.Key
		m.snap = m.ctrl.Snapshot()
		if m.snap.Key != previous {
			m.vp.GotoTop()
		}
		m.refreshContent()
		return m, m.waitForUpdate()

	case tea.KeyMsg:
		if m.mode == modeSettings {
			return m.updateSettings(msg)
		}
		return m.updateFeed(msg)
	}

	return m, nil
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.form.Update(msg) {
	case formSave:
		settings := m.form.Settings()
		if err := config.SaveSettings(settings); err != nil {
			m.form.errMsg = "Failed to save settings: " + err.Error()
			return m, nil
		}
		m.theme = themeFor(settings.DarkMode)
		m.mode = modeFeed
		m.ctrl.ApplySettings(settings)
		m.refreshContent()
	case formCancel:
		// Discard edits. Without stored credentials there is nothing
		// to browse, so the form stays up.
		if m.ctrl.Settings().HasCredentials() {
			m.mode = modeFeed
		}
	}
	return m, nil
}

func (m Model) updateFeed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		m.ctrl.Refresh()
		return m, nil

	case key.Matches(msg, m.keys.Settings):
		m.mode = modeSettings
		m.form = newSettingsForm(m.theme, m.ctrl.Settings(), false)
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.ctrl.DismissError()
		return m, nil

	case key.Matches(msg, m.keys.NextFeed):
		m.switchFeed(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevFeed):
		m.switchFeed(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	m.triggerNearBottom()
	return m, cmd
}

// switchFeed moves the current feed left or right in the tab order.
func (m *Model) switchFeed(delta int) {
	keys := m.ctrl.FeedKeys()
	current := 0
	for i, k := range keys {
		if k == m.snap.Key {
			current = i
			break
		}
	}
	next := current + delta
	if next < 0 || next >= len(keys) || next == current {
		return
	}
	m.ctrl.SwitchFeed(keys[next])
}

// triggerNearBottom converts the viewport's remaining lines to layout
// units and lets the controller decide whether to start a load.
func (m *Model) triggerNearBottom() {
	if !m.ready || len(m.snap.Posts) == 0 {
		return
	}
	below := m.vp.TotalLineCount() - (m.vp.YOffset + m.vp.Height)
	if below < 0 {
		below = 0
	}
	m.ctrl.MaybeLoadMore(float64(below) * unitsPerLine)
}

// refreshContent rebuilds the viewport from the latest snapshot.
func (m *Model) refreshContent() {
	if !m.ready {
		return
	}

	var content string
	switch {
	case m.snap.Phase == feed.FetchingInitial:
		content = m.centered("Loading posts...")
	case len(m.snap.Posts) == 0:
		content = m.centered("No posts found.")
	default:
		cards := make([]string, 0, len(m.snap.Posts)+1)
		for _, post := range m.snap.Posts {
			cards = append(cards, renderPost(m.theme, post, m.vp.Width))
		}
		if m.snap.Phase == feed.FetchingMore {
			cards = append(cards, m.theme.Status.Render("Loading more posts..."))
		}
		content = strings.Join(cards, "\n")
	}
	m.vp.SetContent(content)
}

func (m Model) centered(text string) string {
	return lipgloss.Place(m.vp.Width, m.vp.Height, lipgloss.Center, lipgloss.Center,
		m.theme.Status.Render(text))
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.theme.AppTitle.Render(appName) + " " + m.theme.AppVersion.Render(config.Version)

	if m.mode == modeSettings {
		return header + "\n\n" + m.form.View(m.width)
	}

	return header + "\n" + m.tabBar() + "\n" + m.vp.View() + "\n" + m.statusBar()
}

// tabBar renders the feed keys with the current one highlighted.
func (m Model) tabBar() string {
	var tabs []string
	for _, k := range m.ctrl.FeedKeys() {
		style := m.theme.TabInactive
		if k == m.snap.Key {
			style = m.theme.TabActive
		}
		tabs = append(tabs, style.Render(k.Label()))
	}
	bar := strings.Join(tabs, "  ")
	return lipgloss.NewStyle().MaxWidth(m.width).Render(bar)
}

// statusBar shows the current error when there is one, the help line
// otherwise.
func (m Model) statusBar() string {
	if m.snap.Err != "" {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(
			m.theme.Error.Render(m.snap.Err) + m.theme.Help.Render("  (x to dismiss)"))
	}
	help := "↑/↓ scroll  ←/→ switch feed  r refresh  s settings  q quit"
	return m.theme.Help.Render(help)
}
