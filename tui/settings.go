package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/djh816/Rustle/config"
)

// formAction is what a keypress did to the settings form.
type formAction int

const (
	formNone formAction = iota
	formSave
	formCancel
)

// formField is one editable single-line input. The editor is
// hand-rolled: a rune slice and a cursor are all a credentials field
// needs.
type formField struct {
	label  string
	value  []rune
	cursor int
	masked bool
}

// settingsForm is the credentials and theme editor. Focus 0 is the
// theme toggle; the remaining rows are the four credential fields.
type settingsForm struct {
	theme    Theme
	darkMode bool
	fields   []formField
	focus    int
	welcome  bool
	errMsg   string
}

func newSettingsForm(theme Theme, s config.Settings, welcome bool) settingsForm {
	return settingsForm{
		theme:    theme,
		darkMode: s.DarkMode,
		fields: []formField{
			{label: "Client ID", value: []rune(s.ClientID), cursor: len(s.ClientID)},
			{label: "Client Secret", value: []rune(s.ClientSecret), cursor: len(s.ClientSecret), masked: true},
			{label: "Username", value: []rune(s.Username), cursor: len(s.Username)},
			{label: "Password", value: []rune(s.Password), cursor: len(s.Password), masked: true},
		},
		welcome: welcome,
	}
}

// Settings assembles the record the form currently shows.
func (f settingsForm) Settings() config.Settings {
	return config.Settings{
		ClientID:     string(f.fields[0].value),
		ClientSecret: string(f.fields[1].value),
		Username:     string(f.fields[2].value),
		Password:     string(f.fields[3].value),
		DarkMode:     f.darkMode,
	}
}

// Update processes one key message. Enter saves, escape cancels,
// tab/arrows move focus, anything else edits the focused field.
func (f *settingsForm) Update(msg tea.KeyMsg) formAction {
	switch msg.Type {
	case tea.KeyEnter:
		return formSave
	case tea.KeyEsc:
		return formCancel
	case tea.KeyTab, tea.KeyDown:
		f.focus = (f.focus + 1) % (len(f.fields) + 1)
		return formNone
	case tea.KeyShiftTab, tea.KeyUp:
		f.focus--
		if f.focus < 0 {
			f.focus = len(f.fields)
		}
		return formNone
	}

	if f.focus == 0 {
		// Theme toggle row: left/right and space flip the scheme.
		switch msg.Type {
		case tea.KeyLeft, tea.KeyRight, tea.KeySpace:
			f.darkMode = !f.darkMode
		}
		return formNone
	}

	field := &f.fields[f.focus-1]
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			field.insert(r)
		}
	case tea.KeySpace:
		field.insert(' ')
	case tea.KeyBackspace:
		if field.cursor > 0 {
			field.value = append(field.value[:field.cursor-1], field.value[field.cursor:]...)
			field.cursor--
		}
	case tea.KeyDelete:
		if field.cursor < len(field.value) {
			field.value = append(field.value[:field.cursor], field.value[field.cursor+1:]...)
		}
	case tea.KeyLeft:
		if field.cursor > 0 {
			field.cursor--
		}
	case tea.KeyRight:
		if field.cursor < len(field.value) {
			field.cursor++
		}
	case tea.KeyHome, tea.KeyCtrlA:
		field.cursor = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		field.cursor = len(field.value)
	}
	return formNone
}

func (field *formField) insert(r rune) {
	value := make([]rune, len(field.value)+1)
	copy(value, field.value[:field.cursor])
	value[field.cursor] = r
	copy(value[field.cursor+1:], field.value[field.cursor:])
	field.value = value
	field.cursor++
}

// View renders the form.
func (f settingsForm) View(width int) string {
	var b strings.Builder

	if f.welcome {
		b.WriteString(f.theme.PostTitle.Render("Welcome to Rustle!"))
		b.WriteString("\n")
		b.WriteString(f.theme.Status.Render("To get started, enter your Reddit API credentials."))
		b.WriteString("\n\n")
	}

	themeName := "Light"
	if f.darkMode {
		themeName = "Dark"
	}
	b.WriteString(f.renderRow(0, "Theme", themeName, false))

	for i, field := range f.fields {
		shown := string(field.value)
		if field.masked {
			shown = strings.Repeat("*", len(field.value))
		}
		if f.focus == i+1 {
			shown = f.renderWithCursor(shown, field.cursor)
		}
		b.WriteString(f.renderRow(i+1, field.label, shown, f.focus == i+1))
	}

	if f.welcome {
		b.WriteString("\n")
		b.WriteString(f.theme.Help.Render("Create a 'script' app at https://www.reddit.com/prefs/apps"))
		b.WriteString("\n")
		b.WriteString(f.theme.Help.Render("to obtain a client ID and secret."))
		b.WriteString("\n")
	}

	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(f.theme.Error.Render(f.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(f.theme.Help.Render("enter save  esc cancel  tab next field"))

	return lipgloss.NewStyle().MaxWidth(width).Render(b.String())
}

func (f settingsForm) renderRow(index int, label, value string, editing bool) string {
	labelStyle := f.theme.FormLabel
	if f.focus == index {
		labelStyle = f.theme.FormFocus
	}
	rendered := labelStyle.Width(14).Render(label) + " "
	if editing {
		rendered += value
	} else {
		rendered += f.theme.FormValue.Render(value)
	}
	return rendered + "\n"
}

// renderWithCursor styles the character under the cursor in reverse
// video, appending a cursor cell when it sits past the end.
func (f settingsForm) renderWithCursor(value string, cursor int) string {
	runes := []rune(value)
	if cursor >= len(runes) {
		return f.theme.FormValue.Render(value) + f.theme.Cursor.Render(" ")
	}
	before := f.theme.FormValue.Render(string(runes[:cursor]))
	at := f.theme.Cursor.Render(string(runes[cursor : cursor+1]))
	after := f.theme.FormValue.Render(string(runes[cursor+1:]))
	return before + at + after
}
