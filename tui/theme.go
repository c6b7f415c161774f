package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the style set for one color scheme. Two fixed palettes,
// picked by the dark-mode preference in settings.
type Theme struct {
	AppTitle    lipgloss.Style
	AppVersion  lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Card        lipgloss.Style
	PostTitle   lipgloss.Style
	PostMeta    lipgloss.Style
	PostLink    lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	FormLabel   lipgloss.Style
	FormValue   lipgloss.Style
	FormFocus   lipgloss.Style
	Cursor      lipgloss.Style
}

// DarkTheme is the default scheme.
func DarkTheme() Theme {
	return Theme{
		AppTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		AppVersion:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		TabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
		PostTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		PostMeta:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		PostLink:  lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Underline(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		FormLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		FormValue: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		FormFocus: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Cursor:    lipgloss.NewStyle().Reverse(true),
	}
}

// LightTheme mirrors DarkTheme for light terminals.
func LightTheme() Theme {
	return Theme{
		AppTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
		AppVersion:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		TabActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("232")),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("250")).
			Padding(0, 1),
		PostTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("233")),
		PostMeta:  lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		PostLink:  lipgloss.NewStyle().Foreground(lipgloss.Color("26")).Underline(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("124")),
		FormLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		FormValue: lipgloss.NewStyle().Foreground(lipgloss.Color("232")),
		FormFocus: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Cursor:    lipgloss.NewStyle().Reverse(true),
	}
}

func themeFor(darkMode bool) Theme {
	if darkMode {
		return DarkTheme()
	}
	return LightTheme()
}
