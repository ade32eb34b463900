// Package styles defines color themes for the timeline TUI.
package styles

// Theme is a named set of colors used across the TUI chrome and views.
type Theme struct {
	Name        string
	BorderStyle string

	Base    BaseColors
	Chrome  ChromeColors
	Borders BorderColors
	Status  StatusColors
}

type BaseColors struct {
	Background string
	Foreground string
	Muted      string
	Accent     string
	Error      string
}

type ChromeColors struct {
	Header       string
	Footer       string
	Breadcrumb   string
	SelectedItem string
}

type BorderColors struct {
	ActivePane   string
	InactivePane string
}

type StatusColors struct {
	Warning string
	Info    string
}

// DarkTheme is the baseline dark palette.
var DarkTheme = Theme{
	Name:        "dark",
	BorderStyle: "rounded",
	Base: BaseColors{
		Background: "234",
		Foreground: "252",
		Muted:      "245",
		Accent:     "75",
		Error:      "203",
	},
	Chrome: ChromeColors{
		Header:       "111",
		Footer:       "110",
		Breadcrumb:   "109",
		SelectedItem: "75",
	},
	Borders: BorderColors{
		ActivePane:   "75",
		InactivePane: "240",
	},
	Status: StatusColors{
		Warning: "220",
		Info:    "110",
	},
}

// LightTheme is a high-visibility palette for light terminals.
var LightTheme = Theme{
	Name:        "light",
	BorderStyle: "rounded",
	Base: BaseColors{
		Background: "255",
		Foreground: "235",
		Muted:      "244",
		Accent:     "26",
		Error:      "160",
	},
	Chrome: ChromeColors{
		Header:       "153",
		Footer:       "152",
		Breadcrumb:   "146",
		SelectedItem: "26",
	},
	Borders: BorderColors{
		ActivePane:   "26",
		InactivePane: "250",
	},
	Status: StatusColors{
		Warning: "130",
		Info:    "24",
	},
}

// Themes maps theme names to palettes.
var Themes = map[string]Theme{
	DarkTheme.Name:  DarkTheme,
	LightTheme.Name: LightTheme,
}
