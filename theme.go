package question

import "github.com/fatih/color"

// Theme defines how questions, hints, answers and errors are styled.
type Theme struct {
	Name      string
	Marker    *color.Color // Leading question glyph
	Message   *color.Color // Question text
	Default   *color.Color // "(default)" hint
	Answer    *color.Color // Accepted answer
	Error     *color.Color // ">>" error marker
	Highlight *color.Color // Selected choice

	MarkerSymbol    string
	PointerSymbol   string
	CheckedSymbol   string
	UncheckedSymbol string
}

// ThemeDefault is the default theme: green marker, bold message, dim default and cyan answer
var ThemeDefault = &Theme{
	Name:            "default",
	Marker:          color.New(color.FgGreen),
	Message:         color.New(color.Bold),
	Default:         color.New(color.Faint),
	Answer:          color.New(color.FgCyan),
	Error:           color.New(color.FgRed),
	Highlight:       color.New(color.FgCyan),
	MarkerSymbol:    "?",
	PointerSymbol:   "❯",
	CheckedSymbol:   "◉",
	UncheckedSymbol: "◯",
}

// ThemeAccessible is a colorblind-safe theme with high contrast
var ThemeAccessible = &Theme{
	Name:            "Accessible",
	Marker:          color.New(color.FgBlue, color.Bold),
	Message:         color.New(color.Bold),
	Default:         color.New(color.FgWhite),
	Answer:          color.New(color.FgYellow, color.Bold),
	Error:           color.New(color.FgMagenta, color.Bold),
	Highlight:       color.New(color.FgYellow, color.Bold),
	MarkerSymbol:    "?",
	PointerSymbol:   ">",
	CheckedSymbol:   "[x]",
	UncheckedSymbol: "[ ]",
}

// ThemeASCII uses the default colors with ASCII-only symbols for terminals without Unicode fonts
var ThemeASCII = &Theme{
	Name:            "ASCII",
	Marker:          color.New(color.FgGreen),
	Message:         color.New(color.Bold),
	Default:         color.New(color.Faint),
	Answer:          color.New(color.FgCyan),
	Error:           color.New(color.FgRed),
	Highlight:       color.New(color.FgCyan),
	MarkerSymbol:    "?",
	PointerSymbol:   ">",
	CheckedSymbol:   "(*)",
	UncheckedSymbol: "( )",
}

// PlainTheme returns a theme with the default symbols and no colors at all.
func PlainTheme() *Theme {
	plain := func() *color.Color {
		c := color.New(color.Reset)
		c.DisableColor()
		return c
	}
	return &Theme{
		Name:            "plain",
		Marker:          plain(),
		Message:         plain(),
		Default:         plain(),
		Answer:          plain(),
		Error:           plain(),
		Highlight:       plain(),
		MarkerSymbol:    ThemeDefault.MarkerSymbol,
		PointerSymbol:   ThemeDefault.PointerSymbol,
		CheckedSymbol:   ThemeDefault.CheckedSymbol,
		UncheckedSymbol: ThemeDefault.UncheckedSymbol,
	}
}
