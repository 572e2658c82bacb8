package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds all colours for the application.
// The dark palette is inspired by Zed's default dark theme (Catppuccin Mocha).
type Theme struct {
	Bg            lipgloss.Color
	Surface       lipgloss.Color
	SurfaceHover  lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color

	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	TextInverse lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Added    lipgloss.Color
	Modified lipgloss.Color
	Deleted  lipgloss.Color
	Renamed  lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	CommitHash lipgloss.Color
	Author     lipgloss.Color

	CommentBadge lipgloss.Color
	Pending      lipgloss.Color
	Resolved     lipgloss.Color

	CursorBg    lipgloss.Color
	SelectionBg lipgloss.Color
}

// DarkTheme returns the default Zed-inspired dark theme.
func DarkTheme() Theme {
	return Theme{
		Bg:            lipgloss.Color("#1e1e2e"),
		Surface:       lipgloss.Color("#282840"),
		SurfaceHover:  lipgloss.Color("#313152"),
		Border:        lipgloss.Color("#3b3b5c"),
		BorderFocused: lipgloss.Color("#7c7cf0"),

		Text:        lipgloss.Color("#cdd6f4"),
		TextMuted:   lipgloss.Color("#9399b2"),
		TextSubtle:  lipgloss.Color("#6c7086"),
		TextInverse: lipgloss.Color("#1e1e2e"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),
		Accent:    lipgloss.Color("#f5c2e7"),

		Added:    lipgloss.Color("#a6e3a1"),
		Modified: lipgloss.Color("#f9e2af"),
		Deleted:  lipgloss.Color("#f38ba8"),
		Renamed:  lipgloss.Color("#89dceb"),

		Success: lipgloss.Color("#a6e3a1"),
		Warning: lipgloss.Color("#f9e2af"),
		Error:   lipgloss.Color("#f38ba8"),
		Info:    lipgloss.Color("#89b4fa"),

		CommitHash: lipgloss.Color("#f9e2af"),
		Author:     lipgloss.Color("#89b4fa"),

		CommentBadge: lipgloss.Color("#fab387"),
		Pending:      lipgloss.Color("#f9e2af"),
		Resolved:     lipgloss.Color("#6c7086"),

		CursorBg:    lipgloss.Color("#313152"),
		SelectionBg: lipgloss.Color("#45475a"),
	}
}

// LightTheme returns a light palette (Catppuccin Latte) selected via
// the ui.theme config key.
func LightTheme() Theme {
	return Theme{
		Bg:            lipgloss.Color("#eff1f5"),
		Surface:       lipgloss.Color("#e6e9ef"),
		SurfaceHover:  lipgloss.Color("#dce0e8"),
		Border:        lipgloss.Color("#bcc0cc"),
		BorderFocused: lipgloss.Color("#1e66f5"),

		Text:        lipgloss.Color("#4c4f69"),
		TextMuted:   lipgloss.Color("#6c6f85"),
		TextSubtle:  lipgloss.Color("#8c8fa1"),
		TextInverse: lipgloss.Color("#eff1f5"),

		Primary:   lipgloss.Color("#1e66f5"),
		Secondary: lipgloss.Color("#7287fd"),
		Accent:    lipgloss.Color("#ea76cb"),

		Added:    lipgloss.Color("#40a02b"),
		Modified: lipgloss.Color("#df8e1d"),
		Deleted:  lipgloss.Color("#d20f39"),
		Renamed:  lipgloss.Color("#04a5e5"),

		Success: lipgloss.Color("#40a02b"),
		Warning: lipgloss.Color("#df8e1d"),
		Error:   lipgloss.Color("#d20f39"),
		Info:    lipgloss.Color("#1e66f5"),

		CommitHash: lipgloss.Color("#df8e1d"),
		Author:     lipgloss.Color("#1e66f5"),

		CommentBadge: lipgloss.Color("#fe640b"),
		Pending:      lipgloss.Color("#df8e1d"),
		Resolved:     lipgloss.Color("#8c8fa1"),

		CursorBg:    lipgloss.Color("#dce0e8"),
		SelectionBg: lipgloss.Color("#ccd0da"),
	}
}

// ThemeByName resolves a config theme name to a Theme. Unknown names
// fall back to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Layout
	PanelBar  lipgloss.Style
	Content   lipgloss.Style
	StatusBar lipgloss.Style
	HelpBar   lipgloss.Style

	// Panels
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelTitle   lipgloss.Style

	// List items
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	ListDimmed   lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Code     lipgloss.Style
	KeyBind  lipgloss.Style
	KeyDesc  lipgloss.Style

	// File statuses
	FileAdded    lipgloss.Style
	FileModified lipgloss.Style
	FileDeleted  lipgloss.Style
	FileRenamed  lipgloss.Style

	// Diff
	DiffAdded      lipgloss.Style
	DiffRemoved    lipgloss.Style
	DiffContext    lipgloss.Style
	DiffHeader     lipgloss.Style
	DiffHunkHeader lipgloss.Style
	DiffLineNum    lipgloss.Style
	DiffCursor     lipgloss.Style
	DiffSelected   lipgloss.Style
	CommentBadge   lipgloss.Style
	PendingMarker  lipgloss.Style
	ResolvedBadge  lipgloss.Style

	// Commit / PR metadata
	CommitHash lipgloss.Style
	CommitMsg  lipgloss.Style
	Author     lipgloss.Style
	Date       lipgloss.Style

	// Dialogs
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogButton lipgloss.Style

	Spinner lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.PanelBar = lipgloss.NewStyle().Padding(0, 1).Background(t.Surface)
	s.Content = lipgloss.NewStyle().Padding(1, 2)
	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	s.HelpBar = lipgloss.NewStyle().Foreground(t.TextSubtle).Padding(0, 1)

	s.Panel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1)
	s.PanelFocused = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.BorderFocused).Padding(0, 1)
	s.PanelTitle = lipgloss.NewStyle().Foreground(t.Text).Bold(true).Padding(0, 1)

	s.ListItem = lipgloss.NewStyle().Foreground(t.Text).PaddingLeft(2)
	s.ListSelected = lipgloss.NewStyle().Foreground(t.Text).Background(t.SurfaceHover).Bold(true).PaddingLeft(1)
	s.ListDimmed = lipgloss.NewStyle().Foreground(t.TextSubtle).PaddingLeft(2)

	s.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Subtitle = lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	s.Body = lipgloss.NewStyle().Foreground(t.Text)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.Bold = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Code = lipgloss.NewStyle().Foreground(t.Primary).Background(t.Surface).Padding(0, 1)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)

	s.FileAdded = lipgloss.NewStyle().Foreground(t.Added)
	s.FileModified = lipgloss.NewStyle().Foreground(t.Modified)
	s.FileDeleted = lipgloss.NewStyle().Foreground(t.Deleted).Strikethrough(true)
	s.FileRenamed = lipgloss.NewStyle().Foreground(t.Renamed)

	s.DiffAdded = lipgloss.NewStyle().Foreground(t.Added)
	s.DiffRemoved = lipgloss.NewStyle().Foreground(t.Deleted)
	s.DiffContext = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.DiffHeader = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.DiffHunkHeader = lipgloss.NewStyle().Foreground(t.Secondary).Italic(true)
	s.DiffLineNum = lipgloss.NewStyle().Foreground(t.TextSubtle)
	s.DiffCursor = lipgloss.NewStyle().Background(t.CursorBg)
	s.DiffSelected = lipgloss.NewStyle().Background(t.SelectionBg)
	s.CommentBadge = lipgloss.NewStyle().Foreground(t.CommentBadge).Bold(true)
	s.PendingMarker = lipgloss.NewStyle().Foreground(t.Pending).Bold(true)
	s.ResolvedBadge = lipgloss.NewStyle().Foreground(t.Resolved)

	s.CommitHash = lipgloss.NewStyle().Foreground(t.CommitHash)
	s.CommitMsg = lipgloss.NewStyle().Foreground(t.Text)
	s.Author = lipgloss.NewStyle().Foreground(t.Author)
	s.Date = lipgloss.NewStyle().Foreground(t.TextMuted)

	s.Dialog = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(t.Primary).Padding(1, 2).Width(60)
	s.DialogTitle = lipgloss.NewStyle().Foreground(t.Text).Bold(true).Align(lipgloss.Center)
	s.DialogButton = lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Primary).Padding(0, 3).Bold(true)

	s.Spinner = lipgloss.NewStyle().Foreground(t.Primary)

	return s
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
