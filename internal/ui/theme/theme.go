package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette: calm clinic teal with a warm accent for warnings.
var (
	Primary   = lipgloss.Color("#0EA5A4")
	Secondary = lipgloss.Color("#6366F1")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#EF4444")
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)
)

var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	// FocusedCard marks the pane or card the cursor is in.
	FocusedCard = Card.
			BorderForeground(Primary)
)

var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	// Dirty marks values typed but not yet saved.
	Dirty = lipgloss.NewStyle().
		Foreground(Accent)

	Saving = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Failed = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Badge = lipgloss.NewStyle().
		Foreground(BgCard).
		Background(Accent).
		Padding(0, 1)
)

var (
	ToastInfo = lipgloss.NewStyle().
			Foreground(Text).
			Background(Secondary).
			Padding(0, 1)

	ToastError = lipgloss.NewStyle().
			Foreground(Text).
			Background(Error).
			Bold(true).
			Padding(0, 1)

	ToastSuccess = lipgloss.NewStyle().
			Foreground(BgCard).
			Background(Success).
			Padding(0, 1)
)
