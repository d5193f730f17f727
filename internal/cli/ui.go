package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives every human-facing status line. Logs go to stderr.
var stdout io.Writer = os.Stdout

// =============================================================================
// Palette
// =============================================================================

var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorLink  = lipgloss.Color("75")
	colorText  = lipgloss.Color("255")
	colorLabel = lipgloss.Color("245")
	colorMuted = lipgloss.Color("240")
)

var (
	// StyleTitle renders section headings such as "Quick start".
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)

	// StyleHighlight renders versions and milestone titles.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorTeal)

	StyleDim     = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue   = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning = lipgloss.NewStyle().Foreground(colorAmber)

	styleSpinner = lipgloss.NewStyle().Foreground(colorTeal)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
	styleLabel   = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
)

// =============================================================================
// Status Marks
// =============================================================================

// mark is the coloured glyph that leads a status line.
type mark struct {
	glyph string
	style lipgloss.Style
}

var (
	markDone    = mark{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	markFailed  = mark{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	markWarning = mark{"!", lipgloss.NewStyle().Foreground(colorAmber)}
	markInfo    = mark{"›", lipgloss.NewStyle().Foreground(colorLabel)}
)

func (m mark) String() string { return m.style.Render(m.glyph) }

// label renders the glyph followed by text in the mark's colour, e.g. "✓ found".
func (m mark) label(text string) string { return m.style.Render(m.glyph + " " + text) }

func (m mark) println(msg string) {
	fmt.Fprintln(stdout, m.String()+" "+msg)
}

// =============================================================================
// Print Helpers
// =============================================================================

func printSuccess(format string, args ...any) {
	markDone.println(fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	markFailed.println(fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	markWarning.println(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	markInfo.println(fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written artifact, e.g. "  → changelogs/9.9.0.csv".
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printKeyValue prints an aligned label, e.g. "Changelog    changelogs/9.9.0.csv".
func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested command with its purpose.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}
