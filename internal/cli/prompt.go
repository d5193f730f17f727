package cli

import (
	"context"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/bacoords/woo-dev-blog-tools/pkg/errors"
)

var (
	promptInputStyle = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	promptErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	promptDimStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

// =============================================================================
// VersionPromptModel - Interactive version entry
// =============================================================================

// VersionPromptModel is the bubbletea model asking for a release version.
type VersionPromptModel struct {
	Input    string
	Err      string
	Done     bool
	Canceled bool
}

func (m VersionPromptModel) Init() tea.Cmd {
	return nil
}

func (m VersionPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.Canceled = true
		return m, tea.Quit
	case tea.KeyEnter:
		if err := errors.ValidateVersion(m.Input); err != nil {
			m.Err = errors.UserMessage(err)
			return m, nil
		}
		m.Input = strings.TrimSpace(m.Input)
		m.Done = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if r := []rune(m.Input); len(r) > 0 {
			m.Input = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		m.Input += string(key.Runes)
	}
	m.Err = ""
	return m, nil
}

func (m VersionPromptModel) View() string {
	if m.Done || m.Canceled {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render("WooCommerce version"))
	b.WriteString(" ")
	b.WriteString(promptDimStyle.Render("(e.g. 9.9.0)"))
	b.WriteString("\n")
	b.WriteString(StyleHighlight.Render("› "))
	b.WriteString(promptInputStyle.Render(m.Input))
	b.WriteString("█\n")
	if m.Err != "" {
		b.WriteString(promptErrorStyle.Render(m.Err))
		b.WriteString("\n")
	}
	b.WriteString(promptDimStyle.Render("⏎ confirm  esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// promptVersion asks for a version on the terminal. Cancelling returns
// context.Canceled.
func promptVersion(in io.Reader, out io.Writer) (string, error) {
	p := tea.NewProgram(VersionPromptModel{}, tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(VersionPromptModel)
	if !ok || !m.Done {
		return "", context.Canceled
	}
	return m.Input, nil
}

// stdinIsTerminal reports whether stdin is a terminal a prompt can read from.
func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
