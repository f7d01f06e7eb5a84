// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrCancelled is returned when the user aborts a prompt (esc or ctrl+c)
// instead of answering it.
var ErrCancelled = errors.New("cancelled")

var (
	confirmTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	confirmDescStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	confirmActiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7C3AED")).Bold(true).Padding(0, 1)
	confirmInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Padding(0, 1)
	confirmHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

type (
	// ConfirmOptions configures a Confirm prompt.
	ConfirmOptions struct {
		// Title is the question to display.
		Title string
		// Description provides additional context below the title.
		Description string
		// Affirmative is the text for the affirmative option (default: "Yes").
		Affirmative string
		// Negative is the text for the negative option (default: "No").
		Negative string
		// Default is the initially selected answer.
		Default bool
	}

	// confirmModel is the bubbletea model behind Confirm.
	confirmModel struct {
		opts      ConfirmOptions
		selection bool
		done      bool
		cancelled bool
		width     int
	}
)

// Confirm prompts for a yes/no answer. On a terminal it runs an interactive
// prompt; otherwise it falls back to reading a single line from stdin.
// Aborting the prompt reports ErrCancelled, distinct from answering no.
func Confirm(opts ConfirmOptions) (bool, error) {
	if opts.Affirmative == "" {
		opts.Affirmative = "Yes"
	}
	if opts.Negative == "" {
		opts.Negative = "No"
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return confirmLine(os.Stdin, os.Stdout, opts)
	}

	final, err := tea.NewProgram(&confirmModel{opts: opts, selection: opts.Default}).Run()
	if err != nil {
		return false, fmt.Errorf("running confirm prompt: %w", err)
	}

	m := final.(*confirmModel)
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.selection, nil
}

// confirmLine is the non-interactive fallback: print the question, read one
// line, accept y/yes (case-insensitive) as affirmative. An empty line picks
// the default; end of input with no line at all declines.
func confirmLine(r io.Reader, w io.Writer, opts ConfirmOptions) (bool, error) {
	hint := "[y/N]"
	if opts.Default {
		hint = "[Y/n]"
	}
	fmt.Fprintf(w, "%s %s ", opts.Title, hint)

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	case "":
		return opts.Default, nil
	default:
		return false, nil
	}
}

// Init implements tea.Model.
func (m *confirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		case "y":
			m.selection = true
			m.done = true
			return m, tea.Quit
		case "n":
			m.selection = false
			m.done = true
			return m, tea.Quit
		case "left", "h":
			m.selection = true
		case "right", "l":
			m.selection = false
		case "up", "down", "tab", "shift+tab":
			m.selection = !m.selection
		case "enter", " ":
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	return m, nil
}

// View implements tea.Model.
func (m *confirmModel) View() string {
	if m.done {
		return ""
	}

	yesView := confirmInactiveStyle.Render(m.opts.Affirmative)
	noView := confirmInactiveStyle.Render(m.opts.Negative)
	if m.selection {
		yesView = confirmActiveStyle.Render(m.opts.Affirmative)
	} else {
		noView = confirmActiveStyle.Render(m.opts.Negative)
	}

	lines := make([]string, 0, 4)
	if m.opts.Title != "" {
		lines = append(lines, confirmTitleStyle.Render(m.opts.Title))
	}
	if m.opts.Description != "" {
		lines = append(lines, confirmDescStyle.Render(m.opts.Description))
	}
	lines = append(lines,
		yesView+"  "+noView,
		confirmHelpStyle.Render("enter submit • y yes • n no • esc cancel"),
	)

	view := strings.Join(lines, "\n")
	if m.width > 0 {
		view = lipgloss.NewStyle().MaxWidth(m.width).Render(view)
	}
	return view
}
