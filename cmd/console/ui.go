package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/scene-engine/pkg/scene"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	selectedChoiceStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var titleCaser = cases.Title(language.English)

// gameDoneMsg arrives when the game loop goroutine returns.
type gameDoneMsg struct {
	err error
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	// transcript holds the unstyled narrative for clipboard export.
	transcript []string

	status   scene.TimeDTO
	location string

	// pending is the view call awaiting a player answer.
	pending  *uiRequest
	choices  []scene.ChoiceDTO
	selected int

	showInventory  bool
	inventoryLines []string

	showQuitModal bool
	copied        bool

	done bool
	err  error
}

func NewConsoleUI() ConsoleUI {
	vp := viewport.New(60, 20)
	vp.MouseWheelEnabled = true
	return ConsoleUI{viewport: vp}
}

func (m ConsoleUI) Init() tea.Cmd {
	return nil
}

func (m *ConsoleUI) appendTranscript(lines ...string) {
	m.transcript = append(m.transcript, lines...)
	m.writeContent()
}

// writeContent reformats the transcript for the current viewport width.
func (m *ConsoleUI) writeContent() {
	width := m.viewport.Width - 4
	if width < 20 {
		width = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("SCENE ENGINE") + "\n\n")
	for _, line := range m.transcript {
		if line == "" {
			content.WriteString("\n")
			continue
		}
		content.WriteString(formatNarrative(line, width) + "\n")
	}
	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

// formatNarrative wraps one transcript line, highlighting a leading
// "Speaker:" prefix when present.
func formatNarrative(line string, width int) string {
	wrapped := wordwrap.String(line, width)
	if idx := strings.Index(wrapped, ":"); idx > 0 && idx <= 20 {
		speaker := wrapped[:idx]
		if len(strings.Fields(speaker)) <= 2 {
			return speakerStyle.Render(speaker+":") + wrapped[idx+1:]
		}
	}
	return narratorStyle.Render(wrapped)
}

// answer replies to the pending request and clears the selection state.
func (m *ConsoleUI) answer(pick string) {
	if m.pending == nil {
		return
	}
	m.pending.reply <- pick
	m.pending = nil
	m.choices = nil
	m.selected = 0
}

// handleRequest renders one game view call. Pick requests stay pending
// until the player answers.
func (m *ConsoleUI) handleRequest(req *uiRequest) {
	switch req.kind {
	case reqTime:
		m.status = req.time
		req.reply <- ""

	case reqScene:
		m.location = titleCaser.String(req.scene.Location.Name)
		m.appendTranscript("")
		for _, line := range req.scene.Description {
			m.appendTranscript(line)
		}
		if npc := req.scene.CurrentNPC; npc != nil && npc.Text != "" {
			m.appendTranscript(npc.Text)
		}
		m.pending = req
		m.choices = req.choices
		m.selected = 0

	case reqPath:
		m.pending = req
		m.choices = req.choices
		m.selected = 0

	case reqInventory:
		m.showInventory = true
		m.inventoryLines = req.lines
		m.pending = req

	case reqMessage, reqResult:
		m.appendTranscript("", req.text)
		req.reply <- ""
	}
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case *uiRequest:
		m.handleRequest(msg)
		return m, nil

	case gameDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width - 4
		m.viewport.Height = m.height - (len(m.choices) + 6)
		if m.viewport.Height < 5 {
			m.viewport.Height = 5
		}
		m.ready = true
		m.writeContent()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ConsoleUI) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		switch msg.String() {
		case "y", "Y", "enter", "ctrl+c":
			m.answer("")
			return m, tea.Quit
		case "n", "N", "esc":
			m.showQuitModal = false
		}
		return m, nil
	}

	if m.showInventory {
		m.showInventory = false
		m.answer("")
		return m, nil
	}

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.showQuitModal = true
		return m, nil
	}

	switch msg.String() {
	case "ctrl+y":
		m.copied = clipboard.WriteAll(strings.Join(m.transcript, "\n")) == nil
		return m, nil
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.choices)-1 {
			m.selected++
		}
		return m, nil
	case "enter":
		if m.pending != nil && len(m.choices) > 0 {
			pick := m.choices[m.selected]
			m.appendTranscript("", "You: "+pick.Name)
			m.answer(pick.ID)
		}
		return m, nil
	}

	// Digits pick a choice directly.
	if len(msg.String()) == 1 && msg.String() >= "1" && msg.String() <= "9" {
		idx := int(msg.String()[0] - '1')
		if m.pending != nil && idx < len(m.choices) {
			pick := m.choices[idx]
			m.appendTranscript("", "You: "+pick.Name)
			m.answer(pick.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ConsoleUI) renderStatusBar() string {
	parts := []string{m.status.Time, m.status.Window}
	if m.location != "" {
		parts = append(parts, m.location)
	}
	bar := statusStyle.Render(strings.Join(parts, "  ·  "))
	if m.copied {
		bar += promptStyle.Render("  (transcript copied)")
	}
	return bar
}

func (m ConsoleUI) renderChoices() string {
	var b strings.Builder
	for i, c := range m.choices {
		line := fmt.Sprintf("%d. %s", i+1, c.Name)
		if i == m.selected {
			b.WriteString(selectedChoiceStyle.Render("▶ " + line))
		} else {
			b.WriteString(choiceStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m ConsoleUI) renderInventoryModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Inventory"))
	content.WriteString("\n\n")
	if len(m.inventoryLines) == 0 {
		content.WriteString("You are carrying nothing.")
	} else {
		for _, line := range m.inventoryLines {
			content.WriteString("• " + line + "\n")
		}
	}
	content.WriteString("\n")
	content.WriteString(promptStyle.Render("Press any key to continue"))

	modal := modalStyle.Width(44).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Your progress is saved after every turn.")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit or N to continue"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.showInventory {
		return m.renderInventoryModal()
	}

	sep := separatorStyle.Render(strings.Repeat("─", max(m.width-4, 10)))
	if m.err != nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.viewport.View(),
			sep,
			errorStyle.Render("Error: "+m.err.Error()),
		)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.viewport.View(),
			sep,
			m.renderStatusBar(),
			"",
			m.renderChoices(),
			promptStyle.Render("↑/↓ or digits to choose, Enter to confirm, Ctrl+Y to copy, Esc to quit"),
		),
	)
}
