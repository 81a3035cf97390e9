// Package tui implements the interactive accent explorer: type a sentence,
// see its pitch annotation immediately.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/hakarun/kifuku/internal/render"
	"github.com/hakarun/kifuku/internal/segment"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const analyzeTimeout = 10 * time.Second

// Model holds the interactive session state.
type Model struct {
	pipeline *segment.Pipeline
	input    textinput.Model
	history  []historyEntry
	lastErr  error
	width    int
	height   int
	busy     bool
	quitting bool
}

type historyEntry struct {
	input    string
	rendered string
}

type analyzedMsg struct {
	input    string
	sentence []segment.Sentence
	err      error
}

// NewModel creates the interactive model.
func NewModel(pipeline *segment.Pipeline) Model {
	ti := textinput.New()
	ti.Placeholder = "文を入力してください..."
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 60

	return Model{
		pipeline: pipeline,
		input:    ti,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.busy {
				return m, nil
			}
			m.busy = true
			m.input.SetValue("")
			return m, m.analyzeCmd(text)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case analyzedMsg:
		m.busy = false
		m.lastErr = msg.err
		if msg.err == nil {
			var b strings.Builder
			for _, s := range msg.sentence {
				b.WriteString(render.FormatSentence(s.Original, s.Words, false))
			}
			m.history = append(m.history, historyEntry{
				input:    msg.input,
				rendered: strings.TrimRight(b.String(), "\n"),
			})
			// Keep the scrollback bounded.
			if len(m.history) > 20 {
				m.history = m.history[len(m.history)-20:]
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the session.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(render.FormatTitle("kifuku interactive"))
	b.WriteString("\n")
	b.WriteString(render.Legend())
	b.WriteString("\n\n")

	for _, h := range m.history {
		b.WriteString(h.rendered)
		b.WriteString("\n\n")
	}

	if m.lastErr != nil {
		b.WriteString(render.FormatError(m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	if m.busy {
		b.WriteString(render.SubtleStyle.Render("解析中..."))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(render.SubtleStyle.Render("enter: 解析  esc: 終了"))

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

func (m Model) analyzeCmd(text string) tea.Cmd {
	pipeline := m.pipeline
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
		defer cancel()

		sentences, err := pipeline.AnalyzeText(ctx, text)
		return analyzedMsg{input: text, sentence: sentences, err: err}
	}
}

// Run starts the interactive session and blocks until the user quits.
func Run(pipeline *segment.Pipeline) error {
	p := tea.NewProgram(NewModel(pipeline))
	_, err := p.Run()
	return err
}
