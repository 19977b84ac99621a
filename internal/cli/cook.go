package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fdg312/culinary-hub/internal/app"
	"github.com/fdg312/culinary-hub/internal/recipes"
	"github.com/spf13/cobra"
)

type cookKeyMap struct {
	Next  key.Binding
	Prev  key.Binding
	Speak key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k cookKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Speak, k.Help, k.Quit}
}

func (k cookKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next},
		{k.Speak, k.Help, k.Quit},
	}
}

var cookKeys = cookKeyMap{
	Next: key.NewBinding(
		key.WithKeys("n", "right", "l"),
		key.WithHelp("→/n", "next step"),
	),
	Prev: key.NewBinding(
		key.WithKeys("p", "left", "h"),
		key.WithHelp("←/p", "previous step"),
	),
	Speak: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "read aloud"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	stepStyle  = lipgloss.NewStyle().Padding(1, 2)
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("35")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// speakFunc synthesizes and plays text; the model only needs to know when
// it finishes.
type speakFunc func(ctx context.Context, text string) error

type speechDoneMsg struct{ err error }

type cookModel struct {
	ctx      context.Context
	walk     *recipes.Walkthrough
	speak    speakFunc
	keys     cookKeyMap
	help     help.Model
	spinner  spinner.Model
	speaking bool
	status   string
	width    int
	quitting bool
}

func newCookModel(ctx context.Context, w *recipes.Walkthrough, speak speakFunc) cookModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return cookModel{
		ctx:     ctx,
		walk:    w,
		speak:   speak,
		keys:    cookKeys,
		help:    help.New(),
		spinner: s,
		width:   textWidth,
	}
}

func (m cookModel) Init() tea.Cmd { return nil }

func (m cookModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case speechDoneMsg:
		m.speaking = false
		m.status = ""
		switch {
		case errors.Is(msg.err, errNoPlayer):
			m.status = "Set SPEECH_PLAYER to hear steps read aloud."
		case msg.err != nil:
			m.status = "Could not read the step aloud."
		}
		return m, nil

	case spinner.TickMsg:
		if !m.speaking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.walk.Next()
			m.status = ""
		case key.Matches(msg, m.keys.Prev):
			m.walk.Prev()
			m.status = ""
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Speak):
			if m.speaking || m.speak == nil {
				return m, nil
			}
			m.speaking = true
			text := m.walk.StepNarration()
			ctx, speak := m.ctx, m.speak
			return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
				return speechDoneMsg{err: speak(ctx, text)}
			})
		}
	}
	return m, nil
}

func (m cookModel) View() string {
	if m.quitting {
		return ""
	}
	r := m.walk.Recipe()
	width := m.width
	if width <= 0 || width > textWidth {
		width = textWidth
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Title))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Step %d of %d", m.walk.Index()+1, m.walk.Total())))
	b.WriteString("\n")

	filled := int(m.walk.Progress() / 100 * float64(barWidth))
	b.WriteString(barFill.Render(strings.Repeat("█", filled)) + barTrack.Render(strings.Repeat("░", barWidth-filled)))
	b.WriteString("\n")

	b.WriteString(stepStyle.Width(width).Render(m.walk.Current()))
	b.WriteString("\n")

	switch {
	case m.speaking:
		b.WriteString(m.spinner.View() + " Reading aloud...\n")
	case m.status != "":
		b.WriteString(errorStyle.Render(m.status) + "\n")
	case m.walk.IsLast():
		b.WriteString(doneStyle.Render("Last step. Enjoy your meal!") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func runCook(ctx context.Context, cmd *cobra.Command, a *app.App, w *recipes.Walkthrough) error {
	speak := func(ctx context.Context, text string) error {
		audio, err := a.AI.Speak(ctx, text)
		if err != nil {
			return err
		}
		return playAudio(ctx, a, audio.Data, audio.MIMEType)
	}
	p := tea.NewProgram(newCookModel(ctx, w, speak),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err := p.Run()
	return err
}
