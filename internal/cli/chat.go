package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joebot/emotic/internal/resolve"
)

// --- message types ---

type resolveMsg struct {
	reply resolve.Reply
	ok    bool
}

// ChatConfig holds display metadata for the resolver REPL.
type ChatConfig struct {
	CatalogSize int
}

type chatEntry struct {
	role    string // "user", "bot", "none"
	content string
}

// --- interactive REPL model ---

type chatModel struct {
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	history []chatEntry
	waiting bool

	pipeline *resolve.Pipeline
	ctx      context.Context

	ready       bool
	width       int
	height      int
	catalogSize int
}

func newChatModel(pipeline *resolve.Pipeline, ctx context.Context, cfg ChatConfig) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Type a message as if in chat..."
	ti.Focus()
	ti.CharLimit = 0
	ti.Prompt = "❯ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(Accent)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(Accent)

	return chatModel{
		input:       ti,
		spinner:     sp,
		pipeline:    pipeline,
		ctx:         ctx,
		catalogSize: cfg.CatalogSize,
	}
}

func (m chatModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Layout: header(1) + divider(1) + viewport + divider(1) + input(1) + status(1)
		vpHeight := msg.Height - 5
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.input.Width = msg.Width - 4
		m.viewport.SetContent(m.renderHistory())
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			input := strings.TrimSpace(m.input.Value())
			if input == "" {
				return m, nil
			}
			if isExitCmd(input) {
				return m, tea.Quit
			}
			m.history = append(m.history, chatEntry{role: "user", content: input})
			m.input.SetValue("")
			m.input.Blur()
			m.waiting = true
			m.viewport.SetContent(m.renderHistory())
			m.viewport.GotoBottom()
			return m, m.resolveCmd(input)
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case resolveMsg:
		m.waiting = false
		focusCmd := m.input.Focus()
		if !msg.ok {
			m.history = append(m.history, chatEntry{role: "none", content: "(no reply)"})
		} else {
			m.history = append(m.history, chatEntry{role: "bot", content: renderReply(msg.reply)})
		}
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, focusCmd

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if !m.waiting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m chatModel) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := TitleStyle.Render(fmt.Sprintf(" %s emotic", Logo))
	divider := DimStyle.Render(strings.Repeat("─", m.width))

	var inputLine string
	if m.waiting {
		inputLine = fmt.Sprintf(" %s Resolving...", m.spinner.View())
	} else {
		inputLine = " " + m.input.View()
	}

	statusBar := m.renderStatusBar()

	return header + "\n" +
		divider + "\n" +
		m.viewport.View() + "\n" +
		divider + "\n" +
		inputLine + "\n" +
		statusBar
}

func (m chatModel) renderHistory() string {
	if len(m.history) == 0 {
		return m.renderWelcome()
	}

	var sb strings.Builder
	for _, entry := range m.history {
		sb.WriteString("\n")
		switch entry.role {
		case "user":
			sb.WriteString("  " + UserLabel.Render("You") + "\n")
			for _, line := range strings.Split(entry.content, "\n") {
				sb.WriteString("  " + line + "\n")
			}
		case "bot":
			sb.WriteString("  " + BotLabel.Render("emotic") + "\n")
			for _, line := range strings.Split(entry.content, "\n") {
				sb.WriteString("  " + line + "\n")
			}
		case "none":
			sb.WriteString("  " + DimStyle.Render(entry.content) + "\n")
		}
	}

	return sb.String()
}

func (m chatModel) renderWelcome() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("  " + BoldStyle.Render("Local resolver sandbox — no Discord connection") + "\n")
	sb.WriteString(DimStyle.Render("  1. Try :Kappa: or #Kappa to resolve an emote") + "\n")
	sb.WriteString(DimStyle.Render("  2. Try \"20 C\" or \"68 F\" for a conversion") + "\n")
	sb.WriteString(DimStyle.Render("  3. Commands work too: !bot, !frozen pizza") + "\n")
	return sb.String()
}

func (m chatModel) renderStatusBar() string {
	left := DimStyle.Render(fmt.Sprintf(" %d catalog entries", m.catalogSize))
	right := DimStyle.Render("local ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right
}

func (m chatModel) resolveCmd(input string) tea.Cmd {
	return func() tea.Msg {
		reply, ok := m.pipeline.Resolve(m.ctx, input)
		return resolveMsg{reply: reply, ok: ok}
	}
}

func renderReply(r resolve.Reply) string {
	var parts []string
	if r.Text != "" {
		parts = append(parts, r.Text)
	}
	if r.Card != nil {
		card := BoldStyle.Render(r.Card.Title)
		if r.Card.Body != "" {
			card += "\n" + r.Card.Body
		}
		if r.Card.Image != "" {
			card += "\n" + r.Card.Image
		}
		parts = append(parts, card)
	}
	return strings.Join(parts, "\n")
}

func isExitCmd(s string) bool {
	s = strings.ToLower(s)
	return s == "exit" || s == "quit" || s == "/exit" || s == "/quit" || s == ":q"
}

// RunChat starts the interactive resolver REPL.
func RunChat(pipeline *resolve.Pipeline, ctx context.Context, cfg ChatConfig) error {
	m := newChatModel(pipeline, ctx, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
