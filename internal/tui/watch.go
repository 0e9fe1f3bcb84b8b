// Package tui provides the live session watch view for snowswarm.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/snowswarm/snowswarm/internal/state"
	"github.com/snowswarm/snowswarm/pkg/models"
)

// pollInterval is how often the watch view re-reads the session record.
const pollInterval = 2 * time.Second

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#45B7D1"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Width(14)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	statusStyles = map[models.SessionStatus]lipgloss.Style{
		models.SessionInitializing: lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		models.SessionActive:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC857")),
		models.SessionCompleted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#96E6A1")),
		models.SessionFailed:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
)

// sessionMsg carries a freshly loaded session record.
type sessionMsg struct {
	session *models.Session
	err     error
}

// tickMsg triggers the next poll.
type tickMsg time.Time

// Watch is the bubbletea model for watching one session.
type Watch struct {
	db        *state.DB
	sessionID string

	spinner  spinner.Model
	session  *models.Session
	err      error
	quitting bool
}

// NewWatch creates a watch view for the given session.
func NewWatch(db *state.DB, sessionID string) *Watch {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC857"))

	return &Watch{
		db:        db,
		sessionID: sessionID,
		spinner:   s,
	}
}

// Init starts the spinner and the first poll.
func (w *Watch) Init() tea.Cmd {
	return tea.Batch(w.spinner.Tick, w.load, w.tick())
}

// Update handles messages.
func (w *Watch) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			w.quitting = true
			return w, tea.Quit
		}
		return w, nil

	case sessionMsg:
		w.session = msg.session
		w.err = msg.err
		if w.session != nil && w.session.Status.Terminal() {
			w.quitting = true
			return w, tea.Quit
		}
		return w, nil

	case tickMsg:
		return w, tea.Batch(w.load, w.tick())

	case spinner.TickMsg:
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return w, cmd
	}

	return w, nil
}

// View renders the session panel.
func (w *Watch) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("snowswarm session"))
	b.WriteString("\n\n")

	if w.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("error: %v", w.err)))
		b.WriteString("\n")
		return b.String()
	}
	if w.session == nil {
		b.WriteString(w.spinner.View())
		b.WriteString(" loading session...\n")
		return b.String()
	}

	s := w.session
	statusStyle, ok := statusStyles[s.Status]
	if !ok {
		statusStyle = lipgloss.NewStyle()
	}

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("Session", s.ID)
	row("Objective", truncate(s.Objective, 72))
	row("Task type", string(s.Classification.TaskType))
	row("Complexity", string(s.Classification.Complexity))
	row("Team", renderTeam(s.TeamPlan))
	row("Status", statusStyle.Render(string(s.Status)))
	row("Started", fmt.Sprintf("%s ago", time.Since(s.StartedAt).Round(time.Second)))

	if !s.Status.Terminal() {
		b.WriteString("\n")
		b.WriteString(w.spinner.View())
		b.WriteString(" watching... press q to stop\n")
	}
	return b.String()
}

// load reads the session record from the store.
func (w *Watch) load() tea.Msg {
	session, err := w.db.GetSession(w.sessionID)
	if err == nil && session == nil {
		err = fmt.Errorf("session %s not found", w.sessionID)
	}
	return sessionMsg{session: session, err: err}
}

func (w *Watch) tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func renderTeam(p models.TeamPlan) string {
	roles := make([]string, 0, p.EstimatedAgentCount)
	for _, r := range p.Roles() {
		roles = append(roles, string(r))
	}
	return fmt.Sprintf("%d: %s", p.EstimatedAgentCount, strings.Join(roles, " > "))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
