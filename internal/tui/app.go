package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alanpramil7/ytstudio/internal/format"
	"github.com/alanpramil7/ytstudio/internal/yt"
)

// UI color constants
const (
	colorPrimary = "#00D9FF"
	colorBorder  = "#3C3C3C"
	colorWarning = "#FFB86C"
	colorMuted   = "#6272A4"
	colorText    = "#F8F8F2"
)

const (
	commentWidth = 80
	minTableRows = 5
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)).
			Bold(true).
			MarginBottom(1).
			PaddingLeft(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			PaddingLeft(1)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarning)).
			Bold(true).
			PaddingLeft(1)
)

// Model is the moderation screen. It only records decisions; the caller
// applies them after the program exits.
type Model struct {
	comments []yt.Comment
	actions  map[string]Action
	table    table.Model
	help     help.Model
	keys     keyMap
	now      time.Time

	cancelled bool
	done      bool
}

// New creates a moderation model for held comments
func New(comments []yt.Comment, now time.Time) *Model {
	columns := []table.Column{
		{Title: "Action", Width: 10},
		{Title: "Author", Width: 18},
		{Title: "Comment", Width: commentWidth},
		{Title: "Likes", Width: 6},
		{Title: "Age", Width: 10},
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(colorBorder)).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color(colorText)).
		Background(lipgloss.Color(colorMuted)).
		Bold(false)

	m := &Model{
		comments: comments,
		actions:  make(map[string]Action, len(comments)),
		help:     help.New(),
		keys:     defaultKeyMap(),
		now:      now,
	}
	m.table = table.New(
		table.WithColumns(columns),
		table.WithRows(m.rows()),
		table.WithFocused(true),
		table.WithHeight(max(minTableRows, min(len(comments)+1, 20))),
		table.WithStyles(styles),
	)
	return m
}

func (m *Model) rows() []table.Row {
	rows := make([]table.Row, len(m.comments))
	for i, c := range m.comments {
		text := strings.Join(strings.Fields(c.Text), " ")
		rows[i] = table.Row{
			m.actions[c.ID].label(),
			format.Truncate(c.Author, 18),
			format.Truncate(text, commentWidth-3),
			strconv.FormatInt(c.Likes, 10),
			format.TimeAgo(c.PublishedAt, m.now),
		}
	}
	return rows
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(minTableRows, msg.Height-8))
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Apply):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Publish):
			m.setCurrent(ActionPublish)
			return m, nil
		case key.Matches(msg, m.keys.Reject):
			m.setCurrent(ActionReject)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.toggleCurrent()
			return m, nil
		case key.Matches(msg, m.keys.PublishAll):
			for _, c := range m.comments {
				m.actions[c.ID] = ActionPublish
			}
			m.table.SetRows(m.rows())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) current() (string, bool) {
	if len(m.comments) == 0 {
		return "", false
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.comments) {
		return "", false
	}
	return m.comments[i].ID, true
}

// setCurrent marks the selected comment and moves to the next one
func (m *Model) setCurrent(action Action) {
	id, ok := m.current()
	if !ok {
		return
	}
	m.actions[id] = action
	m.table.SetRows(m.rows())
	m.table.MoveDown(1)
}

func (m *Model) toggleCurrent() {
	id, ok := m.current()
	if !ok {
		return
	}
	if m.actions[id] != ActionNone {
		delete(m.actions, id)
	} else {
		m.actions[id] = ActionPublish
	}
	m.table.SetRows(m.rows())
}

func (m *Model) counts() (publish, reject int) {
	for _, a := range m.actions {
		switch a {
		case ActionPublish:
			publish++
		case ActionReject:
			reject++
		}
	}
	return publish, reject
}

func (m *Model) View() string {
	if m.done {
		return ""
	}

	title := titleStyle.Render(fmt.Sprintf("Comment Moderation (%d held)", len(m.comments)))

	var status string
	publish, reject := m.counts()
	if publish+reject == 0 {
		status = statusStyle.Render("No pending actions")
	} else {
		var parts []string
		if publish > 0 {
			parts = append(parts, fmt.Sprintf("%d to publish", publish))
		}
		if reject > 0 {
			parts = append(parts, fmt.Sprintf("%d to reject", reject))
		}
		status = pendingStyle.Render(strings.Join(parts, ", ") + ", q to apply")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		panelStyle.Render(m.table.View()),
		status,
		statusStyle.Render(m.help.View(m.keys)),
	)
}

// Decisions returns the chosen actions in list order
func (m *Model) Decisions() Decisions {
	if m.cancelled {
		return Decisions{Cancelled: true}
	}
	var d Decisions
	for _, c := range m.comments {
		switch m.actions[c.ID] {
		case ActionPublish:
			d.Publish = append(d.Publish, c.ID)
		case ActionReject:
			d.Reject = append(d.Reject, c.ID)
		}
	}
	return d
}

// Run shows the moderation screen and returns the decisions once the user
// quits
func Run(comments []yt.Comment, now time.Time, opts ...tea.ProgramOption) (Decisions, error) {
	m := New(comments, now)
	final, err := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...).Run()
	if err != nil {
		return Decisions{}, fmt.Errorf("moderation UI failed: %w", err)
	}
	return final.(*Model).Decisions(), nil
}
