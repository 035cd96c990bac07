package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/timetracking"
	"github.com/cmlabs-hris/seeker-tracker/internal/pkg/backend"
)

// TrackerModel is the live tracker screen: clock controls, the entry log
// and elapsed figures for the selected date.
type TrackerModel struct {
	ctx      context.Context
	service  timetracking.TimeTrackingService
	identity identity.Identity

	// clockIn is sent as-is when the user clocks in.
	clockIn timetracking.ClockInRequest

	width  int
	height int

	date   time.Time
	view   timetracking.View
	loaded bool

	// busy is set while a load or a clock action is in flight.
	busy    bool
	spinner spinner.Model

	// tickID invalidates ticks scheduled for a previously viewed date.
	tickID int

	notice string
	err    error
}

type viewLoadedMsg struct {
	date time.Time
	view timetracking.View
	err  error
}

type actionDoneMsg struct {
	action string
	view   timetracking.View
	err    error
}

// trackerTickMsg is sent every second while today is on screen
type trackerTickMsg struct {
	id int
}

func NewTrackerModel(ctx context.Context, svc timetracking.TimeTrackingService, id identity.Identity, date time.Time, clockIn timetracking.ClockInRequest) TrackerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return TrackerModel{
		ctx:      ctx,
		service:  svc,
		identity: id,
		clockIn:  clockIn,
		date:     date,
		busy:     true,
		spinner:  s,
	}
}

// Init loads the selected date
func (m TrackerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(m.date))
}

func (m TrackerModel) load(date time.Time) tea.Cmd {
	return func() tea.Msg {
		view, err := m.service.View(m.ctx, m.identity, date)
		return viewLoadedMsg{date: date, view: view, err: err}
	}
}

func (m TrackerModel) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return trackerTickMsg{id: id}
	})
}

func (m TrackerModel) act(action string, fn func(ctx context.Context) (timetracking.View, error)) tea.Cmd {
	return func() tea.Msg {
		view, err := fn(m.ctx)
		return actionDoneMsg{action: action, view: view, err: err}
	}
}

func (m TrackerModel) sameDay(a, b time.Time) bool {
	return timetracking.SameDay(a, b, m.date.Location())
}

func (m TrackerModel) isToday() bool {
	return m.sameDay(m.date, m.service.Today())
}

// Update handles messages
func (m TrackerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case viewLoadedMsg:
		if !m.sameDay(msg.date, m.date) {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.view = msg.view
		m.loaded = true
		m.tickID++
		if m.view.IsToday {
			return m, m.tick()
		}
		return m, nil

	case actionDoneMsg:
		m.busy = false
		// Errors raised before the backend call carry no view.
		if !msg.view.Date.IsZero() {
			m.view = msg.view
		}
		if msg.err != nil {
			m.err = msg.err
			m.notice = ""
			return m, nil
		}
		m.err = nil
		m.notice = msg.action
		return m, nil

	case trackerTickMsg:
		if msg.id != m.tickID {
			return m, nil
		}
		if view, ok := m.service.Derive(m.identity, m.date); ok {
			m.view = view
		}
		if !m.view.IsToday {
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m TrackerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	case "left", "h":
		return m.switchDate(m.date.AddDate(0, 0, -1))
	case "right", "l":
		return m.switchDate(m.date.AddDate(0, 0, 1))
	case "t":
		return m.switchDate(m.service.Today())
	}

	if m.busy || !m.loaded {
		return m, nil
	}

	controls := m.view.Controls
	switch msg.String() {
	case "i":
		if !controls.CanClockIn {
			return m, nil
		}
		return m.start(m.act("Clocked in", func(ctx context.Context) (timetracking.View, error) {
			return m.service.ClockIn(ctx, m.identity, m.clockIn)
		}))
	case "b":
		if !controls.CanStartBreak {
			return m, nil
		}
		return m.start(m.act("Break started", func(ctx context.Context) (timetracking.View, error) {
			return m.service.StartBreak(ctx, m.identity, timetracking.StartBreakRequest{BreakType: string(timetracking.BreakLunch)})
		}))
	case "r":
		if !controls.CanEndBreak {
			return m, nil
		}
		return m.start(m.act("Break ended", func(ctx context.Context) (timetracking.View, error) {
			return m.service.EndBreak(ctx, m.identity)
		}))
	case "o":
		if !controls.CanClockOut {
			return m, nil
		}
		return m.start(m.act("Clocked out", func(ctx context.Context) (timetracking.View, error) {
			return m.service.ClockOut(ctx, m.identity)
		}))
	}

	return m, nil
}

func (m TrackerModel) start(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.busy = true
	m.notice = ""
	m.err = nil
	return m, tea.Batch(m.spinner.Tick, cmd)
}

func (m TrackerModel) switchDate(date time.Time) (tea.Model, tea.Cmd) {
	if date.After(m.service.Today()) || m.sameDay(date, m.date) {
		return m, nil
	}
	m.date = date
	m.loaded = false
	m.busy = true
	m.notice = ""
	m.err = nil
	// Drops any tick still pending for the previous date.
	m.tickID++
	return m, tea.Batch(m.spinner.Tick, m.load(date))
}

// View renders the tracker
func (m TrackerModel) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	value := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText)).Bold(true)

	title := "TIME TRACKER  " + m.date.Format("Mon, 02 Jan 2006")
	if m.isToday() {
		title += "  (today)"
	}
	b.WriteString(header.Render(title))
	b.WriteString("\n\n")

	if !m.loaded {
		if m.busy {
			b.WriteString(m.spinner.View() + " Loading...\n")
		}
		b.WriteString(m.renderStatus())
		b.WriteString("\n" + m.renderHelpBar())
		return b.String()
	}

	b.WriteString(label.Render("Status   ") + renderState(m.view.State) + "\n")
	b.WriteString(label.Render("Worked   ") + value.Render(timetracking.FormatDuration(m.view.Session.Worked)))
	b.WriteString(label.Render("   Break ") + value.Render(timetracking.FormatDuration(m.view.Session.Break)) + "\n")
	b.WriteString(label.Render("Day      ") + value.Render(timetracking.FormatDuration(m.view.Day.Worked)))
	b.WriteString(label.Render("   Break ") + value.Render(timetracking.FormatDuration(m.view.Day.Break)) + "\n\n")

	b.WriteString(renderEntries(m.view.Entries))
	b.WriteString("\n")
	b.WriteString(m.renderControls())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n" + m.renderHelpBar())

	return b.String()
}

func renderState(state timetracking.ClockState) string {
	color := ColorDisabledText
	text := "Off the clock"
	switch state {
	case timetracking.StateClockedIn:
		color, text = ColorSuccess, "Clocked in"
	case timetracking.StateOnBreak:
		color, text = ColorWarning, "On break"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(text)
}

func renderEntries(entries []timetracking.Entry) string {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText))
	if len(entries) == 0 {
		return muted.Render("No entries for this day") + "\n"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1)

	var lines []string
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s  %s", e.At.Format("15:04:05"), EntryLabel(e)))
	}
	return box.Render(strings.Join(lines, "\n")) + "\n"
}

// EntryLabel is the human label of one log entry.
func EntryLabel(e timetracking.Entry) string {
	switch e.Type {
	case timetracking.EntryClockIn:
		return "Clock in"
	case timetracking.EntryBreakStart:
		if e.BreakType != "" {
			return "Break start (" + e.BreakType + ")"
		}
		return "Break start"
	case timetracking.EntryBreakEnd:
		return "Break end"
	case timetracking.EntryClockOut:
		return "Clock out"
	}
	return string(e.Type)
}

func (m TrackerModel) renderControls() string {
	enabled := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true)
	disabled := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Strikethrough(true)

	controls := []struct {
		key, name string
		on bool
	}{
		{"i", "clock in", m.view.Controls.CanClockIn},
		{"b", "break", m.view.Controls.CanStartBreak},
		{"r", "resume", m.view.Controls.CanEndBreak},
		{"o", "clock out", m.view.Controls.CanClockOut},
	}

	var parts []string
	for _, c := range controls {
		text := "[" + c.key + "] " + c.name
		if c.on && !m.busy {
			parts = append(parts, enabled.Render(text))
		} else {
			parts = append(parts, disabled.Render(text))
		}
	}
	return strings.Join(parts, "  ") + "\n"
}

func (m TrackerModel) renderStatus() string {
	switch {
	case m.busy && m.loaded:
		return m.spinner.View() + " Working...\n"
	case m.err != nil:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render(ErrorText(m.err)) + "\n"
	case m.notice != "":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Render(m.notice) + "\n"
	}
	return "\n"
}

func (m TrackerModel) renderHelpBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Render("←/→ change day • t today • q quit")
}

// ErrorText is the message shown for a failed action: the backend's own
// message when it sent one, a generic one otherwise.
func ErrorText(err error) string {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, identity.ErrMissingIdentity):
		return "Please log in first (seeker-tracker login)"
	case errors.Is(err, backend.ErrUnavailable):
		return "Something went wrong, please try again"
	}
	return err.Error()
}
