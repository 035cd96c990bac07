package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/identity"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/timetracking"
)

// RunTrackerTUI starts the live tracker on date until the user quits or ctx ends.
func RunTrackerTUI(ctx context.Context, svc timetracking.TimeTrackingService, id identity.Identity, date time.Time, clockIn timetracking.ClockInRequest) error {
	model := NewTrackerModel(ctx, svc, id, date, clockIn)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
