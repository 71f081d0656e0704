package store

import (
	"encoding/json"
	"fmt"

	"github.com/hy4ri/projtrack/internal/api"
	"github.com/hy4ri/projtrack/internal/format"
)

// Record is one project with its display fields.
//
// PrettyEndDate, DateRange and ProgressRatio are derived once by NewRecord.
// Nothing recomputes them, so they go stale if the dates or steps are
// changed afterwards.
type Record struct {
	ID          string
	Name        string
	StartDate   float64 // unix seconds, fractions kept
	EndDate     float64
	CurrentStep api.Number
	TotalSteps  api.Number
	Active      bool
	Description string
	Extra       map[string]json.RawMessage

	PrettyEndDate string
	DateRange     string
	ProgressRatio int
}

// NewRecord validates p and derives its display fields.
// Missing or invalid dates fail with format.ErrInvalidTimestamp.
func NewRecord(p api.Project, f format.Formatter) (*Record, error) {
	if !p.StartDate.Valid {
		return nil, fmt.Errorf("project %s: start_date: %w", p.ID, format.ErrInvalidTimestamp)
	}
	if !p.EndDate.Valid {
		return nil, fmt.Errorf("project %s: end_date: %w", p.ID, format.ErrInvalidTimestamp)
	}

	pretty, err := f.Date(p.EndDate.Value)
	if err != nil {
		return nil, fmt.Errorf("project %s: end_date: %w", p.ID, err)
	}
	dateRange, err := f.DateRange(p.StartDate.Value, p.EndDate.Value)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", p.ID, err)
	}

	return &Record{
		ID:            string(p.ID),
		Name:          p.Name,
		StartDate:     p.StartDate.Value,
		EndDate:       p.EndDate.Value,
		CurrentStep:   p.CurrentStep,
		TotalSteps:    p.TotalSteps,
		Active:        p.Active,
		Description:   p.Description,
		Extra:         p.Extra,
		PrettyEndDate: pretty,
		DateRange:     dateRange,
		ProgressRatio: format.ProgressRatio(p.CurrentStep.Float(), p.TotalSteps.Float()),
	}, nil
}

// Title returns the name, or "Project <id>" when the document has none.
func (r *Record) Title() string {
	if r.Name != "" {
		return r.Name
	}
	return "Project " + r.ID
}
