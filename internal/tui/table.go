package tui

import (
	"go.uber.org/zap"

	"github.com/hy4ri/projtrack/internal/store"
)

// TableController owns the filter selection and the rows it produces.
type TableController struct {
	store  *store.Store
	logger *zap.Logger

	filter store.FilterKind
	rows   []*store.Record
}

// NewTableController creates a controller showing initial.
func NewTableController(s *store.Store, initial store.FilterKind, logger *zap.Logger) *TableController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TableController{
		store:  s,
		logger: logger,
		filter: initial,
	}
}

// Filter returns the current filter.
func (c *TableController) Filter() store.FilterKind {
	return c.filter
}

// Rows returns the rows of the last Render.
func (c *TableController) Rows() []*store.Record {
	return c.rows
}

// Render recomputes the visible rows for the current filter.
func (c *TableController) Render() []*store.Record {
	c.rows = c.store.Filter(c.filter)
	return c.rows
}

// OnFilterSelect replaces the current filter and re-renders.
func (c *TableController) OnFilterSelect(kind store.FilterKind) []*store.Record {
	if kind != c.filter {
		c.logger.Debug("filter changed", zap.Stringer("from", c.filter), zap.Stringer("to", kind))
	}
	c.filter = kind
	return c.Render()
}

// RowAt returns the visible row at position i.
func (c *TableController) RowAt(i int) (*store.Record, bool) {
	if i < 0 || i >= len(c.rows) {
		return nil, false
	}
	return c.rows[i], true
}

// OnRowSelect looks up the record to hand to the detail view.
func (c *TableController) OnRowSelect(id string) (*store.Record, error) {
	return c.store.Get(id)
}
