package tui

import (
	"errors"

	"go.uber.org/zap"

	"github.com/hy4ri/projtrack/internal/store"
)

// Section is a collapsible part of the detail view.
type Section int

const (
	SectionDescription Section = iota
	SectionTimeline
	SectionProgress
	SectionDetails
)

// Sections lists the sections in display order.
func Sections() []Section {
	return []Section{SectionDescription, SectionTimeline, SectionProgress, SectionDetails}
}

// Title returns the section header text.
func (s Section) Title() string {
	switch s {
	case SectionDescription:
		return "Description"
	case SectionTimeline:
		return "Timeline"
	case SectionProgress:
		return "Progress"
	case SectionDetails:
		return "Details"
	}
	return ""
}

// DetailController is the state machine of one detail session.
//
// VIEW and EDIT are the two modes; sections collapse independently of the
// mode. Edits only ever touch the in-memory record.
type DetailController struct {
	store  *store.Store
	logger *zap.Logger

	record    *store.Record
	editMode  bool
	collapsed map[Section]bool
}

// NewDetailController creates a closed controller.
func NewDetailController(s *store.Store, logger *zap.Logger) *DetailController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DetailController{
		store:     s,
		logger:    logger,
		collapsed: make(map[Section]bool),
	}
}

// Open starts a session for rec in VIEW mode with every section expanded.
func (d *DetailController) Open(rec *store.Record) {
	d.record = rec
	d.editMode = false
	d.collapsed = make(map[Section]bool)
	if rec != nil {
		d.logger.Debug("detail opened", zap.String("id", rec.ID))
	}
}

// Active reports whether a session is open.
func (d *DetailController) Active() bool {
	return d.record != nil
}

// Record returns the record being shown, or nil.
func (d *DetailController) Record() *store.Record {
	return d.record
}

// Editing reports whether the session is in EDIT mode.
func (d *DetailController) Editing() bool {
	return d.record != nil && d.editMode
}

// Expanded reports whether sec is expanded.
func (d *DetailController) Expanded(sec Section) bool {
	return !d.collapsed[sec]
}

// Edit switches VIEW to EDIT and returns the text to seed the editor with.
// It returns false if there is no session or it is already editing.
func (d *DetailController) Edit() (string, bool) {
	if d.record == nil || d.editMode {
		return "", false
	}
	d.editMode = true
	d.logger.Debug("edit started", zap.String("id", d.record.ID))
	return d.record.Description, true
}

// Save commits text into the record and switches EDIT to VIEW.
// Nothing is written back to the source.
func (d *DetailController) Save(text string) bool {
	if !d.Editing() {
		return false
	}
	d.record.Description = text
	d.editMode = false
	d.logger.Info("description updated in memory", zap.String("id", d.record.ID), zap.Int("length", len(text)))
	return true
}

// Cancel leaves EDIT mode without changing the record.
func (d *DetailController) Cancel() bool {
	if !d.Editing() {
		return false
	}
	d.editMode = false
	return true
}

// Exit ends the session from either mode. Any unsaved draft is dropped.
func (d *DetailController) Exit() {
	if d.record != nil {
		d.logger.Debug("detail closed", zap.String("id", d.record.ID))
	}
	d.record = nil
	d.editMode = false
	d.collapsed = make(map[Section]bool)
}

// ToggleSection flips sec between expanded and collapsed.
func (d *DetailController) ToggleSection(sec Section) {
	if d.record == nil {
		return
	}
	d.collapsed[sec] = !d.collapsed[sec]
}

// Next opens the record after the current one in the full store order,
// wrapping to the first. Table filters play no part. It returns false and
// leaves the session alone when there is nowhere to go.
func (d *DetailController) Next() (*store.Record, bool) {
	return d.move(d.store.Next)
}

// Prev opens the record before the current one, wrapping to the last.
func (d *DetailController) Prev() (*store.Record, bool) {
	return d.move(d.store.Prev)
}

func (d *DetailController) move(step func(string) (*store.Record, error)) (*store.Record, bool) {
	if d.record == nil {
		return nil, false
	}
	rec, err := step(d.record.ID)
	if err != nil {
		if !errors.Is(err, store.ErrEmpty) {
			d.logger.Warn("navigation failed", zap.String("id", d.record.ID), zap.Error(err))
		}
		return nil, false
	}
	d.Open(rec)
	return rec, true
}

// Position returns the 1-based index of the current record in the full
// list and the list length, for the "3 of 12" header.
func (d *DetailController) Position() (int, int) {
	if d.record == nil {
		return 0, d.store.Len()
	}
	return d.store.IndexOf(d.record.ID) + 1, d.store.Len()
}
