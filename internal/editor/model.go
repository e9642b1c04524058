package editor

import (
	"errors"
	"fmt"

	"github.com/abhisek/dermaquiz/internal/quiz"
)

// Phase is the state of one editor row.
//
//	Idle -> Editing(field) -> Saving -> Idle
//	                                 -> Error -> Idle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseEditing
	PhaseSaving
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEditing:
		return "editing"
	case PhaseSaving:
		return "saving"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// Row tracks the edit state of one entity.
type Row struct {
	Phase Phase
	Field Field
	Err   error
	// Dirty rows hold stashed drafts that survive reloads until saved.
	Dirty bool
}

// ErrInvalidTransition is returned when a row is asked to move to a state
// its current phase does not allow.
var ErrInvalidTransition = errors.New("invalid row transition")

type draftKey struct {
	key   Key
	field Field
}

// Model is the editor's view-model. It is owned by the UI goroutine and is
// never touched from network goroutines: those return snapshots which are
// handed to Finish or Apply.
type Model struct {
	snap   *Snapshot
	rows   map[Key]*Row
	drafts map[draftKey]string
}

// NewModel returns an empty Model waiting for its first snapshot.
func NewModel() *Model {
	return &Model{
		rows:   make(map[Key]*Row),
		drafts: make(map[draftKey]string),
	}
}

// Snapshot returns the latest snapshot, nil before the first load.
func (m *Model) Snapshot() *Snapshot {
	return m.snap
}

// Loaded reports whether a snapshot has arrived.
func (m *Model) Loaded() bool {
	return m.snap != nil
}

// Apply installs a freshly fetched snapshot. Drafts of rows that are
// neither being edited, saved nor stashed are dropped, so a stale value
// left behind by a failed save is overwritten by what the server now
// holds. A saving row stays saving until its own Finish. Rows whose entity
// disappeared are forgotten.
func (m *Model) Apply(s *Snapshot) {
	m.snap = s
	live := liveKeys(s)
	for k, row := range m.rows {
		if !live[k] {
			delete(m.rows, k)
			continue
		}
		if row.Phase != PhaseEditing && row.Phase != PhaseSaving {
			row.Phase = PhaseIdle
			row.Err = nil
		}
	}
	for dk := range m.drafts {
		row := m.rows[dk.key]
		if !live[dk.key] || row == nil || (row.Phase != PhaseEditing && row.Phase != PhaseSaving && !row.Dirty) {
			delete(m.drafts, dk)
		}
	}
}

func liveKeys(s *Snapshot) map[Key]bool {
	live := map[Key]bool{{Kind: KindQuiz, ID: s.Quiz.ID}: true}
	for _, q := range s.Quiz.Questions {
		live[Key{KindQuestion, q.ID}] = true
		for _, o := range q.Options {
			live[Key{KindOption, o.ID}] = true
		}
	}
	for _, r := range s.Quiz.Results {
		live[Key{KindResult, r.ID}] = true
	}
	return live
}

// Row returns the state of a row; unknown rows are idle.
func (m *Model) Row(k Key) Row {
	if r, ok := m.rows[k]; ok {
		return *r
	}
	return Row{}
}

func (m *Model) row(k Key) *Row {
	r, ok := m.rows[k]
	if !ok {
		r = &Row{}
		m.rows[k] = r
	}
	return r
}

// Value returns the draft for a field when one exists, else fallback.
func (m *Model) Value(k Key, f Field, fallback string) string {
	if v, ok := m.drafts[draftKey{k, f}]; ok {
		return v
	}
	return fallback
}

// HasDraft reports whether a field holds an unsaved value.
func (m *Model) HasDraft(k Key, f Field) bool {
	_, ok := m.drafts[draftKey{k, f}]
	return ok
}

// Begin starts editing a field. current is the value shown before editing;
// a stale draft left by a failed save takes precedence over it.
func (m *Model) Begin(k Key, f Field, current string) error {
	r := m.row(k)
	switch r.Phase {
	case PhaseIdle, PhaseError:
	default:
		return fmt.Errorf("%s %d is %s: %w", k.Kind, k.ID, r.Phase, ErrInvalidTransition)
	}
	r.Phase = PhaseEditing
	r.Field = f
	r.Err = nil
	dk := draftKey{k, f}
	if _, ok := m.drafts[dk]; !ok {
		m.drafts[dk] = current
	}
	return nil
}

// SetDraft records typed input for the field being edited.
func (m *Model) SetDraft(k Key, f Field, v string) {
	m.drafts[draftKey{k, f}] = v
}

// Cancel abandons an edit and discards its draft.
func (m *Model) Cancel(k Key) {
	r := m.row(k)
	if r.Phase != PhaseEditing {
		return
	}
	delete(m.drafts, draftKey{k, r.Field})
	r.Phase = PhaseIdle
}

// Stash ends an edit but keeps the draft without saving it. Result cards
// collect their four ranges this way until the card is saved.
func (m *Model) Stash(k Key) {
	r := m.row(k)
	if r.Phase == PhaseEditing {
		r.Phase = PhaseIdle
		r.Dirty = true
	}
}

// Commit moves an editing row to saving and returns the edit to send.
func (m *Model) Commit(k Key) (Edit, error) {
	r := m.row(k)
	if r.Phase != PhaseEditing {
		return Edit{}, fmt.Errorf("%s %d is %s: %w", k.Kind, k.ID, r.Phase, ErrInvalidTransition)
	}
	r.Phase = PhaseSaving
	return Edit{Key: k, Field: r.Field, Value: m.drafts[draftKey{k, r.Field}]}, nil
}

// MarkSaving flags a row as saving for actions that skip the editing step,
// such as toggles, selections, deletes and result card saves.
func (m *Model) MarkSaving(k Key) error {
	r := m.row(k)
	if r.Phase == PhaseSaving || r.Phase == PhaseEditing {
		return fmt.Errorf("%s %d is %s: %w", k.Kind, k.ID, r.Phase, ErrInvalidTransition)
	}
	r.Phase = PhaseSaving
	r.Err = nil
	return nil
}

// Finish completes a save. On success the new snapshot is applied and the
// row returns to idle. On failure the row enters the error phase and the
// draft stays in place until the next reload replaces it.
func (m *Model) Finish(k Key, s *Snapshot, err error) {
	r := m.row(k)
	r.Dirty = false
	if err != nil {
		r.Phase = PhaseError
		r.Err = err
		return
	}
	r.Phase = PhaseIdle
	r.Err = nil
	for dk := range m.drafts {
		if dk.key == k {
			delete(m.drafts, dk)
		}
	}
	if s != nil {
		m.Apply(s)
	}
}

// Acknowledge returns an errored row to idle once its error was shown.
func (m *Model) Acknowledge(k Key) {
	r := m.row(k)
	if r.Phase == PhaseError {
		r.Phase = PhaseIdle
		r.Err = nil
	}
}

// ResultDraft merges any unsaved range drafts over the stored mapping.
func (m *Model) ResultDraft(r quiz.Result) quiz.Result {
	k := Key{KindResult, r.ID}
	for _, s := range quiz.Sections() {
		if v, ok := m.drafts[draftKey{k, FieldRange(s)}]; ok {
			r = r.WithRange(s, v)
		}
	}
	return r
}

// Busy reports whether any row is waiting for the server.
func (m *Model) Busy() bool {
	for _, r := range m.rows {
		if r.Phase == PhaseSaving {
			return true
		}
	}
	return false
}
