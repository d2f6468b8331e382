package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/api"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/logger"
)

// Mode is the state of a Session.
type Mode int

const (
	ModeViewing Mode = iota
	ModeEditing
	ModeConfirming
	ModeCancelling
	ModeDeletingOne
	ModeDeletingMany
)

func (m Mode) String() string {
	switch m {
	case ModeEditing:
		return "editing"
	case ModeConfirming:
		return "confirming"
	case ModeCancelling:
		return "cancelling"
	case ModeDeletingOne:
		return "deleting-one"
	case ModeDeletingMany:
		return "deleting-many"
	default:
		return "viewing"
	}
}

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNothingSelected   = errors.New("no deployments selected")
	ErrUnknownRecord     = errors.New("deployment not found")
)

// Snapshot is the data behind the history screen.
type Snapshot struct {
	Deployments []api.Deployment
	Projects    []api.ProjectDetail
}

// Gateway is the API surface a Session needs.
type Gateway interface {
	Load(ctx context.Context) (*Snapshot, error)
	UpdateVersion(ctx context.Context, appKey, versionName string, update api.VersionUpdate) error
	DeleteDeployment(ctx context.Context, appKey, environment, versionName string) error
}

// Notifier reports the outcome of dispatched operations.
type Notifier interface {
	Success(title, message string)
	Failure(title, detail string)
}

// Session drives the history screen: it owns the records, the filters, the
// pending edits and the selection, and dispatches confirmed operations.
type Session struct {
	gateway  Gateway
	notifier Notifier

	records  []api.Deployment
	projects []api.ProjectDetail
	filter   *FilterState
	sort     SortStatus

	mode      Mode
	overlay   *EditOverlay
	selected  []string
	selection map[string]api.Deployment
	pending   *api.Deployment
}

func NewSession(gateway Gateway, notifier Notifier) *Session {
	return &Session{
		gateway:   gateway,
		notifier:  notifier,
		filter:    NewFilterState(nil, nil),
		sort:      DefaultSort(),
		overlay:   NewEditOverlay(),
		selection: make(map[string]api.Deployment),
	}
}

// Load fetches the records and projects and brings the filter groups up to
// date.
func (s *Session) Load(ctx context.Context) error {
	snap, err := s.gateway.Load(ctx)
	if err != nil {
		return err
	}
	s.records = snap.Deployments
	s.projects = snap.Projects
	s.filter.Sync(s.projects, s.records)
	s.pruneSelection()
	logger.Debug("History loaded", "deployments", len(s.records), "projects", len(s.projects))
	return nil
}

func (s *Session) pruneSelection() {
	present := make(map[string]bool, len(s.records))
	for _, r := range s.records {
		present[MakeKey(r)] = true
	}
	kept := s.selected[:0]
	for _, key := range s.selected {
		if present[key] {
			kept = append(kept, key)
		} else {
			delete(s.selection, key)
		}
	}
	s.selected = kept
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) Filter() *FilterState {
	return s.filter
}

func (s *Session) Sort() SortStatus {
	return s.sort
}

func (s *Session) SetSort(status SortStatus) {
	s.sort = status
}

// Records returns every loaded record, unfiltered.
func (s *Session) Records() []api.Deployment {
	return s.records
}

func (s *Session) Projects() []api.ProjectDetail {
	return s.projects
}

// Rows returns the filtered, sorted records.
func (s *Session) Rows() []api.Deployment {
	return Project(s.records, s.filter, s.sort)
}

// Find returns the loaded record with the given identity.
func (s *Session) Find(appKey, environment, versionName string) (api.Deployment, error) {
	for _, r := range s.records {
		if r.AppKey == appKey && r.EnvironmentName == environment && r.VersionName == versionName {
			return r, nil
		}
	}
	return api.Deployment{}, fmt.Errorf("%w: %s %s %s", ErrUnknownRecord, appKey, environment, versionName)
}

// Display returns the version name and description shown for a record,
// reading through pending edits while editing.
func (s *Session) Display(r api.Deployment) (name, description string) {
	if s.mode == ModeViewing {
		return r.VersionName, r.VersionDescription
	}
	return s.overlay.Resolve(r)
}

// PendingEdits returns the overlay entries in key order.
func (s *Session) PendingEdits() []OverlayEntry {
	return s.overlay.Entries()
}

func (s *Session) transition(from, to Mode) error {
	if s.mode != from {
		return fmt.Errorf("%w: %s to %s while %s", ErrInvalidTransition, from, to, s.mode)
	}
	s.mode = to
	return nil
}

// BeginEdit enters edit mode with an empty overlay.
func (s *Session) BeginEdit() error {
	if err := s.transition(ModeViewing, ModeEditing); err != nil {
		return err
	}
	s.overlay.Clear()
	return nil
}

// SetEdit records a pending value for a record.
func (s *Session) SetEdit(r api.Deployment, field Field, value string) error {
	if s.mode != ModeEditing {
		return fmt.Errorf("%w: edit while %s", ErrInvalidTransition, s.mode)
	}
	return s.overlay.Set(r, field, value)
}

// RequestCommit asks to apply the pending edits. With nothing pending it
// leaves edit mode directly.
func (s *Session) RequestCommit() error {
	if s.mode != ModeEditing {
		return fmt.Errorf("%w: commit while %s", ErrInvalidTransition, s.mode)
	}
	if s.overlay.Len() == 0 {
		s.leaveEdit()
		return nil
	}
	s.mode = ModeConfirming
	return nil
}

// RequestCancel asks to discard the pending edits. With nothing pending it
// leaves edit mode directly.
func (s *Session) RequestCancel() error {
	if s.mode != ModeEditing {
		return fmt.Errorf("%w: cancel while %s", ErrInvalidTransition, s.mode)
	}
	if s.overlay.Len() == 0 {
		s.leaveEdit()
		return nil
	}
	s.mode = ModeCancelling
	return nil
}

// RequestDelete asks to delete one record.
func (s *Session) RequestDelete(r api.Deployment) error {
	if err := s.transition(ModeEditing, ModeDeletingOne); err != nil {
		return err
	}
	s.pending = &r
	return nil
}

// RequestDeleteSelected asks to delete every selected record.
func (s *Session) RequestDeleteSelected() error {
	if s.mode != ModeEditing {
		return fmt.Errorf("%w: delete while %s", ErrInvalidTransition, s.mode)
	}
	if len(s.selected) == 0 {
		return ErrNothingSelected
	}
	s.mode = ModeDeletingMany
	return nil
}

// PendingDelete returns the record awaiting single deletion.
func (s *Session) PendingDelete() (api.Deployment, bool) {
	if s.pending == nil {
		return api.Deployment{}, false
	}
	return *s.pending, true
}

// Abort answers "no" to the open confirmation and returns to edit mode with
// the overlay and selection untouched.
func (s *Session) Abort() error {
	switch s.mode {
	case ModeConfirming, ModeCancelling, ModeDeletingOne, ModeDeletingMany:
		s.mode = ModeEditing
		s.pending = nil
		return nil
	}
	return fmt.Errorf("%w: abort while %s", ErrInvalidTransition, s.mode)
}

// Confirm answers "yes" to the open confirmation and dispatches it.
func (s *Session) Confirm(ctx context.Context) (BatchResult, error) {
	switch s.mode {
	case ModeConfirming:
		return s.commit(ctx)
	case ModeCancelling:
		s.leaveEdit()
		return BatchResult{}, nil
	case ModeDeletingOne:
		r := *s.pending
		return s.delete(ctx, []api.Deployment{r})
	case ModeDeletingMany:
		return s.delete(ctx, s.Selected())
	}
	return BatchResult{}, fmt.Errorf("%w: confirm while %s", ErrInvalidTransition, s.mode)
}

func (s *Session) leaveEdit() {
	s.overlay.Clear()
	s.ClearSelection()
	s.pending = nil
	s.mode = ModeViewing
}

// commit sends one update per overlay entry, keeps going past failures, then
// reloads and leaves edit mode whatever the outcome.
func (s *Session) commit(ctx context.Context) (BatchResult, error) {
	// a dispatched batch runs to completion
	ctx = context.WithoutCancel(ctx)
	entries := s.overlay.Entries()
	tasks := make([]Task, 0, len(entries))
	for _, e := range entries {
		tasks = append(tasks, Task{
			Key:   e.Key,
			Label: fmt.Sprintf("%s %s", e.Record.AppKey, e.Record.VersionName),
			Run: func(ctx context.Context) error {
				return s.gateway.UpdateVersion(ctx, e.Record.AppKey, e.Record.VersionName, e.Update())
			},
		})
	}

	result := RunBatch(ctx, tasks, ContinueOnError, func(o Outcome) {
		if o.Err != nil {
			logger.Warn("Version update failed", "version", o.Label, "error", o.Err)
			s.notifier.Failure("Failed to update "+o.Label, Describe(o.Err))
			return
		}
		s.overlay.Remove(o.Key)
	})
	if n := len(result.Succeeded()); n > 0 {
		s.notifier.Success("Versions updated", fmt.Sprintf("%d of %d edits saved", n, len(entries)))
	}

	err := s.Load(ctx)
	if err != nil {
		s.notifier.Failure("Failed to reload deployments", Describe(err))
	}
	s.leaveEdit()
	return result, err
}

// delete removes the records one by one and stops at the first failure. Each
// success drops the row and its overlay entry at once. The session stays in
// edit mode so pending edits of other records survive.
func (s *Session) delete(ctx context.Context, records []api.Deployment) (BatchResult, error) {
	ctx = context.WithoutCancel(ctx)
	tasks := make([]Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, Task{
			Key:   MakeKey(r),
			Label: fmt.Sprintf("%s %s on %s", r.AppKey, r.VersionName, r.EnvironmentName),
			Run: func(ctx context.Context) error {
				return s.gateway.DeleteDeployment(ctx, r.AppKey, r.EnvironmentName, r.VersionName)
			},
		})
	}

	result := RunBatch(ctx, tasks, StopOnFirstError, func(o Outcome) {
		if o.Err != nil {
			logger.Warn("Deployment deletion failed", "deployment", o.Label, "error", o.Err)
			s.notifier.Failure("Failed to delete "+o.Label, Describe(o.Err))
			return
		}
		s.overlay.Remove(o.Key)
		s.dropRecord(o.Key)
	})
	if n := len(result.Succeeded()); n > 0 {
		s.notifier.Success("Deployments deleted", fmt.Sprintf("%d of %d deleted", n, len(records)))
	}

	s.ClearSelection()
	s.pending = nil
	s.mode = ModeEditing

	err := s.Load(ctx)
	if err != nil {
		s.notifier.Failure("Failed to reload deployments", Describe(err))
	}
	return result, err
}

func (s *Session) dropRecord(key string) {
	kept := s.records[:0:0]
	for _, r := range s.records {
		if MakeKey(r) != key {
			kept = append(kept, r)
		}
	}
	s.records = kept
}

// Select adds a record to the bulk-delete selection. Selection is only
// available while editing.
func (s *Session) Select(r api.Deployment) error {
	if s.mode != ModeEditing {
		return fmt.Errorf("%w: select while %s", ErrInvalidTransition, s.mode)
	}
	key := MakeKey(r)
	if _, ok := s.selection[key]; ok {
		return nil
	}
	s.selection[key] = r
	s.selected = append(s.selected, key)
	return nil
}

// Deselect removes a record from the selection.
func (s *Session) Deselect(r api.Deployment) {
	key := MakeKey(r)
	if _, ok := s.selection[key]; !ok {
		return
	}
	delete(s.selection, key)
	for i, k := range s.selected {
		if k == key {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			break
		}
	}
}

// IsSelected reports whether a record is selected.
func (s *Session) IsSelected(r api.Deployment) bool {
	_, ok := s.selection[MakeKey(r)]
	return ok
}

// Selected returns the selected records in selection order.
func (s *Session) Selected() []api.Deployment {
	out := make([]api.Deployment, 0, len(s.selected))
	for _, key := range s.selected {
		out = append(out, s.selection[key])
	}
	return out
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() {
	s.selected = nil
	s.selection = make(map[string]api.Deployment)
}

// Describe returns the text shown for a failed call: the server's detail when
// it sent one, the error itself otherwise.
func Describe(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail()
	}
	return err.Error()
}
