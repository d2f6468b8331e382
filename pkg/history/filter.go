package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/api"
)

var (
	ErrUnknownApp     = errors.New("unknown app")
	ErrUnknownProject = errors.New("unknown project")
	ErrUnknownVersion = errors.New("unknown version")
)

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range over the days of start and end, swapping them
// when given in reverse.
func NewDateRange(start, end time.Time) DateRange {
	s, e := day(start), day(end)
	if e.Before(s) {
		s, e = e, s
	}
	return DateRange{Start: s, End: e}
}

// day maps t to midnight UTC of its own calendar day so that days from
// different zones compare by date only.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t falls on a day between Start and End inclusive.
func (r DateRange) Contains(t time.Time) bool {
	d := day(t)
	return !d.Before(day(r.Start)) && !d.After(day(r.End))
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s - %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// FilterSet is the read-only summary of the active filters.
type FilterSet struct {
	Date         *DateRange
	Apps         []string
	Environments []string
	Versions     []string
}

// Active reports whether any filter restricts the records.
func (s FilterSet) Active() bool {
	return s.Date != nil || len(s.Apps) > 0 || len(s.Environments) > 0 || len(s.Versions) > 0
}

// FilterState is the filter model of the history screen. Every filter is
// inactive when empty; active filters combine with AND.
type FilterState struct {
	dateRange       *DateRange
	apps            *SelectionList
	versions        *SelectionList
	environments    []string
	available       []string
	componentGroups []ComponentGroup
	versionGroups   []VersionGroup
}

// NewFilterState builds an empty filter over the given projects and records.
func NewFilterState(projects []api.ProjectDetail, records []api.Deployment) *FilterState {
	f := &FilterState{}
	f.componentGroups = BuildComponentGroups(projects)
	f.versionGroups = BuildVersionGroups(projects)
	f.apps = NewSelectionList(componentLabels(f.componentGroups))
	f.versions = NewSelectionList(versionLabels(f.versionGroups))
	f.available = EnvironmentNames(records)
	return f
}

// Sync rebuilds the groups after a reload, keeping the selections that still
// exist.
func (f *FilterState) Sync(projects []api.ProjectDetail, records []api.Deployment) {
	f.componentGroups = BuildComponentGroups(projects)
	f.versionGroups = BuildVersionGroups(projects)
	f.apps.Rebuild(componentLabels(f.componentGroups))
	f.versions.Rebuild(versionLabels(f.versionGroups))
	f.available = EnvironmentNames(records)

	known := make(map[string]bool, len(f.available))
	for _, env := range f.available {
		known[env] = true
	}
	kept := f.environments[:0]
	for _, env := range f.environments {
		if known[env] {
			kept = append(kept, env)
		}
	}
	f.environments = kept
}

// SetDateRange activates the date filter.
func (f *FilterState) SetDateRange(r DateRange) {
	f.dateRange = &r
}

// ClearDateRange deactivates the date filter.
func (f *FilterState) ClearDateRange() {
	f.dateRange = nil
}

// DateRange returns the active range, if any.
func (f *FilterState) DateRange() (DateRange, bool) {
	if f.dateRange == nil {
		return DateRange{}, false
	}
	return *f.dateRange, true
}

// ToggleApp flips one component in the apps filter.
func (f *FilterState) ToggleApp(appKey string) error {
	if !f.apps.Toggle(appKey) {
		return fmt.Errorf("%w: %s", ErrUnknownApp, appKey)
	}
	return nil
}

// SetApp checks or unchecks one component in the apps filter.
func (f *FilterState) SetApp(appKey string, checked bool) error {
	if !f.apps.Set(appKey, checked) {
		return fmt.Errorf("%w: %s", ErrUnknownApp, appKey)
	}
	return nil
}

func (f *FilterState) componentGroup(projectKey string) (ComponentGroup, bool) {
	for _, g := range f.componentGroups {
		if g.ProjectKey == projectKey {
			return g, true
		}
	}
	return ComponentGroup{}, false
}

// ToggleAppGroup checks every component of the project, or unchecks them all
// when they already are. It returns the new group state.
func (f *FilterState) ToggleAppGroup(projectKey string) (CheckState, error) {
	g, ok := f.componentGroup(projectKey)
	if !ok {
		return Unchecked, fmt.Errorf("%w: %s", ErrUnknownProject, projectKey)
	}
	return f.apps.ToggleGroup(g.Components), nil
}

// SetAppGroup checks or unchecks every component of the project.
func (f *FilterState) SetAppGroup(projectKey string, checked bool) error {
	g, ok := f.componentGroup(projectKey)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProject, projectKey)
	}
	f.apps.SetAll(g.Components, checked)
	return nil
}

// AppGroupState is the tri-state of a project in the apps filter.
func (f *FilterState) AppGroupState(projectKey string) CheckState {
	g, ok := f.componentGroup(projectKey)
	if !ok {
		return Unchecked
	}
	return f.apps.State(g.Components)
}

// SetEnvironments replaces the selected environments.
func (f *FilterState) SetEnvironments(names []string) {
	seen := make(map[string]bool, len(names))
	var selected []string
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		selected = append(selected, n)
	}
	f.environments = selected
}

// ToggleEnvironment adds or removes one environment from the selection.
func (f *FilterState) ToggleEnvironment(name string) {
	for i, env := range f.environments {
		if env == name {
			f.environments = append(f.environments[:i], f.environments[i+1:]...)
			return
		}
	}
	f.environments = append(f.environments, name)
}

func (f *FilterState) versionComponent(appKey string) (ComponentVersions, bool) {
	for _, g := range f.versionGroups {
		for _, c := range g.Components {
			if c.AppKey == appKey {
				return c, true
			}
		}
	}
	return ComponentVersions{}, false
}

func (f *FilterState) versionGroup(projectKey string) (VersionGroup, bool) {
	for _, g := range f.versionGroups {
		if g.ProjectKey == projectKey {
			return g, true
		}
	}
	return VersionGroup{}, false
}

// ToggleVersion flips one version in the versions filter.
func (f *FilterState) ToggleVersion(appKey, versionName string) error {
	label := VersionLabel(appKey, versionName)
	if !f.versions.Toggle(label) {
		return fmt.Errorf("%w: %s", ErrUnknownVersion, label)
	}
	return nil
}

// SetVersion checks or unchecks one version in the versions filter.
func (f *FilterState) SetVersion(appKey, versionName string, checked bool) error {
	label := VersionLabel(appKey, versionName)
	if !f.versions.Set(label, checked) {
		return fmt.Errorf("%w: %s", ErrUnknownVersion, label)
	}
	return nil
}

// ToggleVersionComponent checks every deployed version of the component, or
// unchecks them all when they already are.
func (f *FilterState) ToggleVersionComponent(appKey string) (CheckState, error) {
	c, ok := f.versionComponent(appKey)
	if !ok {
		return Unchecked, fmt.Errorf("%w: %s", ErrUnknownApp, appKey)
	}
	return f.versions.ToggleGroup(c.Versions), nil
}

// ToggleVersionProject does the same across every component of a project.
func (f *FilterState) ToggleVersionProject(projectKey string) (CheckState, error) {
	g, ok := f.versionGroup(projectKey)
	if !ok {
		return Unchecked, fmt.Errorf("%w: %s", ErrUnknownProject, projectKey)
	}
	return f.versions.ToggleGroup(g.Labels()), nil
}

// VersionComponentState is the tri-state of a component in the versions filter.
func (f *FilterState) VersionComponentState(appKey string) CheckState {
	c, ok := f.versionComponent(appKey)
	if !ok {
		return Unchecked
	}
	return f.versions.State(c.Versions)
}

// VersionProjectState is the tri-state of a project in the versions filter.
// It is Checked only when every component is fully checked.
func (f *FilterState) VersionProjectState(projectKey string) CheckState {
	g, ok := f.versionGroup(projectKey)
	if !ok {
		return Unchecked
	}
	return f.versions.State(g.Labels())
}

// ClearApps unchecks every component.
func (f *FilterState) ClearApps() {
	f.apps.Clear()
}

// ClearEnvironments empties the environment selection.
func (f *FilterState) ClearEnvironments() {
	f.environments = nil
}

// ClearVersions unchecks every version.
func (f *FilterState) ClearVersions() {
	f.versions.Clear()
}

// ResetAll deactivates every filter.
func (f *FilterState) ResetAll() {
	f.ClearDateRange()
	f.ClearApps()
	f.ClearEnvironments()
	f.ClearVersions()
}

// IsFiltered reports whether any filter is active.
func (f *FilterState) IsFiltered() bool {
	return f.dateRange != nil || f.apps.Any() || len(f.environments) > 0 || f.versions.Any()
}

// Summary returns the active filters.
func (f *FilterState) Summary() FilterSet {
	set := FilterSet{
		Apps:     f.apps.Checked(),
		Versions: f.versions.Checked(),
	}
	if f.dateRange != nil {
		r := *f.dateRange
		set.Date = &r
	}
	if len(f.environments) > 0 {
		set.Environments = append([]string(nil), f.environments...)
	}
	return set
}

// Matches reports whether a record passes every active filter.
func (f *FilterState) Matches(r api.Deployment) bool {
	if f.dateRange != nil && !f.dateRange.Contains(r.DeployedAt.Time) {
		return false
	}
	if f.apps.Any() && !f.apps.IsChecked(r.AppKey) {
		return false
	}
	if len(f.environments) > 0 && !contains(f.environments, r.EnvironmentName) {
		return false
	}
	if f.versions.Any() && !f.versions.IsChecked(VersionLabel(r.AppKey, r.VersionName)) {
		return false
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Apps returns the apps filter entries.
func (f *FilterState) Apps() []Selection {
	return f.apps.Items()
}

// Versions returns the versions filter entries.
func (f *FilterState) Versions() []Selection {
	return f.versions.Items()
}

// Environments returns the selected environments.
func (f *FilterState) Environments() []string {
	return append([]string(nil), f.environments...)
}

// AvailableEnvironments returns the environments seen in the records.
func (f *FilterState) AvailableEnvironments() []string {
	return append([]string(nil), f.available...)
}

func (f *FilterState) ComponentGroups() []ComponentGroup {
	return f.componentGroups
}

func (f *FilterState) VersionGroups() []VersionGroup {
	return f.versionGroups
}
