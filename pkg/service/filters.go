package service

import (
	"strings"
	"time"

	clierrors "github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/errors"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/history"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/output"
)

const dateLayout = "2006-01-02"

// FilterOptions are the history filters as given on the command line.
type FilterOptions struct {
	From         string
	To           string
	Apps         []string
	Projects     []string
	Environments []string
	// Versions holds "app@version" pairs.
	Versions        []string
	VersionApps     []string
	VersionProjects []string
	SortBy          string
	Order           string
}

func parseDay(flag, value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, clierrors.InvalidFormatError(flag, value, "a date like 2024-01-31")
	}
	return t, nil
}

// DateRange returns the requested range. A single bound selects that day.
func (o FilterOptions) DateRange() (*history.DateRange, error) {
	if o.From == "" && o.To == "" {
		return nil, nil
	}
	from, to := o.From, o.To
	if from == "" {
		from = to
	}
	if to == "" {
		to = from
	}
	start, err := parseDay("--from", from)
	if err != nil {
		return nil, err
	}
	end, err := parseDay("--to", to)
	if err != nil {
		return nil, err
	}
	r := history.NewDateRange(start, end)
	return &r, nil
}

// Sort returns the requested sort, defaulting to newest first.
func (o FilterOptions) Sort() (history.SortStatus, error) {
	status := history.DefaultSort()
	if o.SortBy != "" {
		col, err := history.ParseSortColumn(o.SortBy)
		if err != nil {
			return status, clierrors.InvalidFormatError("sort column", o.SortBy, "one of date, app, name, env, version")
		}
		status.Column = col
		// a column picked without an order sorts ascending
		status.Direction = history.Ascending
	}
	if o.Order != "" {
		dir, err := history.ParseDirection(o.Order)
		if err != nil {
			return status, clierrors.InvalidFormatError("sort order", o.Order, "asc or desc")
		}
		status.Direction = dir
	}
	return status, nil
}

func splitVersion(pair string) (appKey, versionName string, err error) {
	appKey, versionName, ok := strings.Cut(pair, "@")
	if !ok || appKey == "" || versionName == "" {
		return "", "", clierrors.InvalidFormatError("version", pair, "app@version")
	}
	return appKey, versionName, nil
}

// Apply sets the filters on f. Group flags check every member of the group.
func (o FilterOptions) Apply(f *history.FilterState) error {
	r, err := o.DateRange()
	if err != nil {
		return err
	}
	if r != nil {
		f.SetDateRange(*r)
	}

	for _, p := range o.Projects {
		if err := f.SetAppGroup(p, true); err != nil {
			return clierrors.NotFoundError("Project", p)
		}
	}
	for _, a := range o.Apps {
		if err := f.SetApp(a, true); err != nil {
			return clierrors.NotFoundError("App", a)
		}
	}

	if len(o.Environments) > 0 {
		f.SetEnvironments(o.Environments)
	}

	for _, p := range o.VersionProjects {
		if f.VersionProjectState(p) != history.Checked {
			if _, err := f.ToggleVersionProject(p); err != nil {
				return clierrors.NotFoundError("Project with deployed versions", p)
			}
		}
	}
	for _, a := range o.VersionApps {
		if f.VersionComponentState(a) != history.Checked {
			if _, err := f.ToggleVersionComponent(a); err != nil {
				return clierrors.NotFoundError("App with deployed versions", a)
			}
		}
	}
	for _, v := range o.Versions {
		appKey, versionName, err := splitVersion(v)
		if err != nil {
			return err
		}
		if err := f.SetVersion(appKey, versionName, true); err != nil {
			return clierrors.NotFoundError("Deployed version", v)
		}
	}
	return nil
}

// FilterPills describes the active filters as short labels.
func FilterPills(set history.FilterSet) []string {
	var pills []string
	if set.Date != nil {
		pills = append(pills, set.Date.String())
	}
	if n := len(set.Apps); n > 0 {
		pills = append(pills, output.Count(n, "app", "apps", "apps"))
	}
	if n := len(set.Environments); n > 0 {
		pills = append(pills, output.Count(n, "environment", "environments", "environments"))
	}
	if n := len(set.Versions); n > 0 {
		pills = append(pills, output.Count(n, "version", "versions", "versions"))
	}
	return pills
}
