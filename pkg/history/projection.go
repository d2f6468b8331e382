package history

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/api"
)

// SortColumn names a sortable column of the history table.
type SortColumn string

const (
	ColumnDeployedAt  SortColumn = "deployedAt"
	ColumnAppKey      SortColumn = "appKey"
	ColumnAppName     SortColumn = "appName"
	ColumnEnvironment SortColumn = "environmentName"
	ColumnVersion     SortColumn = "versionName"
)

var sortColumns = []SortColumn{ColumnDeployedAt, ColumnAppKey, ColumnAppName, ColumnEnvironment, ColumnVersion}

// ParseSortColumn accepts a column name, case-insensitively, plus the short
// aliases "date", "app", "name", "env" and "version".
func ParseSortColumn(s string) (SortColumn, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date":
		return ColumnDeployedAt, nil
	case "app":
		return ColumnAppKey, nil
	case "name":
		return ColumnAppName, nil
	case "env", "environment":
		return ColumnEnvironment, nil
	case "version":
		return ColumnVersion, nil
	}
	for _, c := range sortColumns {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown sort column %q", s)
}

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection accepts "asc", "ascending", "desc" and "descending".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// SortStatus is the active sort of the history table.
type SortStatus struct {
	Column    SortColumn
	Direction Direction
}

// DefaultSort shows the most recent deployments first.
func DefaultSort() SortStatus {
	return SortStatus{Column: ColumnDeployedAt, Direction: Descending}
}

func lessBy(column SortColumn, rows []api.Deployment) func(i, j int) bool {
	switch column {
	case ColumnAppKey:
		return func(i, j int) bool { return rows[i].AppKey < rows[j].AppKey }
	case ColumnAppName:
		return func(i, j int) bool { return rows[i].AppName < rows[j].AppName }
	case ColumnEnvironment:
		return func(i, j int) bool { return rows[i].EnvironmentName < rows[j].EnvironmentName }
	case ColumnVersion:
		return func(i, j int) bool { return rows[i].VersionName < rows[j].VersionName }
	default:
		return func(i, j int) bool { return rows[i].DeployedAt.Before(rows[j].DeployedAt.Time) }
	}
}

// Project returns the records that pass the filter, sorted. Records are first
// sorted ascending with a stable sort and reversed for descending order, so
// ties keep their input order ascending and appear reversed descending. The
// input slice is not modified; a nil filter passes everything.
func Project(records []api.Deployment, filter *FilterState, status SortStatus) []api.Deployment {
	rows := make([]api.Deployment, 0, len(records))
	for _, r := range records {
		if filter == nil || filter.Matches(r) {
			rows = append(rows, r)
		}
	}

	sort.SliceStable(rows, lessBy(status.Column, rows))
	if status.Direction == Descending {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}
	return rows
}
