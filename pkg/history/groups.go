package history

import (
	"sort"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/api"
)

// ComponentGroup is a project and the keys of its components, the project's
// own key included when the server lists it as a component.
type ComponentGroup struct {
	ProjectKey string
	Components []string
}

// ComponentVersions is a component and the labels of its deployed versions.
type ComponentVersions struct {
	AppKey   string
	Versions []string
}

// VersionGroup is a project with the deployed versions of each component.
type VersionGroup struct {
	ProjectKey string
	Components []ComponentVersions
}

// Labels returns every version label of the project.
func (g VersionGroup) Labels() []string {
	var out []string
	for _, c := range g.Components {
		out = append(out, c.Versions...)
	}
	return out
}

// VersionLabel is the filter label of a version: "<appKey>-<versionName>".
func VersionLabel(appKey, versionName string) string {
	return appKey + "-" + versionName
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedProjects(projects []api.ProjectDetail) []api.ProjectDetail {
	out := make([]api.ProjectDetail, len(projects))
	copy(out, projects)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// BuildComponentGroups groups component keys by project, both sorted by key.
func BuildComponentGroups(projects []api.ProjectDetail) []ComponentGroup {
	groups := make([]ComponentGroup, 0, len(projects))
	for _, p := range sortedProjects(projects) {
		groups = append(groups, ComponentGroup{
			ProjectKey: p.Key,
			Components: sortedKeys(p.Components),
		})
	}
	return groups
}

// BuildVersionGroups groups version labels by project and component. Only
// versions deployed at least once are selectable; components and projects
// left without any are omitted.
func BuildVersionGroups(projects []api.ProjectDetail) []VersionGroup {
	var groups []VersionGroup
	for _, p := range sortedProjects(projects) {
		group := VersionGroup{ProjectKey: p.Key}
		for _, appKey := range sortedKeys(p.Versions) {
			cv := ComponentVersions{AppKey: appKey}
			for _, v := range p.Versions[appKey] {
				if v.Deployed() {
					cv.Versions = append(cv.Versions, VersionLabel(appKey, v.Name))
				}
			}
			if len(cv.Versions) > 0 {
				group.Components = append(group.Components, cv)
			}
		}
		if len(group.Components) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

func componentLabels(groups []ComponentGroup) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g.Components...)
	}
	return out
}

func versionLabels(groups []VersionGroup) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g.Labels()...)
	}
	return out
}

// EnvironmentNames returns the distinct environment names of the records,
// sorted.
func EnvironmentNames(records []api.Deployment) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if r.EnvironmentName == "" || seen[r.EnvironmentName] {
			continue
		}
		seen[r.EnvironmentName] = true
		out = append(out, r.EnvironmentName)
	}
	sort.Strings(out)
	return out
}
