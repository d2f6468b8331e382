package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/api"
	clierrors "github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/errors"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/logger"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/output"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/prompter"
)

// ComponentDraft is a component of a project being created.
type ComponentDraft struct {
	Key  string
	Name string
}

// ProjectDraft is a project being created together with its environments
// and components.
type ProjectDraft struct {
	Key          string
	Name         string
	Environments []string
	Components   []ComponentDraft
}

// Normalize trims every value, lowercases keys and environment names and
// drops duplicate environments.
func (d ProjectDraft) Normalize() ProjectDraft {
	out := ProjectDraft{
		Key:  strings.ToLower(strings.TrimSpace(d.Key)),
		Name: strings.TrimSpace(d.Name),
	}
	seen := make(map[string]bool)
	for _, env := range d.Environments {
		env = strings.ToLower(strings.TrimSpace(env))
		if env == "" || seen[env] {
			continue
		}
		seen[env] = true
		out.Environments = append(out.Environments, env)
	}
	for _, c := range d.Components {
		out.Components = append(out.Components, ComponentDraft{
			Key:  strings.ToLower(strings.TrimSpace(c.Key)),
			Name: strings.TrimSpace(c.Name),
		})
	}
	return out
}

// Validate checks a normalized draft against the keys already in use and
// returns every problem found.
func (d ProjectDraft) Validate(existingKeys []string) error {
	var errs []error
	if d.Key == "" {
		errs = append(errs, clierrors.ValidationError("key", "project key must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, clierrors.ValidationError("name", "project name must not be empty"))
	}
	for _, k := range existingKeys {
		if d.Key != "" && strings.EqualFold(strings.TrimSpace(k), d.Key) {
			errs = append(errs, clierrors.ValidationError("key", "key already exists"))
			break
		}
	}

	seen := make(map[string]bool)
	for i, c := range d.Components {
		field := fmt.Sprintf("components[%d]", i)
		switch {
		case c.Key == "":
			errs = append(errs, clierrors.ValidationError(field, "component key must not be empty"))
		case strings.EqualFold(c.Key, d.Key):
			errs = append(errs, clierrors.ValidationError(field, "component key equals the project key"))
		case seen[strings.ToLower(c.Key)]:
			errs = append(errs, clierrors.ValidationError(field, fmt.Sprintf("component key %q is used twice", c.Key)))
		}
		seen[strings.ToLower(c.Key)] = true
		if c.Name == "" {
			errs = append(errs, clierrors.ValidationError(field, "component name must not be empty"))
		}
		for _, k := range existingKeys {
			if c.Key != "" && strings.EqualFold(strings.TrimSpace(k), c.Key) {
				errs = append(errs, clierrors.ValidationError(field, fmt.Sprintf("key %q already exists", c.Key)))
				break
			}
		}
	}
	return errors.Join(errs...)
}

// ProjectService provides project, component and environment operations
type ProjectService struct {
	prompter *prompter.Prompter
}

// NewProjectService creates a new project service
func NewProjectService(p *prompter.Prompter) *ProjectService {
	return &ProjectService{prompter: p}
}

// ListProjects displays the project overviews
func (ps *ProjectService) ListProjects(ctx context.Context) error {
	logger.Debug("Listing projects")

	projects, err := api.ListProjectOverviews(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	sort.SliceStable(projects, func(i, j int) bool { return projects[i].Key < projects[j].Key })

	if output.GetOutputFormat() == output.FormatJSON {
		return output.PrintJSON(projects)
	}
	if len(projects) == 0 {
		output.PrintInfo("No projects found.")
		return nil
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		last := "-"
		if !p.LastDeployedAt.IsZero() {
			last = fmt.Sprintf("%s %s to %s", p.LastDeployedAt.Format(displayTimeLayout), p.LastDeployedVersionName, p.LastDeployedToEnvName)
		}
		rows = append(rows, []string{
			p.Key,
			p.Name,
			last,
			strings.Join(p.VersionedComponentsNames, ", "),
			p.LastDeploymentJiraURL,
		})
	}
	output.PrintTable([]string{"KEY", "NAME", "LAST DEPLOYMENT", "COMPONENTS", "JIRA"}, rows)
	return nil
}

// ShowProject displays one project with its components, environments and
// version history
func (ps *ProjectService) ShowProject(ctx context.Context, key string) error {
	logger.Debug("Showing project", "key", key)

	project, err := api.GetApp(ctx, key)
	if err != nil {
		if api.IsNotFound(err) {
			return clierrors.NotFoundError("Project", key)
		}
		return fmt.Errorf("failed to fetch project: %w", err)
	}

	if output.GetOutputFormat() == output.FormatJSON {
		return output.PrintJSON(project)
	}

	if err := output.PrintRecord(project, [][2]string{
		{"Key", project.Key},
		{"Name", project.Name},
		{"Environments", strings.Join(project.EnvironmentNames, ", ")},
	}); err != nil {
		return err
	}

	fmt.Fprintln(output.Out)
	rows := [][]string{}
	for _, appKey := range sortedComponentKeys(project) {
		name, _ := project.ComponentName(appKey)
		versions := project.Versions[appKey]
		if len(versions) == 0 {
			rows = append(rows, []string{appKey, name, "-", "", ""})
			continue
		}
		for _, v := range versions {
			rows = append(rows, []string{appKey, name, v.Name, deployedTo(v), output.Truncate(v.Description, 40)})
		}
	}
	output.PrintTable([]string{"COMPONENT", "NAME", "VERSION", "DEPLOYED TO", "DESCRIPTION"}, rows)
	return nil
}

func sortedComponentKeys(p *api.ProjectDetail) []string {
	keys := make([]string, 0, len(p.Components))
	for k := range p.Components {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func deployedTo(v api.Version) string {
	envs := make([]string, 0, len(v.Environments))
	for env, stamp := range v.Environments {
		envs = append(envs, fmt.Sprintf("%s (%s)", env, stamp.Date.Format("2006-01-02")))
	}
	sort.Strings(envs)
	return strings.Join(envs, ", ")
}

// CreateProject creates a project, then its environments, then its
// components, stopping at the first failure.
func (ps *ProjectService) CreateProject(ctx context.Context, draft ProjectDraft) error {
	draft = draft.Normalize()
	logger.Debug("Creating project", "key", draft.Key, "environments", len(draft.Environments), "components", len(draft.Components))

	existing, err := api.ListProjectDetails(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch projects: %w", err)
	}
	var keys []string
	for _, p := range existing {
		keys = append(keys, p.Key)
		for k := range p.Components {
			keys = append(keys, k)
		}
	}
	if err := draft.Validate(keys); err != nil {
		return err
	}

	if err := api.CreateApp(ctx, api.AppRequest{Key: draft.Key, Name: draft.Name}); err != nil {
		if api.IsConflict(err) {
			cliErr := clierrors.ValidationError("key", "key already exists")
			cliErr.Cause = err
			return cliErr
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	for _, env := range draft.Environments {
		if err := api.AddEnvironment(ctx, draft.Key, env); err != nil {
			return fmt.Errorf("project %s created, but adding environment %s failed: %w", draft.Key, env, err)
		}
	}
	for _, c := range draft.Components {
		if err := api.CreateApp(ctx, api.AppRequest{Key: c.Key, Name: c.Name, ParentKey: draft.Key}); err != nil {
			return fmt.Errorf("project %s created, but adding component %s failed: %w", draft.Key, c.Key, err)
		}
	}

	output.PrintSuccess("Project %s created", draft.Name)
	return nil
}

// PromptProject asks for a project draft interactively
func (ps *ProjectService) PromptProject() (ProjectDraft, error) {
	var draft ProjectDraft
	var err error
	if draft.Key, err = ps.prompter.String("Project key: "); err != nil {
		return draft, err
	}
	if draft.Name, err = ps.prompter.String("Project name: "); err != nil {
		return draft, err
	}
	if draft.Environments, err = ps.prompter.List("Environments"); err != nil {
		return draft, err
	}
	for {
		key, err := ps.prompter.String("Component key (empty to finish): ")
		if err != nil {
			return draft, err
		}
		if key == "" {
			return draft, nil
		}
		name, err := ps.prompter.String("Component name: ")
		if err != nil {
			return draft, err
		}
		draft.Components = append(draft.Components, ComponentDraft{Key: key, Name: name})
	}
}

// AddComponent adds a component to an existing project
func (ps *ProjectService) AddComponent(ctx context.Context, projectKey, key, name string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	name = strings.TrimSpace(name)
	if key == "" {
		return clierrors.ValidationError("key", "component key must not be empty")
	}
	if name == "" {
		return clierrors.ValidationError("name", "component name must not be empty")
	}
	if strings.EqualFold(key, projectKey) {
		return clierrors.ValidationError("key", "component key equals the project key")
	}

	if err := api.CreateApp(ctx, api.AppRequest{Key: key, Name: name, ParentKey: projectKey}); err != nil {
		if api.IsConflict(err) {
			return clierrors.ConflictError(fmt.Sprintf("key %s already exists", key), err)
		}
		return fmt.Errorf("failed to add component: %w", err)
	}
	output.PrintSuccess("Component %s added to %s", key, projectKey)
	return nil
}

// ListEnvironments displays the environments of an app
func (ps *ProjectService) ListEnvironments(ctx context.Context, appKey string) error {
	envs, err := api.ListEnvironments(ctx, appKey)
	if err != nil {
		if api.IsNotFound(err) {
			return clierrors.NotFoundError("App", appKey)
		}
		return fmt.Errorf("failed to list environments: %w", err)
	}
	sort.SliceStable(envs, func(i, j int) bool { return envs[i].Name < envs[j].Name })

	rows := make([][]string, 0, len(envs))
	for _, env := range envs {
		rows = append(rows, []string{env.Name})
	}
	return output.PrintList(envs, []string{"ENVIRONMENT"}, rows)
}

// AddEnvironment adds an environment to an app
func (ps *ProjectService) AddEnvironment(ctx context.Context, appKey, name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return clierrors.ValidationError("name", "environment name must not be empty")
	}
	if err := api.AddEnvironment(ctx, appKey, name); err != nil {
		if api.IsConflict(err) {
			return clierrors.ConflictError(fmt.Sprintf("environment %s already exists", name), err)
		}
		return fmt.Errorf("failed to add environment: %w", err)
	}
	output.PrintSuccess("Environment %s added to %s", name, appKey)
	return nil
}

// ArchiveProject archives an app, or deletes it when force is set
func (ps *ProjectService) ArchiveProject(ctx context.Context, key string, force, yes bool) error {
	verb := "Archive"
	if force {
		verb = "Delete"
	}
	if !yes {
		ok, err := ps.prompter.Confirm(fmt.Sprintf("%s %s?", verb, key))
		if err != nil {
			return err
		}
		if !ok {
			output.PrintInfo("Cancelled.")
			return nil
		}
	}

	if err := api.ArchiveApp(ctx, key, force); err != nil {
		if api.IsNotFound(err) {
			return clierrors.NotFoundError("App", key)
		}
		return err
	}
	if force {
		output.PrintSuccess("%s deleted", key)
	} else {
		output.PrintSuccess("%s archived", key)
	}
	return nil
}
