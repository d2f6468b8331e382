package cmd

import (
	"sort"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/prompter"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/service"
	"github.com/spf13/cobra"
)

var (
	projectKey          string
	projectName         string
	projectEnvironments []string
	projectComponents   map[string]string
	projectForce        bool
	projectYes          bool
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project", "apps"},
	Short:   "Project commands",
	Long:    "List, inspect, create and archive projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects with their latest deployment",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProjectService(prompter.Stdio()).ListProjects(cmd.Context())
	},
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <project-key>",
	Short: "Show a project's components and versions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProjectService(prompter.Stdio()).ShowProject(cmd.Context(), args[0])
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project",
	Long: `Create a project together with its environments and components.

Without --key the project is asked for interactively.`,
	Example: `  deploydash projects create --key pay --name Payments --env dev --env prod --component pay-api=API`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ps := service.NewProjectService(prompter.Stdio())

		draft := service.ProjectDraft{
			Key:          projectKey,
			Name:         projectName,
			Environments: projectEnvironments,
		}
		keys := make([]string, 0, len(projectComponents))
		for key := range projectComponents {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			draft.Components = append(draft.Components, service.ComponentDraft{Key: key, Name: projectComponents[key]})
		}
		if projectKey == "" {
			var err error
			if draft, err = ps.PromptProject(); err != nil {
				return err
			}
		}
		return ps.CreateProject(cmd.Context(), draft)
	},
}

var projectsArchiveCmd = &cobra.Command{
	Use:   "archive <project-key>",
	Short: "Archive a project, or delete it with --force",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProjectService(prompter.Stdio()).ArchiveProject(cmd.Context(), args[0], projectForce, projectYes)
	},
}

var componentsCmd = &cobra.Command{
	Use:     "components",
	Aliases: []string{"component"},
	Short:   "Component commands",
}

var componentsAddCmd = &cobra.Command{
	Use:   "add <project-key> <component-key> <name>",
	Short: "Add a component to a project",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProjectService(prompter.Stdio()).AddComponent(cmd.Context(), args[0], args[1], args[2])
	},
}

var envsCmd = &cobra.Command{
	Use:     "envs",
	Aliases: []string{"env", "environments"},
	Short:   "Environment commands",
}

var envsListCmd = &cobra.Command{
	Use:   "list <app-key>",
	Short: "List the environments of an app",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProjectService(prompter.Stdio()).ListEnvironments(cmd.Context(), args[0])
	},
}

var envsAddCmd = &cobra.Command{
	Use:   "add <app-key> <name>",
	Short: "Add an environment to an app",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewProjectService(prompter.Stdio()).AddEnvironment(cmd.Context(), args[0], args[1])
	},
}

func init() {
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsShowCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsArchiveCmd)

	componentsCmd.AddCommand(componentsAddCmd)

	envsCmd.AddCommand(envsListCmd)
	envsCmd.AddCommand(envsAddCmd)

	projectsCreateCmd.Flags().StringVar(&projectKey, "key", "", "Project key")
	projectsCreateCmd.Flags().StringVar(&projectName, "name", "", "Project name")
	projectsCreateCmd.Flags().StringSliceVar(&projectEnvironments, "env", nil, "Environment name (repeatable)")
	projectsCreateCmd.Flags().StringToStringVar(&projectComponents, "component", nil, "Component as key=name (repeatable)")

	projectsArchiveCmd.Flags().BoolVar(&projectForce, "force", false, "Delete the project and its history instead of archiving it")
	projectsArchiveCmd.Flags().BoolVarP(&projectYes, "yes", "y", false, "Skip the confirmation prompt")
}
