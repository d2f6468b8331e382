package cmd

import (
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/api"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/prompter"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	filterOpts     service.FilterOptions
	deployYes      bool
	recordVersions map[string]string
	recordTicket   string
	recordForce    bool
)

func newDeploymentService() *service.DeploymentService {
	return service.NewDeploymentService(service.NewAPIGateway(), service.NewConsoleNotifier(), prompter.Stdio())
}

// addFilterFlags binds the history filters shared by list, delete and edit.
func addFilterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&filterOpts.From, "from", "", "First day shown, YYYY-MM-DD")
	fs.StringVar(&filterOpts.To, "to", "", "Last day shown, YYYY-MM-DD")
	fs.StringSliceVar(&filterOpts.Apps, "app", nil, "Only these components (repeatable)")
	fs.StringSliceVar(&filterOpts.Projects, "project", nil, "Only the components of these projects (repeatable)")
	fs.StringSliceVar(&filterOpts.Environments, "env", nil, "Only these environments (repeatable)")
	fs.StringSliceVar(&filterOpts.Versions, "version", nil, "Only this version, as app@version (repeatable)")
	fs.StringSliceVar(&filterOpts.VersionApps, "version-app", nil, "Every deployed version of these components (repeatable)")
	fs.StringSliceVar(&filterOpts.VersionProjects, "version-project", nil, "Every deployed version of these projects (repeatable)")
	fs.StringVar(&filterOpts.SortBy, "sort", "", "Sort column: date, app, name, env, version")
	fs.StringVar(&filterOpts.Order, "order", "", "Sort order: asc or desc")
}

var deploymentsCmd = &cobra.Command{
	Use:     "deployments",
	Aliases: []string{"deployment", "deploys", "history"},
	Short:   "Deployment history commands",
	Long:    "Browse, record, edit and delete deployments",
}

var deploymentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the deployment history",
	Example: `  deploydash deployments list --from 2024-01-01 --to 2024-01-31 --env prod
  deploydash deployments list --project billing --sort app --order asc`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newDeploymentService().ListDeployments(cmd.Context(), filterOpts)
	},
}

var deploymentsDeleteCmd = &cobra.Command{
	Use:   "delete [<app-key> <env> <version>]",
	Short: "Delete one deployment, or every deployment matching the filters",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return nil
		}
		return cobra.ExactArgs(3)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ds := newDeploymentService()
		if len(args) == 3 {
			return ds.DeleteDeployment(cmd.Context(), args[0], args[1], args[2], deployYes)
		}
		return ds.DeleteDeployments(cmd.Context(), filterOpts, deployYes)
	},
}

var deploymentsRecordCmd = &cobra.Command{
	Use:     "record <app-key> <env>",
	Short:   "Record a deployment",
	Args:    cobra.ExactArgs(2),
	Example: `  deploydash deployments record billing prod --version billing-api=1.1 --version billing-ui=0.9 --ticket BILL-12`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newDeploymentService().RecordDeployment(cmd.Context(), api.RecordRequest{
			AppKey:      args[0],
			Environment: args[1],
			Versions:    recordVersions,
			Ticket:      recordTicket,
			Force:       recordForce,
		}, deployYes)
	},
}

var deploymentsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit version names and descriptions interactively",
	Long: `Open the filtered history in edit mode. Changes are kept as pending
edits and sent together on save. Type help inside the session for commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newDeploymentService().EditDeployments(cmd.Context(), filterOpts)
	},
}

func init() {
	deploymentsCmd.AddCommand(deploymentsListCmd)
	deploymentsCmd.AddCommand(deploymentsDeleteCmd)
	deploymentsCmd.AddCommand(deploymentsRecordCmd)
	deploymentsCmd.AddCommand(deploymentsEditCmd)

	addFilterFlags(deploymentsListCmd.Flags())
	addFilterFlags(deploymentsDeleteCmd.Flags())
	addFilterFlags(deploymentsEditCmd.Flags())

	deploymentsDeleteCmd.Flags().BoolVarP(&deployYes, "yes", "y", false, "Skip the confirmation prompt")

	deploymentsRecordCmd.Flags().StringToStringVar(&recordVersions, "version", nil, "Component version as component=version (repeatable)")
	deploymentsRecordCmd.Flags().StringVar(&recordTicket, "ticket", "", "Jira ticket of the deployment")
	deploymentsRecordCmd.Flags().BoolVar(&recordForce, "force", false, "Record even if the server objects")
	deploymentsRecordCmd.Flags().BoolVarP(&deployYes, "yes", "y", false, "Skip the confirmation prompt")
	_ = deploymentsRecordCmd.MarkFlagRequired("version")
}
