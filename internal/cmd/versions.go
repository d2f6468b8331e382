package cmd

import (
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/service"
	"github.com/spf13/cobra"
)

var (
	versionNewName     string
	versionDescription string
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Version commands",
}

var versionsUpdateCmd = &cobra.Command{
	Use:   "update <app-key> <version>",
	Short: "Rename a version or change its description",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var name, description *string
		if cmd.Flags().Changed("name") {
			name = &versionNewName
		}
		if cmd.Flags().Changed("description") {
			description = &versionDescription
		}
		return service.NewVersionService().UpdateVersion(cmd.Context(), args[0], args[1], name, description)
	},
}

func init() {
	versionsCmd.AddCommand(versionsUpdateCmd)

	versionsUpdateCmd.Flags().StringVar(&versionNewName, "name", "", "New version name")
	versionsUpdateCmd.Flags().StringVar(&versionDescription, "description", "", "New description, empty to clear it")
}
