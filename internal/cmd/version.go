package cmd

import (
	"fmt"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/client"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show CLI version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), client.UserAgent)
	},
}
