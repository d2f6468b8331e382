package cmd

import (
	"time"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/prompter"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/service"
	"github.com/spf13/cobra"
)

var (
	loginToken string
	loginTTL   time.Duration
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Manage the API token sent with every request",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService(prompter.Stdio()).Login(cmd.Context(), loginToken, loginTTL)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService(prompter.Stdio()).Logout()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService(prompter.Stdio()).Status()
	},
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)

	loginCmd.Flags().StringVar(&loginToken, "token", "", "API token (prompted for when omitted)")
	loginCmd.Flags().DurationVar(&loginTTL, "ttl", 0, "Forget the token after this long, 0 keeps it")
}
