package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/client"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/config"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/credentials"
	clierrors "github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/errors"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/logger"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/output"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
	apiURL     string
)

var rootCmd = &cobra.Command{
	Use:   "deploydash",
	Short: "DeployDash - deployment tracking dashboard",
	Long: `DeployDash is a command-line client for the deployment tracking
dashboard. Browse and filter the deployment history, fix version names and
descriptions, and manage projects, components and environments.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("initializing config: %w", err)
		}

		logger.Init(verbose)

		if !output.ValidateOutputFormat(outputFmt) {
			return clierrors.InvalidFormatError("output format", outputFmt, "text, json or table")
		}
		config.Set("output.format", outputFmt)

		if apiURL != "" {
			client.SetBaseURL(apiURL)
		} else {
			client.Init()
		}

		// an exported DEPLOYDASH_API_TOKEN wins over the stored one
		if token := config.GetString("api.token"); token != "" {
			client.SetAuthToken(token)
			return nil
		}
		creds, err := credentials.Load()
		if err != nil {
			logger.Warn("Ignoring unreadable credentials", "error", err)
			return nil
		}
		if creds.IsValid() && creds.AppliesTo(client.GetClient().BaseURL) {
			client.SetAuthToken(creds.Token)
		} else if creds != nil && creds.IsExpired() {
			logger.Warn("Stored API token has expired, run auth login")
		}
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprint(os.Stderr, clierrors.FormatError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/deploydash/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "Output format: text, json, table")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API root, overrides api.base_url")

	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(componentsCmd)
	rootCmd.AddCommand(envsCmd)
	rootCmd.AddCommand(deploymentsCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(versionCmd)
}
