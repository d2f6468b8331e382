package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	paths := []string{
		"projects list",
		"projects show",
		"projects create",
		"projects archive",
		"components add",
		"envs list",
		"envs add",
		"deployments list",
		"deployments delete",
		"deployments record",
		"deployments edit",
		"versions update",
		"auth login",
		"auth logout",
		"auth status",
		"completion",
		"version",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			args := strings.Fields(path)
			c, _, err := rootCmd.Find(args)
			require.NoError(t, err)
			assert.Equal(t, args[len(args)-1], c.Name())
		})
	}
}

func TestFilterFlagsShared(t *testing.T) {
	for _, c := range []string{"list", "delete", "edit"} {
		cmd, _, err := rootCmd.Find([]string{"deployments", c})
		require.NoError(t, err)
		for _, name := range []string{"from", "to", "app", "project", "env", "version", "version-app", "version-project", "sort", "order"} {
			assert.NotNil(t, cmd.Flags().Lookup(name), "%s --%s", c, name)
		}
	}
}

func TestDeleteArgs(t *testing.T) {
	assert.NoError(t, deploymentsDeleteCmd.Args(deploymentsDeleteCmd, nil))
	assert.NoError(t, deploymentsDeleteCmd.Args(deploymentsDeleteCmd, []string{"billing-api", "prod", "1.0"}))
	assert.Error(t, deploymentsDeleteCmd.Args(deploymentsDeleteCmd, []string{"billing-api"}))
}
