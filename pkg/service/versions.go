package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/api"
	clierrors "github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/errors"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/logger"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/output"
)

// VersionService provides version operations
type VersionService struct{}

// NewVersionService creates a new version service
func NewVersionService() *VersionService {
	return &VersionService{}
}

// findVersion looks a version up across every project.
func findVersion(projects []api.ProjectDetail, appKey, versionName string) (api.Version, bool) {
	for _, p := range projects {
		for _, v := range p.Versions[appKey] {
			if v.Name == versionName {
				return v, true
			}
		}
	}
	return api.Version{}, false
}

// UpdateVersion renames a version or changes its description. A nil value
// keeps the current one.
func (vs *VersionService) UpdateVersion(ctx context.Context, appKey, versionName string, name, description *string) error {
	logger.Debug("Updating version", "app", appKey, "version", versionName)

	if name == nil && description == nil {
		return clierrors.ValidationError("version", "nothing to update, pass --name or --description")
	}

	projects, err := api.ListProjectDetails(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch projects: %w", err)
	}
	current, ok := findVersion(projects, appKey, versionName)
	if !ok {
		return clierrors.NotFoundError("Version", appKey+" "+versionName)
	}

	update := api.VersionUpdate{Name: current.Name, Description: current.Description}
	if name != nil {
		update.Name = strings.TrimSpace(*name)
		if update.Name == "" {
			return clierrors.ValidationError("name", "version name must not be empty")
		}
	}
	if description != nil {
		update.Description = *description
	}

	if err := api.UpdateVersion(ctx, appKey, versionName, update); err != nil {
		return fmt.Errorf("failed to update version: %w", err)
	}
	output.PrintSuccess("Version %s of %s updated", update.Name, appKey)
	return nil
}
