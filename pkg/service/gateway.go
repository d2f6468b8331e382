package service

import (
	"context"
	"fmt"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/api"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/history"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// APIGateway serves a history session from the HTTP API.
type APIGateway struct{}

// NewAPIGateway creates a new API gateway
func NewAPIGateway() *APIGateway {
	return &APIGateway{}
}

// Load fetches the deployment list and the project details concurrently. No
// state is built unless both succeed.
func (g *APIGateway) Load(ctx context.Context) (*history.Snapshot, error) {
	var snap history.Snapshot
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		deployments, err := api.ListDeployments(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch deployments: %w", err)
		}
		snap.Deployments = deployments
		return nil
	})
	eg.Go(func() error {
		projects, err := api.ListProjectDetails(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch projects: %w", err)
		}
		snap.Projects = projects
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("Page loaded", "deployments", len(snap.Deployments), "projects", len(snap.Projects))
	return &snap, nil
}

func (g *APIGateway) UpdateVersion(ctx context.Context, appKey, versionName string, update api.VersionUpdate) error {
	return api.UpdateVersion(ctx, appKey, versionName, update)
}

func (g *APIGateway) DeleteDeployment(ctx context.Context, appKey, environment, versionName string) error {
	return api.DeleteDeployment(ctx, appKey, environment, versionName)
}
