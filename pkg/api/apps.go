package api

import (
	"context"
	"strconv"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/client"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/logger"
)

// ListProjectDetails retrieves every project with its components and versions
func ListProjectDetails(ctx context.Context) ([]ProjectDetail, error) {
	logger.Debug("Fetching project details")

	var projects []ProjectDetail
	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetResult(&projects).
		Get("/apps")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return projects, nil
}

// ListProjectOverviews retrieves the latest-deployment summary of every project
func ListProjectOverviews(ctx context.Context) ([]ProjectOverview, error) {
	logger.Debug("Fetching project overviews")

	var overviews []ProjectOverview
	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetResult(&overviews).
		Get("/apps-overview")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return overviews, nil
}

// GetApp retrieves a single project
func GetApp(ctx context.Context, appKey string) (*ProjectDetail, error) {
	logger.Debug("Fetching app", "app", appKey)

	var project ProjectDetail
	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetPathParam("appKey", appKey).
		SetResult(&project).
		Get("/apps/{appKey}")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return &project, nil
}

// CreateApp creates a project, or a component when ParentKey is set
func CreateApp(ctx context.Context, req AppRequest) error {
	logger.Debug("Creating app", "key", req.Key, "parent", req.ParentKey)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetBody(req).
		Post("/apps")

	return CheckResponse(resp, err)
}

// ArchiveApp archives an app, or deletes it outright when force is set
func ArchiveApp(ctx context.Context, appKey string, force bool) error {
	logger.Debug("Archiving app", "app", appKey, "force", force)

	r := client.GetClient().
		R().
		SetContext(ctx).
		SetPathParam("appKey", appKey)
	if force {
		r.SetQueryParam("force", strconv.FormatBool(force))
	}

	resp, err := r.Delete("/apps/{appKey}")
	return CheckResponse(resp, err)
}
