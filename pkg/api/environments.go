package api

import (
	"context"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/client"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/logger"
)

// ListEnvironments retrieves the environments of an app
func ListEnvironments(ctx context.Context, appKey string) ([]Environment, error) {
	logger.Debug("Fetching environments", "app", appKey)

	var envs []Environment
	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetPathParam("appKey", appKey).
		SetResult(&envs).
		Get("/apps/{appKey}/envs")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return envs, nil
}

// AddEnvironment adds a deployment target to an app
func AddEnvironment(ctx context.Context, appKey, name string) error {
	logger.Debug("Adding environment", "app", appKey, "env", name)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetPathParam("appKey", appKey).
		SetBody(EnvironmentRequest{AppKey: appKey, Name: name}).
		Post("/apps/{appKey}/envs")

	return CheckResponse(resp, err)
}
