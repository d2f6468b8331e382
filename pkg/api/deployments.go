package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/client"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/logger"
)

// ListDeployments retrieves every recorded deployment
func ListDeployments(ctx context.Context) ([]Deployment, error) {
	logger.Debug("Fetching deployments")

	var deployments []Deployment
	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetResult(&deployments).
		Get("/deployments")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return deployments, nil
}

// DeleteDeployment removes the record of a version deployed to an environment
func DeleteDeployment(ctx context.Context, appKey, environment, versionName string) error {
	logger.Debug("Deleting deployment", "app", appKey, "env", environment, "version", versionName)

	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"appKey":      appKey,
			"env":         environment,
			"versionName": versionName,
		}).
		Delete("/apps/{appKey}/envs/{env}/versions/{versionName}/deployment")

	return CheckResponse(resp, err)
}

// RecordRequest registers that components of an app were deployed to an
// environment. Versions maps component key to version name.
type RecordRequest struct {
	AppKey      string
	Environment string
	Versions    map[string]string
	Ticket      string
	Force       bool
}

// RecordDeployment registers a deployment. A 400 answer is returned as a
// RecordResponse with ForceURL set together with an *APIError; callers may
// repeat the request with Force to override the server's objection.
func RecordDeployment(ctx context.Context, req RecordRequest) (*RecordResponse, error) {
	if len(req.Versions) == 0 {
		return nil, fmt.Errorf("at least one component version is required")
	}
	logger.Debug("Recording deployment", "app", req.AppKey, "env", req.Environment, "force", req.Force)

	params := make(map[string]string, len(req.Versions)+1)
	for component, version := range req.Versions {
		params[component] = version
	}
	if req.Ticket != "" {
		params["ticket"] = req.Ticket
	}

	path := "/apps/{appKey}/envs/{env}/versions"
	if req.Force {
		path = "/force" + path
	}

	var result RecordResponse
	resp, err := client.GetClient().
		R().
		SetContext(ctx).
		SetPathParams(map[string]string{"appKey": req.AppKey, "env": req.Environment}).
		SetQueryParams(params).
		SetResult(&result).
		Get(path)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() == http.StatusBadRequest {
		var refused RecordResponse
		if err := json.Unmarshal(resp.Body(), &refused); err != nil {
			logger.Debug("Undecodable refusal body", "app", req.AppKey, "env", req.Environment, "error", err)
		}
		return &refused, ParseError(resp)
	}
	if !resp.IsSuccess() {
		return nil, ParseError(resp)
	}

	return &result, nil
}
