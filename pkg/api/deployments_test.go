package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/logger"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDeployments(t *testing.T) {
	requests := newTestServer(t, http.StatusOK, `[
		{"appKey":"billing","appName":"Billing","environmentName":"prod","versionName":"1.0","deployedAt":"2024-01-01T10:30:00","jiraUrl":"https://jira.example.com/browse/DD-1"},
		{"appKey":"billing-ui","appName":"Billing UI","environmentName":"test","versionName":"2.0","versionDescription":"hotfix","deployedAt":"2024-02-01T08:00:00.123"}
	]`)

	deployments, err := ListDeployments(context.Background())
	require.NoError(t, err)
	require.Len(t, deployments, 2)

	assert.Equal(t, "GET", requests.at(0).Method)
	assert.Equal(t, "/deployments", requests.at(0).Path)

	first := deployments[0]
	assert.Equal(t, "billing", first.AppKey)
	assert.Equal(t, "prod", first.EnvironmentName)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 30, 0, 0, time.Local), first.DeployedAt.Time)
	assert.Equal(t, "https://jira.example.com/browse/DD-1", first.JiraURL)
	assert.Equal(t, "hotfix", deployments[1].VersionDescription)
}

func TestListDeployments_ServerError(t *testing.T) {
	newTestServer(t, http.StatusInternalServerError,
		`{"timestamp":"2024-01-01T10:00:00","statusCode":"INTERNAL_SERVER_ERROR","message":"Boom","details":"database unavailable","path":"/api/deployments"}`)

	deployments, err := ListDeployments(context.Background())
	require.Error(t, err)
	assert.Nil(t, deployments)
	assert.True(t, IsServerError(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "database unavailable", apiErr.Detail())
}

func TestDeleteDeployment_EscapesPath(t *testing.T) {
	requests := newTestServer(t, http.StatusOK, "")

	err := DeleteDeployment(context.Background(), "billing", "pre prod", "1.0/rc")
	require.NoError(t, err)

	req := requests.at(0)
	assert.Equal(t, "DELETE", req.Method)
	assert.Equal(t, "/apps/billing/envs/pre%20prod/versions/1.0%2Frc/deployment", req.Path)
}

func TestDeleteDeployment_Conflict(t *testing.T) {
	newTestServer(t, http.StatusConflict, `{"statusCode":409,"message":"Deletion not allowed","details":"deployment is the latest one"}`)

	err := DeleteDeployment(context.Background(), "billing", "prod", "1.0")
	require.Error(t, err)
	assert.True(t, IsConflict(err))
}

func TestRecordDeployment(t *testing.T) {
	requests := newTestServer(t, http.StatusOK, `{"statusCode":"OK","message":"Recorded"}`)

	resp, err := RecordDeployment(context.Background(), RecordRequest{
		AppKey:      "billing",
		Environment: "prod",
		Versions:    map[string]string{"billing-api": "1.4.0", "billing-ui": "1.4.1"},
		Ticket:      "6f1c",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusCode(http.StatusOK), resp.StatusCode)

	req := requests.at(0)
	assert.Equal(t, "/apps/billing/envs/prod/versions", req.Path)
	assert.Equal(t, []string{"1.4.0"}, req.Query["billing-api"])
	assert.Equal(t, []string{"6f1c"}, req.Query["ticket"])
}

func TestRecordDeployment_RefusedThenForced(t *testing.T) {
	requests := newTestServer(t, http.StatusBadRequest,
		`{"statusCode":"BAD_REQUEST","message":"Rollback","details":"version 1.0 is older than deployed 1.1","forceDeploymentEvidenceUrl":"http://x/force"}`)

	req := RecordRequest{AppKey: "billing", Environment: "prod", Versions: map[string]string{"billing": "1.0"}}
	resp, err := RecordDeployment(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsBadRequest(err))
	require.NotNil(t, resp)
	assert.Equal(t, "http://x/force", resp.ForceURL)

	req.Force = true
	_, _ = RecordDeployment(context.Background(), req)
	assert.Equal(t, "/force/apps/billing/envs/prod/versions", requests.at(1).Path)
}

func TestRecordDeployment_RequiresVersions(t *testing.T) {
	_, err := RecordDeployment(context.Background(), RecordRequest{AppKey: "billing", Environment: "prod"})
	assert.Error(t, err)
}

func TestRecordDeployment_UndecodableRefusalIsLogged(t *testing.T) {
	var logs bytes.Buffer
	logger.InitWithWriter(&logs, log.DebugLevel)
	t.Cleanup(func() { logger.InitWithWriter(io.Discard, log.InfoLevel) })
	newTestServer(t, http.StatusBadRequest, `{"forceDeploymentEvidenceUrl":`)

	resp, err := RecordDeployment(context.Background(), RecordRequest{AppKey: "billing", Environment: "prod", Versions: map[string]string{"billing": "1.0"}})

	require.Error(t, err)
	assert.True(t, IsBadRequest(err))
	require.NotNil(t, resp)
	assert.Empty(t, resp.ForceURL)
	assert.Contains(t, logs.String(), "Undecodable refusal body")
}
