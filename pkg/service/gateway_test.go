package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIGatewayLoad(t *testing.T) {
	withPage(t)

	snap, err := NewAPIGateway().Load(context.Background())

	require.NoError(t, err)
	assert.Len(t, snap.Deployments, 3)
	require.Len(t, snap.Projects, 2)
	assert.Equal(t, "billing", snap.Projects[0].Key)
}

func TestAPIGatewayLoadFailsWhenEitherReadFails(t *testing.T) {
	newFakeAPI(t).
		on(http.MethodGet, "/deployments", http.StatusOK, deploymentsJSON).
		on(http.MethodGet, "/apps", http.StatusInternalServerError, `{"message":"Internal Server Error","details":"db down"}`)

	snap, err := NewAPIGateway().Load(context.Background())

	assert.Nil(t, snap)
	require.Error(t, err)
	assert.True(t, api.IsServerError(err))
	assert.ErrorContains(t, err, "failed to fetch projects")
}

func TestAPIGatewayMutations(t *testing.T) {
	f := newFakeAPI(t).
		on(http.MethodPut, "/apps/shop/versions/3.0", http.StatusOK, ``).
		on(http.MethodDelete, "/apps/shop/envs/prod/versions/3.0/deployment", http.StatusOK, ``)
	gw := NewAPIGateway()

	require.NoError(t, gw.UpdateVersion(context.Background(), "shop", "3.0", api.VersionUpdate{Name: "3.1"}))
	require.NoError(t, gw.DeleteDeployment(context.Background(), "shop", "prod", "3.0"))

	assert.Equal(t, []string{
		"PUT /apps/shop/versions/3.0",
		"DELETE /apps/shop/envs/prod/versions/3.0/deployment",
	}, f.calls(false))
}
