package service

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/client"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/config"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initConfig(t *testing.T) {
	t.Helper()
	require.NoError(t, config.Init(filepath.Join(t.TempDir(), "config.toml")))
	t.Cleanup(client.ClearAuthToken)
}

func TestLoginSavesCheckedToken(t *testing.T) {
	initConfig(t)
	f := newFakeAPI(t).on(http.MethodGet, "/apps-overview", http.StatusOK, `[]`)
	out := captureOutput(t)

	err := NewAuthService(scripted("tok-123\n")).Login(context.Background(), "", time.Hour)

	require.NoError(t, err)
	assert.Equal(t, []string{"GET /apps-overview"}, f.calls(false))
	creds, err := credentials.Load()
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "tok-123", creds.Token)
	assert.Equal(t, client.GetClient().BaseURL, creds.BaseURL)
	assert.WithinDuration(t, time.Now().Add(time.Hour), creds.ExpiresAt, time.Minute)
	assert.Contains(t, out.String(), "Logged in to")
}

func TestLoginRejectedToken(t *testing.T) {
	initConfig(t)
	newFakeAPI(t).on(http.MethodGet, "/apps-overview", http.StatusUnauthorized, `{"message":"Unauthorized"}`)
	captureOutput(t)

	err := NewAuthService(scripted("")).Login(context.Background(), "bad", 0)

	assert.ErrorContains(t, err, "token check failed")
	creds, _ := credentials.Load()
	assert.Nil(t, creds)
}

func TestLoginEmptyToken(t *testing.T) {
	initConfig(t)
	f := newFakeAPI(t)
	captureOutput(t)

	err := NewAuthService(scripted("\n")).Login(context.Background(), "", 0)

	assert.Error(t, err)
	assert.Empty(t, f.calls(false))
}

func TestLogoutAndStatus(t *testing.T) {
	initConfig(t)
	require.NoError(t, credentials.Save(&credentials.Credentials{Token: "tok", BaseURL: "http://deploy.example.com/api", SavedAt: time.Now()}))
	out := captureOutput(t)
	auth := NewAuthService(scripted(""))

	require.NoError(t, auth.Status())
	assert.Contains(t, out.String(), "API: http://deploy.example.com/api")
	assert.Contains(t, out.String(), "Expires: never")
	assert.Contains(t, out.String(), "State: valid")

	require.NoError(t, auth.Logout())
	out.Reset()
	require.NoError(t, auth.Status())
	assert.Contains(t, out.String(), "Not logged in.")
}
