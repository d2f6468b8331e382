package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditorSaveSendsPendingEdits(t *testing.T) {
	// rows are newest first: 1 shop 3.0, 2 billing-api prod, 3 billing-api dev
	f := withPage(t).on(http.MethodPut, "/apps/shop/versions/3.0", http.StatusOK, ``)
	out := captureOutput(t)

	svc := newDeploymentService("name 1  3.1 \ndesc 1 spring  sale\nsave\ny\n")
	err := svc.EditDeployments(context.Background(), FilterOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{"PUT /apps/shop/versions/3.0"}, f.calls(true))
	req, _ := f.find(http.MethodPut, "/apps/shop/versions/3.0")
	assert.JSONEq(t, `{"name":"3.1","description":"spring  sale"}`, req.Body)
	assert.Contains(t, out.String(), "Versions updated")
	assert.Contains(t, out.String(), "Left edit mode.")
}

func TestEditorEndOfInputDiscards(t *testing.T) {
	f := withPage(t)
	out := captureOutput(t)

	err := newDeploymentService("desc 2 new text\n").EditDeployments(context.Background(), FilterOptions{})

	require.NoError(t, err)
	assert.Empty(t, f.calls(true))
	assert.Contains(t, out.String(), "Pending edits discarded.")
}

func TestEditorDeclinedSaveKeepsEditing(t *testing.T) {
	f := withPage(t)
	captureOutput(t)

	err := newDeploymentService("name 1 3.1\nsave\nn\ncancel\ny\n").EditDeployments(context.Background(), FilterOptions{})

	require.NoError(t, err)
	assert.Empty(t, f.calls(true))
}

func TestEditorDeleteKeepsOtherEdits(t *testing.T) {
	f := withPage(t).
		on(http.MethodDelete, "/apps/billing-api/envs/prod/versions/1.0/deployment", http.StatusOK, ``).
		on(http.MethodPut, "/apps/shop/versions/3.0", http.StatusOK, ``)
	captureOutput(t)

	script := "desc 1 kept\ndelete 2\ny\nsave\ny\n"
	err := newDeploymentService(script).EditDeployments(context.Background(), FilterOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"DELETE /apps/billing-api/envs/prod/versions/1.0/deployment",
		"PUT /apps/shop/versions/3.0",
	}, f.calls(true))
	req, _ := f.find(http.MethodPut, "/apps/shop/versions/3.0")
	assert.JSONEq(t, `{"name":"3.0","description":"kept"}`, req.Body)
}

func TestEditorDeleteSelected(t *testing.T) {
	f := withPage(t).
		on(http.MethodDelete, "/apps/billing-api/envs/prod/versions/1.0/deployment", http.StatusOK, ``).
		on(http.MethodDelete, "/apps/billing-api/envs/dev/versions/1.0/deployment", http.StatusOK, ``)
	captureOutput(t)

	script := "select 2 3\ndelete-selected\ny\ncancel\n"
	err := newDeploymentService(script).EditDeployments(context.Background(), FilterOptions{})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"DELETE /apps/billing-api/envs/prod/versions/1.0/deployment",
		"DELETE /apps/billing-api/envs/dev/versions/1.0/deployment",
	}, f.calls(true))
}

func TestEditorExecErrors(t *testing.T) {
	withPage(t)
	captureOutput(t)
	svc := newDeploymentService("")
	session, err := svc.open(context.Background(), FilterOptions{})
	require.NoError(t, err)
	e := NewEditor(session, scripted(""))
	require.NoError(t, session.BeginEdit())
	e.list()

	ctx := context.Background()
	assert.ErrorContains(t, e.Exec(ctx, "frobnicate"), "unknown command")
	assert.ErrorContains(t, e.Exec(ctx, "name 9 x"), "rows are numbered 1 to 3")
	assert.ErrorContains(t, e.Exec(ctx, "name 1"), "usage")
	assert.ErrorIs(t, e.Exec(ctx, "delete-selected"), history.ErrNothingSelected)
	assert.NoError(t, e.Exec(ctx, "   "))
	assert.NoError(t, e.Exec(ctx, "help"))
	assert.NoError(t, e.Exec(ctx, "pending"))
}

func TestRestAfter(t *testing.T) {
	assert.Equal(t, "spring  sale", restAfter("desc 1 spring  sale", 2))
	assert.Equal(t, "", restAfter("desc 1", 2))
	assert.Equal(t, "x", restAfter("  name   2   x ", 2))
}
