package service

import (
	"context"
	"fmt"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/api"
	clierrors "github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/errors"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/history"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/logger"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/output"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/prompter"
)

const displayTimeLayout = "2006-01-02 15:04"

// DeploymentService provides deployment history operations
type DeploymentService struct {
	gateway  history.Gateway
	notifier history.Notifier
	prompter *prompter.Prompter
}

// NewDeploymentService creates a new deployment service
func NewDeploymentService(gateway history.Gateway, notifier history.Notifier, p *prompter.Prompter) *DeploymentService {
	return &DeploymentService{gateway: gateway, notifier: notifier, prompter: p}
}

// open loads a session and applies the filters.
func (ds *DeploymentService) open(ctx context.Context, opts FilterOptions) (*history.Session, error) {
	session := history.NewSession(ds.gateway, ds.notifier)
	if err := session.Load(ctx); err != nil {
		return nil, err
	}
	if err := opts.Apply(session.Filter()); err != nil {
		return nil, err
	}
	status, err := opts.Sort()
	if err != nil {
		return nil, err
	}
	session.SetSort(status)
	return session, nil
}

// ListDeployments displays the filtered deployment history
func (ds *DeploymentService) ListDeployments(ctx context.Context, opts FilterOptions) error {
	logger.Debug("Listing deployments", "filters", opts)

	session, err := ds.open(ctx, opts)
	if err != nil {
		return err
	}

	rows := session.Rows()
	if output.GetOutputFormat() == output.FormatJSON {
		return output.PrintJSON(rows)
	}

	if pills := FilterPills(session.Filter().Summary()); len(pills) > 0 {
		fmt.Fprintln(output.Out, output.Pills(pills...))
	}
	if len(rows) == 0 {
		output.PrintInfo("No deployments found.")
		return nil
	}

	printDeploymentTable(session, rows, false)
	fmt.Fprintf(output.Out, "\n%s of %d\n", output.Count(len(rows), "deployment", "deployments", "deployments"), len(session.Records()))
	return nil
}

func printDeploymentTable(session *history.Session, rows []api.Deployment, numbered bool) {
	headers := []string{"DEPLOYED", "APP", "NAME", "ENV", "VERSION", "DESCRIPTION", "JIRA"}
	if numbered {
		headers = append([]string{"#"}, headers...)
	}

	table := make([][]string, 0, len(rows))
	for i, r := range rows {
		name, description := session.Display(r)
		row := []string{
			r.DeployedAt.Format(displayTimeLayout),
			r.AppKey,
			r.AppName,
			r.EnvironmentName,
			name,
			output.Truncate(description, 40),
			r.JiraURL,
		}
		if numbered {
			mark := ""
			if session.IsSelected(r) {
				mark = "*"
			}
			row = append([]string{fmt.Sprintf("%d%s", i+1, mark)}, row...)
		}
		table = append(table, row)
	}
	output.PrintTable(headers, table)
}

// confirm asks unless the caller already agreed.
func (ds *DeploymentService) confirm(question string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	return ds.prompter.Confirm(question)
}

// DeleteDeployment deletes a single deployment record
func (ds *DeploymentService) DeleteDeployment(ctx context.Context, appKey, environment, versionName string, yes bool) error {
	logger.Debug("Deleting deployment", "app", appKey, "env", environment, "version", versionName)

	session, err := ds.open(ctx, FilterOptions{})
	if err != nil {
		return err
	}
	record, err := session.Find(appKey, environment, versionName)
	if err != nil {
		return clierrors.NotFoundError("Deployment", fmt.Sprintf("%s %s on %s", appKey, versionName, environment))
	}

	if err := session.BeginEdit(); err != nil {
		return err
	}
	if err := session.RequestDelete(record); err != nil {
		return err
	}

	ok, err := ds.confirm(fmt.Sprintf("Delete deployment of %s %s to %s?", appKey, versionName, environment), yes)
	if err != nil {
		return err
	}
	if !ok {
		output.PrintInfo("Cancelled.")
		return session.Abort()
	}

	result, err := session.Confirm(ctx)
	if err != nil {
		return err
	}
	return batchError(result, "deletion", "deletions")
}

// DeleteDeployments deletes every deployment that passes the filters. At
// least one filter is required.
func (ds *DeploymentService) DeleteDeployments(ctx context.Context, opts FilterOptions, yes bool) error {
	session, err := ds.open(ctx, opts)
	if err != nil {
		return err
	}
	if !session.Filter().IsFiltered() {
		return clierrors.ValidationError("filters", "at least one filter is required to delete in bulk")
	}

	rows := session.Rows()
	if len(rows) == 0 {
		output.PrintInfo("No deployments match the filters.")
		return nil
	}

	if err := session.BeginEdit(); err != nil {
		return err
	}
	for _, r := range rows {
		if err := session.Select(r); err != nil {
			return err
		}
	}
	printDeploymentTable(session, rows, false)

	if err := session.RequestDeleteSelected(); err != nil {
		return err
	}
	ok, err := ds.confirm(fmt.Sprintf("Delete %s?", output.Count(len(rows), "deployment", "deployments", "deployments")), yes)
	if err != nil {
		return err
	}
	if !ok {
		output.PrintInfo("Cancelled.")
		return session.Abort()
	}

	result, err := session.Confirm(ctx)
	if err != nil {
		return err
	}
	if n := result.Skipped(); n > 0 {
		output.PrintWarning("%s not attempted after the failure", output.Count(n, "deletion", "deletions", "deletions"))
	}
	return batchError(result, "deletion", "deletions")
}

// batchError summarises failed tasks. Each failure was already reported by
// the notifier.
func batchError(result history.BatchResult, one, many string) error {
	failed := len(result.Failed())
	if failed == 0 {
		return nil
	}
	return clierrors.NewCLIError(clierrors.ErrorTypeHTTP,
		fmt.Sprintf("%s of %d failed", output.Count(failed, one, many, many), len(result.Outcomes)),
		result.Err())
}

// RecordDeployment registers a deployment. When the server refuses it with a
// force link, the user may record it anyway.
func (ds *DeploymentService) RecordDeployment(ctx context.Context, req api.RecordRequest, yes bool) error {
	logger.Debug("Recording deployment", "app", req.AppKey, "env", req.Environment)

	resp, err := api.RecordDeployment(ctx, req)
	if err != nil && api.IsBadRequest(err) && resp != nil && resp.ForceURL != "" && !req.Force {
		output.PrintWarning("%s", history.Describe(err))
		ok, cerr := ds.confirm("Record the deployment anyway?", yes)
		if cerr != nil {
			return cerr
		}
		if !ok {
			output.PrintInfo("Cancelled.")
			return nil
		}
		req.Force = true
		resp, err = api.RecordDeployment(ctx, req)
	}
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("Deployment of %s to %s recorded", req.AppKey, req.Environment)
	if resp != nil && resp.Details != "" {
		msg += ": " + resp.Details
	}
	output.PrintSuccess("%s", msg)
	return nil
}
