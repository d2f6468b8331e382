package history

import (
	"context"
	"errors"
	"time"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/api"
)

func ts(y int, m time.Month, d, h, mi int) api.Timestamp {
	return api.NewTimestamp(time.Date(y, m, d, h, mi, 0, 0, time.Local))
}

func deployed(env string, at api.Timestamp) map[string]api.DeploymentStamp {
	return map[string]api.DeploymentStamp{env: {Date: at}}
}

func sampleProjects() []api.ProjectDetail {
	return []api.ProjectDetail{
		{
			Key:  "shop",
			Name: "Shop",
			Components: map[string]string{
				"shop": "Shop",
			},
			Versions: map[string][]api.Version{
				"shop": {
					{Name: "3.0", Environments: deployed("prod", ts(2024, 1, 20, 23, 30))},
				},
			},
		},
		{
			Key:  "billing",
			Name: "Billing",
			Components: map[string]string{
				"billing":     "Billing",
				"billing-ui":  "Billing UI",
				"billing-api": "Billing API",
			},
			Versions: map[string][]api.Version{
				"billing-api": {
					{Name: "1.0", Environments: deployed("dev", ts(2024, 1, 10, 10, 0))},
					{Name: "1.1", Environments: deployed("dev", ts(2024, 1, 15, 12, 0))},
					{Name: "2.0"},
				},
				"billing-ui": {
					{Name: "0.9", Environments: deployed("dev", ts(2024, 1, 11, 8, 0))},
				},
			},
		},
	}
}

func sampleDeployments() []api.Deployment {
	return []api.Deployment{
		{AppKey: "billing-api", AppName: "Billing API", EnvironmentName: "dev", VersionName: "1.0", VersionDescription: "first", DeployedAt: ts(2024, 1, 10, 10, 0)},
		{AppKey: "billing-api", AppName: "Billing API", EnvironmentName: "prod", VersionName: "1.0", VersionDescription: "first", DeployedAt: ts(2024, 1, 12, 9, 0)},
		{AppKey: "billing-api", AppName: "Billing API", EnvironmentName: "dev", VersionName: "1.1", DeployedAt: ts(2024, 1, 15, 12, 0)},
		{AppKey: "billing-ui", AppName: "Billing UI", EnvironmentName: "dev", VersionName: "0.9", DeployedAt: ts(2024, 1, 11, 8, 0)},
		{AppKey: "shop", AppName: "Shop", EnvironmentName: "prod", VersionName: "3.0", DeployedAt: ts(2024, 1, 20, 23, 30)},
	}
}

type updateCall struct {
	AppKey      string
	VersionName string
	Update      api.VersionUpdate
}

type deleteCall struct {
	AppKey      string
	Environment string
	VersionName string
}

// fakeGateway serves a mutable snapshot and records every call.
type fakeGateway struct {
	deployments []api.Deployment
	projects    []api.ProjectDetail

	loadErr   error
	updateErr map[string]error
	deleteErr map[string]error

	loads   int
	updates []updateCall
	deletes []deleteCall
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		deployments: sampleDeployments(),
		projects:    sampleProjects(),
		updateErr:   make(map[string]error),
		deleteErr:   make(map[string]error),
	}
}

func (g *fakeGateway) Load(_ context.Context) (*Snapshot, error) {
	g.loads++
	if g.loadErr != nil {
		return nil, g.loadErr
	}
	out := make([]api.Deployment, len(g.deployments))
	copy(out, g.deployments)
	return &Snapshot{Deployments: out, Projects: g.projects}, nil
}

func (g *fakeGateway) UpdateVersion(_ context.Context, appKey, versionName string, update api.VersionUpdate) error {
	g.updates = append(g.updates, updateCall{appKey, versionName, update})
	if err := g.updateErr[appKey+" "+versionName]; err != nil {
		return err
	}
	for i, d := range g.deployments {
		if d.AppKey == appKey && d.VersionName == versionName {
			g.deployments[i].VersionName = update.Name
			g.deployments[i].VersionDescription = update.Description
		}
	}
	return nil
}

func (g *fakeGateway) DeleteDeployment(_ context.Context, appKey, environment, versionName string) error {
	g.deletes = append(g.deletes, deleteCall{appKey, environment, versionName})
	if err := g.deleteErr[appKey+" "+environment+" "+versionName]; err != nil {
		return err
	}
	kept := g.deployments[:0]
	for _, d := range g.deployments {
		if !(d.AppKey == appKey && d.EnvironmentName == environment && d.VersionName == versionName) {
			kept = append(kept, d)
		}
	}
	g.deployments = kept
	return nil
}

type note struct {
	Success bool
	Title   string
	Text    string
}

type fakeNotifier struct {
	notes []note
}

func (n *fakeNotifier) Success(title, message string) {
	n.notes = append(n.notes, note{true, title, message})
}

func (n *fakeNotifier) Failure(title, detail string) {
	n.notes = append(n.notes, note{false, title, detail})
}

func (n *fakeNotifier) failures() []note {
	var out []note
	for _, x := range n.notes {
		if !x.Success {
			out = append(out, x)
		}
	}
	return out
}

var errBoom = errors.New("boom")
