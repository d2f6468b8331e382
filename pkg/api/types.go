package api

// Deployment is one row of the deployment history: a version of an app
// deployed to an environment. It is identified by AppKey, EnvironmentName
// and VersionName.
type Deployment struct {
	AppKey             string    `json:"appKey"`
	AppName            string    `json:"appName"`
	EnvironmentName    string    `json:"environmentName"`
	VersionName        string    `json:"versionName"`
	VersionDescription string    `json:"versionDescription,omitempty"`
	DeployedAt         Timestamp `json:"deployedAt"`
	JiraURL            string    `json:"jiraUrl,omitempty"`
}

// DeploymentStamp is the date and Jira link of a version's deployment to one
// environment.
type DeploymentStamp struct {
	Date    Timestamp `json:"first"`
	JiraURL string    `json:"second"`
}

// Version is a named release of a component together with the environments
// it was deployed to.
type Version struct {
	ID           int64                      `json:"id,omitempty"`
	Name         string                     `json:"name"`
	Description  string                     `json:"description,omitempty"`
	Environments map[string]DeploymentStamp `json:"environmentToDateAndJiraUrlMap,omitempty"`
}

// Deployed reports whether the version has at least one recorded deployment.
func (v Version) Deployed() bool {
	return len(v.Environments) > 0
}

// ProjectDetail is the /apps view of a project: its components and, per
// component, the known versions.
type ProjectDetail struct {
	Key              string               `json:"key"`
	Name             string               `json:"name"`
	EnvironmentNames []string             `json:"environmentNames,omitempty"`
	Components       map[string]string    `json:"componentKeysAndNamesMap"`
	Versions         map[string][]Version `json:"appKeyToVersionDtosMap"`
}

// ComponentName returns the display name of a component of this project.
func (p ProjectDetail) ComponentName(appKey string) (string, bool) {
	name, ok := p.Components[appKey]
	return name, ok
}

// ProjectOverview summarises a project's latest deployment.
type ProjectOverview struct {
	Key                      string    `json:"key"`
	Name                     string    `json:"name"`
	LastDeployedAt           Timestamp `json:"lastDeployedAt"`
	LastDeployedVersionName  string    `json:"lastDeployedVersionName"`
	LastDeployedToEnvName    string    `json:"lastDeployedToEnvName"`
	LastDeploymentJiraURL    string    `json:"lastDeploymentJiraUrl"`
	VersionedComponentsNames []string  `json:"versionedComponentsNames"`
}

// Environment is a deployment target of an app.
type Environment struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// AppRequest creates an app. ParentKey makes it a component of that project.
type AppRequest struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	ParentKey string `json:"parentKey,omitempty"`
}

// EnvironmentRequest adds an environment to an app.
type EnvironmentRequest struct {
	AppKey string `json:"appKey"`
	Name   string `json:"name"`
}

// VersionUpdate renames or re-describes a version.
type VersionUpdate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorBody is the error payload returned with every non-success status.
type ErrorBody struct {
	Timestamp  Timestamp  `json:"timestamp"`
	StatusCode StatusCode `json:"statusCode"`
	Message    string     `json:"message"`
	Details    string     `json:"details"`
	Path       string     `json:"path"`
}

// RecordResponse answers a deployment recording request.
type RecordResponse struct {
	ErrorBody
	ForceURL string `json:"forceDeploymentEvidenceUrl,omitempty"`
}
