package service

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/client"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/config"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/output"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/prompter"
	"github.com/fatih/color"
)

const deploymentsJSON = `[
	{"appKey":"billing-api","appName":"Billing API","environmentName":"dev","versionName":"1.0","versionDescription":"first","deployedAt":"2024-01-10T10:00:00"},
	{"appKey":"billing-api","appName":"Billing API","environmentName":"prod","versionName":"1.0","versionDescription":"first","deployedAt":"2024-01-12T09:00:00"},
	{"appKey":"shop","appName":"Shop","environmentName":"prod","versionName":"3.0","deployedAt":"2024-01-20T23:30:00"}
]`

const projectsJSON = `[
	{"key":"billing","name":"Billing",
	 "componentKeysAndNamesMap":{"billing":"Billing","billing-api":"Billing API"},
	 "appKeyToVersionDtosMap":{"billing-api":[
		{"name":"1.0","description":"first","environmentToDateAndJiraUrlMap":{"dev":{"first":"2024-01-10T10:00:00","second":null},"prod":{"first":"2024-01-12T09:00:00","second":null}}}
	 ]}},
	{"key":"shop","name":"Shop",
	 "componentKeysAndNamesMap":{"shop":"Shop"},
	 "appKeyToVersionDtosMap":{"shop":[
		{"name":"3.0","environmentToDateAndJiraUrlMap":{"prod":{"first":"2024-01-20T23:30:00","second":"https://jira.example.com/browse/SHOP-1"}}}
	 ]}}
]`

type reply struct {
	status int
	body   string
}

type seenRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// fakeAPI answers "METHOD /path" routes and records every request.
type fakeAPI struct {
	mu       sync.Mutex
	routes   map[string][]reply
	requests []seenRequest
}

func (f *fakeAPI) on(method, path string, status int, body string) *fakeAPI {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := method + " " + path
	f.routes[key] = append(f.routes[key], reply{status, body})
	return f
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, seenRequest{r.Method, r.URL.Path, r.URL.RawQuery, string(raw)})
	key := r.Method + " " + r.URL.Path
	replies := f.routes[key]
	var rep reply
	switch {
	case len(replies) == 0:
		rep = reply{http.StatusNotFound, `{"message":"Not Found","details":"no route ` + key + `"}`}
	case len(replies) == 1:
		rep = replies[0]
	default:
		// consume queued replies, the last one sticks
		rep = replies[0]
		f.routes[key] = replies[1:]
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	_, _ = io.WriteString(w, rep.body)
}

// calls returns the "METHOD /path" of every request except the page reads.
func (f *fakeAPI) calls(skipReads bool) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, r := range f.requests {
		if skipReads && r.Method == http.MethodGet && (r.Path == "/deployments" || r.Path == "/apps") {
			continue
		}
		out = append(out, r.Method+" "+r.Path)
	}
	return out
}

func (f *fakeAPI) find(method, path string) (seenRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.requests {
		if r.Method == method && r.Path == path {
			return r, true
		}
	}
	return seenRequest{}, false
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{routes: make(map[string][]reply)}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	client.SetBaseURL(srv.URL)
	return f
}

// withPage serves the two page reads.
func withPage(t *testing.T) *fakeAPI {
	t.Helper()
	return newFakeAPI(t).
		on(http.MethodGet, "/deployments", http.StatusOK, deploymentsJSON).
		on(http.MethodGet, "/apps", http.StatusOK, projectsJSON)
}

// captureOutput redirects the output package into a buffer.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	old := output.Out
	output.Out = buf
	noColor := color.NoColor
	color.NoColor = true
	config.Set("output.format", "text")
	t.Cleanup(func() {
		output.Out = old
		color.NoColor = noColor
	})
	return buf
}

func scripted(input string) *prompter.Prompter {
	return prompter.New(strings.NewReader(input), io.Discard)
}

func newDeploymentService(input string) *DeploymentService {
	return NewDeploymentService(NewAPIGateway(), NewConsoleNotifier(), scripted(input))
}
