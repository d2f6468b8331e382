package client

import (
	"time"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/config"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/logger"
	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
)

// UserAgent is sent with every request.
const UserAgent = "deploydash-cli/0.3.0"

var httpClient *resty.Client
var authToken string

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Init builds the shared HTTP client from the api.* settings.
func Init() {
	httpClient = newClient(config.GetString("api.base_url"))
}

func newClient(baseURL string) *resty.Client {
	c := resty.New()
	c.SetBaseURL(baseURL)
	if timeout := config.GetInt("api.timeout"); timeout > 0 {
		c.SetTimeout(time.Duration(timeout) * time.Second)
	}
	c.SetHeader("User-Agent", UserAgent)
	c.SetHeader("Accept", "application/json")
	c.SetJSONMarshaler(json.Marshal)
	c.SetJSONUnmarshaler(json.Unmarshal)

	c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if authToken != "" {
			req.SetAuthToken(authToken)
		}
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)
		return nil
	})

	c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"elapsed", resp.Time())
		return nil
	})

	return c
}

// GetClient returns the HTTP client
func GetClient() *resty.Client {
	if httpClient == nil {
		Init()
	}
	return httpClient
}

// SetBaseURL rebuilds the client against another API root.
func SetBaseURL(baseURL string) {
	httpClient = newClient(baseURL)
}

// SetAuthToken sets the bearer token attached to every request
func SetAuthToken(token string) {
	authToken = token
}

// ClearAuthToken clears the authorization token
func ClearAuthToken() {
	authToken = ""
}
