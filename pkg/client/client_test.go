package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestGetClientSingleton validates that GetClient returns same instance
func TestGetClientSingleton(t *testing.T) {
	httpClient = nil

	client1 := GetClient()
	client2 := GetClient()

	if client1 == nil {
		t.Fatal("GetClient should not return nil")
	}
	if client1 != client2 {
		t.Error("GetClient should return same instance")
	}
}

func TestSetBaseURL(t *testing.T) {
	SetBaseURL("http://deploy.example.com/api")

	if got := GetClient().BaseURL; got != "http://deploy.example.com/api" {
		t.Errorf("Expected base URL to be replaced, got %s", got)
	}
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	SetBaseURL(srv.URL)
	SetAuthToken("secret-token")
	defer ClearAuthToken()

	if _, err := GetClient().R().Get("/deployments"); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("Expected bearer token, got %q", gotAuth)
	}
	if gotAgent != UserAgent {
		t.Errorf("Expected user agent %q, got %q", UserAgent, gotAgent)
	}
}

func TestClearAuthToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	SetBaseURL(srv.URL)
	SetAuthToken("secret-token")
	ClearAuthToken()

	if _, err := GetClient().R().Get("/apps"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Expected no Authorization header, got %q", gotAuth)
	}
}
