package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/api"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/client"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/credentials"
	clierrors "github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/errors"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/logger"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/output"
	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/prompter"
)

// AuthService stores and checks the API token
type AuthService struct {
	prompter *prompter.Prompter
}

// NewAuthService creates a new auth service
func NewAuthService(p *prompter.Prompter) *AuthService {
	return &AuthService{prompter: p}
}

// Login checks token against the API and saves it. An empty token is asked
// for without echo. A zero ttl stores a token that never expires.
func (s *AuthService) Login(ctx context.Context, token string, ttl time.Duration) error {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", "error", err)
		return err
	}
	if creds.IsValid() {
		output.PrintWarning("A token is already stored for %s", baseURLOrAny(creds.BaseURL))
		ok, err := s.prompter.Confirm("Replace it?")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	if token == "" {
		if token, err = s.prompter.Password("API token: "); err != nil {
			return err
		}
	}
	if token == "" {
		return clierrors.ValidationError("token", "token cannot be empty")
	}

	client.SetAuthToken(token)
	if _, err := api.ListProjectOverviews(ctx); err != nil {
		client.ClearAuthToken()
		return fmt.Errorf("token check failed: %w", err)
	}

	creds = &credentials.Credentials{
		Token:   token,
		BaseURL: client.GetClient().BaseURL,
		SavedAt: time.Now(),
	}
	if ttl > 0 {
		creds.ExpiresAt = creds.SavedAt.Add(ttl)
	}
	if err := credentials.Save(creds); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	output.PrintSuccess("Logged in to %s", creds.BaseURL)
	return nil
}

// Logout forgets the stored token
func (s *AuthService) Logout() error {
	client.ClearAuthToken()
	if err := credentials.Delete(); err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	output.PrintSuccess("Logged out")
	return nil
}

// Status shows the stored token's target and expiry
func (s *AuthService) Status() error {
	creds, err := credentials.Load()
	if err != nil {
		return err
	}
	if creds == nil {
		output.PrintInfo("Not logged in.")
		return nil
	}

	state := "valid"
	expires := "never"
	if !creds.ExpiresAt.IsZero() {
		expires = creds.ExpiresAt.Format(displayTimeLayout)
	}
	if creds.IsExpired() {
		state = "expired"
	}
	return output.PrintRecord(map[string]interface{}{
		"base_url":   creds.BaseURL,
		"saved_at":   creds.SavedAt,
		"expires_at": creds.ExpiresAt,
		"state":      state,
	}, [][2]string{
		{"API", baseURLOrAny(creds.BaseURL)},
		{"Saved", creds.SavedAt.Format(displayTimeLayout)},
		{"Expires", expires},
		{"State", state},
	})
}

func baseURLOrAny(baseURL string) string {
	if baseURL == "" {
		return "any API"
	}
	return baseURL
}
