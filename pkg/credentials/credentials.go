package credentials

import (
	"errors"
	"os"
	"time"

	"github.com/Deployment-Dashboard/Deployment-Dashboard-sub000/pkg/config"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Credentials is the API token stored by "auth login".
type Credentials struct {
	Token     string    `json:"token"`
	BaseURL   string    `json:"base_url"`
	SavedAt   time.Time `json:"saved_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Load loads credentials from disk. Missing credentials are not an error.
func Load() (*Credentials, error) {
	data, err := os.ReadFile(config.GetCredentialsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Save writes credentials readable by the owner only.
func Save(creds *Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(config.GetCredentialsPath(), data, 0600)
}

// Delete removes stored credentials. Deleting nothing succeeds.
func Delete() error {
	err := os.Remove(config.GetCredentialsPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// IsExpired reports whether the token carries an expiry that has passed.
// Tokens without an expiry never expire.
func (c *Credentials) IsExpired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}

// IsValid checks if credentials are usable
func (c *Credentials) IsValid() bool {
	return c != nil && c.Token != "" && !c.IsExpired()
}

// AppliesTo reports whether the token was issued for baseURL. Credentials
// saved without an API root apply everywhere.
func (c *Credentials) AppliesTo(baseURL string) bool {
	return c.BaseURL == "" || c.BaseURL == baseURL
}
