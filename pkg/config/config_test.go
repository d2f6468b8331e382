package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestGetConfigDir validates config directory access
func TestGetConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "test_config")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	configDir := GetConfigDir()
	if configDir == "" {
		t.Fatal("Config directory should not be empty")
	}

	if _, err := os.Stat(configDir); err != nil {
		t.Errorf("Config directory should exist: %v", err)
	}
}

// TestInitWithCustomPath validates custom config path
func TestInitWithCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	customConfigPath := filepath.Join(tempDir, "custom", "path", "config.toml")

	if err := Init(customConfigPath); err != nil {
		t.Fatalf("Failed to initialize with custom path: %v", err)
	}

	expectedDir := filepath.Join(tempDir, "custom", "path")
	if GetConfigDir() != expectedDir {
		t.Errorf("Expected config dir %s, got %s", expectedDir, GetConfigDir())
	}
	if GetConfigFilePath() != customConfigPath {
		t.Errorf("Expected config file %s, got %s", customConfigPath, GetConfigFilePath())
	}
}

func TestDefaults(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if got := GetString("api.base_url"); got != "http://localhost:8080/api" {
		t.Errorf("Expected default base URL, got %q", got)
	}
	if got := GetInt("api.timeout"); got != 0 {
		t.Errorf("Expected no default timeout, got %d", got)
	}
	if got := GetString("output.format"); got != "text" {
		t.Errorf("Expected default format 'text', got %q", got)
	}
	if got := GetString("log.level"); got != "info" {
		t.Errorf("Expected default log level 'info', got %q", got)
	}
	if got := GetString("log.file"); filepath.Dir(got) != GetConfigDir() {
		t.Errorf("Expected log file under %s, got %s", GetConfigDir(), got)
	}
}

func TestUserConfigFileOverridesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")
	content := "[api]\nbase_url = \"https://deploy.example.com/api\"\ntimeout = 15\n"
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if err := Init(configPath); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if got := GetString("api.base_url"); got != "https://deploy.example.com/api" {
		t.Errorf("Expected base URL from file, got %q", got)
	}
	if got := GetInt("api.timeout"); got != 15 {
		t.Errorf("Expected timeout 15 from file, got %d", got)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[api]\nbase_url = \"https://file.example.com\"\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("DEPLOYDASH_API_BASE_URL", "https://env.example.com")

	if err := Init(configPath); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if got := GetString("api.base_url"); got != "https://env.example.com" {
		t.Errorf("Expected env override, got %q", got)
	}
}

func TestSetStringPersists(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.toml")
	if err := Init(configPath); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if err := SetString("output.format", "json"); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}

	if err := Init(configPath); err != nil {
		t.Fatalf("Re-init failed: %v", err)
	}
	if got := GetString("output.format"); got != "json" {
		t.Errorf("Expected persisted format 'json', got %q", got)
	}
}

// TestCredentialsPathStructure validates credentials path structure
func TestCredentialsPathStructure(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "test_config")); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	credsPath := GetCredentialsPath()
	if filepath.Dir(credsPath) != GetConfigDir() {
		t.Errorf("Credentials path %s should be under config dir %s", credsPath, GetConfigDir())
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := expandPath("~/logs/deploydash.log"); got != filepath.Join(home, "logs", "deploydash.log") {
		t.Errorf("Unexpected expansion: %s", got)
	}
	if got := expandPath("/var/log/deploydash.log"); got != "/var/log/deploydash.log" {
		t.Errorf("Absolute path should be untouched, got %s", got)
	}
}
