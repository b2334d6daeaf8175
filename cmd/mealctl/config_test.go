package main

import (
	"os"
	"path/filepath"
	"testing"
)

// resetFlags restores global flag state after each test.
func resetFlags(t *testing.T) {
	t.Helper()
	orig := struct{ url, fmt string }{flagURL, flagFmt}
	t.Cleanup(func() {
		flagURL = orig.url
		flagFmt = orig.fmt
	})
}

// setEnv temporarily sets an environment variable and restores it on cleanup.
func setEnv(t *testing.T, key, val string) {
	t.Helper()
	prev, exists := os.LookupEnv(key)
	os.Setenv(key, val)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

// unsetEnv temporarily unsets an environment variable and restores it on cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, exists := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestResolveConfigEnvURL(t *testing.T) {
	resetFlags(t)
	setEnv(t, "MEALCTL_URL", "http://env-server:9090")
	setEnv(t, "HOME", t.TempDir())

	flagURL = defaultURL
	resolveConfig()

	if flagURL != "http://env-server:9090" {
		t.Errorf("flagURL: got %q, want %q", flagURL, "http://env-server:9090")
	}
}

func TestResolveConfigFlagWins(t *testing.T) {
	resetFlags(t)
	setEnv(t, "MEALCTL_URL", "http://env-server:9090")
	setEnv(t, "HOME", t.TempDir())

	flagURL = "http://flag-server:4040"
	resolveConfig()

	if flagURL != "http://flag-server:4040" {
		t.Errorf("flagURL: got %q, want %q", flagURL, "http://flag-server:4040")
	}
}

func TestResolveConfigFile(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "MEALCTL_URL")

	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)
	cfgDir := filepath.Join(tmp, ".mealctl")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg := "url: http://file-server:5050\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	flagURL = defaultURL
	resolveConfig()

	if flagURL != "http://file-server:5050" {
		t.Errorf("flagURL: got %q, want %q", flagURL, "http://file-server:5050")
	}
}

func TestResolveConfigProfile(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "MEALCTL_URL")

	tmp := t.TempDir()
	setEnv(t, "HOME", tmp)
	cfgDir := filepath.Join(tmp, ".mealctl")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg := `url: http://file-server:5050
active_profile: staging
profiles:
  staging:
    url: http://staging-server:6060
`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	flagURL = defaultURL
	resolveConfig()

	if flagURL != "http://staging-server:6060" {
		t.Errorf("flagURL: got %q, want %q", flagURL, "http://staging-server:6060")
	}
}
