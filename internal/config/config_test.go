package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("MISSIONCTL_CONFIG", "")
	t.Setenv("MISSIONCTL_HOME", "")
	t.Setenv("MISSIONCTL_ENV_FILE", "")
	return home
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Avatar.Endpoint != "https://image.pollinations.ai/prompt" {
		t.Errorf("unexpected endpoint %s", cfg.Avatar.Endpoint)
	}
	if cfg.Avatar.Width != 1024 || cfg.Avatar.Height != 1024 || cfg.Avatar.Seed != 42 {
		t.Errorf("unexpected image params %+v", cfg.Avatar)
	}
	if !cfg.Avatar.NoLogo || !cfg.Avatar.Enhance {
		t.Error("expected nologo and enhance on by default")
	}
	if cfg.Avatar.Timeout != 120*time.Second {
		t.Errorf("expected timeout 120s, got %v", cfg.Avatar.Timeout)
	}
	if cfg.Avatar.Pause != 2*time.Second {
		t.Errorf("expected pause 2s, got %v", cfg.Avatar.Pause)
	}
	if cfg.Avatar.MinBytes != 10000 {
		t.Errorf("expected minBytes 10000, got %d", cfg.Avatar.MinBytes)
	}
	if cfg.Slack.Enabled {
		t.Error("slack should be disabled by default")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolateHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Avatar.UserAgent != "Mozilla/5.0" {
		t.Errorf("expected default user agent, got %q", cfg.Avatar.UserAgent)
	}
}

func TestLoadFromFile(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ConfigDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `{"avatar":{"seed":7,"timeout":30000000000},"group":{"groupName":"squad"}}`
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Avatar.Seed != 7 {
		t.Errorf("expected seed 7, got %d", cfg.Avatar.Seed)
	}
	if cfg.Avatar.Timeout != 30*time.Second {
		t.Errorf("expected timeout 30s, got %v", cfg.Avatar.Timeout)
	}
	if cfg.Avatar.Width != 1024 {
		t.Errorf("unset fields should keep defaults, got width %d", cfg.Avatar.Width)
	}
	if cfg.Group.GroupName != "squad" {
		t.Errorf("expected group squad, got %s", cfg.Group.GroupName)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	home := isolateHome(t)
	path := filepath.Join(home, "custom.json")
	os.WriteFile(path, []byte("{not json"), 0o600)
	t.Setenv("MISSIONCTL_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	home := isolateHome(t)
	path := filepath.Join(home, "custom.json")
	os.WriteFile(path, []byte(`{"avatar":{"seed":7}}`), 0o600)
	t.Setenv("MISSIONCTL_CONFIG", path)
	t.Setenv("MISSIONCTL_AVATAR_SEED", "99")
	t.Setenv("MISSIONCTL_AVATAR_PAUSE", "500ms")
	t.Setenv("MISSIONCTL_GROUP_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Avatar.Seed != 99 {
		t.Errorf("expected env seed 99, got %d", cfg.Avatar.Seed)
	}
	if cfg.Avatar.Pause != 500*time.Millisecond {
		t.Errorf("expected pause 500ms, got %v", cfg.Avatar.Pause)
	}
	if len(cfg.Group.Brokers) != 2 || cfg.Group.Brokers[1] != "k2:9092" {
		t.Errorf("unexpected brokers %v", cfg.Group.Brokers)
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	home := isolateHome(t)
	envPath := filepath.Join(home, "mc.env")
	os.WriteFile(envPath, []byte("MISSIONCTL_SLACK_CHANNEL=C123\nexport MISSIONCTL_SLACK_ENABLED=true\n"), 0o600)
	t.Setenv("MISSIONCTL_ENV_FILE", envPath)
	// Registered so t.Setenv restores the unset state after the test.
	t.Setenv("MISSIONCTL_SLACK_CHANNEL", "")
	t.Setenv("MISSIONCTL_SLACK_ENABLED", "")
	os.Unsetenv("MISSIONCTL_SLACK_CHANNEL")
	os.Unsetenv("MISSIONCTL_SLACK_ENABLED")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Slack.Enabled || cfg.Slack.Channel != "C123" {
		t.Errorf("env file values not applied: %+v", cfg.Slack)
	}
}

func TestEnvFileDoesNotOverrideProcessEnv(t *testing.T) {
	home := isolateHome(t)
	envPath := filepath.Join(home, "mc.env")
	os.WriteFile(envPath, []byte("MISSIONCTL_AVATAR_SEED=1\n"), 0o600)
	t.Setenv("MISSIONCTL_ENV_FILE", envPath)
	t.Setenv("MISSIONCTL_AVATAR_SEED", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Avatar.Seed != 5 {
		t.Errorf("process env should win, got seed %d", cfg.Avatar.Seed)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	isolateHome(t)

	cfg := DefaultConfig()
	cfg.Paths.AvatarDir = "/tmp/avatars"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Paths.AvatarDir != "/tmp/avatars" {
		t.Errorf("expected saved avatar dir, got %s", loaded.Paths.AvatarDir)
	}
}

func TestExpandHome(t *testing.T) {
	home := isolateHome(t)
	got, err := ExpandHome("~/avatars")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "avatars") {
		t.Errorf("ExpandHome = %s", got)
	}
	if got, _ := ExpandHome("/abs"); got != "/abs" {
		t.Errorf("absolute path changed: %s", got)
	}
}
