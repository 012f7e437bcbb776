package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFileCandidates returns the env files Load considers, in priority order.
func EnvFileCandidates() []string {
	candidates := make([]string, 0, 3)
	if explicit := strings.TrimSpace(os.Getenv("MISSIONCTL_ENV_FILE")); explicit != "" {
		candidates = append(candidates, explicit)
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".config", "missionctl", "env"),
			filepath.Join(home, ConfigDir, ".env"),
		)
	}
	return candidates
}

// LoadEnvFileCandidates loads environment variables from known files.
// Existing process env vars are never overridden, so earlier files win.
func LoadEnvFileCandidates() {
	seen := map[string]struct{}{}
	for _, p := range EnvFileCandidates() {
		abs := p
		if !filepath.IsAbs(abs) {
			if resolved, err := filepath.Abs(p); err == nil {
				abs = resolved
			}
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		if _, err := os.Stat(abs); err != nil {
			continue
		}
		if err := godotenv.Load(abs); err != nil {
			slog.Warn("Env file skipped", "path", abs, "error", err)
		}
	}
}
