// Package squad holds the Mission Control agent roster: persona records, soul
// documents and heartbeat schedules. The registry is built once, validated,
// and read-only afterwards.
package squad

import (
	"slices"
	"strings"
)

// AgentRecord describes one agent persona.
type AgentRecord struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Role        string   `json:"role" yaml:"role"`
	Personality string   `json:"personality" yaml:"personality"`
	SessionKey  string   `json:"session_key" yaml:"session_key"`
	Cron        string   `json:"cron" yaml:"cron"`
	Tools       []string `json:"tools" yaml:"tools"`
	Specialty   string   `json:"specialty" yaml:"specialty"`
	Model       string   `json:"model" yaml:"model"`
}

func (r AgentRecord) clone() AgentRecord {
	r.Tools = slices.Clone(r.Tools)
	return r
}

// HeartbeatJobName is the job label an external scheduler uses for an
// agent's heartbeat.
func HeartbeatJobName(id string) string {
	return id + "-heartbeat"
}

// StandupJobName is the job label of the daily standup.
const StandupJobName = "daily-standup"

// SoulSummary extracts the first paragraph under "## Personality" from a soul
// document, falling back to the first non-heading paragraph.
func SoulSummary(soul string) string {
	lines := strings.Split(soul, "\n")
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "## Personality" {
			start = i + 1
			break
		}
	}
	if start < 0 {
		start = 0
	}

	var para []string
	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "**") {
			if len(para) > 0 {
				break
			}
			continue
		}
		if trimmed == "" {
			if len(para) > 0 {
				break
			}
			continue
		}
		para = append(para, trimmed)
	}
	return strings.Join(para, " ")
}
