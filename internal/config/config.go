// Package config provides configuration types and loading for missionctl.
package config

import "time"

// Config is the root configuration struct.
// Top-level groups: Paths, Avatar, Slack, Group.
type Config struct {
	Paths  PathsConfig  `json:"paths"`
	Avatar AvatarConfig `json:"avatar"`
	Slack  SlackConfig  `json:"slack"`
	Group  GroupConfig  `json:"group"`
}

// ---------------------------------------------------------------------------
// Paths – filesystem locations
// ---------------------------------------------------------------------------

// PathsConfig groups filesystem path settings.
type PathsConfig struct {
	Workspace string `json:"workspace" envconfig:"WORKSPACE"`
	AvatarDir string `json:"avatarDir" envconfig:"AVATAR_DIR"`
	StoreDB   string `json:"storeDb" envconfig:"STORE_DB"`
}

// ---------------------------------------------------------------------------
// Avatar – image generation client
// ---------------------------------------------------------------------------

// AvatarConfig configures the avatar fetcher. Defaults match the public
// pollinations endpoint; override only for mirrors or tests.
type AvatarConfig struct {
	Endpoint  string        `json:"endpoint" envconfig:"ENDPOINT"`
	Width     int           `json:"width" envconfig:"WIDTH"`
	Height    int           `json:"height" envconfig:"HEIGHT"`
	Seed      int           `json:"seed" envconfig:"SEED"`
	NoLogo    bool          `json:"nologo" envconfig:"NOLOGO"`
	Enhance   bool          `json:"enhance" envconfig:"ENHANCE"`
	UserAgent string        `json:"userAgent" envconfig:"USER_AGENT"`
	Timeout   time.Duration `json:"timeout" envconfig:"TIMEOUT"`
	Pause     time.Duration `json:"pause" envconfig:"PAUSE"`
	MinBytes  int           `json:"minBytes" envconfig:"MIN_BYTES"`
}

// ---------------------------------------------------------------------------
// Slack – run notifications
// ---------------------------------------------------------------------------

// SlackConfig configures the optional avatar run report.
type SlackConfig struct {
	Enabled bool   `json:"enabled" envconfig:"ENABLED"`
	Token   string `json:"token" envconfig:"TOKEN"`
	Channel string `json:"channel" envconfig:"CHANNEL"`
	APIBase string `json:"apiBase,omitempty" envconfig:"API_BASE"`
}

// ---------------------------------------------------------------------------
// Group – Kafka roster publishing
// ---------------------------------------------------------------------------

// GroupConfig configures roster publishing to the orchestration group.
type GroupConfig struct {
	Brokers   []string `json:"brokers" envconfig:"BROKERS"`
	GroupName string   `json:"groupName" envconfig:"NAME"`
	SenderID  string   `json:"senderId" envconfig:"SENDER_ID"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Workspace: "~/MissionControl-Workspace",
			AvatarDir: ".",
			StoreDB:   "~/.missionctl/mission.db",
		},
		Avatar: AvatarConfig{
			Endpoint:  "https://image.pollinations.ai/prompt",
			Width:     1024,
			Height:    1024,
			Seed:      42,
			NoLogo:    true,
			Enhance:   true,
			UserAgent: "Mozilla/5.0",
			Timeout:   120 * time.Second,
			Pause:     2 * time.Second,
			MinBytes:  10000,
		},
		Slack: SlackConfig{
			APIBase: "https://slack.com/api/",
		},
		Group: GroupConfig{
			Brokers:   []string{"localhost:9092"},
			GroupName: "mission-control",
			SenderID:  "missionctl",
		},
	}
}
