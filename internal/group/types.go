// Package group announces the squad roster to a Kafka orchestration group.
package group

import (
	"fmt"
	"time"
)

// AgentIdentity describes one agent for group discovery.
type AgentIdentity struct {
	AgentID      string   `json:"agent_id"`
	AgentName    string   `json:"agent_name"`
	Role         string   `json:"role"`
	SoulSummary  string   `json:"soul_summary"`
	Capabilities []string `json:"capabilities"`
	Specialty    string   `json:"specialty,omitempty"`
	Model        string   `json:"model"`
	SessionKey   string   `json:"session_key"`
	Schedule     string   `json:"schedule"`
	Status       string   `json:"status"`
}

// GroupEnvelope is the wire format for all Kafka group messages.
type GroupEnvelope struct {
	Type          string    `json:"type"`
	CorrelationID string    `json:"correlation_id"`
	SenderID      string    `json:"sender_id"`
	Timestamp     time.Time `json:"timestamp"`
	Payload       any       `json:"payload"`
}

// Envelope type constants.
const (
	EnvelopeRoster = "roster"
)

// Agent status values carried in roster payloads.
const (
	StatusIdle    = "idle"
	StatusActive  = "active"
	StatusBlocked = "blocked"
)

// RosterPayload announces one member of the squad.
type RosterPayload struct {
	Action   string        `json:"action"` // "register"
	Identity AgentIdentity `json:"identity"`
}

// RosterTopic returns the control topic roster envelopes are published to.
func RosterTopic(groupName string) string {
	return fmt.Sprintf("group.%s.control.roster", groupName)
}
