package squad

import (
	"fmt"
	"log/slog"

	"github.com/KafClaw/missionctl/internal/identity"
)

// Registry is the validated, read-only squad roster.
type Registry struct {
	order   []string
	agents  map[string]AgentRecord
	souls   map[string]string
	standup string
}

// Default builds the registry from the built-in roster and the embedded soul
// documents.
func Default() (*Registry, error) {
	souls, err := identity.Souls()
	if err != nil {
		return nil, fmt.Errorf("squad: load souls: %w", err)
	}
	return New(defaultRoster(), souls, StandupCron)
}

// New validates the inputs and returns a registry holding private copies of
// them. Agent order is preserved.
func New(agents []AgentRecord, souls map[string]string, standupCron string) (*Registry, error) {
	if err := Validate(agents, souls, standupCron); err != nil {
		return nil, fmt.Errorf("squad: invalid roster: %w", err)
	}

	r := &Registry{
		order:   make([]string, 0, len(agents)),
		agents:  make(map[string]AgentRecord, len(agents)),
		souls:   make(map[string]string, len(souls)),
		standup: standupCron,
	}
	for _, a := range agents {
		r.order = append(r.order, a.ID)
		r.agents[a.ID] = a.clone()
	}
	for id, s := range souls {
		r.souls[id] = s
	}
	slog.Debug("Squad registry loaded", "agents", len(r.order), "standup", r.standup)
	return r, nil
}

// IDs returns agent identifiers in roster order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Agent looks up one agent record.
func (r *Registry) Agent(id string) (AgentRecord, bool) {
	a, ok := r.agents[id]
	if !ok {
		return AgentRecord{}, false
	}
	return a.clone(), true
}

// Agents returns all records in roster order.
func (r *Registry) Agents() []AgentRecord {
	out := make([]AgentRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.agents[id].clone())
	}
	return out
}

// Soul returns the soul document for an agent.
func (r *Registry) Soul(id string) (string, bool) {
	s, ok := r.souls[id]
	return s, ok
}

// Schedule returns the heartbeat cron expression for an agent.
func (r *Registry) Schedule(id string) (string, bool) {
	a, ok := r.agents[id]
	if !ok {
		return "", false
	}
	return a.Cron, true
}

// HeartbeatSchedule projects agent id -> heartbeat cron from the records.
func (r *Registry) HeartbeatSchedule() map[string]string {
	out := make(map[string]string, len(r.agents))
	for id, a := range r.agents {
		out[id] = a.Cron
	}
	return out
}

// StandupCron returns the daily standup expression.
func (r *Registry) StandupCron() string {
	return r.standup
}

// CronJobs returns every job an external scheduler should register, keyed by
// job name: one heartbeat per agent plus the daily standup.
func (r *Registry) CronJobs() map[string]string {
	jobs := make(map[string]string, len(r.agents)+1)
	for id, a := range r.agents {
		jobs[HeartbeatJobName(id)] = a.Cron
	}
	jobs[StandupJobName] = r.standup
	return jobs
}
