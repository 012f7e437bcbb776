package group

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/KafClaw/missionctl/internal/config"
	"github.com/KafClaw/missionctl/internal/squad"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter returns a writer for the group's roster topic.
func NewKafkaWriter(cfg config.GroupConfig) (*kafka.Writer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("group: no brokers configured")
	}
	if cfg.GroupName == "" {
		return nil, errors.New("group: group name is required")
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        RosterTopic(cfg.GroupName),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 10 * time.Second,
	}, nil
}

// RosterPublisher turns registry records into roster envelopes.
type RosterPublisher struct {
	w        MessageWriter
	senderID string
	now      func() time.Time
}

// NewRosterPublisher wraps a writer. senderID identifies this tool in envelopes.
func NewRosterPublisher(w MessageWriter, senderID string) *RosterPublisher {
	return &RosterPublisher{w: w, senderID: senderID, now: time.Now}
}

// IdentityFor builds the discovery identity of one agent.
func IdentityFor(reg *squad.Registry, id string) (AgentIdentity, error) {
	a, ok := reg.Agent(id)
	if !ok {
		return AgentIdentity{}, fmt.Errorf("group: unknown agent %s", id)
	}
	soul, _ := reg.Soul(id)
	return AgentIdentity{
		AgentID:      a.ID,
		AgentName:    a.Name,
		Role:         a.Role,
		SoulSummary:  squad.SoulSummary(soul),
		Capabilities: a.Tools,
		Specialty:    a.Specialty,
		Model:        a.Model,
		SessionKey:   a.SessionKey,
		Schedule:     a.Cron,
		Status:       StatusIdle,
	}, nil
}

// Publish writes one roster envelope per agent, keyed by agent id, in a
// single batch. All envelopes of one call share a correlation id.
func (p *RosterPublisher) Publish(ctx context.Context, reg *squad.Registry) (int, error) {
	correlationID := "roster-" + uuid.NewString()
	ts := p.now()

	msgs := make([]kafka.Message, 0, len(reg.IDs()))
	for _, id := range reg.IDs() {
		ident, err := IdentityFor(reg, id)
		if err != nil {
			return 0, err
		}
		env := GroupEnvelope{
			Type:          EnvelopeRoster,
			CorrelationID: correlationID,
			SenderID:      p.senderID,
			Timestamp:     ts,
			Payload:       RosterPayload{Action: "register", Identity: ident},
		}
		data, err := json.Marshal(env)
		if err != nil {
			return 0, fmt.Errorf("group: marshal roster %s: %w", id, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(id),
			Value: data,
			Time:  ts,
			Headers: []kafka.Header{
				{Key: "envelope-type", Value: []byte(EnvelopeRoster)},
			},
		})
	}

	if err := p.w.WriteMessages(ctx, msgs...); err != nil {
		return 0, fmt.Errorf("group: publish roster: %w", err)
	}
	slog.Info("Roster published", "agents", len(msgs), "correlation_id", correlationID)
	return len(msgs), nil
}

// Close closes the underlying writer.
func (p *RosterPublisher) Close() error {
	return p.w.Close()
}
