package group

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/KafClaw/missionctl/internal/config"
	"github.com/KafClaw/missionctl/internal/squad"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

type decodedEnvelope struct {
	Type          string        `json:"type"`
	CorrelationID string        `json:"correlation_id"`
	SenderID      string        `json:"sender_id"`
	Timestamp     time.Time     `json:"timestamp"`
	Payload       RosterPayload `json:"payload"`
}

func TestRosterTopic(t *testing.T) {
	if got := RosterTopic("mission-control"); got != "group.mission-control.control.roster" {
		t.Errorf("RosterTopic = %s", got)
	}
}

func TestPublishWritesOneMessagePerAgent(t *testing.T) {
	reg, err := squad.Default()
	if err != nil {
		t.Fatalf("squad.Default: %v", err)
	}
	w := &recordingWriter{}
	p := NewRosterPublisher(w, "missionctl-test")
	fixed := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	n, err := p.Publish(context.Background(), reg)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if n != 5 || len(w.msgs) != 5 {
		t.Fatalf("published %d (%d msgs), want 5", n, len(w.msgs))
	}

	var correlation string
	for i, id := range reg.IDs() {
		msg := w.msgs[i]
		if string(msg.Key) != id {
			t.Errorf("msg %d key = %s, want %s", i, msg.Key, id)
		}
		var env decodedEnvelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			t.Fatalf("unmarshal %s: %v", id, err)
		}
		if env.Type != EnvelopeRoster || env.SenderID != "missionctl-test" || !env.Timestamp.Equal(fixed) {
			t.Errorf("unexpected envelope %+v", env)
		}
		if i == 0 {
			correlation = env.CorrelationID
		} else if env.CorrelationID != correlation {
			t.Errorf("correlation ids differ within one publish")
		}
		if env.Payload.Identity.AgentID != id || env.Payload.Identity.Status != StatusIdle {
			t.Errorf("unexpected identity %+v", env.Payload.Identity)
		}
	}
	if !strings.HasPrefix(correlation, "roster-") {
		t.Errorf("correlation id = %s", correlation)
	}
}

func TestIdentityFor(t *testing.T) {
	reg, _ := squad.Default()
	ident, err := IdentityFor(reg, "johnny_bravo")
	if err != nil {
		t.Fatalf("IdentityFor: %v", err)
	}
	if ident.SessionKey != "agent:johnny-bravo:main" || ident.Schedule != "6,21,36,51 * * * *" || ident.Model != "kimi-2.5" {
		t.Errorf("unexpected identity %+v", ident)
	}
	if !strings.HasPrefix(ident.SoulSummary, "Confident, charming, persistent.") {
		t.Errorf("SoulSummary = %q", ident.SoulSummary)
	}
	if len(ident.Capabilities) != 4 || ident.Capabilities[3] != "crm" {
		t.Errorf("Capabilities = %v", ident.Capabilities)
	}

	if _, err := IdentityFor(reg, "bug"); err == nil {
		t.Error("bug is not a squad member")
	}
}

func TestPublishSurfacesWriterError(t *testing.T) {
	reg, _ := squad.Default()
	w := &recordingWriter{err: errors.New("broker down")}
	p := NewRosterPublisher(w, "missionctl")

	if _, err := p.Publish(context.Background(), reg); err == nil || !strings.Contains(err.Error(), "broker down") {
		t.Errorf("expected broker error, got %v", err)
	}
	if err := p.Close(); err != nil || !w.closed {
		t.Error("Close should close the writer")
	}
}

func TestNewKafkaWriter(t *testing.T) {
	if _, err := NewKafkaWriter(config.GroupConfig{GroupName: "g"}); err == nil {
		t.Error("missing brokers should fail")
	}
	if _, err := NewKafkaWriter(config.GroupConfig{Brokers: []string{"b:9092"}}); err == nil {
		t.Error("missing group name should fail")
	}
	w, err := NewKafkaWriter(config.GroupConfig{Brokers: []string{"b1:9092", "b2:9092"}, GroupName: "squad"})
	if err != nil {
		t.Fatalf("NewKafkaWriter: %v", err)
	}
	if w.Topic != "group.squad.control.roster" {
		t.Errorf("Topic = %s", w.Topic)
	}
	if w.Addr == nil || w.RequiredAcks != kafka.RequireOne {
		t.Errorf("unexpected writer settings: addr=%v acks=%v", w.Addr, w.RequiredAcks)
	}
}
