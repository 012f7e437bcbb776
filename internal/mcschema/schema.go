// Package mcschema describes the collections of the external Mission Control
// store and renders them as SQLite tables. Records themselves are written by
// the store package.
package mcschema

import (
	"slices"
	"strings"
)

// Kind is the type hint of one field.
type Kind string

const (
	KindString   Kind = "string"
	KindDatetime Kind = "datetime"
	KindArray    Kind = "array"
	KindObject   Kind = "object"
	KindBoolean  Kind = "boolean"
	KindEnum     Kind = "enum"
)

// Field is one entry of a collection shape.
type Field struct {
	Name   string   `json:"name" yaml:"name"`
	Kind   Kind     `json:"kind" yaml:"kind"`
	Values []string `json:"values,omitempty" yaml:"values,omitempty"`
	Note   string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// Hint renders the field the way the store documentation writes it:
// enums as "a | b | c", everything else as the kind name.
func (f Field) Hint() string {
	if f.Kind == KindEnum {
		return strings.Join(f.Values, " | ")
	}
	return string(f.Kind)
}

// Collection is a named record shape.
type Collection struct {
	Name   string  `json:"name" yaml:"name"`
	Record string  `json:"record" yaml:"record"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field looks up a field by name.
func (c Collection) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Schema is the ordered list of collections.
type Schema struct {
	Collections []Collection `json:"collections" yaml:"collections"`
}

// Collection looks up a collection by name.
func (s Schema) Collection(name string) (Collection, bool) {
	for _, c := range s.Collections {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}

// Names returns collection names in declaration order.
func (s Schema) Names() []string {
	out := make([]string, 0, len(s.Collections))
	for _, c := range s.Collections {
		out = append(out, c.Name)
	}
	return out
}

func str(name string) Field      { return Field{Name: name, Kind: KindString} }
func datetime(name string) Field { return Field{Name: name, Kind: KindDatetime} }
func array(name string) Field    { return Field{Name: name, Kind: KindArray} }
func enum(name string, values ...string) Field {
	return Field{Name: name, Kind: KindEnum, Values: slices.Clone(values)}
}

// MissionControl returns the store description. Each call builds a fresh
// value so callers cannot alter the shared definition.
func MissionControl() Schema {
	return Schema{Collections: []Collection{
		{
			Name:   "agents",
			Record: "Agent",
			Fields: []Field{
				str("name"),
				str("role"),
				enum("status", "idle", "active", "blocked"),
				str("current_task_id"),
				str("session_key"),
				datetime("last_heartbeat"),
				array("tools"),
			},
		},
		{
			Name:   "tasks",
			Record: "Task",
			Fields: []Field{
				str("title"),
				str("description"),
				enum("status", "inbox", "assigned", "in_progress", "review", "done", "blocked"),
				{Name: "assignee_ids", Kind: KindArray, Note: "multiple agents can work on the same task"},
				enum("priority", "low", "medium", "high", "urgent"),
				datetime("created_at"),
				datetime("updated_at"),
				datetime("due_date"),
				array("tags"),
			},
		},
		{
			Name:   "messages",
			Record: "Message",
			Fields: []Field{
				str("task_id"),
				str("from_agent_id"),
				str("content"),
				array("attachments"),
				datetime("timestamp"),
				enum("type", "comment", "update", "question", "decision"),
			},
		},
		{
			Name:   "activities",
			Record: "Activity",
			Fields: []Field{
				enum("type", "task_created", "message_sent", "document_created", "agent_status_changed"),
				str("agent_id"),
				str("message"),
				datetime("timestamp"),
				{Name: "metadata", Kind: KindObject},
			},
		},
		{
			Name:   "documents",
			Record: "Document",
			Fields: []Field{
				str("title"),
				{Name: "content", Kind: KindString, Note: "markdown"},
				enum("type", "deliverable", "research", "protocol", "note"),
				str("task_id"),
				str("agent_id"),
				datetime("created_at"),
				datetime("updated_at"),
			},
		},
		{
			Name:   "notifications",
			Record: "Notification",
			Fields: []Field{
				str("mentioned_agent_id"),
				str("content"),
				{Name: "delivered", Kind: KindBoolean},
				datetime("created_at"),
			},
		},
	}}
}
