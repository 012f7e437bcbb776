package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KafClaw/missionctl/internal/avatar"
	"github.com/KafClaw/missionctl/internal/config"
)

func sampleReport() *avatar.Report {
	return &avatar.Report{
		RunID: "run-1",
		Results: []avatar.Result{
			{ID: "dexter", Bytes: 15000, Path: "dexter.png"},
			{ID: "blossom", Bytes: 500, Err: avatar.ErrTooSmall},
		},
	}
}

func TestFormatReport(t *testing.T) {
	got := FormatReport(sampleReport())
	want := "Avatar run run-1: 1/2 saved\n• dexter ✓ 15000 bytes\n• blossom ✗ response too small"
	if got != want {
		t.Errorf("FormatReport =\n%s\nwant\n%s", got, want)
	}
}

func TestNewSlackNotifierRequiresTokenAndChannel(t *testing.T) {
	if _, err := NewSlackNotifier(config.SlackConfig{Token: "xoxb"}); err == nil {
		t.Error("missing channel should fail")
	}
	if _, err := NewSlackNotifier(config.SlackConfig{Channel: "C1"}); err == nil {
		t.Error("missing token should fail")
	}
}

func TestPostReport(t *testing.T) {
	var gotPath, gotChannel, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = r.ParseForm()
		gotChannel = r.FormValue("channel")
		gotText = r.FormValue("text")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"channel":"C1","ts":"1700000000.000100"}`))
	}))
	defer srv.Close()

	n, err := NewSlackNotifier(config.SlackConfig{Token: "xoxb-test", Channel: "C1", APIBase: srv.URL})
	if err != nil {
		t.Fatalf("NewSlackNotifier: %v", err)
	}
	if err := n.PostReport(context.Background(), sampleReport()); err != nil {
		t.Fatalf("PostReport: %v", err)
	}
	if gotPath != "/chat.postMessage" {
		t.Errorf("path = %s", gotPath)
	}
	if gotChannel != "C1" {
		t.Errorf("channel = %s", gotChannel)
	}
	if !strings.Contains(gotText, "1/2 saved") {
		t.Errorf("text = %q", gotText)
	}
}

func TestPostReportSurfacesSlackError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
	}))
	defer srv.Close()

	n, _ := NewSlackNotifier(config.SlackConfig{Token: "xoxb-test", Channel: "C404", APIBase: srv.URL + "/"})
	err := n.PostReport(context.Background(), sampleReport())
	if err == nil || !strings.Contains(err.Error(), "channel_not_found") {
		t.Errorf("expected channel_not_found, got %v", err)
	}
	if errors.Unwrap(err) == nil {
		t.Error("slack error should be wrapped")
	}
}
