// Package notify posts avatar run reports to Slack.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/KafClaw/missionctl/internal/avatar"
	"github.com/KafClaw/missionctl/internal/config"
)

// SlackNotifier posts run summaries to one channel.
type SlackNotifier struct {
	api     *slack.Client
	channel string
}

// NewSlackNotifier builds a notifier from config. Token and channel are required.
func NewSlackNotifier(cfg config.SlackConfig) (*SlackNotifier, error) {
	token := strings.TrimSpace(cfg.Token)
	channel := strings.TrimSpace(cfg.Channel)
	if token == "" || channel == "" {
		return nil, errors.New("slack: token and channel are required")
	}
	base := strings.TrimSpace(cfg.APIBase)
	if base == "" {
		base = slack.APIURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &SlackNotifier{
		api:     slack.New(token, slack.OptionAPIURL(base)),
		channel: channel,
	}, nil
}

// PostReport sends the formatted report.
func (n *SlackNotifier) PostReport(ctx context.Context, rep *avatar.Report) error {
	_, _, err := n.api.PostMessageContext(ctx, n.channel, slack.MsgOptionText(FormatReport(rep), false))
	if err != nil {
		return fmt.Errorf("slack: post report: %w", err)
	}
	return nil
}

// FormatReport renders a short plain-text summary, one line per job.
func FormatReport(rep *avatar.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Avatar run %s: %d/%d saved\n", rep.RunID, rep.Saved(), len(rep.Results))
	for _, res := range rep.Results {
		if res.OK() {
			fmt.Fprintf(&b, "• %s ✓ %d bytes\n", res.ID, res.Bytes)
		} else {
			fmt.Fprintf(&b, "• %s ✗ %v\n", res.ID, res.Err)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
