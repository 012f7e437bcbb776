package squad

import (
	"errors"
	"fmt"
	"slices"

	"github.com/KafClaw/missionctl/internal/schedule"
)

// Validate checks the roster invariants and reports every violation:
// unique non-empty ids, soul and agent key sets equal, valid five-field
// crons, unique session keys, and heartbeats that never share a minute.
func Validate(agents []AgentRecord, souls map[string]string, standupCron string) error {
	var errs []error

	ids := make(map[string]struct{}, len(agents))
	var order []string
	sessions := make(map[string]string, len(agents))
	type parsedCron struct {
		id   string
		expr *schedule.CronExpr
	}
	var crons []parsedCron

	for i, a := range agents {
		if a.ID == "" {
			errs = append(errs, fmt.Errorf("agent #%d: empty id", i))
			continue
		}
		if _, dup := ids[a.ID]; dup {
			errs = append(errs, fmt.Errorf("agent %s: duplicate id", a.ID))
			continue
		}
		ids[a.ID] = struct{}{}
		order = append(order, a.ID)

		if a.SessionKey == "" {
			errs = append(errs, fmt.Errorf("agent %s: empty session key", a.ID))
		} else if other, dup := sessions[a.SessionKey]; dup {
			errs = append(errs, fmt.Errorf("agent %s: session key %q already used by %s", a.ID, a.SessionKey, other))
		} else {
			sessions[a.SessionKey] = a.ID
		}

		c, err := schedule.ParseCron(a.Cron)
		if err != nil {
			errs = append(errs, fmt.Errorf("agent %s: %w", a.ID, err))
			continue
		}
		crons = append(crons, parsedCron{id: a.ID, expr: c})
	}

	for _, id := range order {
		if _, ok := souls[id]; !ok {
			errs = append(errs, fmt.Errorf("agent %s: no soul document", id))
		}
	}
	soulIDs := make([]string, 0, len(souls))
	for id := range souls {
		soulIDs = append(soulIDs, id)
	}
	slices.Sort(soulIDs)
	for _, id := range soulIDs {
		if _, ok := ids[id]; !ok {
			errs = append(errs, fmt.Errorf("soul %s: no matching agent", id))
		}
	}

	for i := 0; i < len(crons); i++ {
		for j := i + 1; j < len(crons); j++ {
			if shared := schedule.Overlap(crons[i].expr, crons[j].expr); len(shared) > 0 {
				errs = append(errs, fmt.Errorf("agents %s and %s: heartbeats share minutes %v", crons[i].id, crons[j].id, shared))
			}
		}
	}

	if _, err := schedule.ParseCron(standupCron); err != nil {
		errs = append(errs, fmt.Errorf("standup: %w", err))
	}

	return errors.Join(errs...)
}
