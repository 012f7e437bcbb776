package schedule

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Wake is the next firing of one named cron entry.
type Wake struct {
	Name string    `json:"name"`
	Expr string    `json:"cron"`
	At   time.Time `json:"next"`
}

// Plan computes the next wake after from for every entry, ordered by time and
// then by name. Names are job labels such as "dexter-heartbeat".
func Plan(entries map[string]string, from time.Time) ([]Wake, error) {
	wakes := make([]Wake, 0, len(entries))
	for name, expr := range entries {
		c, err := ParseCron(expr)
		if err != nil {
			return nil, fmt.Errorf("plan %s: %w", name, err)
		}
		wakes = append(wakes, Wake{Name: name, Expr: c.String(), At: c.Next(from)})
	}
	slices.SortFunc(wakes, func(a, b Wake) int {
		if c := a.At.Compare(b.At); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return wakes, nil
}
