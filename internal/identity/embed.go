// Package identity provides the embedded soul documents of the squad and
// workspace scaffolding for them.
package identity

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed templates/souls/*.md
var soulFS embed.FS

const soulDir = "templates/souls"

// SoulFileName is the file each agent's soul is written to in a workspace.
const SoulFileName = "SOUL.md"

// Soul returns the embedded soul document for an agent identifier.
func Soul(id string) ([]byte, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, fmt.Errorf("soul: invalid agent id %q", id)
	}
	data, err := soulFS.ReadFile(path.Join(soulDir, id+".md"))
	if err != nil {
		return nil, fmt.Errorf("soul %s: %w", id, err)
	}
	return data, nil
}

// SoulIDs lists the agent identifiers that have an embedded soul, sorted.
func SoulIDs() ([]string, error) {
	entries, err := fs.ReadDir(soulFS, soulDir)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if id, ok := strings.CutSuffix(e.Name(), ".md"); ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// Souls loads every embedded soul keyed by agent identifier.
func Souls() (map[string]string, error) {
	ids, err := SoulIDs()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		data, err := Soul(id)
		if err != nil {
			return nil, err
		}
		out[id] = string(data)
	}
	return out, nil
}
