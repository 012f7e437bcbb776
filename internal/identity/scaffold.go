package identity

import (
	"fmt"
	"os"
	"path/filepath"
)

// ScaffoldResult reports which agent souls were created, skipped, or errored.
type ScaffoldResult struct {
	Created []string
	Skipped []string
	Errors  []string
}

// ScaffoldWorkspace writes <path>/<id>/SOUL.md for every agent id.
// If force is false, existing files are skipped. If force is true, they are overwritten.
func ScaffoldWorkspace(path string, ids []string, force bool) (*ScaffoldResult, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace dir: %w", err)
	}

	result := &ScaffoldResult{}

	for _, id := range ids {
		dir := filepath.Join(path, id)
		dst := filepath.Join(dir, SoulFileName)

		if !force {
			if _, err := os.Stat(dst); err == nil {
				result.Skipped = append(result.Skipped, id)
				continue
			}
		}

		data, err := Soul(id)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", id, err))
			continue
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", id, err))
			continue
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", id, err))
			continue
		}

		result.Created = append(result.Created, id)
	}

	return result, nil
}
