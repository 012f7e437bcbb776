package avatar

import (
	"fmt"
	"slices"
	"strings"
)

// Job is one avatar to generate.
type Job struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

// FileName is the image file the job writes, <id>.png.
func (j Job) FileName() string {
	return j.ID + ".png"
}

// DefaultJobs returns the squad avatars plus the "bug" coordinator, in
// generation order.
func DefaultJobs() []Job {
	return []Job{
		{
			ID:     "dexter",
			Prompt: "Professional avatar of a futuristic scientist named Dexter, wearing a sleek white lab coat with glowing blue circuit patterns. Holographic data displays float around showing DNA helixes and molecular structures. Smart focused expression, analytical eyes behind stylish glasses. Dark navy blue background with purple and cyan tech lighting accents. Digital art style, square format, high quality, cohesive cyberpunk aesthetic.",
		},
		{
			ID:     "blossom",
			Prompt: "Professional avatar of an elegant creative content creator named Blossom. Flowing elements combining cherry blossom petals with digital light particles and data streams. Nature meets technology aesthetic with warm pink and gold accents against dark background. Artistic sophisticated expression, flowing hair blending with petals. Digital art style, square format, high quality.",
		},
		{
			ID:     "samurai_jack",
			Prompt: "Professional avatar of a cyber-samurai coder named Samurai Jack. Character in disciplined warrior stance wearing futuristic armor with clean geometric lines. Glowing cyan code symbols flow like sword strikes around them. Honorable focused expression. Dark background with white and cyan accent lighting. Mix of traditional samurai aesthetics with futuristic tech. Digital art style, square format, high quality.",
		},
		{
			ID:     "johnny_bravo",
			Prompt: "Professional avatar of a confident sales agent named Johnny Bravo. Character wears a sharp dark suit with subtle gold tech accents and stylish sunglasses. Confident charming smirk, slicked-back hair. Professional yet edgy vibe. Dark background with warm golden and orange accent lighting. Charismatic personality. Digital art style, square format, high quality.",
		},
		{
			ID:     "courage",
			Prompt: "Professional avatar of a loyal friendly support agent named Courage. Warm kind eyes, helpful approachable stance. Friendly companion character with soft glowing green and blue accents suggesting warmth and reliability. Dark background with gentle lighting. Trustworthy welcoming personality. Digital art style, square format, high quality.",
		},
		{
			ID:     "bug",
			Prompt: "Professional avatar of a coordinator agent named Bug. Character designed with network node aesthetic - glowing connecting lines and geometric hexagonal patterns radiating like a central hub. Multiple colored data streams connecting to them. Organized efficient appearance. Dark background with interconnected glowing lines in blue, green, and purple. Hub-and-spoke visual motif. Digital art style, square format, high quality.",
		},
	}
}

// FilterJobs keeps the jobs whose ids are listed, preserving job order.
// Unknown ids are an error.
func FilterJobs(jobs []Job, ids []string) ([]Job, error) {
	if len(ids) == 0 {
		return jobs, nil
	}
	known := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		known[j.ID] = true
	}
	var unknown []string
	for _, id := range ids {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown avatar ids: %s", strings.Join(unknown, ", "))
	}
	var out []Job
	for _, j := range jobs {
		if slices.Contains(ids, j.ID) {
			out = append(out, j)
		}
	}
	return out, nil
}
