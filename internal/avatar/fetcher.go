// Package avatar downloads generated agent avatars from an image-generation
// endpoint, one request at a time.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/KafClaw/missionctl/internal/config"
)

var (
	// ErrTooSmall marks a response body at or below the minimum image size.
	ErrTooSmall = errors.New("response too small")
	// ErrStatus marks a non-2xx response.
	ErrStatus = errors.New("unexpected status")
)

// Doer issues HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithDoer replaces the HTTP client.
func WithDoer(d Doer) Option {
	return func(f *Fetcher) { f.client = d }
}

// WithClock replaces the wall clock used for pacing.
func WithClock(c Clock) Option {
	return func(f *Fetcher) { f.clock = c }
}

// WithOutput sets where per-item status lines are written.
func WithOutput(w io.Writer) Option {
	return func(f *Fetcher) { f.out = w }
}

// Fetcher generates avatars sequentially into an output directory.
type Fetcher struct {
	cfg    config.AvatarConfig
	outDir string
	client Doer
	clock  Clock
	out    io.Writer
}

// New creates a fetcher writing <id>.png files into outDir.
func New(cfg config.AvatarConfig, outDir string, opts ...Option) *Fetcher {
	f := &Fetcher{
		cfg:    cfg,
		outDir: outDir,
		// Per-request deadlines come from the context in fetch.
		client: &http.Client{},
		clock:  realClock{},
		out:    io.Discard,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL builds the generation request URL for a job. Query parameters keep a
// fixed order.
func (f *Fetcher) URL(job Job) string {
	return fmt.Sprintf("%s/%s?width=%d&height=%d&seed=%d&nologo=%t&enhance=%t",
		strings.TrimRight(f.cfg.Endpoint, "/"),
		url.PathEscape(job.Prompt),
		f.cfg.Width, f.cfg.Height, f.cfg.Seed, f.cfg.NoLogo, f.cfg.Enhance)
}

// Run processes jobs strictly in order and always completes the full pass.
// Per-item failures land in the report; the returned error is reserved for
// preflight problems that would make the whole run meaningless.
func (f *Fetcher) Run(ctx context.Context, jobs []Job) (*Report, error) {
	if err := f.preflight(jobs); err != nil {
		return nil, err
	}

	rep := &Report{
		RunID:     uuid.NewString(),
		StartedAt: f.clock.Now(),
		Results:   make([]Result, 0, len(jobs)),
	}
	slog.Info("Avatar run started", "run_id", rep.RunID, "jobs", len(jobs), "out_dir", f.outDir)

	for i, job := range jobs {
		res := f.fetchOne(ctx, job)
		rep.Results = append(rep.Results, res)
		if res.OK() {
			slog.Debug("Avatar saved", "run_id", rep.RunID, "id", job.ID, "bytes", res.Bytes)
		} else {
			slog.Warn("Avatar failed", "run_id", rep.RunID, "id", job.ID, "error", res.Err)
		}

		if i < len(jobs)-1 {
			if err := f.clock.Sleep(ctx, f.cfg.Pause); err != nil {
				slog.Debug("Avatar pause interrupted", "run_id", rep.RunID, "error", err)
			}
		}
	}

	rep.FinishedAt = f.clock.Now()
	fmt.Fprintf(f.out, "\nDone! %d/%d saved\n", rep.Saved(), len(rep.Results))
	slog.Info("Avatar run finished", "run_id", rep.RunID, "saved", rep.Saved(), "failed", len(rep.Failed()))
	return rep, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, job Job) Result {
	fmt.Fprintf(f.out, "Generating %s...\n", job.ID)
	res := Result{ID: job.ID}

	data, err := f.fetch(ctx, job)
	if err != nil {
		res.Err = err
		fmt.Fprintf(f.out, "  %s Error: %v\n", color.RedString("✗"), err)
		return res
	}
	res.Bytes = len(data)

	if len(data) <= f.cfg.MinBytes {
		res.Err = fmt.Errorf("%w (%d bytes)", ErrTooSmall, len(data))
		fmt.Fprintf(f.out, "  %s File too small (%d bytes)\n", color.RedString("✗"), len(data))
		return res
	}

	path := filepath.Join(f.outDir, job.FileName())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		res.Err = fmt.Errorf("write %s: %w", path, err)
		fmt.Fprintf(f.out, "  %s Error: %v\n", color.RedString("✗"), res.Err)
		return res
	}
	res.Path = path
	fmt.Fprintf(f.out, "  %s Saved %s (%d bytes)\n", color.GreenString("✓"), job.FileName(), len(data))
	return res
}

func (f *Fetcher) fetch(ctx context.Context, job Job) ([]byte, error) {
	if f.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.cfg.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(job), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

// preflight fails the whole run when ids would collide on disk or the output
// directory cannot be written.
func (f *Fetcher) preflight(jobs []Job) error {
	seen := make(map[string]string, len(jobs))
	for _, job := range jobs {
		if job.ID == "" || job.ID == "." || job.ID == ".." || strings.ContainsAny(job.ID, `/\:`) {
			return fmt.Errorf("avatar preflight: invalid job id %q", job.ID)
		}
		key := strings.ToLower(job.FileName())
		if other, dup := seen[key]; dup {
			return fmt.Errorf("avatar preflight: jobs %q and %q write the same file %s", other, job.ID, job.FileName())
		}
		seen[key] = job.ID
	}

	if err := os.MkdirAll(f.outDir, 0o755); err != nil {
		return fmt.Errorf("avatar preflight: create output dir: %w", err)
	}
	probe, err := os.CreateTemp(f.outDir, ".missionctl-probe-*")
	if err != nil {
		return fmt.Errorf("avatar preflight: output dir not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}
