// Package cli runs one search against the selected backend and writes the
// results to stdout in the requested format.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kevin-rs/duckduckgo/internal/config"
	"github.com/kevin-rs/duckduckgo/internal/render"
	"github.com/kevin-rs/duckduckgo/internal/search"
	"github.com/kevin-rs/duckduckgo/internal/styles"
	"github.com/kevin-rs/duckduckgo/internal/telemetry"
	"github.com/kevin-rs/duckduckgo/internal/useragents"
	"github.com/sirupsen/logrus"
)

// OutputFormat controls how results are rendered.
type OutputFormat string

const (
	OutputText     OutputFormat = config.OutputText
	OutputJSON     OutputFormat = config.OutputJSON
	OutputMarkdown OutputFormat = config.OutputMarkdown
)

// Instant answer modes picked by the auto backend.
const (
	ModeInstant   = "instant"
	ModeAdvanced  = "advanced"
	ModeOperators = "operators"
)

// Searcher is the set of backend calls the runner needs. *search.Browser
// implements it.
type Searcher interface {
	Search(ctx context.Context, req search.Request) (*search.InstantAnswer, error)
	AdvancedSearch(ctx context.Context, req search.Request) (*search.InstantAnswer, error)
	SearchOperators(ctx context.Context, req search.Request) (*search.InstantAnswer, error)
	Lite(ctx context.Context, req search.Request) ([]search.LiteResult, error)
	Images(ctx context.Context, req search.Request) ([]search.ImageResult, error)
	News(ctx context.Context, req search.Request) ([]search.NewsResult, error)
}

// Options configures a Runner.
type Options struct {
	// Backend is auto, lite, images or news
	Backend string
	// Format is list or detailed; it only affects instant answers
	Format  string
	Output  OutputFormat
	Origin  string
	Palette styles.Palette
}

// Runner executes a search and prints the results.
type Runner struct {
	logger   *logrus.Logger
	searcher Searcher
	stdout   io.Writer
	opts     Options
}

// NewRunner creates a Runner writing to stdout.
func NewRunner(logger *logrus.Logger, searcher Searcher, stdout io.Writer, opts Options) *Runner {
	if opts.Backend == "" {
		opts.Backend = config.BackendAuto
	}
	if opts.Format == "" {
		opts.Format = config.FormatDetailed
	}
	if opts.Output == "" {
		opts.Output = OutputText
	}
	return &Runner{logger: logger, searcher: searcher, stdout: stdout, opts: opts}
}

// InstantMode picks the instant answer call for req: operators win over a
// region, and the default region means a plain search.
func InstantMode(req search.Request) string {
	switch {
	case req.Operators != "":
		return ModeOperators
	case req.Region != "" && req.Region != search.DefaultRegion:
		return ModeAdvanced
	default:
		return ModeInstant
	}
}

// Run performs the search described by req and writes the results.
func (r *Runner) Run(ctx context.Context, req search.Request) (err error) {
	backend := r.opts.Backend
	if backend == config.BackendAuto {
		backend = InstantMode(req)
	}

	ctx, span := telemetry.StartSearchSpan(ctx, telemetry.SearchSpanInfo{
		Backend:    backend,
		Query:      req.Query,
		Region:     req.Region,
		SafeSearch: req.SafeSearch,
		Limit:      req.Limit,
	})
	count := 0
	defer func() { telemetry.EndSearchSpan(span, count, err) }()

	r.logger.WithFields(logrus.Fields{
		"backend":       backend,
		"query":         req.Query,
		"region":        req.Region,
		"safe_search":   req.SafeSearch,
		"limit":         req.Limit,
		"invocation_id": telemetry.InvocationIDFromContext(ctx),
	}).Debug("Running search")

	switch backend {
	case config.BackendLite:
		results, err := r.searcher.Lite(ctx, req)
		if err != nil {
			return fmt.Errorf("lite search failed: %w", err)
		}
		count = len(results)
		return r.writeLite(results)
	case config.BackendImages:
		results, err := r.searcher.Images(ctx, req)
		if err != nil {
			return fmt.Errorf("image search failed: %w", err)
		}
		count = len(results)
		return r.writeImages(results)
	case config.BackendNews:
		results, err := r.searcher.News(ctx, req)
		if err != nil {
			return fmt.Errorf("news search failed: %w", err)
		}
		count = len(results)
		return r.writeNews(results)
	case ModeInstant, ModeAdvanced, ModeOperators:
		ia, err := r.instantAnswer(ctx, backend, req)
		if err != nil {
			return err
		}
		count = len(ia.RelatedTopics)
		return r.writeInstantAnswer(ia, req.Limit)
	default:
		return fmt.Errorf("unknown backend: %s", backend)
	}
}

func (r *Runner) instantAnswer(ctx context.Context, mode string, req search.Request) (*search.InstantAnswer, error) {
	var (
		ia  *search.InstantAnswer
		err error
	)
	switch mode {
	case ModeOperators:
		ia, err = r.searcher.SearchOperators(ctx, req)
	case ModeAdvanced:
		ia, err = r.searcher.AdvancedSearch(ctx, req)
	default:
		ia, err = r.searcher.Search(ctx, req)
	}
	if err != nil {
		return nil, fmt.Errorf("instant answer search failed: %w", err)
	}
	return ia, nil
}

func (r *Runner) writeInstantAnswer(ia *search.InstantAnswer, limit int) error {
	switch r.opts.Output {
	case OutputJSON:
		out := *ia
		if limit > 0 && limit < len(out.RelatedTopics) {
			out.RelatedTopics = out.RelatedTopics[:limit]
		}
		return writeJSON(r.stdout, out)
	case OutputMarkdown:
		return render.NewMarkdownWriter(r.stdout, r.opts.Origin).InstantAnswer(ia, limit)
	}

	renderer := render.NewRenderer(r.stdout, r.opts.Palette, r.opts.Origin)
	if r.opts.Format == config.FormatList {
		return renderer.List(ia, limit)
	}
	return renderer.Detailed(ia, limit)
}

func (r *Runner) writeLite(results []search.LiteResult) error {
	switch r.opts.Output {
	case OutputJSON:
		return writeJSON(r.stdout, results)
	case OutputMarkdown:
		return render.NewMarkdownWriter(r.stdout, r.opts.Origin).Lite(results)
	}
	return render.NewRenderer(r.stdout, r.opts.Palette, r.opts.Origin).Lite(results)
}

func (r *Runner) writeImages(results []search.ImageResult) error {
	switch r.opts.Output {
	case OutputJSON:
		return writeJSON(r.stdout, results)
	case OutputMarkdown:
		return render.NewMarkdownWriter(r.stdout, r.opts.Origin).Images(results)
	}
	return render.NewRenderer(r.stdout, r.opts.Palette, r.opts.Origin).Images(results)
}

func (r *Runner) writeNews(results []search.NewsResult) error {
	switch r.opts.Output {
	case OutputJSON:
		return writeJSON(r.stdout, results)
	case OutputMarkdown:
		return render.NewMarkdownWriter(r.stdout, r.opts.Origin).News(results)
	}
	return render.NewRenderer(r.stdout, r.opts.Palette, r.opts.Origin).News(results)
}

// ListUserAgents prints every user agent alias with its header value.
func (r *Runner) ListUserAgents(table *useragents.Table) error {
	agents := table.Agents()

	if r.opts.Output == OutputJSON {
		type jsonEntry struct {
			Alias     string `json:"alias"`
			UserAgent string `json:"user_agent"`
		}
		out := make([]jsonEntry, len(agents))
		for i, a := range agents {
			out[i] = jsonEntry{Alias: a.Alias, UserAgent: a.Value}
		}
		return writeJSON(r.stdout, out)
	}

	w := tabwriter.NewWriter(r.stdout, 0, 0, 2, ' ', 0)
	for _, a := range agents {
		fmt.Fprintf(w, "%s\t%s\n", a.Alias, a.Value)
	}
	return w.Flush()
}

// --- helpers ---

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
