package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/geodraw/pkg/cache"
	"github.com/matzehuels/geodraw/pkg/diagram"
	"github.com/matzehuels/geodraw/pkg/observability"
	"github.com/matzehuels/geodraw/pkg/render/figure"
)

// summaryFormat keys the cached renderSummary stored beside a document's
// artifacts.
const summaryFormat = "summary"

// renderSummary is what a cache hit needs to report besides the artifacts.
type renderSummary struct {
	Commands int    `json:"commands"`
	Skipped  []Skip `json:"skipped,omitempty"`
}

// Runner executes the pipeline with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultTTL,
	}
}

// Execute validates, renders and exports one document.
func (r *Runner) Execute(ctx context.Context, doc diagram.Document, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if err := diagram.Validate(doc); err != nil {
		return nil, err
	}

	family := string(doc.Family)
	hooks := observability.Render()
	start := time.Now()
	hooks.OnRenderStart(ctx, family, opts.Formats)
	defer func() { hooks.OnRenderComplete(ctx, family, opts.Formats, time.Since(start), err) }()

	width, height := opts.Width, opts.Height
	if doc.Width > 0 {
		width = doc.Width
	}
	if doc.Height > 0 {
		height = doc.Height
	}

	docHash, err := documentHash(r.Keyer, doc)
	if err != nil {
		return nil, fmt.Errorf("hash document: %w", err)
	}
	result = &Result{
		Name:      doc.Name,
		Family:    family,
		DocHash:   docHash,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}

	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(family, format, width, height))
	}
	summaryKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(family, summaryFormat, width, height))
	if !opts.Refresh && r.lookup(ctx, keys, result.Artifacts) {
		if sum, ok := r.summary(ctx, summaryKey); ok {
			result.CacheInfo.RenderHit = true
			result.Stats.Commands = sum.Commands
			result.Skipped = sum.Skipped
			for _, s := range sum.Skipped {
				hooks.OnAnnotationSkipped(ctx, family, s.Kind, s.Reason)
			}
			opts.Logger.Debug("artifacts served from cache", "name", doc.Name, "formats", opts.Formats)
			return result, nil
		}
	}

	// Step 2: Render
	fopts := opts.figureOptions()
	fopts.OnSkip = func(kind, reason string) {
		result.Skipped = append(result.Skipped, Skip{Kind: kind, Reason: reason})
		hooks.OnAnnotationSkipped(ctx, family, kind, reason)
	}
	renderStart := time.Now()
	cv, err := figure.Render(doc, fopts)
	if err != nil {
		return nil, err
	}
	if opts.Background != "" {
		cv.SetBackground(opts.Background)
	}
	cv.SetEmbedFont(opts.EmbedFont)
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.Commands = cv.Len()

	// Step 3: Export
	exportStart := time.Now()
	artifacts, err := Export(ctx, cv, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)

	for format, data := range artifacts {
		if err := r.Cache.Set(ctx, keys[format], data, r.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	if data, err := json.Marshal(renderSummary{Commands: result.Stats.Commands, Skipped: result.Skipped}); err == nil {
		if err := r.Cache.Set(ctx, summaryKey, data, r.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "format", summaryFormat, "error", err)
		}
	}

	opts.Logger.Info("rendered diagram",
		"name", doc.Name,
		"family", family,
		"commands", result.Stats.Commands,
		"skipped", len(result.Skipped),
		"duration", result.Stats.RenderTime+result.Stats.ExportTime)
	return result, nil
}

// ExecuteBatch runs Execute for every document, at most
// DefaultConcurrency at a time. Results keep the input order. The first
// error cancels the remaining renders.
func (r *Runner) ExecuteBatch(ctx context.Context, docs []diagram.Document, opts Options) ([]*Result, error) {
	results := make([]*Result, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(DefaultConcurrency)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			res, err := r.Execute(ctx, doc, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", doc.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// lookup fills artifacts from cache and reports whether every key hit.
func (r *Runner) lookup(ctx context.Context, keys map[string]string, artifacts map[string][]byte) bool {
	hooks := observability.Cache()
	for format, key := range keys {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, "artifact")
			clear(artifacts)
			return false
		}
		hooks.OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return true
}

// summary reads the cached renderSummary under key.
func (r *Runner) summary(ctx context.Context, key string) (renderSummary, bool) {
	var sum renderSummary
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return sum, false
	}
	if err := json.Unmarshal(data, &sum); err != nil {
		r.Logger.Warn("discarding unreadable render summary", "error", err)
		return sum, false
	}
	return sum, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// documentHash hashes doc without its name, so renaming a document keeps
// its cached artifacts.
func documentHash(k cache.Keyer, doc diagram.Document) (string, error) {
	doc.Name = ""
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return k.DocumentKey(data), nil
}
