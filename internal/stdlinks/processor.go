package stdlinks

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
	"git.home.luguber.info/inful/stdlinks/internal/logfields"
	"git.home.luguber.info/inful/stdlinks/internal/metrics"
)

// Resolver turns references into absolute documentation URLs.
//
// Implementations must return exactly one URL per reference, in the order
// the references were given.
type Resolver interface {
	Resolve(ctx context.Context, doc Document, refs []Reference) ([]string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, doc Document, refs []Reference) ([]string, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, doc Document, refs []Reference) ([]string, error) {
	return f(ctx, doc, refs)
}

// Processor runs the scan, resolve and rewrite steps for one document at a time.
// It holds no per-document state and may be reused across a whole book.
type Processor struct {
	scanner     *Scanner
	resolver    Resolver
	relativizer *Relativizer
	recorder    metrics.Recorder
	logger      *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithScanner overrides the default regex scanner.
func WithScanner(s *Scanner) Option {
	return func(p *Processor) { p.scanner = s }
}

// WithRelativizer sets the URL relativizer. Without one, URLs stay absolute.
func WithRelativizer(r *Relativizer) Option {
	return func(p *Processor) { p.relativizer = r }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Processor) { p.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// NewProcessor creates a Processor that resolves references with resolver.
func NewProcessor(resolver Resolver, opts ...Option) *Processor {
	p := &Processor{
		resolver:    resolver,
		relativizer: NewRelativizer(false, DefaultDocURL),
		recorder:    metrics.NoopRecorder{},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.scanner == nil {
		p.scanner = NewScanner(nil)
	}
	return p
}

// Process returns the rewritten content of doc. When doc has no eligible
// references the content is returned unchanged and the resolver is not called.
func (p *Processor) Process(ctx context.Context, doc Document) (string, error) {
	start := time.Now()
	defer func() { p.recorder.ObserveChapterDuration(time.Since(start)) }()

	refs := p.scanner.Scan(doc.Content)
	if len(refs) == 0 {
		p.recorder.IncChapterResult(metrics.ResultUnchanged)
		return doc.Content, nil
	}

	p.logger.Debug("Resolving std links",
		logfields.Chapter(doc.Name),
		logfields.Path(doc.Path),
		logfields.Links(len(refs)))

	resolveStart := time.Now()
	urls, err := p.resolver.Resolve(ctx, doc, refs)
	p.recorder.ObserveResolverDuration(time.Since(resolveStart), err == nil)
	if err != nil {
		p.recorder.IncChapterResult(metrics.ResultFatal)
		return "", err
	}

	if len(urls) != len(refs) {
		p.recorder.IncChapterResult(metrics.ResultFatal)
		return "", errors.InternalError("resolver returned an unexpected number of links").
			WithContext("expected", len(refs)).
			WithContext("found", len(urls)).
			WithContext("chapter", doc.Name).
			WithContext("source_path", doc.SourcePath).
			Build()
	}

	links := make([]ResolvedLink, len(refs))
	for i, ref := range refs {
		links[i] = ResolvedLink{Reference: ref, URL: urls[i]}
	}

	out, err := Rewrite(p.scanner.Extractor(), doc.Content, links, func(url string) (string, error) {
		return p.relativizer.Relativize(url, doc)
	})
	if err != nil {
		p.recorder.IncChapterResult(metrics.ResultFatal)
		return "", err
	}

	p.recorder.AddLinksResolved(len(links))
	p.recorder.IncChapterResult(metrics.ResultRewritten)
	p.logger.Debug("Rewrote std links",
		logfields.Chapter(doc.Name),
		logfields.Links(len(links)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return out, nil
}
