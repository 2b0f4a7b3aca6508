package rustdoc

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
	"git.home.luguber.info/inful/stdlinks/internal/logfields"
	"git.home.luguber.info/inful/stdlinks/internal/stdlinks"
	"git.home.luguber.info/inful/stdlinks/internal/workspace"
)

// Options configures a Resolver.
type Options struct {
	// Binary is the rustdoc executable, looked up in PATH when not absolute.
	Binary string
	// Edition is passed as --edition.
	Edition string
	// DocURL is the documentation site root; only links below it are extracted.
	DocURL string
	// ScratchDir is the parent of the per-document scratch directories.
	ScratchDir string
	// KeepScratch leaves scratch directories on disk after each document.
	KeepScratch bool
	// Stderr receives rustdoc's diagnostics verbatim when it fails.
	Stderr io.Writer
	Logger *slog.Logger
}

// Resolver implements stdlinks.Resolver by running rustdoc.
type Resolver struct {
	opts Options
}

var _ stdlinks.Resolver = (*Resolver)(nil)

// NewResolver creates a Resolver, filling unset options with defaults.
func NewResolver(opts Options) *Resolver {
	if opts.Binary == "" {
		opts.Binary = "rustdoc"
	}
	if opts.Edition == "" {
		opts.Edition = "2021"
	}
	if opts.DocURL == "" {
		opts.DocURL = stdlinks.DefaultDocURL
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Resolver{opts: opts}
}

// Resolve documents refs with rustdoc in a fresh scratch directory and
// returns the generated links in order. It does not check the count; that is
// the caller's invariant to enforce.
func (r *Resolver) Resolve(ctx context.Context, doc stdlinks.Document, refs []stdlinks.Reference) ([]string, error) {
	mgr := workspace.NewManager(r.opts.ScratchDir)
	if r.opts.KeepScratch {
		mgr = workspace.NewKeepingManager(r.opts.ScratchDir)
	}

	var urls []string
	err := workspace.Scoped(mgr, func(dir string) error {
		if err := r.run(ctx, dir, doc, refs); err != nil {
			return err
		}
		var err error
		urls, err = ExtractLinksFile(filepath.Join(dir, IndexPath), r.opts.DocURL)
		return err
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}

// run writes the synthesized source into dir and runs rustdoc on it.
func (r *Resolver) run(ctx context.Context, dir string, doc stdlinks.Document, refs []stdlinks.Reference) error {
	srcPath := filepath.Join(dir, SourceFile)
	if err := os.WriteFile(srcPath, []byte(Source(refs)), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write rustdoc source").
			Fatal().
			WithContext("path", srcPath).
			Build()
	}

	// #nosec G204 -- binary and edition come from the operator's configuration.
	cmd := exec.CommandContext(ctx, r.opts.Binary, "--edition="+r.opts.Edition, srcPath)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.opts.Logger.Debug("Running rustdoc",
		logfields.Chapter(doc.Name),
		logfields.Path(dir),
		logfields.Links(len(refs)))

	err := cmd.Run()
	if err == nil {
		if stderr.Len() > 0 {
			r.opts.Logger.Debug("rustdoc diagnostics", logfields.Chapter(doc.Name), slog.String("stderr", stderr.String()))
		}
		return nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		_, _ = r.opts.Stderr.Write(stderr.Bytes())
		return errors.WrapError(err, errors.CategoryResolve, "failed to extract std links").
			Fatal().
			UserAction().
			WithContext("chapter", doc.Name).
			WithContext("source_path", doc.SourcePath).
			Build()
	}

	return errors.WrapError(err, errors.CategoryResolve, "failed to run rustdoc").
		Fatal().
		WithContext("binary", r.opts.Binary).
		WithContext("chapter", doc.Name).
		Build()
}
