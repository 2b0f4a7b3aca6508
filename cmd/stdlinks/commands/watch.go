package commands

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
	"git.home.luguber.info/inful/stdlinks/internal/logfields"
	"git.home.luguber.info/inful/stdlinks/internal/watch"
)

// WatchCmd mirrors the markdown of a source tree into an output tree with
// std links resolved, and repeats whenever the source changes.
type WatchCmd struct {
	Src  string `short:"s" default:"src" help:"Markdown source directory"`
	Out  string `short:"o" required:"" help:"Output directory for rewritten markdown"`
	Once bool   `help:"Rewrite once and exit instead of watching"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(nil, w.Src)
	if err != nil {
		return err
	}

	absSrc, err := filepath.Abs(w.Src)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve source directory").Fatal().Build()
	}
	if fi, err := os.Stat(absSrc); err != nil || !fi.IsDir() {
		return errors.NewError(errors.CategoryNotFound, "source directory not found").
			Fatal().
			WithContext("dir", w.Src).
			Build()
	}
	absOut, err := filepath.Abs(w.Out)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve output directory").Fatal().Build()
	}
	if absOut == absSrc {
		return errors.ValidationError("output directory must differ from the source directory").
			WithContext("dir", absSrc).
			Build()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pl := newPipeline(cfg, g.Stderr)
	defer pl.flush()

	tree := func(ctx context.Context) error { return rewriteTree(ctx, pl, absSrc, absOut) }
	if err := tree(ctx); err != nil {
		if w.Once {
			return err
		}
		slog.Warn("Initial rewrite failed", logfields.Error(err))
	}
	if w.Once {
		return nil
	}

	inOut := func(path string) bool {
		abs, err := filepath.Abs(path)
		return err == nil && (abs == absOut || strings.HasPrefix(abs, absOut+string(filepath.Separator)))
	}
	return watch.New(absSrc, tree, watch.Options{Ignore: inOut}).Run(ctx)
}

// rewriteTree processes every .md file below src and writes the results to
// the same relative path below out. Files without std links are written unchanged.
func rewriteTree(ctx context.Context, pl *pipeline, src, out string) error {
	files := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != src && (watch.ShouldIgnore(path) || path == out) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" || watch.ShouldIgnore(path) {
			return nil
		}

		doc, err := readDocument(src, path)
		if err != nil {
			return err
		}
		content, err := pl.processor.Process(ctx, doc)
		if err != nil {
			return err
		}
		files++
		return writeFile(filepath.Join(out, filepath.FromSlash(doc.Path)), content)
	})
	if err != nil {
		if _, ok := errors.AsClassified(err); ok {
			return err
		}
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to walk source directory").
			Fatal().
			WithContext("path", src).
			Build()
	}
	slog.Info("Rewrote source tree", logfields.Path(out), slog.Int("files", files))
	return nil
}
