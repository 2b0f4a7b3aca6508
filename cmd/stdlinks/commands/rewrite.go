package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
	"git.home.luguber.info/inful/stdlinks/internal/stdlinks"
)

// RewriteCmd rewrites markdown files outside of an mdbook build.
type RewriteCmd struct {
	Files   []string `arg:"" help:"Markdown files to rewrite"`
	Root    string   `short:"r" default:"." help:"Book source root; link depth is computed from it"`
	InPlace bool     `short:"i" name:"in-place" help:"Write results back to the files instead of stdout"`
}

func (r *RewriteCmd) Run(g *Global, root *CLI) error {
	if len(r.Files) > 1 && !r.InPlace {
		return errors.ValidationError("rewriting more than one file requires --in-place").
			WithContext("files", len(r.Files)).
			Build()
	}

	cfg, err := root.loadConfig(nil, r.Root)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pl := newPipeline(cfg, g.Stderr)
	defer pl.flush()

	for _, file := range r.Files {
		doc, err := readDocument(r.Root, file)
		if err != nil {
			return err
		}
		out, err := pl.processor.Process(ctx, doc)
		if err != nil {
			return err
		}
		if !r.InPlace {
			_, err := g.Stdout.Write([]byte(out))
			return err
		}
		if out == doc.Content {
			continue
		}
		if err := writeFile(file, out); err != nil {
			return err
		}
	}
	return nil
}

// readDocument loads file as a document whose path is relative to root.
func readDocument(root, file string) (stdlinks.Document, error) {
	rel, err := relPath(root, file)
	if err != nil {
		return stdlinks.Document{}, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return stdlinks.Document{}, errors.WrapError(err, errors.CategoryFileSystem, "failed to read markdown file").
			Fatal().
			WithContext("path", file).
			Build()
	}
	return stdlinks.Document{
		Name:       strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
		SourcePath: rel,
		Path:       rel,
		Content:    string(data),
	}, nil
}

func relPath(root, file string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve root").Fatal().Build()
	}
	absFile, err := filepath.Abs(file)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve file").Fatal().Build()
	}
	rel, err := filepath.Rel(absRoot, absFile)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.ValidationError("file is outside the source root").
			WithContext("file", file).
			WithContext("root", root).
			Build()
	}
	return filepath.ToSlash(rel), nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create directory").
			Fatal().
			WithContext("path", filepath.Dir(path)).
			Build()
	}
	// #nosec G306 -- rendered documentation sources are not secret.
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write markdown file").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}
