package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/stdlinks/internal/logfields"
	"git.home.luguber.info/inful/stdlinks/internal/mdbook"
	"git.home.luguber.info/inful/stdlinks/internal/stdlinks"
)

// PreprocessCmd rewrites every chapter of the book mdbook sends on stdin.
type PreprocessCmd struct{}

func (p *PreprocessCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var pl *pipeline
	defer func() { pl.flush() }()

	return mdbook.Run(ctx, Name, g.Stdin, g.Stdout, func(_ context.Context, mctx *mdbook.Context) (*mdbook.Proc, error) {
		cfg, err := root.loadConfig(mctx.PreprocessorTable(Name), mctx.Root)
		if err != nil {
			return nil, err
		}
		if !cfg.Supports(mctx.Renderer) {
			slog.Info("Renderer not supported; book passed through unchanged", logfields.Renderer(mctx.Renderer))
			return &mdbook.Proc{}, nil
		}

		pl = newPipeline(cfg, g.Stderr)
		return &mdbook.Proc{Chapter: func(ctx context.Context, c *mdbook.Chapter) error {
			out, err := pl.processor.Process(ctx, chapterDocument(c))
			if err != nil {
				return err
			}
			c.Content = out
			return nil
		}}, nil
	})
}

// chapterDocument maps a non-draft chapter to the document the processor works on.
func chapterDocument(c *mdbook.Chapter) stdlinks.Document {
	doc := stdlinks.Document{Name: c.Name, Content: c.Content}
	if c.Path != nil {
		doc.Path = *c.Path
	}
	if c.SourcePath != nil {
		doc.SourcePath = *c.SourcePath
	}
	return doc
}
