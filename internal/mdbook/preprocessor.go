package mdbook

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
	"git.home.luguber.info/inful/stdlinks/internal/logfields"
)

// Proc holds the per-run hooks of a preprocessor.
type Proc struct {
	// Chapter is called for every non-draft chapter and may modify it in place.
	Chapter func(ctx context.Context, c *Chapter) error
}

// NewProc builds the hooks for a run once the mdbook context is known.
type NewProc func(ctx context.Context, mctx *Context) (*Proc, error)

// ReadInput decodes the [context, book] pair mdbook writes to stdin.
func ReadInput(r io.Reader) (*Context, *Book, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryProtocol, "failed to decode preprocessor input").Fatal().Build()
	}
	if len(raw) != 2 {
		return nil, nil, errors.ProtocolError("preprocessor input must be a [context, book] pair").
			WithContext("elements", len(raw)).
			Build()
	}

	var mctx Context
	if err := json.Unmarshal(raw[0], &mctx); err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryProtocol, "failed to decode preprocessor context").Fatal().Build()
	}
	var book Book
	if err := json.Unmarshal(raw[1], &book); err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryProtocol, "failed to decode book").Fatal().Build()
	}
	return &mctx, &book, nil
}

// WriteBook encodes the book for mdbook to read back.
func WriteBook(w io.Writer, book *Book) error {
	if err := json.NewEncoder(w).Encode(book); err != nil {
		return errors.WrapError(err, errors.CategoryProtocol, "failed to encode book").Fatal().Build()
	}
	return nil
}

// Run reads the input, applies the hooks newProc returns to every chapter and
// writes the book. Nothing is written when any chapter fails, so mdbook
// never receives a partially processed book.
func Run(ctx context.Context, name string, in io.Reader, out io.Writer, newProc NewProc) error {
	mctx, book, err := ReadInput(in)
	if err != nil {
		return err
	}
	slog.Debug("Preprocessor started",
		slog.String("preprocessor", name),
		logfields.Renderer(mctx.Renderer),
		slog.String("mdbook_version", mctx.MdbookVersion))

	proc, err := newProc(ctx, mctx)
	if err != nil {
		return err
	}

	if proc.Chapter != nil {
		err = book.ForEachChapter(func(c *Chapter) error {
			if c.IsDraft() {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return errors.WrapError(err, errors.CategoryRuntime, "preprocessing canceled").Fatal().Build()
			}
			return proc.Chapter(ctx, c)
		})
		if err != nil {
			return err
		}
	}

	return WriteBook(out, book)
}
