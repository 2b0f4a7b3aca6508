package commands

import (
	stderrors "errors"
	"log/slog"

	"git.home.luguber.info/inful/stdlinks/internal/logfields"
)

// ErrUnsupported is returned by the supports command for renderers outside
// the configured set. It maps to exit status 1 without an error message.
var ErrUnsupported = stderrors.New("renderer not supported")

// SupportsCmd answers mdbook's renderer probe. The book.toml table is not
// available here, so only the config file and environment apply.
type SupportsCmd struct {
	Renderer string `arg:"" help:"Renderer name, e.g. html"`
}

func (s *SupportsCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig(nil, ".")
	if err != nil {
		return err
	}
	if !cfg.Supports(s.Renderer) {
		slog.Debug("Renderer not supported", logfields.Renderer(s.Renderer))
		return ErrUnsupported
	}
	return nil
}
