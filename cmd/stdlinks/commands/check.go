package commands

import (
	"fmt"

	"git.home.luguber.info/inful/stdlinks/internal/foundation/errors"
	"git.home.luguber.info/inful/stdlinks/internal/markdown"
	"git.home.luguber.info/inful/stdlinks/internal/stdlinks"
)

// CheckCmd lists the references a rewrite would resolve and flags link
// definitions that only look like definitions, e.g. inside fenced code.
// Such a line still suppresses resolution of the matching reference, which
// then renders as plain text.
type CheckCmd struct {
	Files []string `arg:"" help:"Markdown files to check"`
	Root  string   `short:"r" default:"." help:"Book source root"`
}

func (c *CheckCmd) Run(g *Global, _ *CLI) error {
	scanner := stdlinks.NewScanner(nil)
	hidden := 0

	for _, file := range c.Files {
		doc, err := readDocument(c.Root, file)
		if err != nil {
			return err
		}
		n, err := checkDocument(g, scanner, doc)
		if err != nil {
			return err
		}
		hidden += n
	}

	if hidden > 0 {
		return errors.ValidationError("std links hidden by definitions markdown does not recognize").
			WithContext("count", hidden).
			Build()
	}
	return nil
}

// checkDocument prints the report for one document and returns the number
// of references hidden by unrecognized definitions.
func checkDocument(g *Global, scanner *stdlinks.Scanner, doc stdlinks.Document) (int, error) {
	for _, ref := range scanner.Scan(doc.Content) {
		if _, err := fmt.Fprintf(g.Stdout, "%s: pending %s\n", doc.Path, ref); err != nil {
			return 0, err
		}
	}

	defined := scanner.DefinedLabels(doc.Content)
	labels := make([]string, 0, len(defined))
	for label := range defined {
		labels = append(labels, label)
	}
	shadowed := markdown.Shadowed([]byte(doc.Content), labels, markdown.Options{Mdbook: true})
	if len(shadowed) == 0 {
		return 0, nil
	}

	candidates := make(map[string]struct{})
	for _, ref := range scanner.Extractor().Candidates(doc.Content) {
		candidates[ref.Label()] = struct{}{}
	}

	hidden := 0
	for _, label := range shadowed {
		if _, ok := candidates[label]; !ok {
			continue
		}
		hidden++
		if _, err := fmt.Fprintf(g.Stdout, "%s: hidden %s (definition is not recognized as markdown)\n", doc.Path, label); err != nil {
			return 0, err
		}
	}
	return hidden, nil
}
