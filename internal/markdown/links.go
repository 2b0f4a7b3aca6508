package markdown

// Options controls how Markdown is parsed for analysis.
type Options struct {
	// Mdbook enables the extensions mdbook renders with (tables, footnotes,
	// strikethrough and task lists).
	Mdbook bool
}

// Definition is a link reference definition recognized by the CommonMark parser.
type Definition struct {
	// Label is the normalized label (case folded, whitespace collapsed, no brackets).
	Label       string
	Destination string
	Title       string
}
