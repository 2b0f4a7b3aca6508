package stdlinks

import (
	"path"
	"path/filepath"
	"strings"
)

// Reference is a shorthand link written by an author.
//
// Text is the bracketed code span exactly as written, e.g. "[`Option`]".
// Target is the parenthetical destination, e.g. "std::option::Option", and
// is empty for the bare form "[`std::fmt`]".
type Reference struct {
	Text   string
	Target string
}

// Label returns the link definition label the reference is emitted under.
func (r Reference) Label() string {
	if r.Target != "" {
		return "[" + r.Target + "]"
	}
	return r.Text
}

// Less orders references by text, then target. A reference without a target
// sorts before any reference with the same text and a target.
func (r Reference) Less(other Reference) bool {
	if r.Text != other.Text {
		return r.Text < other.Text
	}
	return r.Target < other.Target
}

func (r Reference) String() string {
	if r.Target != "" {
		return r.Text + "(" + r.Target + ")"
	}
	return r.Text
}

// ResolvedLink pairs a reference with its absolute documentation URL.
type ResolvedLink struct {
	Reference
	URL string
}

// Document is one chapter of a book.
type Document struct {
	Name string
	// SourcePath is the file the chapter was loaded from, used in diagnostics.
	SourcePath string
	// Path is the chapter location relative to the book source root.
	Path    string
	Content string
}

// Depth returns the number of path segments from the book root to the
// document, the file name included ("intro.md" is 1).
func (d Document) Depth() int {
	p := path.Clean(filepath.ToSlash(d.Path))
	if p == "." || p == "/" {
		return 0
	}
	depth := 0
	for _, seg := range strings.Split(p, "/") {
		if seg != "" && seg != "." {
			depth++
		}
	}
	return depth
}
