package rustdoc

import (
	"strings"

	"git.home.luguber.info/inful/stdlinks/internal/stdlinks"
)

// SourceFile is the name of the synthesized crate root. rustdoc derives the
// crate name, and therefore the output directory doc/a, from it.
const SourceFile = "a.rs"

// IndexPath is the generated crate index relative to the scratch directory.
const IndexPath = "doc/a/index.html"

// Source returns a crate root documenting one bullet per reference, in order.
//
// Redundant explicit links are allowed because a reference such as
// [`Option`](std::option::Option) is redundant with the prelude in scope.
// The extern crate items bring the non-default standard crates into scope so
// paths rooted at alloc, proc_macro or test resolve.
func Source(refs []stdlinks.Reference) string {
	var b strings.Builder
	b.WriteString("#![deny(rustdoc::broken_intra_doc_links)]\n")
	b.WriteString("#![allow(rustdoc::redundant_explicit_links)]\n")
	for _, ref := range refs {
		b.WriteString("//! - ")
		b.WriteString(ref.Text)
		if ref.Target != "" {
			b.WriteByte('(')
			b.WriteString(ref.Target)
			b.WriteByte(')')
		}
		b.WriteByte('\n')
	}
	b.WriteString("extern crate alloc;\n")
	b.WriteString("extern crate proc_macro;\n")
	b.WriteString("extern crate test;\n")
	b.WriteByte('\n')
	return b.String()
}
