package rustdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/stdlinks/internal/stdlinks"
)

func TestSource(t *testing.T) {
	refs := []stdlinks.Reference{
		{Text: "[`Option`]", Target: "std::option::Option"},
		{Text: "[`std::fmt`]"},
	}

	want := "#![deny(rustdoc::broken_intra_doc_links)]\n" +
		"#![allow(rustdoc::redundant_explicit_links)]\n" +
		"//! - [`Option`](std::option::Option)\n" +
		"//! - [`std::fmt`]\n" +
		"extern crate alloc;\n" +
		"extern crate proc_macro;\n" +
		"extern crate test;\n" +
		"\n"
	assert.Equal(t, want, Source(refs))
}
