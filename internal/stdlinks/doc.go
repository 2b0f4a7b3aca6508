// Package stdlinks rewrites shorthand references to the Rust standard library
// into links to the hosted documentation.
//
// A document passes through four steps: the Scanner finds candidate
// references such as [`std::fmt`] or [`Option`](std::option::Option), a
// Resolver turns them into absolute documentation URLs, the rewriter compacts
// disambiguated references and appends link definitions, and the Relativizer
// makes the URLs relative to the document's position in the book.
//
// Recognition is pattern based. Code blocks and block quotes are not special
// cased, so a reference inside a fenced block is rewritten like any other.
package stdlinks
