// Package rustdoc resolves standard library references by running rustdoc.
//
// Resolving [`Option`] to enum.Option.html needs the full name resolution
// rules of the library (re-exports, primitives, disambiguators), so instead of
// reimplementing them the resolver writes each reference into a crate level
// doc comment of a throwaway source file, has rustdoc document it with
// broken_intra_doc_links denied, and reads the links back out of the generated
// index page in the order they were written.
package rustdoc
