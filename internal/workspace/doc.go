// Package workspace manages the scratch directories rustdoc writes into.
//
// Every document gets its own directory (e.g. stdlinks-6f1c2b0e-...), created
// before the resolver runs and removed when the document is done, whether or
// not resolution succeeded. Keep mode leaves the directories in place so the
// generated source and HTML can be inspected after a failing run.
package workspace
