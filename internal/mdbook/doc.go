// Package mdbook implements the preprocessor side of mdbook's JSON protocol.
//
// mdbook first runs "<command> supports <renderer>" and skips the
// preprocessor on a non-zero exit. Otherwise it runs the command with a JSON
// array [context, book] on stdin and reads the modified book from stdout.
package mdbook
