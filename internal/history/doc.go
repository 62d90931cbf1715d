// Package history persists a record of past mux runs in SQLite.
//
// Every processed video gets one row: which subtitle was chosen, at what
// confidence, where the output landed, and whether the mux succeeded. The
// records feed the "muxxy history" command so a batch run over a large
// library can be audited afterwards.
package history
