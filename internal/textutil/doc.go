// Package textutil provides text processing utilities for show-name
// comparison and filename sanitization.
//
// The primary use cases are:
//   - Normalizing show names extracted from release filenames
//   - Computing a fuzzy similarity ratio between two names
//   - Sanitizing generated output filenames for safe filesystem use
//
// Similarity uses a token-order-insensitive Levenshtein ratio: both inputs
// are normalized to lowercase ASCII alphanumerics, split on whitespace,
// token-sorted, and compared by edit distance scaled to [0, 1].
package textutil
