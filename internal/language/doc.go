// Package language provides language code normalization and mapping.
//
// Subtitle languages arrive in mixed forms: config values ("en", "japanese"),
// filename suffixes ("jpn"), and mkvmerge's ISO 639-2 expectations. All
// conversions between them live here.
package language
