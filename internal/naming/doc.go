// Package naming recovers structured show, season, and episode information
// from fan-release filenames.
//
// Release names follow no fixed grammar: the same episode may ship as
// "[Group] Show Name - 07 [1080p].mkv", "Show.Name.S01E07.mkv", or
// "Show Name 1x07 [BDRip].mkv". The extractors here work from two ordered
// pattern tables: episode patterns, tried in a fixed priority order, and
// ignore patterns that mark technical-metadata spans (resolution tags, codec
// tags) whose digits must never be read as episode numbers. Pattern order is
// a semantic contract, not an implementation detail.
//
// All extraction functions are pure and total. Absence of a season, episode,
// or release group is reported through optional fields or empty results,
// never through errors.
package naming
