// Package matching pairs video files with subtitle candidates using
// confidence-scored heuristics.
//
// Every video/subtitle pair is scored independently: exact stem matches score
// highest, then language-tagged siblings, then episode-number agreement with
// a show-name similarity bonus, then pure fuzzy name matching for episodeless
// files. Scoring is stateless and touches no shared mutable state, so batches
// may be scored concurrently without coordination.
//
// Batch matching applies the single-video match to each video against the
// same full candidate list. There is no cross-video exclusivity: the same
// subtitle may be the best match for more than one video. Episode numbers
// are assumed to disambiguate in practice.
package matching
