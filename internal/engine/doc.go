// Package engine orchestrates the mux pipeline for matched video/subtitle
// pairs.
//
// One match flows through probe, timing shift, resample, font and sidecar
// discovery, and finally mkvmerge. Subtitle transforms fail open, so a
// broken script still gets muxed untouched; only the mkvmerge step itself
// can fail an item. Batch runs process items on a bounded worker pool and
// never let one failure stop the rest.
package engine
