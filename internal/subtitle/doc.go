// Package subtitle implements the two subtitle transforms: timing shift and
// resolution resampling.
//
// ASS/SSA scripts are parsed into a line-level document model: every line of
// the original file is retained, and styles and events are typed views onto
// their lines. Transforms patch individual fields and serialize once, so all
// untouched content — unmatched override tags, script metadata, field order,
// comments — round-trips byte for byte. A transform that turns out to be a
// no-op returns the input path and creates no file.
//
// Both transforms fail open: any parse or I/O failure is logged and the
// original, untransformed path is returned so the caller can proceed with
// the subtitle it already has. Outputs go to a scoped temporary workspace
// under uniquely tokenized names; the input file is never mutated.
package subtitle
