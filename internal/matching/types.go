package matching

// Kind classifies how a video/subtitle pair was matched.
type Kind int

const (
	// KindNone means no matching criteria applied.
	KindNone Kind = iota
	// KindExact means the filename stems were identical.
	KindExact
	// KindExactWithLangCode means the subtitle stem is the video stem plus a
	// language code suffix.
	KindExactWithLangCode
	// KindEpisode means the pair agreed on episode numbers.
	KindEpisode
	// KindFuzzy means only the show names were similar.
	KindFuzzy
	// KindManual means an operator overrode the automatic result.
	KindManual
)

// String returns the lowercase label used in logs and history records.
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindExactWithLangCode:
		return "exact-lang"
	case KindEpisode:
		return "episode"
	case KindFuzzy:
		return "fuzzy"
	case KindManual:
		return "manual"
	default:
		return "none"
	}
}

// Candidate is the score assigned to one video/subtitle pair. It exists only
// for the duration of a scoring call.
type Candidate struct {
	Score  float64
	Kind   Kind
	Reason string
}

// Result is the outcome of matching one video against a candidate pool.
// SubtitlePath is empty when nothing matched or a strict policy filtered the
// best candidate; Reason is always non-empty.
type Result struct {
	VideoPath    string
	SubtitlePath string
	Confidence   float64
	Kind         Kind
	Reason       string
}

// IsConfident reports whether the match meets the caller's confidence
// threshold.
func (r Result) IsConfident(threshold float64) bool {
	return r.Confidence >= threshold
}

// ManualResult builds a Result for an operator override. Accepting assigns
// full confidence; rejecting clears the subtitle with zero confidence.
func ManualResult(videoPath, subtitlePath string, accepted bool) Result {
	if !accepted {
		return Result{
			VideoPath:  videoPath,
			Kind:       KindManual,
			Confidence: 0,
			Reason:     "Manually rejected",
		}
	}
	return Result{
		VideoPath:    videoPath,
		SubtitlePath: subtitlePath,
		Kind:         KindManual,
		Confidence:   1,
		Reason:       "Manually selected",
	}
}

// Alternative is one entry of a ranked candidate list offered for manual
// selection.
type Alternative struct {
	SubtitlePath string
	Score        float64
	Reason       string
}
