package naming

import (
	"regexp"
	"strconv"
)

// patternKind distinguishes the entries of the episode pattern table. The
// bracket kind matters downstream: show-name extraction splits the filename
// differently when the episode number came from a bracketed group.
type patternKind int

const (
	kindSeasonEpisode  patternKind = iota // SxxExx
	kindSeasonXEpisode                    // AxB (1x07)
	kindDashEpisode                       // "Show - 07"
	kindBracketEpisode                    // "[07]"
	kindBareEpisode                       // bare 1-3 digit number
)

// patternMatch reports where an episode pattern matched and what it captured.
type patternMatch struct {
	start int
	key   EpisodeKey
}

// episodePattern pairs a pattern kind with its matcher. Matchers report only
// the first occurrence; a pattern whose first occurrence falls inside an
// ignore range is skipped entirely rather than retried later in the string.
type episodePattern struct {
	kind patternKind
	find func(s string) *patternMatch
}

// episodePatterns is the fixed-priority table. Order is load-bearing: the
// first entry whose match survives the ignore ranges wins, regardless of how
// specific a later pattern would have been.
var episodePatterns = []episodePattern{
	{kindSeasonEpisode, pairFinder(regexp.MustCompile(`(?i)S(\d+)E(\d+)`))},
	{kindSeasonXEpisode, pairFinder(regexp.MustCompile(`(?i)(\d+)x(\d+)`))},
	{kindDashEpisode, episodeFinder(regexp.MustCompile(` - (\d{1,2})(?:\s|$|\[)`))},
	// Equivalent to a bracketed 1-3 digit number not followed by a further
	// digit, "p", "x<digits>", or "bit": the closing bracket requirement
	// already excludes every one of those continuations.
	{kindBracketEpisode, episodeFinder(regexp.MustCompile(`\[(\d{1,3})\]`))},
	{kindBareEpisode, findBareEpisode},
}

// ignorePatterns mark technical-metadata spans whose digits must never be
// read as episode numbers.
var ignorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[[^\]]*\d+x\d+[^\]]*\]`),
	regexp.MustCompile(`\[[^\]]*\d+p[^\]]*\]`),
	regexp.MustCompile(`(?i)\[[^\]]*(?:DVDRip|BDRip|WebRip)[^\]]*\]`),
	regexp.MustCompile(`(?i)\[[^\]]*(?:x26[45]|hevc|avc|flac|ac3|mp3)[^\]]*\]`),
}

var (
	showNameRe      = regexp.MustCompile(`(?:\[.+?\]\s*)*(.+?)(?:\s+-\s+|\s+S\d+E\d+|\s+\d+x\d+|\s+E\d+|\s+\[\d{1,3}\]|\s+\[\d{4}\])`)
	bracketNumberRe = regexp.MustCompile(`\[\d{1,3}\]`)
	technicalTagRe  = regexp.MustCompile(`(?i)\[[^\]]*(?:bit|p|x\d+|HEVC|h26[45]|flac|aac)[^\]]*\]`)
	leadingGroupRe  = regexp.MustCompile(`^\s*\[.*?\]\s*(.*)$`)
	leadingBracket  = regexp.MustCompile(`^\s*\[([^\]]+)\]`)
	leadingParen    = regexp.MustCompile(`^\s*\(([^)]+)\)`)
	languageCodeRe  = regexp.MustCompile(`\.([a-z]{2,3})\.[^.]+$`)
)

func pairFinder(re *regexp.Regexp) func(string) *patternMatch {
	return func(s string) *patternMatch {
		loc := re.FindStringSubmatchIndex(s)
		if loc == nil {
			return nil
		}
		season, err1 := strconv.Atoi(s[loc[2]:loc[3]])
		episode, err2 := strconv.Atoi(s[loc[4]:loc[5]])
		if err1 != nil || err2 != nil {
			return nil
		}
		return &patternMatch{start: loc[0], key: EpisodeKey{Season: intPtr(season), Episode: intPtr(episode)}}
	}
}

func episodeFinder(re *regexp.Regexp) func(string) *patternMatch {
	return func(s string) *patternMatch {
		loc := re.FindStringSubmatchIndex(s)
		if loc == nil {
			return nil
		}
		episode, err := strconv.Atoi(s[loc[2]:loc[3]])
		if err != nil {
			return nil
		}
		return &patternMatch{start: loc[0], key: EpisodeKey{Episode: intPtr(episode)}}
	}
}

// findBareEpisode matches an optional E/e prefix followed by one to three
// digits, with the digit run neither preceded by a digit nor followed by a
// digit, "x", or "p". Go's regexp has no lookaround, so the boundary checks
// are done by hand; the scan is leftmost-first with the digit run shrunk
// until the trailing boundary is satisfied, matching the behavior of a
// backtracking engine.
func findBareEpisode(s string) *patternMatch {
	for i := 0; i < len(s); i++ {
		if i > 0 && isASCIIDigit(s[i-1]) {
			continue
		}
		j := i
		if j < len(s) && (s[j] == 'E' || s[j] == 'e') {
			j++
		}
		k := j
		for k < len(s) && k-j < 3 && isASCIIDigit(s[k]) {
			k++
		}
		if k == j {
			continue
		}
		for end := k; end > j; end-- {
			if end < len(s) && isEpisodeBoundaryByte(s[end]) {
				continue
			}
			episode, err := strconv.Atoi(s[j:end])
			if err != nil {
				return nil
			}
			return &patternMatch{start: i, key: EpisodeKey{Episode: intPtr(episode)}}
		}
	}
	return nil
}

func isASCIIDigit(c byte) bool { return c >= '0' && c <= '9' }

func isEpisodeBoundaryByte(c byte) bool {
	return isASCIIDigit(c) || c == 'x' || c == 'X' || c == 'p' || c == 'P'
}

// ignoreRanges collects the [start, end) spans of every ignore pattern match.
func ignoreRanges(s string) [][]int {
	var ranges [][]int
	for _, re := range ignorePatterns {
		ranges = append(ranges, re.FindAllStringIndex(s, -1)...)
	}
	return ranges
}

// withinIgnored reports whether pos falls inside any ignore range. The end
// bound is inclusive: a match starting exactly where an ignore range ended
// is still treated as part of the technical tag.
func withinIgnored(ranges [][]int, pos int) bool {
	for _, r := range ranges {
		if pos >= r[0] && pos <= r[1] {
			return true
		}
	}
	return false
}
