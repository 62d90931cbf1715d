package naming

import (
	"path/filepath"
	"strings"
)

// ExtractEpisodeInfo recovers the season and episode numbers from a release
// filename. Patterns are tried in table order; the first whose match lies
// outside every ignore range wins. The dash pattern participates only in
// show-name extraction and is skipped here. Returns an empty key when nothing
// usable is found.
func ExtractEpisodeInfo(filename string) EpisodeKey {
	ranges := ignoreRanges(filename)
	for _, pattern := range episodePatterns {
		if pattern.kind == kindDashEpisode {
			continue
		}
		m := pattern.find(filename)
		if m == nil {
			continue
		}
		if withinIgnored(ranges, m.start) {
			continue
		}
		return m.key
	}
	return EpisodeKey{}
}

// ExtractShowName recovers the show title from a release filename. When the
// episode number came from a bracketed group, the name is whatever precedes
// that bracket, minus any leading release-group tag. Otherwise the general
// title pattern captures everything before the first separator. The fallback
// strips bracketed technical tags and a leading release-group bracket and
// returns the trimmed remainder, so the worst case is the input itself,
// trimmed; the function never fails.
func ExtractShowName(filename string) string {
	var matchedKind patternKind
	matched := false
	for _, pattern := range episodePatterns {
		if pattern.find(filename) != nil {
			matchedKind = pattern.kind
			matched = true
			break
		}
	}

	if matched && matchedKind == kindBracketEpisode {
		parts := bracketNumberRe.Split(filename, 2)
		if len(parts) > 1 {
			showPart := parts[0]
			if m := leadingGroupRe.FindStringSubmatch(showPart); m != nil {
				return strings.TrimSpace(m[1])
			}
			return strings.TrimSpace(showPart)
		}
	}

	if m := showNameRe.FindStringSubmatch(filename); m != nil {
		return strings.TrimSpace(m[1])
	}

	clean := bracketNumberRe.ReplaceAllString(filename, "")
	clean = technicalTagRe.ReplaceAllString(clean, "")
	if strings.HasPrefix(clean, "[") {
		if rb := strings.Index(clean, "]"); rb > 0 {
			clean = strings.TrimSpace(clean[rb+1:])
		}
	}
	return strings.TrimSpace(clean)
}

// ExtractReleaseGroup returns the contents of a leading [...] or (...) group,
// or the empty string when the filename starts with neither.
func ExtractReleaseGroup(filename string) string {
	if m := leadingBracket.FindStringSubmatch(filename); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := leadingParen.FindStringSubmatch(filename); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// ExtractLanguage returns the language code embedded before the extension of
// a sibling-style filename ("Show.S01E05.eng.ass" yields "eng"), or the
// empty string when no code is present.
func ExtractLanguage(path string) string {
	if m := languageCodeRe.FindStringSubmatch(filepath.Base(path)); m != nil {
		return m[1]
	}
	return ""
}

// Stem returns the filename without its directory or final extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
