package naming

import "fmt"

// EpisodeKey identifies an episode within a show. Either field may be absent;
// absence means "unknown", not zero.
type EpisodeKey struct {
	Season  *int
	Episode *int
}

// HasEpisode reports whether an episode number was recovered.
func (k EpisodeKey) HasEpisode() bool { return k.Episode != nil }

// HasSeason reports whether a season number was recovered.
func (k EpisodeKey) HasSeason() bool { return k.Season != nil }

// Label renders the key in the conventional SxxExx form, or a bare
// two-digit episode number when the season is unknown. Returns the empty
// string when no episode was recovered.
func (k EpisodeKey) Label() string {
	if k.Episode == nil {
		return ""
	}
	if k.Season != nil {
		return fmt.Sprintf("S%02dE%02d", *k.Season, *k.Episode)
	}
	return fmt.Sprintf("%02d", *k.Episode)
}

// ParsedName is the structured view of a single release filename. It is
// recomputed on demand and never persisted.
type ParsedName struct {
	ShowName string
	Key      EpisodeKey
}

// Parse extracts both the show name and the episode key from a filename stem.
func Parse(stem string) ParsedName {
	return ParsedName{
		ShowName: ExtractShowName(stem),
		Key:      ExtractEpisodeInfo(stem),
	}
}

func intPtr(v int) *int { return &v }
