package matching

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"muxxy/internal/logging"
	"muxxy/internal/naming"
	"muxxy/internal/textutil"
)

// strictThreshold is the minimum best score a match must reach before strict
// mode will hand back a subtitle path.
const strictThreshold = 0.9

// Engine scores and ranks video/subtitle candidate pairs. It carries no
// mutable state; a single Engine is safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

// NewEngine constructs a match engine. A nil logger disables debug output.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{logger: logging.NewComponentLogger(logger, "matcher")}
}

// Score evaluates a single video/subtitle pair.
func (e *Engine) Score(videoPath, subtitlePath string) Candidate {
	stem := naming.Stem(videoPath)
	return e.score(videoPath, subtitlePath, stem, naming.ExtractEpisodeInfo(stem), naming.ExtractShowName(stem))
}

func (e *Engine) score(videoPath, subtitlePath, videoStem string, videoKey naming.EpisodeKey, videoShow string) Candidate {
	subStem := naming.Stem(subtitlePath)
	subKey := naming.ExtractEpisodeInfo(subStem)
	subShow := naming.ExtractShowName(subStem)

	// 1. Exact filename match (excluding extension).
	if videoStem == subStem {
		return Candidate{Score: 1.0, Kind: KindExact, Reason: "Exact filename match"}
	}

	// 2. Same base with a language code suffix.
	if strings.HasPrefix(subStem, videoStem+".") {
		return Candidate{Score: 0.99, Kind: KindExactWithLangCode, Reason: "Exact match with language code"}
	}

	// 3. Episode number agreement.
	if videoKey.HasEpisode() && subKey.HasEpisode() && *videoKey.Episode == *subKey.Episode {
		if videoKey.HasSeason() && subKey.HasSeason() && *videoKey.Season != *subKey.Season {
			// Season mismatch short-circuits before any show-name bonus,
			// even for identical names. Cross-season releases are treated
			// as different shows outright.
			return Candidate{
				Score:  0.2,
				Kind:   KindEpisode,
				Reason: fmt.Sprintf("Episode match but different season (S%d vs S%d)", *videoKey.Season, *subKey.Season),
			}
		}

		score := 0.6
		reason := fmt.Sprintf("Episode E%02d match (no season info)", *videoKey.Episode)
		if videoKey.HasSeason() && subKey.HasSeason() {
			score = 0.8
			reason = fmt.Sprintf("Episode S%02dE%02d match", *videoKey.Season, *videoKey.Episode)
		}

		if videoShow != "" && subShow != "" {
			switch similarity := textutil.Similarity(videoShow, subShow); {
			case similarity > 0.8:
				score += 0.15
				reason += " with similar show name"
			case similarity > 0.5:
				score += 0.05
			}
		}

		if score > 0.95 {
			score = 0.95
		}
		return Candidate{Score: score, Kind: KindEpisode, Reason: reason}
	}

	// 4. Fuzzy show-name matching, only when the video carries no episode
	// number of its own.
	if videoShow != "" && subShow != "" && !videoKey.HasEpisode() {
		similarity := textutil.Similarity(videoShow, subShow)
		if similarity > 0.9 {
			return Candidate{Score: 0.7, Kind: KindFuzzy, Reason: fmt.Sprintf("High show name similarity (%.0f%%)", similarity*100)}
		}
		if similarity > 0.7 {
			return Candidate{Score: 0.5, Kind: KindFuzzy, Reason: fmt.Sprintf("Moderate show name similarity (%.0f%%)", similarity*100)}
		}
	}

	return Candidate{Score: 0, Kind: KindNone, Reason: "No matching criteria"}
}

// MatchSingle finds the best subtitle for one video. The candidate scored
// first wins score ties. In strict mode a best score below the strict
// threshold clears the subtitle path while preserving the numeric
// confidence.
func (e *Engine) MatchSingle(videoPath string, candidates []string, strict bool) Result {
	if len(candidates) == 0 {
		return Result{
			VideoPath:  videoPath,
			Confidence: 0,
			Kind:       KindNone,
			Reason:     "No subtitle files found",
		}
	}

	videoStem := naming.Stem(videoPath)
	videoKey := naming.ExtractEpisodeInfo(videoStem)
	videoShow := naming.ExtractShowName(videoStem)

	best := Candidate{Kind: KindNone, Reason: "No matching criteria"}
	bestPath := ""
	for _, subtitlePath := range candidates {
		candidate := e.score(videoPath, subtitlePath, videoStem, videoKey, videoShow)
		e.logger.Debug("scored candidate",
			logging.String(logging.FieldVideo, videoPath),
			logging.String(logging.FieldSubtitle, subtitlePath),
			logging.Float64("score", candidate.Score),
			logging.String("kind", candidate.Kind.String()),
			logging.String("reason", candidate.Reason),
		)
		if candidate.Score > best.Score {
			best = candidate
			bestPath = subtitlePath
		}
	}

	if strict && best.Score < strictThreshold {
		return Result{
			VideoPath:  videoPath,
			Confidence: best.Score,
			Kind:       KindNone,
			Reason:     "Best match below strict threshold: " + best.Reason,
		}
	}

	return Result{
		VideoPath:    videoPath,
		SubtitlePath: bestPath,
		Confidence:   best.Score,
		Kind:         best.Kind,
		Reason:       best.Reason,
	}
}

// MatchBatch matches each video independently against the same full
// candidate list. O(videos x subtitles) scoring calls; no cross-video
// exclusivity is enforced.
func (e *Engine) MatchBatch(videoPaths, subtitlePaths []string, strict bool) []Result {
	results := make([]Result, 0, len(videoPaths))
	for _, videoPath := range videoPaths {
		results = append(results, e.MatchSingle(videoPath, subtitlePaths, strict))
	}
	return results
}

// Alternatives returns up to topN candidates ranked by score for manual
// selection, preserving scoring order among ties.
func (e *Engine) Alternatives(videoPath string, candidates []string, topN int) []Alternative {
	videoStem := naming.Stem(videoPath)
	videoKey := naming.ExtractEpisodeInfo(videoStem)
	videoShow := naming.ExtractShowName(videoStem)

	alternatives := make([]Alternative, 0, len(candidates))
	for _, subtitlePath := range candidates {
		candidate := e.score(videoPath, subtitlePath, videoStem, videoKey, videoShow)
		alternatives = append(alternatives, Alternative{
			SubtitlePath: subtitlePath,
			Score:        candidate.Score,
			Reason:       candidate.Reason,
		})
	}

	sort.SliceStable(alternatives, func(i, j int) bool {
		return alternatives[i].Score > alternatives[j].Score
	})

	if topN > 0 && len(alternatives) > topN {
		alternatives = alternatives[:topN]
	}
	return alternatives
}
