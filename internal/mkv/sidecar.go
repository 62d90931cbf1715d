package mkv

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"muxxy/internal/naming"
)

// FindChaptersFile locates a chapters sidecar for a video. Candidates, in
// order: an exact "<stem>.chapters.xml" sibling, any "*.chapters.xml" under
// the video's directory whose name carries the same episode, a plain
// "chapters.xml" beside the video, then the same in up to two parent
// directories.
func FindChaptersFile(videoPath string) string {
	return findSidecar(videoPath, ".chapters.xml", "chapters.xml")
}

// FindTagsFile locates a tags sidecar for a video, using the same candidate
// order as FindChaptersFile with ".tags.xml" names.
func FindTagsFile(videoPath string) string {
	return findSidecar(videoPath, ".tags.xml", "tags.xml")
}

func findSidecar(videoPath, suffix, plainName string) string {
	dir := filepath.Dir(videoPath)
	stem := naming.Stem(videoPath)

	exact := filepath.Join(dir, stem+suffix)
	if fileExists(exact) {
		return exact
	}

	videoKey := naming.ExtractEpisodeInfo(stem)
	if videoKey.HasEpisode() {
		if match := findEpisodeSidecar(dir, suffix, videoKey); match != "" {
			return match
		}
	}

	plain := filepath.Join(dir, plainName)
	if fileExists(plain) {
		return plain
	}

	current := dir
	for i := 0; i < 2; i++ {
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
		plain = filepath.Join(current, plainName)
		if fileExists(plain) {
			return plain
		}
	}
	return ""
}

// findEpisodeSidecar walks the video directory recursively for sidecars
// whose names parse to the same episode. Seasons must agree when both sides
// declare one.
func findEpisodeSidecar(dir, suffix string, videoKey naming.EpisodeKey) string {
	var candidates []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), suffix) {
			candidates = append(candidates, path)
		}
		return nil
	})
	sort.Strings(candidates)

	for _, path := range candidates {
		base := filepath.Base(path)
		key := naming.ExtractEpisodeInfo(base[:len(base)-len(suffix)])
		if !key.HasEpisode() || *key.Episode != *videoKey.Episode {
			continue
		}
		if !videoKey.HasSeason() || !key.HasSeason() || *key.Season == *videoKey.Season {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
