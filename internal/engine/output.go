package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"muxxy/internal/naming"
	"muxxy/internal/textutil"
)

var titleCaser = cases.Title(language.Und)

// GenerateOutputFilename builds the release-style name for a muxed file:
// "[Tag] Show - S01E05 [1080p HEVC].mkv". The video parameters come from
// ffprobe and are omitted entirely when probing produced nothing.
func GenerateOutputFilename(videoPath, releaseTag string, videoParams []string) string {
	parsed := naming.Parse(naming.Stem(videoPath))

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", releaseTag, parsed.ShowName)
	if label := parsed.Key.Label(); label != "" {
		b.WriteString(" - ")
		b.WriteString(label)
	}
	if len(videoParams) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(videoParams, " "))
	}
	b.WriteString(filepath.Ext(videoPath))
	return textutil.SanitizeFileName(b.String())
}

// ResolveOutputDir returns the show directory the muxed file belongs in,
// creating it if needed. With an explicit output directory the show folder is
// tagged ("[Tag] Show"); otherwise a plain show folder is created next to the
// source video.
func ResolveOutputDir(videoPath, releaseTag, outputDir string, titleCase bool) (string, error) {
	show := strings.TrimSpace(naming.ExtractShowName(naming.Stem(videoPath)))
	if titleCase {
		show = titleCaser.String(show)
	}
	show = textutil.SanitizeFileName(show)

	var dir string
	if strings.TrimSpace(outputDir) != "" {
		dir = filepath.Join(outputDir, fmt.Sprintf("[%s] %s", releaseTag, show))
	} else {
		dir = filepath.Join(filepath.Dir(videoPath), show)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return dir, nil
}
