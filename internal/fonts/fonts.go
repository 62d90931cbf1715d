// Package fonts discovers font files to attach alongside a subtitle track.
//
// Fansub releases ship the typefaces their ASS styling depends on, either in
// a fonts/ or attachments/ directory next to the subtitle or loose beside
// it. Discovery prefers the subtitle's surroundings and falls back to the
// video's directory only when the subtitle side turned up nothing.
package fonts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"muxxy/internal/mkv"
	"muxxy/internal/naming"
)

var fontExtensions = map[string]bool{
	".ttf": true,
	".otf": true,
	".ttc": true,
}

const (
	fontsDirName       = "fonts"
	attachmentsDirName = "attachments"
)

// FindForEpisode collects font attachments for one video/subtitle pair.
// With a subtitle present it scans the subtitle's fonts/ and attachments/
// directories, the same directories one level up, and loose fonts beside the
// subtitle. Without a subtitle, or when those locations are all empty, it
// scans the video's directory the same way.
func FindForEpisode(videoPath, subtitlePath string) []mkv.Attachment {
	var attachments []mkv.Attachment

	if subtitlePath != "" {
		subDir := filepath.Dir(subtitlePath)
		parent := filepath.Dir(subDir)
		for _, dir := range []string{
			filepath.Join(subDir, fontsDirName),
			filepath.Join(subDir, attachmentsDirName),
			filepath.Join(parent, fontsDirName),
			filepath.Join(parent, attachmentsDirName),
		} {
			attachments = append(attachments, CollectDir(dir)...)
		}
		attachments = append(attachments, CollectDir(subDir)...)
	}

	if len(attachments) == 0 {
		videoDir := filepath.Dir(videoPath)
		attachments = append(attachments, CollectDir(filepath.Join(videoDir, fontsDirName))...)
		attachments = append(attachments, CollectDir(filepath.Join(videoDir, attachmentsDirName))...)
		attachments = append(attachments, CollectDir(videoDir)...)
	}
	return attachments
}

// CollectDir returns every font file directly inside dir. A missing
// directory yields nothing.
func CollectDir(dir string) []mkv.Attachment {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var attachments []mkv.Attachment
	for _, entry := range entries {
		if entry.IsDir() || !isFontFile(entry.Name()) {
			continue
		}
		attachments = append(attachments, newAttachment(filepath.Join(dir, entry.Name())))
	}
	sortAttachments(attachments)
	return attachments
}

func newAttachment(path string) mkv.Attachment {
	return mkv.Attachment{
		Path:        path,
		Description: naming.ExtractLanguage(path),
	}
}

func isFontFile(name string) bool {
	return fontExtensions[strings.ToLower(filepath.Ext(name))]
}

func sortAttachments(attachments []mkv.Attachment) {
	sort.Slice(attachments, func(i, j int) bool {
		return attachments[i].Path < attachments[j].Path
	})
}
