package mkv

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// commandRunner executes an external command and returns its combined output.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func defaultCommandRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return output, nil
}

// Track describes one track reported by mkvmerge identification.
type Track struct {
	ID         int             `json:"id"`
	Type       string          `json:"type"`
	Codec      string          `json:"codec"`
	Properties TrackProperties `json:"properties"`
}

// TrackProperties carries the identification properties the pipeline reads.
type TrackProperties struct {
	Language  string `json:"language"`
	TrackName string `json:"track_name"`
	TagArtist string `json:"tag_artist"`
}

// Identification is the parsed result of "mkvmerge -i -F json".
type Identification struct {
	Tracks   []Track           `json:"tracks"`
	Chapters []json.RawMessage `json:"chapters"`
}

// HasChapters reports whether the container carries chapter entries.
func (id Identification) HasChapters() bool { return len(id.Chapters) > 0 }

// HasTags reports whether any track carries global tag metadata.
func (id Identification) HasTags() bool {
	for _, track := range id.Tracks {
		if track.Properties.TagArtist != "" {
			return true
		}
	}
	return false
}

// SubtitleTracks returns the subtitle tracks in container order.
func (id Identification) SubtitleTracks() []Track {
	var subs []Track
	for _, track := range id.Tracks {
		if strings.EqualFold(track.Type, "subtitles") {
			subs = append(subs, track)
		}
	}
	return subs
}
