package mkv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"muxxy/internal/logging"
)

const mkvmergeCommand = "mkvmerge"

// Attachment is a font file to embed in the output container, optionally
// annotated with the language it belongs to.
type Attachment struct {
	Path        string
	Description string
}

// MuxRequest describes one mux invocation. ChaptersPath and TagsPath point
// at external sidecar files and take precedence over whatever the source
// container carries; KeepSourceChapters and KeepSourceTags control the
// fallback when no sidecar was found.
type MuxRequest struct {
	VideoPath  string
	OutputPath string

	SubtitlePath      string
	SubtitleLanguage  string // ISO 639-2 code passed to --language
	SubtitleTrackName string
	VideoTrackName    string

	Attachments []Attachment

	ChaptersPath       string
	KeepSourceChapters bool
	TagsPath           string
	KeepSourceTags     bool
}

// Muxer assembles containers with mkvmerge.
type Muxer struct {
	logger *slog.Logger
	binary string
	run    commandRunner
}

// NewMuxer constructs a muxer. An empty binary resolves to "mkvmerge" from
// PATH; a nil logger disables logging.
func NewMuxer(logger *slog.Logger, binary string) *Muxer {
	if logger == nil {
		logger = logging.NewNop()
	}
	if strings.TrimSpace(binary) == "" {
		binary = mkvmergeCommand
	}
	return &Muxer{
		logger: logging.NewComponentLogger(logger, "muxer"),
		binary: binary,
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (m *Muxer) WithCommandRunner(r commandRunner) {
	if m != nil && r != nil {
		m.run = r
	}
}

// Identify runs mkvmerge identification against a container.
func (m *Muxer) Identify(ctx context.Context, path string) (Identification, error) {
	output, err := m.run(ctx, m.binary, "-i", "-F", "json", path)
	if err != nil {
		return Identification{}, fmt.Errorf("mkvmerge identify: %w", err)
	}
	var id Identification
	if err := json.Unmarshal(output, &id); err != nil {
		return Identification{}, fmt.Errorf("mkvmerge identify parse: %w", err)
	}
	return id, nil
}

// Mux writes the assembled container to req.OutputPath.
func (m *Muxer) Mux(ctx context.Context, req MuxRequest) error {
	if strings.TrimSpace(req.VideoPath) == "" {
		return fmt.Errorf("video path is required")
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return fmt.Errorf("output path is required")
	}
	if _, err := os.Stat(req.VideoPath); err != nil {
		return fmt.Errorf("source video not found: %w", err)
	}

	args := BuildArgs(req)
	m.logger.Debug("executing mkvmerge",
		logging.String(logging.FieldVideo, req.VideoPath),
		logging.String(logging.FieldSubtitle, req.SubtitlePath),
		logging.Int("attachments", len(req.Attachments)),
		logging.String("output", req.OutputPath),
	)

	if _, err := m.run(ctx, m.binary, args...); err != nil {
		_ = os.Remove(req.OutputPath)
		return fmt.Errorf("mkvmerge failed: %w", err)
	}
	if _, err := os.Stat(req.OutputPath); err != nil {
		return fmt.Errorf("mkvmerge did not produce output file: %w", err)
	}

	m.logger.Info("muxed container",
		logging.String(logging.FieldEventType, "mux_complete"),
		logging.String(logging.FieldVideo, req.VideoPath),
		logging.String("output", req.OutputPath),
	)
	return nil
}

// BuildArgs constructs the mkvmerge argument list for a request. Exported so
// previews can show the exact command without running it.
func BuildArgs(req MuxRequest) []string {
	args := []string{"-o", req.OutputPath}

	// Source chapters survive only when no external file replaces them.
	if req.ChaptersPath != "" || !req.KeepSourceChapters {
		args = append(args, "--no-chapters")
	}
	if req.VideoTrackName != "" {
		args = append(args, "--track-name", "0:"+req.VideoTrackName)
	}
	args = append(args, req.VideoPath)

	if req.SubtitlePath != "" {
		if req.SubtitleLanguage != "" {
			args = append(args, "--language", "0:"+req.SubtitleLanguage)
		}
		if req.SubtitleTrackName != "" {
			args = append(args, "--track-name", "0:"+req.SubtitleTrackName)
		}
		args = append(args, req.SubtitlePath)
	}

	for _, attachment := range req.Attachments {
		args = append(args, "--attachment-mime-type", "application/x-truetype-font",
			"--attachment-name", filepath.Base(attachment.Path))
		if attachment.Description != "" {
			args = append(args, "--attachment-description", attachment.Description)
		}
		args = append(args, "--attach-file", attachment.Path)
	}

	if req.ChaptersPath != "" {
		args = append(args, "--chapters", req.ChaptersPath)
	}
	if req.TagsPath != "" {
		args = append(args, "--tags", "0:"+req.TagsPath)
	} else if !req.KeepSourceTags {
		args = append(args, "--no-global-tags")
	}

	return args
}
