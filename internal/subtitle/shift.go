package subtitle

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"regexp"

	"muxxy/internal/fileutil"
	"muxxy/internal/logging"
)

// Shifter retimes subtitle files by a signed frame count. The frame count is
// converted to milliseconds at the file's frame rate and applied to every
// event boundary, clamping at zero so no timestamp goes negative.
type Shifter struct {
	logger    *slog.Logger
	workspace *fileutil.Workspace
}

// NewShifter creates a shifter writing outputs into workspace. A nil logger
// disables logging.
func NewShifter(logger *slog.Logger, workspace *fileutil.Workspace) *Shifter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Shifter{logger: logger, workspace: workspace}
}

// Shift returns the path of a retimed copy of the subtitle file. A zero
// frame count is a no-op and returns path itself. Any failure is logged and
// path is returned unchanged, so callers always get a usable subtitle.
func (s *Shifter) Shift(path string, frames int) string {
	if frames == 0 {
		return path
	}

	var (
		out string
		err error
	)
	switch DetectFormat(path) {
	case FormatASS:
		out, err = s.shiftASS(path, frames)
	case FormatSRT:
		out, err = s.shiftSRT(path, frames)
	default:
		s.logger.Warn("subtitle format does not support timing shift",
			logging.String(logging.FieldSubtitle, path))
		return path
	}
	if err != nil {
		s.logger.Warn("timing shift failed, using original subtitle",
			logging.String(logging.FieldSubtitle, path),
			logging.Error(err))
		return path
	}
	return out
}

func (s *Shifter) shiftASS(path string, frames int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return "", err
	}

	fps := doc.Info.FPS()
	shiftMs := frameShiftMs(frames, fps)
	for i := range doc.Events {
		ev := &doc.Events[i]
		for _, field := range []string{"start", "end"} {
			raw, ok := ev.Get(field)
			if !ok {
				return "", fmt.Errorf("event missing %s field", field)
			}
			ms, err := ParseASSTime(raw)
			if err != nil {
				return "", err
			}
			ev.Set(field, FormatASSTime(clampMs(ms+shiftMs)))
		}
	}

	out, err := s.workspace.OutputPath(path, "shifted")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(out, doc.Serialize(), 0o644); err != nil {
		return "", err
	}
	s.logger.Info("shifted subtitle timing",
		logging.String(logging.FieldSubtitle, path),
		logging.Int("frames", frames),
		logging.Float64("fps", fps),
		logging.Int("shift_ms", int(shiftMs)))
	return out, nil
}

var srtTimingRe = regexp.MustCompile(`(\d{2}):(\d{2}):(\d{2}),(\d{3})\s-->\s(\d{2}):(\d{2}):(\d{2}),(\d{3})`)

func (s *Shifter) shiftSRT(path string, frames int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	// SRT carries no frame rate metadata; assume the NTSC film rate.
	shiftMs := frameShiftMs(frames, DefaultFPS)
	content := srtTimingRe.ReplaceAllStringFunc(string(data), func(match string) string {
		g := srtTimingRe.FindStringSubmatch(match)
		start := clampMs(srtGroupMs(g[1:5]) + shiftMs)
		end := clampMs(srtGroupMs(g[5:9]) + shiftMs)
		return formatSRTTime(start) + " --> " + formatSRTTime(end)
	})

	out, err := s.workspace.OutputPath(path, "shifted")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		return "", err
	}
	s.logger.Info("shifted subtitle timing",
		logging.String(logging.FieldSubtitle, path),
		logging.Int("frames", frames),
		logging.Float64("fps", DefaultFPS),
		logging.Int("shift_ms", int(shiftMs)))
	return out, nil
}

func frameShiftMs(frames int, fps float64) int64 {
	return int64(math.Round(float64(frames) * 1000.0 / fps))
}

func clampMs(ms int64) int64 {
	if ms < 0 {
		return 0
	}
	return ms
}

// srtGroupMs converts four pre-validated digit groups (h, m, s, ms).
func srtGroupMs(groups []string) int64 {
	h := atoi64(groups[0])
	m := atoi64(groups[1])
	sec := atoi64(groups[2])
	ms := atoi64(groups[3])
	return (h*3600+m*60+sec)*1000 + ms
}

func atoi64(s string) int64 {
	var v int64
	for _, c := range s {
		v = v*10 + int64(c-'0')
	}
	return v
}

func formatSRTTime(ms int64) string {
	h := ms / 3600000
	ms %= 3600000
	m := ms / 60000
	ms %= 60000
	sec := ms / 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, sec, ms%1000)
}
