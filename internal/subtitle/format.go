package subtitle

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Format identifies the subtitle container a transform is operating on.
type Format int

const (
	FormatUnknown Format = iota
	FormatASS
	FormatSRT
)

func (f Format) String() string {
	switch f {
	case FormatASS:
		return "ass"
	case FormatSRT:
		return "srt"
	default:
		return "unknown"
	}
}

// DetectFormat classifies a subtitle path by extension. SSA scripts share the
// ASS field model and are treated as ASS.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ass", ".ssa":
		return FormatASS
	case ".srt":
		return FormatSRT
	default:
		return FormatUnknown
	}
}

// DefaultFPS is assumed whenever a script carries no usable Timer header.
// SRT files have no frame rate metadata at all and always use it.
const DefaultFPS = 23.976

// Default script resolution for ASS files that omit PlayResX/PlayResY.
const (
	DefaultPlayResX = 1280
	DefaultPlayResY = 720
)

// ScriptInfo carries the [Script Info] header fields the transforms consult.
// Absent or unparseable fields are left at zero; use FPS and Resolution for
// defaulted reads.
type ScriptInfo struct {
	PlayResX int
	PlayResY int
	Timer    float64
}

// FPS returns the script frame rate, falling back to DefaultFPS.
func (si ScriptInfo) FPS() float64 {
	if si.Timer > 0 {
		return si.Timer
	}
	return DefaultFPS
}

// Resolution returns the script resolution with each missing dimension
// defaulted independently.
func (si ScriptInfo) Resolution() Resolution {
	res := Resolution{Width: si.PlayResX, Height: si.PlayResY}
	if res.Width <= 0 {
		res.Width = DefaultPlayResX
	}
	if res.Height <= 0 {
		res.Height = DefaultPlayResY
	}
	return res
}

// Resolution is a width and height in pixels.
type Resolution struct {
	Width  int
	Height int
}

// IsZero reports whether neither dimension is set.
func (r Resolution) IsZero() bool { return r.Width == 0 && r.Height == 0 }

func (r Resolution) String() string {
	if r.IsZero() {
		return "unknown"
	}
	return strconv.Itoa(r.Width) + "x" + strconv.Itoa(r.Height)
}
