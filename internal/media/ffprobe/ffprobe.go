package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index            int               `json:"index"`
	CodecName        string            `json:"codec_name"`
	CodecType        string            `json:"codec_type"`
	Width            int               `json:"width"`
	Height           int               `json:"height"`
	RFrameRate       string            `json:"r_frame_rate"`
	BitsPerRawSample string            `json:"bits_per_raw_sample"`
	Tags             map[string]string `json:"tags"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// VideoStream returns the first video stream, or nil when the container has none.
func (r Result) VideoStream() *Stream {
	for i := range r.Streams {
		if strings.EqualFold(r.Streams[i].CodecType, "video") {
			return &r.Streams[i]
		}
	}
	return nil
}

// Resolution returns the dimensions of the first video stream, or zeros when
// no video stream is present.
func (r Result) Resolution() (width, height int) {
	if s := r.VideoStream(); s != nil {
		return s.Width, s.Height
	}
	return 0, 0
}

// FrameRate returns the r_frame_rate of the first video stream as frames per
// second. A missing stream or malformed fraction falls back to the NTSC film
// rate of 23.976.
func (r Result) FrameRate() float64 {
	const fallback = 23.976
	s := r.VideoStream()
	if s == nil {
		return fallback
	}
	parts := strings.SplitN(strings.TrimSpace(s.RFrameRate), "/", 2)
	if len(parts) != 2 {
		return fallback
	}
	num, err1 := strconv.Atoi(parts[0])
	denom, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || denom == 0 {
		return fallback
	}
	return float64(num) / float64(denom)
}

// SubtitleStreamCount returns the number of subtitle streams discovered.
func (r Result) SubtitleStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "subtitle") {
			count++
		}
	}
	return count
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.Format.Duration), 64)
	if err != nil {
		return 0
	}
	return v
}

// VideoParams summarizes the video stream for inclusion in an output
// filename: a resolution label ("1080p" for standard heights, "WxH"
// otherwise), a bit depth when above 8, and the encoder family.
func (r Result) VideoParams() []string {
	var params []string
	s := r.VideoStream()
	if s == nil {
		return params
	}

	if s.Width > 0 && s.Height > 0 {
		switch s.Height {
		case 480, 720, 1080, 2160:
			params = append(params, fmt.Sprintf("%dp", s.Height))
		default:
			params = append(params, fmt.Sprintf("%dx%d", s.Width, s.Height))
		}
	}

	depth := strings.TrimSpace(s.BitsPerRawSample)
	switch {
	case depth != "" && depth != "8":
		params = append(params, depth+"bit")
	case containsTenBit(r.Format.Filename):
		params = append(params, "10bit")
	}

	encoder := strings.ToLower(s.Tags["ENCODER"])
	if encoder == "" {
		encoder = strings.ToLower(s.Tags["encoder"])
	}
	switch {
	case strings.Contains(encoder, "x265") || strings.Contains(encoder, "hevc"):
		params = append(params, "HEVC")
	case strings.Contains(encoder, "x264") || strings.Contains(encoder, "avc"):
		params = append(params, "h264")
	}
	return params
}

func containsTenBit(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "10bit") || strings.Contains(lower, "10 bit")
}
