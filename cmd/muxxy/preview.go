package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"muxxy/internal/matching"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// renderMatchPreview prints the match table plus a confidence summary.
func renderMatchPreview(out io.Writer, results []matching.Result, threshold float64) {
	colorize := shouldColorize(out)

	rows := make([][]string, 0, len(results))
	for _, result := range results {
		rows = append(rows, []string{
			matchMarker(result, threshold, colorize),
			filepath.Base(result.VideoPath),
			filepath.Base(result.SubtitlePath),
			fmt.Sprintf("%.0f%%", result.Confidence*100),
			result.Kind.String(),
			result.Reason,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"", "Video", "Subtitle", "Confidence", "Kind", "Reason"},
		rows, 4))

	matched, confident := 0, 0
	for _, result := range results {
		if result.SubtitlePath != "" {
			matched++
			if result.IsConfident(threshold) {
				confident++
			}
		}
	}
	fmt.Fprintf(out, "Total videos: %d\n", len(results))
	fmt.Fprintf(out, "  High confidence matches: %d\n", confident)
	fmt.Fprintf(out, "  Low confidence matches:  %d\n", matched-confident)
	fmt.Fprintf(out, "  No matches:              %d\n", len(results)-matched)
}

func matchMarker(result matching.Result, threshold float64, colorize bool) string {
	switch {
	case result.SubtitlePath == "":
		return colored("x", ansiRed, colorize)
	case result.IsConfident(threshold):
		return colored("ok", ansiGreen, colorize)
	default:
		return colored("??", ansiYellow, colorize)
	}
}

func colored(s, color string, colorize bool) string {
	if !colorize {
		return s
	}
	return color + s + ansiReset
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
