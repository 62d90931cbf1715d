package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"muxxy/internal/config"
	"muxxy/internal/engine"
	"muxxy/internal/matching"
)

func newMuxCommand(ctx *commandContext) *cobra.Command {
	var (
		dir                 string
		releaseTag          string
		subtitleLang        string
		videoTrackName      string
		subTrackName        string
		shiftFrames         int
		strict              bool
		noResample          bool
		forceResample       bool
		outputDir           string
		confidenceThreshold float64
		workers             int
		preview             bool
		force               bool
	)

	cmd := &cobra.Command{
		Use:   "mux",
		Short: "Match subtitles to videos under a directory and mux them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyMuxOverrides(cmd, cfg, muxOverrides{
				releaseTag:          releaseTag,
				subtitleLang:        subtitleLang,
				videoTrackName:      videoTrackName,
				subTrackName:        subTrackName,
				shiftFrames:         shiftFrames,
				strict:              strict,
				noResample:          noResample,
				forceResample:       forceResample,
				outputDir:           outputDir,
				confidenceThreshold: confidenceThreshold,
				workers:             workers,
			})
			if cfg.Subtitles.NoResample && cfg.Subtitles.ForceResample {
				return fmt.Errorf("--no-resample and --force-resample are mutually exclusive")
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			results, err := matchDirectory(ctx, dir, cfg.Matching.Strict, out)
			if err != nil || results == nil {
				return err
			}
			if !force {
				results = applyThreshold(results, cfg.Matching.ConfidenceThreshold, out)
			}
			if preview {
				renderMatchPreview(out, results, cfg.Matching.ConfidenceThreshold)
				return nil
			}

			store, err := ctx.openHistory()
			if err != nil {
				fmt.Fprintf(out, "Warning: history store unavailable: %v\n", err)
			}
			if store != nil {
				defer store.Close()
			}

			eng := engine.New(cfg, logger, store)
			defer func() {
				if err := eng.Workspace().Cleanup(); err != nil {
					fmt.Fprintf(out, "Warning: workspace cleanup failed: %v\n", err)
				}
			}()

			summary := eng.MuxBatch(cmd.Context(), results)
			fmt.Fprintf(out, "\nComplete: %d succeeded, %d failed, %d skipped\n",
				summary.Succeeded, summary.Failed, summary.Skipped)
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d items failed", summary.Failed, summary.Total())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to search for MKV files")
	cmd.Flags().StringVarP(&releaseTag, "tag", "t", "", "Release tag to use in output filenames")
	cmd.Flags().StringVarP(&subtitleLang, "lang", "l", "", "Force a subtitle language code (e.g. eng, jpn) for all subtitles")
	cmd.Flags().StringVar(&videoTrackName, "video-track", "", "Custom name for video tracks (defaults to release group from filename)")
	cmd.Flags().StringVar(&subTrackName, "sub-track", "", "Custom name for subtitle tracks (defaults to release group from filename)")
	cmd.Flags().IntVar(&shiftFrames, "shift-frames", 0, "Shift subtitles by this many frames (positive = delay, negative = advance)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Use strict episode number matching (no fallback to aggressive matching)")
	cmd.Flags().BoolVar(&noResample, "no-resample", false, "Skip resampling of ASS subtitles entirely")
	cmd.Flags().BoolVar(&forceResample, "force-resample", false, "Force resampling of ASS subtitles even if resolutions match")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory for the muxed files")
	cmd.Flags().Float64Var(&confidenceThreshold, "confidence-threshold", 0, "Minimum confidence score for auto-matching (0.0-1.0)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of parallel workers")
	cmd.Flags().BoolVar(&preview, "preview", false, "Preview matches without muxing")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Mux every match regardless of confidence")

	return cmd
}

type muxOverrides struct {
	releaseTag          string
	subtitleLang        string
	videoTrackName      string
	subTrackName        string
	shiftFrames         int
	strict              bool
	noResample          bool
	forceResample       bool
	outputDir           string
	confidenceThreshold float64
	workers             int
}

// applyMuxOverrides copies explicitly set flags over the loaded configuration.
// Unset flags leave the config file values alone.
func applyMuxOverrides(cmd *cobra.Command, cfg *config.Config, o muxOverrides) {
	flags := cmd.Flags()
	if flags.Changed("tag") {
		cfg.Mux.ReleaseTag = o.releaseTag
	}
	if flags.Changed("lang") {
		cfg.Mux.SubtitleLanguage = o.subtitleLang
	}
	if flags.Changed("video-track") {
		cfg.Mux.VideoTrackName = o.videoTrackName
	}
	if flags.Changed("sub-track") {
		cfg.Mux.SubtitleTrackName = o.subTrackName
	}
	if flags.Changed("shift-frames") {
		cfg.Subtitles.ShiftFrames = o.shiftFrames
	}
	if flags.Changed("strict") {
		cfg.Matching.Strict = o.strict
	}
	if flags.Changed("no-resample") {
		cfg.Subtitles.NoResample = o.noResample
	}
	if flags.Changed("force-resample") {
		cfg.Subtitles.ForceResample = o.forceResample
	}
	if flags.Changed("output-dir") {
		cfg.Paths.OutputDir = o.outputDir
	}
	if flags.Changed("confidence-threshold") {
		cfg.Matching.ConfidenceThreshold = o.confidenceThreshold
	}
	if flags.Changed("workers") {
		cfg.Mux.Workers = o.workers
	}
}

// matchDirectory discovers files under dir and runs the match engine. A nil
// result slice with nil error means there was nothing to do; a message has
// already been printed.
func matchDirectory(ctx *commandContext, dir string, strict bool, out io.Writer) ([]matching.Result, error) {
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}

	videos, err := findVideos(dir)
	if err != nil {
		return nil, fmt.Errorf("scan for videos: %w", err)
	}
	fmt.Fprintf(out, "Found %d MKV files to process\n", len(videos))
	if len(videos) == 0 {
		return nil, nil
	}

	subtitles, err := findSubtitles(dir)
	if err != nil {
		return nil, fmt.Errorf("scan for subtitles: %w", err)
	}
	fmt.Fprintf(out, "Found %d subtitle files\n", len(subtitles))
	if len(subtitles) == 0 {
		return nil, nil
	}

	matcher := matching.NewEngine(logger)
	return matcher.MatchBatch(videos, subtitles, strict), nil
}

// applyThreshold clears the subtitle path of every match scoring below the
// threshold, keeping the numeric confidence for reporting.
func applyThreshold(results []matching.Result, threshold float64, out io.Writer) []matching.Result {
	low := 0
	filtered := make([]matching.Result, 0, len(results))
	for _, result := range results {
		if result.SubtitlePath != "" && !result.IsConfident(threshold) {
			if low == 0 {
				fmt.Fprintf(out, "\nWarning: matches below confidence threshold (%.2f) will be skipped; use --force to include them\n", threshold)
			}
			low++
			fmt.Fprintf(out, "  %s -> %s (%.0f%%)\n",
				filepath.Base(result.VideoPath), filepath.Base(result.SubtitlePath), result.Confidence*100)
			result.SubtitlePath = ""
		}
		filtered = append(filtered, result)
	}
	return filtered
}
