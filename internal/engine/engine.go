package engine

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"muxxy/internal/config"
	"muxxy/internal/fileutil"
	"muxxy/internal/fonts"
	"muxxy/internal/history"
	"muxxy/internal/language"
	"muxxy/internal/logging"
	"muxxy/internal/matching"
	"muxxy/internal/media/ffprobe"
	"muxxy/internal/mkv"
	"muxxy/internal/naming"
	"muxxy/internal/subtitle"
)

// ErrNoSubtitle marks a match that carried no subtitle and was skipped.
var ErrNoSubtitle = errors.New("no subtitle matched")

// probeFunc mirrors ffprobe.Inspect so tests can substitute canned results.
type probeFunc func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Engine runs matched pairs through the full mux pipeline.
type Engine struct {
	cfg       *config.Config
	logger    *slog.Logger
	workspace *fileutil.Workspace
	shifter   *subtitle.Shifter
	resampler *subtitle.Resampler
	muxer     *mkv.Muxer
	history   *history.Store
	probe     probeFunc
}

// New constructs an engine from configuration. The history store is optional;
// a nil store disables run recording.
func New(cfg *config.Config, logger *slog.Logger, store *history.Store) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	workspace := fileutil.NewWorkspace(cfg.Paths.WorkDir)
	return &Engine{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "engine"),
		workspace: workspace,
		shifter:   subtitle.NewShifter(logger, workspace),
		resampler: subtitle.NewResampler(logger, workspace),
		muxer:     mkv.NewMuxer(logger, cfg.Mux.MkvmergeBinary),
		history:   store,
		probe:     ffprobe.Inspect,
	}
}

// WithMuxer substitutes the mkvmerge wrapper, used by tests to inject a
// command runner.
func (e *Engine) WithMuxer(m *mkv.Muxer) {
	if e != nil && m != nil {
		e.muxer = m
	}
}

// WithProbe substitutes the ffprobe call for tests.
func (e *Engine) WithProbe(p probeFunc) {
	if e != nil && p != nil {
		e.probe = p
	}
}

// Workspace exposes the transform workspace so callers can clean it up after
// a run.
func (e *Engine) Workspace() *fileutil.Workspace {
	return e.workspace
}

// MuxSingle processes one match end to end and returns the path of the muxed
// container. A match without a subtitle returns ErrNoSubtitle. The outcome is
// recorded in the history store either way.
func (e *Engine) MuxSingle(ctx context.Context, match matching.Result) (string, error) {
	outputPath, err := e.muxSingle(ctx, match)
	e.record(ctx, match, outputPath, err)
	return outputPath, err
}

func (e *Engine) muxSingle(ctx context.Context, match matching.Result) (string, error) {
	if strings.TrimSpace(match.SubtitlePath) == "" {
		e.logger.Info("no subtitle matched, skipping",
			logging.String(logging.FieldVideo, match.VideoPath),
			logging.String("reason", match.Reason))
		return "", ErrNoSubtitle
	}

	probed, probeErr := e.probe(ctx, e.cfg.Mux.FFprobeBinary, match.VideoPath)
	if probeErr != nil {
		e.logger.Warn("ffprobe failed, muxing without video metadata",
			logging.String(logging.FieldVideo, match.VideoPath),
			logging.Error(probeErr))
	}

	subtitlePath := e.shifter.Shift(match.SubtitlePath, e.cfg.Subtitles.ShiftFrames)

	width, height := probed.Resolution()
	subtitlePath = e.resampler.Resample(subtitlePath, subtitle.ResampleRequest{
		Target:   subtitle.Resolution{Width: width, Height: height},
		Force:    e.cfg.Subtitles.ForceResample,
		Disabled: e.cfg.Subtitles.NoResample,
	})

	// Language and fonts are read off the matched subtitle, not the
	// transformed copy; temp names carry no language code and the temp
	// directory has no fonts.
	subtitleLanguage := e.cfg.Mux.SubtitleLanguage
	if subtitleLanguage == "" {
		if raw := naming.ExtractLanguage(match.SubtitlePath); raw != "" {
			subtitleLanguage = language.ToISO3(raw)
		}
	}
	attachments := fonts.FindForEpisode(match.VideoPath, match.SubtitlePath)

	chaptersPath := mkv.FindChaptersFile(match.VideoPath)
	tagsPath := mkv.FindTagsFile(match.VideoPath)
	keepChapters, keepTags := false, false
	if chaptersPath == "" || tagsPath == "" {
		if id, err := e.muxer.Identify(ctx, match.VideoPath); err != nil {
			e.logger.Warn("mkvmerge identify failed, treating source as bare",
				logging.String(logging.FieldVideo, match.VideoPath),
				logging.Error(err))
		} else {
			keepChapters = id.HasChapters()
			keepTags = id.HasTags()
		}
	}

	videoTrackName := e.cfg.Mux.VideoTrackName
	if videoTrackName == "" {
		videoTrackName = naming.ExtractReleaseGroup(filepath.Base(match.VideoPath))
	}
	subtitleTrackName := e.cfg.Mux.SubtitleTrackName
	if subtitleTrackName == "" {
		subtitleTrackName = naming.ExtractReleaseGroup(filepath.Base(match.SubtitlePath))
	}

	outputDir, err := ResolveOutputDir(match.VideoPath, e.cfg.Mux.ReleaseTag,
		e.cfg.Paths.OutputDir, e.cfg.Subtitles.TitleCaseShows)
	if err != nil {
		return "", err
	}
	outputPath := filepath.Join(outputDir,
		GenerateOutputFilename(match.VideoPath, e.cfg.Mux.ReleaseTag, probed.VideoParams()))

	req := mkv.MuxRequest{
		VideoPath:          match.VideoPath,
		OutputPath:         outputPath,
		SubtitlePath:       subtitlePath,
		SubtitleLanguage:   subtitleLanguage,
		SubtitleTrackName:  subtitleTrackName,
		VideoTrackName:     videoTrackName,
		Attachments:        attachments,
		ChaptersPath:       chaptersPath,
		KeepSourceChapters: keepChapters,
		TagsPath:           tagsPath,
		KeepSourceTags:     keepTags,
	}
	if err := e.muxer.Mux(ctx, req); err != nil {
		return "", err
	}
	return outputPath, nil
}

func (e *Engine) record(ctx context.Context, match matching.Result, outputPath string, runErr error) {
	if e.history == nil {
		return
	}
	rec := history.Record{
		VideoPath:    match.VideoPath,
		SubtitlePath: match.SubtitlePath,
		OutputPath:   outputPath,
		Confidence:   match.Confidence,
		MatchKind:    match.Kind.String(),
		Reason:       match.Reason,
	}
	switch {
	case runErr == nil:
		rec.Status = history.StatusCompleted
	case errors.Is(runErr, ErrNoSubtitle):
		rec.Status = history.StatusSkipped
	default:
		rec.Status = history.StatusFailed
		rec.ErrorMessage = runErr.Error()
	}
	if _, err := e.history.Add(ctx, rec); err != nil {
		e.logger.Warn("history record failed", logging.Error(err))
	}
}

// BatchSummary counts the outcomes of a batch run.
type BatchSummary struct {
	Succeeded int
	Failed    int
	Skipped   int
}

// Total returns the number of items the batch processed.
func (s BatchSummary) Total() int {
	return s.Succeeded + s.Failed + s.Skipped
}

// MuxBatch processes matches on a bounded worker pool. Per-item failures are
// counted, never fatal. Cancelling the context stops feeding new items;
// in-flight mkvmerge runs are killed through the same context.
func (e *Engine) MuxBatch(ctx context.Context, matches []matching.Result) BatchSummary {
	workers := e.cfg.Mux.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(matches) {
		workers = len(matches)
	}

	var (
		mu      sync.Mutex
		summary BatchSummary
		wg      sync.WaitGroup
	)
	jobs := make(chan matching.Result)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for match := range jobs {
				_, err := e.MuxSingle(ctx, match)
				mu.Lock()
				switch {
				case err == nil:
					summary.Succeeded++
				case errors.Is(err, ErrNoSubtitle):
					summary.Skipped++
				default:
					summary.Failed++
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, match := range matches {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- match:
		}
	}
	close(jobs)
	wg.Wait()

	e.logger.Info("batch mux complete",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped))
	return summary
}
