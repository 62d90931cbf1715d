package config

import (
	"fmt"
	"strings"

	"muxxy/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMux()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.OutputDir = strings.TrimSpace(c.Paths.OutputDir)
	if c.Paths.OutputDir != "" {
		if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
			return fmt.Errorf("paths.output_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeMux() {
	c.Mux.ReleaseTag = strings.TrimSpace(c.Mux.ReleaseTag)
	if c.Mux.ReleaseTag == "" {
		c.Mux.ReleaseTag = defaultReleaseTag
	}
	// Accept "en", "eng", or "english"; mkvmerge wants ISO 639-2.
	lang := strings.TrimSpace(c.Mux.SubtitleLanguage)
	if lang != "" {
		c.Mux.SubtitleLanguage = language.ToISO3(lang)
	}
	c.Mux.VideoTrackName = strings.TrimSpace(c.Mux.VideoTrackName)
	c.Mux.SubtitleTrackName = strings.TrimSpace(c.Mux.SubtitleTrackName)
	if c.Mux.Workers <= 0 {
		c.Mux.Workers = defaultWorkers
	}
	c.Mux.MkvmergeBinary = strings.TrimSpace(c.Mux.MkvmergeBinary)
	if c.Mux.MkvmergeBinary == "" {
		c.Mux.MkvmergeBinary = defaultMkvmergeBinary
	}
	c.Mux.FFprobeBinary = strings.TrimSpace(c.Mux.FFprobeBinary)
	if c.Mux.FFprobeBinary == "" {
		c.Mux.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeHistory() error {
	var err error
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
