package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateMux(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.ConfidenceThreshold < 0 || c.Matching.ConfidenceThreshold > 1 {
		return errors.New("matching.confidence_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateMux() error {
	if c.Mux.Workers <= 0 {
		return errors.New("mux.workers must be positive")
	}
	if c.Mux.Workers > 64 {
		return fmt.Errorf("mux.workers is %d; values above 64 only thrash the disk", c.Mux.Workers)
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.NoResample && c.Subtitles.ForceResample {
		return errors.New("subtitles.no_resample and subtitles.force_resample are mutually exclusive")
	}
	return nil
}
