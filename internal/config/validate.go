package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOracle(); err != nil {
		return err
	}
	if err := c.validateFinder(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOracle() error {
	if c.Oracle.BaseURL == "" {
		return errors.New("oracle.base_url must be set")
	}
	if c.Oracle.CropBottom <= 0 || c.Oracle.CropBottom >= 1 {
		return errors.New("oracle.crop_bottom must be between 0 and 1")
	}
	if c.Oracle.CropLeft <= 0 || c.Oracle.CropLeft >= 1 {
		return errors.New("oracle.crop_left must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateFinder() error {
	if c.Finder.CoarseIntervalSeconds <= 0 {
		return errors.New("finder.coarse_interval_seconds must be positive")
	}
	if c.Finder.PrecisionSeconds <= 0 {
		return errors.New("finder.precision_seconds must be positive")
	}
	if c.Finder.PrecisionSeconds >= c.Finder.CoarseIntervalSeconds {
		return errors.New("finder.precision_seconds must be smaller than finder.coarse_interval_seconds")
	}
	if c.Finder.MinBreakSeconds <= 0 {
		return errors.New("finder.min_break_seconds must be positive")
	}
	if c.Finder.MaxRetries < 1 {
		return errors.New("finder.max_retries must be at least 1")
	}
	if c.Finder.RetryOffsetSeconds <= 0 {
		return errors.New("finder.retry_offset_seconds must be positive")
	}
	if c.Finder.EarlyPointThreshold < 0 {
		return errors.New("finder.early_point_threshold must not be negative")
	}
	if c.Finder.SecondsPerPoint <= 0 {
		return errors.New("finder.seconds_per_point must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
