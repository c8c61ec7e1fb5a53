package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateExport() error {
	if strings.ContainsRune(c.Export.MusicDir, '/') {
		return errors.New("export.music_dir must be a single directory name")
	}
	if strings.ContainsRune(c.Export.PlaylistsDir, '/') {
		return errors.New("export.playlists_dir must be a single directory name")
	}
	if c.Export.MusicDir == c.Export.PlaylistsDir {
		return errors.New("export.music_dir and export.playlists_dir must differ")
	}
	if strings.ContainsRune(c.Export.StateFile, '/') {
		return errors.New("export.state_file must be a bare file name")
	}
	if strings.ContainsRune(c.Export.LockFile, '/') {
		return errors.New("export.lock_file must be a bare file name")
	}
	if err := ensurePositiveMap(map[string]int{
		"export.checkpoint_every": c.Export.CheckpointEvery,
		"export.sample_size":      c.Export.SampleSize,
	}); err != nil {
		return err
	}
	if len(c.Export.BasePaths) == 0 {
		return errors.New("export.base_paths must include at least one directory")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
