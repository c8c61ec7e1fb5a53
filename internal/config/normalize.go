package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeExport(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.PioneerDir) == "" {
		c.Paths.PioneerDir = defaultPioneerDir
	}
	if c.Paths.PioneerDir, err = expandPath(c.Paths.PioneerDir); err != nil {
		return fmt.Errorf("paths.pioneer_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CatalogDB) != "" {
		if c.Paths.CatalogDB, err = expandPath(c.Paths.CatalogDB); err != nil {
			return fmt.Errorf("paths.catalog_db: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeExport() error {
	c.Export.MusicDir = strings.TrimSpace(c.Export.MusicDir)
	if c.Export.MusicDir == "" {
		c.Export.MusicDir = defaultMusicDir
	}
	c.Export.PlaylistsDir = strings.TrimSpace(c.Export.PlaylistsDir)
	if c.Export.PlaylistsDir == "" {
		c.Export.PlaylistsDir = defaultPlaylistsDir
	}
	c.Export.StateFile = strings.TrimSpace(c.Export.StateFile)
	if c.Export.StateFile == "" {
		c.Export.StateFile = defaultStateFile
	}
	c.Export.LockFile = strings.TrimSpace(c.Export.LockFile)
	if c.Export.LockFile == "" {
		c.Export.LockFile = defaultLockFile
	}
	c.Export.ManifestExt = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Export.ManifestExt)), ".")
	if c.Export.ManifestExt == "" {
		c.Export.ManifestExt = defaultManifestExt
	}
	if c.Export.CheckpointEvery <= 0 {
		c.Export.CheckpointEvery = defaultCheckpointEvery
	}
	if c.Export.SampleSize <= 0 {
		c.Export.SampleSize = defaultSampleSize
	}

	if len(c.Export.BasePaths) == 0 {
		c.Export.BasePaths = []string{"~/Music"}
	}
	expanded := make([]string, 0, len(c.Export.BasePaths))
	seen := make(map[string]struct{}, len(c.Export.BasePaths))
	for _, base := range c.Export.BasePaths {
		base = strings.TrimSpace(base)
		if base == "" {
			continue
		}
		abs, err := expandPath(base)
		if err != nil {
			return fmt.Errorf("export.base_paths: %w", err)
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		expanded = append(expanded, abs)
	}
	c.Export.BasePaths = expanded
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
