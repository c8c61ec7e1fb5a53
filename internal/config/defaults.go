package config

const (
	defaultPioneerDir      = "~/Library/Pioneer"
	defaultLogDir          = "~/.local/share/cratesync/logs"
	defaultMusicDir        = "Music"
	defaultPlaylistsDir    = "Playlists"
	defaultStateFile       = ".cratesync-state.json"
	defaultLockFile        = ".cratesync.lock"
	defaultManifestExt     = "m3u8"
	defaultCheckpointEvery = 50
	defaultSampleSize      = 5
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			PioneerDir: defaultPioneerDir,
			LogDir:     defaultLogDir,
		},
		Export: Export{
			MusicDir:        defaultMusicDir,
			PlaylistsDir:    defaultPlaylistsDir,
			StateFile:       defaultStateFile,
			LockFile:        defaultLockFile,
			ManifestExt:     defaultManifestExt,
			CheckpointEvery: defaultCheckpointEvery,
			SampleSize:      defaultSampleSize,
			BasePaths:       []string{"~/Music"},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
