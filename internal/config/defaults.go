package config

const (
	defaultWorkDir             = "~/.local/share/muxxy/work"
	defaultLogDir              = "~/.local/share/muxxy/logs"
	defaultHistoryPath         = "~/.local/share/muxxy/history.db"
	defaultConfidenceThreshold = 0.7
	defaultReleaseTag          = "MySubs"
	defaultWorkers             = 4
	defaultMkvmergeBinary      = "mkvmerge"
	defaultFFprobeBinary       = "ffprobe"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Matching: Matching{
			ConfidenceThreshold: defaultConfidenceThreshold,
		},
		Mux: Mux{
			ReleaseTag:     defaultReleaseTag,
			Workers:        defaultWorkers,
			MkvmergeBinary: defaultMkvmergeBinary,
			FFprobeBinary:  defaultFFprobeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
	}
}
