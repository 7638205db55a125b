package config

const (
	defaultStateDir             = "~/.local/share/cadence"
	defaultLogDir               = "~/.local/share/cadence/logs"
	defaultAcoustIDBaseURL      = "https://api.acoustid.org/v2"
	defaultAcoustIDTimeout      = 30
	defaultFpcalcBinary         = "fpcalc"
	defaultFpcalcTimeoutSeconds = 120
	defaultHistoryEnabled       = true
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		AcoustID: AcoustID{
			BaseURL:        defaultAcoustIDBaseURL,
			TimeoutSeconds: defaultAcoustIDTimeout,
		},
		Fpcalc: Fpcalc{
			Binary:         defaultFpcalcBinary,
			TimeoutSeconds: defaultFpcalcTimeoutSeconds,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
