package config

const (
	defaultConfigPath          = "~/.config/learnlang/config.toml"
	defaultAPIBaseURL          = "http://localhost:8080"
	defaultAPITimeoutSeconds   = 30
	defaultUserAgent           = "learnlang/dev"
	defaultMaxImageBytes       = 10 << 20
	defaultFetchTimeoutSeconds = 20
	defaultUserID              = "u1"
	defaultFlashcardsLimit     = 20
	defaultStateDir            = "~/.local/share/learnlang"
	defaultLogDir              = "~/.local/share/learnlang/logs"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"

	// EnvAPIBase overrides api.base_url when set to a non-blank value.
	EnvAPIBase = "LEARNLANG_API_BASE"

	// MaxFlashcardsLimit is the largest batch the backend serves.
	MaxFlashcardsLimit = 100
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:        defaultAPIBaseURL,
			TimeoutSeconds: defaultAPITimeoutSeconds,
			UserAgent:      defaultUserAgent,
		},
		Media: Media{
			MaxImageBytes:       defaultMaxImageBytes,
			FetchTimeoutSeconds: defaultFetchTimeoutSeconds,
		},
		Defaults: Defaults{
			UserID:          defaultUserID,
			FlashcardsLimit: defaultFlashcardsLimit,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
