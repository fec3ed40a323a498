package config

const (
	defaultStateDir   = "~/.local/share/matchscan"
	defaultOutputDir  = "~/matchscan/match_starts"
	defaultLogDir     = "~/.local/share/matchscan/logs"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	defaultOracleURL  = "http://127.0.0.1:8199"
	defaultOracleWait = 120

	// Crop fractions for the scoreboard region (bottom-left corner).
	defaultCropBottom = 0.14
	defaultCropLeft   = 0.40

	// Search strategy defaults.
	defaultCoarseIntervalSeconds = 180
	defaultPrecisionSeconds      = 10
	defaultMinBreakSeconds       = 300
	defaultMaxRetries            = 3
	defaultRetryOffsetSeconds    = 5
	defaultEarlyPointThreshold   = 15
	defaultSecondsPerPoint       = 16

	defaultYouTubeFormat = "bv*[height<=480]"
	defaultChannelURL    = "https://www.youtube.com/@WTTGlobal/videos"
	defaultNotifyTimeout = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir:  defaultStateDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Oracle: Oracle{
			BaseURL:        defaultOracleURL,
			TimeoutSeconds: defaultOracleWait,
			CropBottom:     defaultCropBottom,
			CropLeft:       defaultCropLeft,
		},
		Finder: Finder{
			CoarseIntervalSeconds: defaultCoarseIntervalSeconds,
			PrecisionSeconds:      defaultPrecisionSeconds,
			MinBreakSeconds:       defaultMinBreakSeconds,
			MaxRetries:            defaultMaxRetries,
			RetryOffsetSeconds:    defaultRetryOffsetSeconds,
			EarlyPointThreshold:   defaultEarlyPointThreshold,
			SecondsPerPoint:       defaultSecondsPerPoint,
		},
		YouTube: YouTube{
			Format:     defaultYouTubeFormat,
			ChannelURL: defaultChannelURL,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			ScanCompleted:  true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
