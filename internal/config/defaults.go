package config

const (
	defaultConfigPath          = "~/.config/wordsplice/config.toml"
	defaultLogDir              = "~/.local/share/wordsplice/logs"
	defaultConfidenceThreshold = 0.90
	defaultIndexWorkers        = 4
	defaultDecodeWorkers       = 4
	defaultHeadroomDB          = 0.1
	defaultWatsonModel         = "en-US_BroadbandModel"
	defaultWatsonTimeout       = 1800
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Index: Index{
			ConfidenceThreshold: defaultConfidenceThreshold,
			Workers:             defaultIndexWorkers,
		},
		Speak: Speak{
			HeadroomDB:    defaultHeadroomDB,
			DecodeWorkers: defaultDecodeWorkers,
		},
		Watson: Watson{
			Model:           defaultWatsonModel,
			SmartFormatting: true,
			TimeoutSeconds:  defaultWatsonTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
