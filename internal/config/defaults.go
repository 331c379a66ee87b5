package config

// DefaultRelayListen is the bind address `splinter relay` serves on.
const DefaultRelayListen = ":9400"

// DefaultRelayURL is the relay endpoint swarm clients dial when no relay
// is configured. It matches DefaultRelayListen so a locally run
// `splinter relay` works out of the box.
const DefaultRelayURL = "ws://127.0.0.1:9400/join"

// Relay join throttling defaults.
const (
	DefaultJoinRatePerSecond = 20
	DefaultJoinBurst         = 40
)

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.splinter",
		Relay: RelayConfig{
			URL:               DefaultRelayURL,
			Listen:            DefaultRelayListen,
			JoinRatePerSecond: DefaultJoinRatePerSecond,
			JoinBurst:         DefaultJoinBurst,
		},
		Session: SessionConfig{
			DefaultName: "",
		},
		Security: SecurityConfig{
			MemoryLock: true,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.splinter/splinter.log",
		},
	}
}
