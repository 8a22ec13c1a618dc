package constants

const (
	ConfigEnvVar        = "LINKFARM_CONFIG"
	DebugModeEnvVar     = "LINKFARM_DEBUG_MODE"
	DefaultConfigSubdir = "linkfarm"
	DefaultConfigFile   = "config.toml"
	SyslogTag           = "linkfarm"
)
