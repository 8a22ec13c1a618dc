package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/linkfarm/linkfarm/internal/constants"
)

func EscapeAndJoinArgs(args []string) string {
	var escapedArgs []string

	for _, arg := range args {
		if strings.ContainsAny(arg, " \t\n\"'\\") {
			arg = strings.ReplaceAll(arg, "\\", "\\\\")
			arg = strings.ReplaceAll(arg, "\"", "\\\"")
			escapedArgs = append(escapedArgs, fmt.Sprintf("\"%s\"", arg))
		} else {
			escapedArgs = append(escapedArgs, arg)
		}
	}

	return strings.Join(escapedArgs, " ")
}

// Location of the settings file: $LINKFARM_CONFIG if set, otherwise
// config.toml inside the user configuration directory.
func ConfigLocation() string {
	if location := os.Getenv(constants.ConfigEnvVar); location != "" {
		return location
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(configDir, constants.DefaultConfigSubdir, constants.DefaultConfigFile)
}
