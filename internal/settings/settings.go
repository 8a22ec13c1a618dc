package settings

import (
	"fmt"
	"maps"
	"os"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

type Settings struct {
	Aliases           map[string][]string  `koanf:"aliases" noset:"true"`
	Confirmation      ConfirmationSettings `koanf:"confirmation"`
	UseColor          bool                 `koanf:"color"`
	DirectoryMode     string               `koanf:"dir_mode"`
	Manifest          string               `koanf:"manifest"`
	SSH               SSHSettings          `koanf:"ssh"`
	Syslog            bool                 `koanf:"syslog"`
	UseDefaultAliases bool                 `koanf:"use_default_aliases"`
}

type ConfirmationSettings struct {
	Always  bool                       `koanf:"always"`
	Invalid ConfirmationPromptBehavior `koanf:"invalid"`
	Empty   ConfirmationPromptBehavior `koanf:"empty"`
}

type SSHSettings struct {
	ConfigFile          string   `koanf:"config_file"`
	HostsFileCompletion bool     `koanf:"hosts_file_completion"`
	KnownHostsFiles     []string `koanf:"known_hosts_files"`
}

type ConfirmationPromptBehavior string

const (
	ConfirmationPromptRetry      ConfirmationPromptBehavior = "retry"
	ConfirmationPromptDefaultYes ConfirmationPromptBehavior = "default-yes"
	ConfirmationPromptDefaultNo  ConfirmationPromptBehavior = "default-no"
)

var AvailableConfirmationPromptSettings = map[string]string{
	string(ConfirmationPromptDefaultNo):  "Default to input of 'no'",
	string(ConfirmationPromptDefaultYes): "Default to input of 'yes'",
	string(ConfirmationPromptRetry):      "Retry the input function again",
}

func (c *ConfirmationPromptBehavior) UnmarshalText(text []byte) error {
	val := ConfirmationPromptBehavior(text)
	switch val {
	case ConfirmationPromptDefaultYes, ConfirmationPromptDefaultNo, ConfirmationPromptRetry:
		*c = val
		return nil
	}

	return fmt.Errorf("invalid value for ConfirmationPromptBehavior '%s'", val)
}

type DescriptionEntry struct {
	Short   string
	Long    string
	Example any
}

const confirmationInputPossibleValues = "Possible values are `default-no` (treat as a no input), `default-yes` (treat as a yes input), or `retry` (try again)."


var DefaultAliases = map[string][]string{
	"ln":   {"link"},
	"sync": {"apply", "--yes"},
}

var SettingsDocs = map[string]DescriptionEntry{
	"aliases": {
		Short: "Shortcuts for long commands",
		Long:  "Defines alternative aliases for long commands to improve user ergonomics.",
		Example: map[string][]string{
			"check": {"status", "--json"},
			"dry":   {"apply", "--dry"},
		},
	},
	"color": {
		Short: "Enable colored output",
		Long:  "Turns on ANSI color sequences for decorated output in supported terminals.",
	},
	"confirmation": {
		Short: "Settings for confirmation prompts throughout the program",
	},
	"confirmation.always": {
		Short: "Disable interactive confirmation input entirely",
		Long:  "Disables prompts that ask for user confirmation before replacing existing links; useful for automation.",
	},
	"confirmation.empty": {
		Short: "Control confirmation prompt behavior when no input is provided",
		Long:  "Control confirmation prompt behavior when no input is provided. " + confirmationInputPossibleValues,
	},
	"confirmation.invalid": {
		Short: "Control confirmation prompt behavior when invalid input is provided",
		Long:  "Control confirmation prompt behavior when invalid input is provided. " + confirmationInputPossibleValues,
	},
	"dir_mode": {
		Short: "Permissions for created parent directories",
		Long:  "Octal permission bits used when creating missing parent directories of a link. The process umask still applies.",
	},
	"manifest": {
		Short: "Default link manifest to read",
		Long:  "Path of the TOML link manifest used by `apply` and `status` when none is given on the command line.",
	},
	"ssh": {
		Short: "Settings for SSH connections to remote hosts",
	},
	"ssh.config_file": {
		Short: "SSH client configuration file",
		Long:  "Path to an ssh_config(5) file used to resolve host aliases. Defaults to `~/.ssh/config` when empty.",
	},
	"ssh.hosts_file_completion": {
		Short: "Complete `--host` with names from /etc/hosts",
		Long:  "Adds names from /etc/hosts to `--host` completions, alongside SSH config and known_hosts entries. Files larger than 1 MiB are ignored.",
	},
	"ssh.known_hosts_files": {
		Short: "Known hosts files used to verify remote host keys",
		Long:  "List of known_hosts files checked when connecting with `--host`. Defaults to `~/.ssh/known_hosts` when empty.",
	},
	"syslog": {
		Short: "Mirror log output to syslog",
		Long:  "Sends all log messages to the local syslog daemon in addition to the terminal.",
	},
	"use_default_aliases": {
		Short: "Enable default aliases",
		Long:  "Registers the built-in `ln` and `sync` aliases in addition to any user-defined ones.",
	},
}

func NewSettings() *Settings {
	return &Settings{
		Aliases: make(map[string][]string),
		Confirmation: ConfirmationSettings{
			Always:  false,
			Invalid: ConfirmationPromptRetry,
			Empty:   ConfirmationPromptDefaultNo,
		},
		UseColor:          true,
		DirectoryMode:     "0755",
		Manifest:          "linkfarm.toml",
		SSH:               SSHSettings{HostsFileCompletion: true},
		Syslog:            false,
		UseDefaultAliases: true,
	}
}

// Parse settings from a TOML file. A missing file is not an
// error; the defaults are returned instead.
func ParseSettings(location string) (*Settings, error) {
	if _, err := os.Stat(location); os.IsNotExist(err) {
		return NewSettings(), nil
	}

	k := koanf.New(".")

	if err := k.Load(file.Provider(location), toml.Parser()); err != nil {
		return nil, err
	}

	cfg := NewSettings()

	err := k.Unmarshal("", cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func ParseSettingsFromString(input string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider([]byte(input)), toml.Parser()); err != nil {
		return nil, err
	}

	cfg := NewSettings()

	err := k.Unmarshal("", cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Aliases that should be registered, with user-defined aliases
// taking precedence over the defaults.
func (cfg *Settings) EffectiveAliases() map[string][]string {
	aliases := make(map[string][]string, len(cfg.Aliases)+len(DefaultAliases))

	if cfg.UseDefaultAliases {
		maps.Copy(aliases, DefaultAliases)
	}
	maps.Copy(aliases, cfg.Aliases)

	return aliases
}

// Parse the configured directory mode as an octal permission set.
func (cfg *Settings) DirMode() (os.FileMode, error) {
	mode, err := strconv.ParseUint(cfg.DirectoryMode, 8, 32)
	if err != nil {
		return 0, SettingsError{Field: "dir_mode", Message: fmt.Sprintf("'%s' is not an octal number", cfg.DirectoryMode)}
	}

	if mode > 0o777 {
		return 0, SettingsError{Field: "dir_mode", Message: fmt.Sprintf("'%s' has bits outside of 0777", cfg.DirectoryMode)}
	}

	return os.FileMode(mode), nil
}

var hasWhitespaceRegex = regexp.MustCompile(`\s`)

// Validate the configuration and remove any erroneous values.
// A list of detected errors is returned, if any exist.
func (cfg *Settings) Validate() SettingsErrors {
	errs := []error{}

	// Any alias has to adhere to the following rules:
	// 1. Alias names cannot be empty.
	// 2. Alias names cannot have whitespace
	// 3. Alias names cannot start with a -
	// 4. Resolved arguments list must have a len > 1
	// 5. Aliases cannot resolve to themselves
	for alias, resolved := range cfg.Aliases {
		if len(alias) == 0 {
			errs = append(errs, SettingsError{Field: "aliases", Message: "alias name cannot be empty"})
			delete(cfg.Aliases, alias)
		} else if alias[0] == '-' {
			errs = append(errs, SettingsError{Field: fmt.Sprintf("aliases.%s", alias), Message: "alias cannot start with a '-'"})
			delete(cfg.Aliases, alias)
		} else if hasWhitespaceRegex.MatchString(alias) {
			errs = append(errs, SettingsError{Field: fmt.Sprintf("aliases.%s", alias), Message: "alias cannot have whitespace"})
			delete(cfg.Aliases, alias)
		} else if len(resolved) == 0 {
			errs = append(errs, SettingsError{Field: fmt.Sprintf("aliases.%s", alias), Message: "args list cannot be empty"})
			delete(cfg.Aliases, alias)
		} else if resolved[0] == alias {
			errs = append(errs, SettingsError{Field: fmt.Sprintf("aliases.%s", alias), Message: "alias cannot resolve to itself"})
			delete(cfg.Aliases, alias)
		}
	}

	if _, err := cfg.DirMode(); err != nil {
		errs = append(errs, err)
		cfg.DirectoryMode = NewSettings().DirectoryMode
	}

	if strings.TrimSpace(cfg.Manifest) == "" {
		errs = append(errs, SettingsError{Field: "manifest", Message: "manifest path cannot be empty"})
		cfg.Manifest = NewSettings().Manifest
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (cfg *Settings) SetValue(key string, value string) error {
	fields := strings.Split(key, ".")
	current := reflect.ValueOf(cfg).Elem()

	for i, field := range fields {
		// Find the struct field with the matching koanf tag
		found := false
		var fieldInfo reflect.StructField
		for j := 0; j < current.Type().NumField(); j++ {
			fieldInfo = current.Type().Field(j)
			if fieldInfo.Tag.Get("koanf") == field {
				current = current.Field(j)
				found = true
				break
			}
		}

		if !found {
			return SettingsError{Field: field, Message: "setting not found"}
		}

		if i == len(fields)-1 {
			if fieldInfo.Tag.Get("noset") == "true" || !current.CanSet() || !isSettable(&current) {
				return SettingsError{Field: key, Message: "cannot change value of this setting dynamically"}
			}

			switch current.Kind() {
			case reflect.String:
				if current.Type() == reflect.TypeFor[ConfirmationPromptBehavior]() {
					var behavior ConfirmationPromptBehavior
					if err := behavior.UnmarshalText([]byte(value)); err != nil {
						return SettingsError{Field: key, Message: err.Error()}
					}
				}
				current.SetString(value)
			case reflect.Bool:
				boolVal, err := strconv.ParseBool(value)
				if err != nil {
					return SettingsError{Field: key, Message: fmt.Sprintf("invalid boolean value '%s' for field", value)}
				}
				current.SetBool(boolVal)
			case reflect.Int, reflect.Int64:
				intVal, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					return SettingsError{Field: key, Message: fmt.Sprintf("invalid integer value '%s' for field", value)}
				}
				current.SetInt(intVal)
			}

			return nil
		}

		if current.Kind() != reflect.Struct {
			return SettingsError{Field: key, Message: "setting not found"}
		}
	}

	return nil
}

func isSettable(value *reflect.Value) bool {
	switch value.Kind() {
	case reflect.String, reflect.Bool, reflect.Int, reflect.Int64:
		return true
	}

	return false
}

// Render a map of string slices as sorted `key = [a, b]` lines.
func FormatStringSliceMap(m map[string][]string) (result string) {
	for _, key := range slices.Sorted(maps.Keys(m)) {
		result += fmt.Sprintf("%s = [%s]\n", key, strings.Join(m[key], ", "))
	}
	return result
}
