package settings

import (
	"fmt"
	"strings"
)

type SettingsErrors []error

func (e SettingsErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

type SettingsError struct {
	Field   string
	Message string
}

func (e SettingsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
