package manifest

import (
	"fmt"
	"strings"
)

type EntryError struct {
	Index   int
	Field   string
	Message string
}

func (e EntryError) Error() string {
	return fmt.Sprintf("link #%d: %s: %s", e.Index, e.Field, e.Message)
}

type ManifestErrors []EntryError

func (e ManifestErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}
