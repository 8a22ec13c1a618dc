package build

import (
	"github.com/linkfarm/linkfarm/internal/build/vars"
)

func Version() string {
	return vars.Version
}

func GitRevision() string {
	return vars.GitRevision
}

// Version string shown by `linkfarm --version`.
func VersionString() string {
	if vars.GitRevision == "" || vars.GitRevision == "unknown" {
		return vars.Version
	}
	return vars.Version + " (" + vars.GitRevision + ")"
}
