package cmdUtils

import (
	"errors"

	"github.com/linkfarm/linkfarm/internal/build"
	"github.com/linkfarm/linkfarm/internal/logger"
	"github.com/linkfarm/linkfarm/internal/manifest"
)

// Load and validate a manifest, logging every problem found.
func LoadManifest(log logger.Logger, path string) (*manifest.Manifest, error) {
	m, err := manifest.Load(path)
	if err != nil {
		log.Errorf("failed to load manifest: %v", err)
		return nil, err
	}

	if err := m.Validate(); err != nil {
		var errs manifest.ManifestErrors
		if errors.As(err, &errs) {
			for _, e := range errs {
				log.Errorf("%v: %v", path, e)
			}
		} else {
			log.Error(err)
		}
		return nil, err
	}

	if err := m.CheckVersion(build.Version()); err != nil {
		log.Errorf("%v: %v", path, err)
		return nil, err
	}

	return m, nil
}
