package storage

import (
	"net/url"
	"strings"

	"conclave.network/conclave/lib/errors"
)

type Config struct {
	Scheme string
	Path   string
}

// NewConfigFromString parses a storage endpoint like `file:///var/lib/conclave`
// or `memory://`.
func NewConfigFromString(s string) (*Config, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}

	config := &Config{Scheme: u.Scheme}

	switch u.Scheme {
	case "memory":
	case "file":
		config.Path = u.Host + u.Path
		if len(strings.TrimSpace(config.Path)) < 1 {
			return nil, errors.StorageCoreError.Clone().SetData("cause", "empty path")
		}
	default:
		return nil, errors.StorageCoreError.Clone().SetData("cause", "unknown storage scheme")
	}

	return config, nil
}
