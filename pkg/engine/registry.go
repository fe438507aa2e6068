package engine

import (
	"github.com/arthur-debert/hamstercage/pkg/manifest"
)

// CreateTag adds an empty tag and writes the manifest
func (e *Engine) CreateTag(name, description string) (*manifest.Tag, error) {
	tag, err := e.manifest.AddTag(name, description)
	if err != nil {
		return nil, err
	}
	if err := e.manifest.Write(); err != nil {
		return nil, err
	}
	e.logger.Info().Str("tag", name).Msg("Tag created")
	return tag, nil
}

// HostOptions defines the options for CreateHost
type HostOptions struct {
	Name        string
	Description string
	Tags        []string
	// Force replaces an existing host
	Force bool
}

// CreateHost registers a host and writes the manifest
func (e *Engine) CreateHost(opts HostOptions) (*manifest.Host, error) {
	host, err := e.manifest.AddHost(opts.Name, opts.Description, opts.Tags, opts.Force)
	if err != nil {
		return nil, err
	}
	if err := e.manifest.Write(); err != nil {
		return nil, err
	}
	e.logger.Info().Str("host", opts.Name).Strs("tags", opts.Tags).Msg("Host created")
	return host, nil
}
