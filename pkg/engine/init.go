package engine

import (
	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/filesystem"
	"github.com/arthur-debert/hamstercage/pkg/logging"
	"github.com/arthur-debert/hamstercage/pkg/manifest"
)

// DefaultTag is the tag a fresh manifest starts with
const DefaultTag = "all"

// DefaultTagDescription describes DefaultTag
const DefaultTagDescription = "files that apply to all hosts"

// InitOptions defines the options for Init
type InitOptions struct {
	FS filesystem.FS
	// File is the manifest to create
	File string
	// Hostname gets a host entry selecting DefaultTag
	Hostname string
}

// Init creates a new manifest. An existing manifest is never overwritten.
func Init(opts InitOptions) (*manifest.Manifest, error) {
	log := logging.GetLogger("engine")
	log.Debug().Str("command", "Init").Str("file", opts.File).Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	if manifest.Exists(fsys, opts.File) {
		return nil, errors.Newf(errors.ErrManifestExists, "manifest file %q already exists", opts.File).
			WithDetail("path", opts.File)
	}

	m := manifest.New(fsys, opts.File)
	if _, err := m.AddTag(DefaultTag, DefaultTagDescription); err != nil {
		return nil, err
	}
	if opts.Hostname != "" {
		if _, err := m.AddHost(opts.Hostname, "", []string{DefaultTag}, false); err != nil {
			return nil, err
		}
	}
	if err := m.Write(); err != nil {
		return nil, err
	}

	log.Info().Str("command", "Init").Str("file", opts.File).Msg("Command finished")
	return m, nil
}
