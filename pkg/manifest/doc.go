// Package manifest holds the declarative model hamstercage reconciles.
//
// A Manifest owns tags and hosts. A Tag owns entries, keyed by their
// manifest key (see pkg/paths), and hooks, keyed by a command/step pattern.
// A Host lists the tags that are active on it.
//
// Entries come in three variants behind the sealed Entry interface: *File,
// *Directory and *Symlink. Each variant knows how to push itself from the
// repository onto the target (Apply) and how to pull the target state back
// into the manifest and repository (Save). Code that needs the concrete
// variant uses a type switch over the three.
//
// The on-disk document is YAML by default and TOML when the manifest file
// name ends in ".toml". Both codecs go through the same document structs so
// the two formats carry identical information.
package manifest
