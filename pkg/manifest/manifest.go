package manifest

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/filesystem"
	"github.com/arthur-debert/hamstercage/pkg/logging"
	"github.com/arthur-debert/hamstercage/pkg/paths"
)

// defaultFileMode is assumed for a manifest that has not been written yet
const defaultFileMode = 0o644

// Manifest is the aggregate root: all tags and hosts plus the ownership
// and permissions inherited from the manifest file itself. Repository
// directories and content copies are created with these.
type Manifest struct {
	File  string
	Tags  map[string]*Tag
	Hosts map[string]*Host

	UID      int
	GID      int
	FileMode uint32
	DirMode  uint32

	fs filesystem.FS
}

// New creates an empty manifest for file. Ownership defaults to the
// current process until the file exists.
func New(fsys filesystem.FS, file string) *Manifest {
	m := &Manifest{
		File:  file,
		Tags:  make(map[string]*Tag),
		Hosts: make(map[string]*Host),
		UID:   os.Getuid(),
		GID:   os.Getgid(),
		fs:    fsys,
	}
	m.setFileMode(defaultFileMode)
	return m
}

// Load reads and validates the manifest stored at file
func Load(fsys filesystem.FS, file string) (*Manifest, error) {
	logger := logging.GetLogger("manifest")

	data, err := fsys.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrManifestNotFound, "Unable to load manifest from %q", file).
				WithDetail("path", file)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "Unable to read manifest %q", file).
			WithDetail("path", file)
	}

	doc, err := decodeDocument(data, FormatFor(file))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "Unable to load manifest from %q", file).
			WithDetail("path", file)
	}

	m := New(fsys, file)
	if err := m.fromDocument(doc); err != nil {
		return nil, err
	}
	if err := m.readMetadata(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", file).
		Int("tags", len(m.Tags)).
		Int("hosts", len(m.Hosts)).
		Msg("Manifest loaded")
	return m, nil
}

// Exists reports whether the manifest file is present
func Exists(fsys filesystem.FS, file string) bool {
	_, err := fsys.Lstat(file)
	return err == nil
}

// Write persists the manifest to its file
func (m *Manifest) Write() error {
	data, err := encodeDocument(m.toDocument(), FormatFor(m.File))
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "Unable to encode manifest %q", m.File)
	}
	if err := m.fs.WriteFile(m.File, data, filesystem.FileMode(defaultFileMode)); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "Unable to write manifest %q", m.File)
	}
	logger := logging.GetLogger("manifest")
	logger.Debug().Str("path", m.File).Msg("Manifest written")
	return m.readMetadata()
}

// Dir returns the directory holding the manifest file
func (m *Manifest) Dir() string {
	return filepath.Dir(m.File)
}

// Tag returns the named tag or an UNKNOWN_TAG error
func (m *Manifest) Tag(name string) (*Tag, error) {
	t, ok := m.Tags[name]
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownTag, "Unknown tag %s", name).WithDetail("tag", name)
	}
	return t, nil
}

// AddTag creates a new empty tag
func (m *Manifest) AddTag(name, description string) (*Tag, error) {
	if name == "" {
		return nil, errors.New(errors.ErrUsage, "tag name must not be empty")
	}
	if _, ok := m.Tags[name]; ok {
		return nil, errors.Newf(errors.ErrTagExists, "A tag named %s already exists", name).WithDetail("tag", name)
	}
	t := NewTag(name, description)
	m.Tags[name] = t
	return t, nil
}

// AddHost registers a host. Every tag must exist. An existing host is only
// replaced when replace is set.
func (m *Manifest) AddHost(name, description string, tags []string, replace bool) (*Host, error) {
	if name == "" {
		return nil, errors.New(errors.ErrUsage, "host name must not be empty")
	}
	if _, ok := m.Hosts[name]; ok && !replace {
		return nil, errors.Newf(errors.ErrHostExists, "A host named %s already exists", name).WithDetail("host", name)
	}
	for _, tag := range tags {
		if _, err := m.Tag(tag); err != nil {
			return nil, err
		}
	}
	h := NewHost(name, description, tags)
	m.Hosts[name] = h
	return h, nil
}

// TagNames returns all tag names sorted
func (m *Manifest) TagNames() []string {
	names := make([]string, 0, len(m.Tags))
	for n := range m.Tags {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// HostNames returns all host names sorted
func (m *Manifest) HostNames() []string {
	names := make([]string, 0, len(m.Hosts))
	for n := range m.Hosts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RepoPath returns where the content of an entry of tag is kept below repo
func (m *Manifest) RepoPath(repo, tag string, e Entry) string {
	return paths.RepoPath(repo, tag, e.Path())
}

// MkdirRepo creates dir and any missing parents, each with the manifest's
// directory mode and ownership
func (m *Manifest) MkdirRepo(dir string) error {
	dir = filepath.Clean(dir)
	var missing []string
	for d := dir; ; d = filepath.Dir(d) {
		if _, err := m.fs.Lstat(d); err == nil {
			break
		} else if !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrFileAccess, "Unable to inspect %s", d)
		}
		missing = append(missing, d)
		if parent := filepath.Dir(d); parent == d {
			break
		}
	}

	mode := filesystem.FileMode(m.DirMode)
	for i := len(missing) - 1; i >= 0; i-- {
		d := missing[i]
		if err := m.fs.Mkdir(d, mode); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "Unable to create %s", d)
		}
		if err := m.fs.Chmod(d, mode); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "Unable to chmod %s", d)
		}
		if err := m.chownRepo(d); err != nil {
			return err
		}
	}
	return nil
}

// chownRepo gives path the manifest's owner and group
func (m *Manifest) chownRepo(path string) error {
	uid, gid, err := m.fs.Owner(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "Unable to read owner of %s", path)
	}
	if uid == m.UID && gid == m.GID {
		return nil
	}
	if err := m.fs.Lchown(path, m.UID, m.GID); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "Unable to chown %s", path)
	}
	return nil
}

func (m *Manifest) readMetadata() error {
	info, err := m.fs.Stat(m.File)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "Unable to stat manifest %q", m.File)
	}
	uid, gid, err := m.fs.Owner(m.File)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "Unable to read owner of manifest %q", m.File)
	}
	m.UID, m.GID = uid, gid
	m.setFileMode(filesystem.PermBits(info.Mode()))
	return nil
}

// setFileMode also derives the directory mode by copying each read bit
// into the matching execute bit
func (m *Manifest) setFileMode(fm uint32) {
	m.FileMode = fm
	m.DirMode = fm | (fm&0o444)>>2
}

func (m *Manifest) fromDocument(doc *document) error {
	for name, td := range doc.Tags {
		tag := NewTag(name, td.Description)
		for rawKey, ed := range td.Entries {
			e, err := entryFromDoc(rawKey, ed)
			if err != nil {
				return errors.Wrapf(err, errors.ErrManifestInvalid,
					"Invalid entry %q in tag %s", rawKey, name).
					WithDetail("tag", name)
			}
			if _, dup := tag.Entries[e.Path()]; dup {
				return errors.Newf(errors.ErrManifestInvalid,
					"Duplicate entry %s in tag %s", e.Path(), name).
					WithDetail("tag", name).
					WithDetail("path", e.Path())
			}
			tag.Entries[e.Path()] = e
		}
		for pattern, hd := range td.Hooks {
			h := &Hook{
				Name:        pattern,
				Command:     hd.Command,
				Description: hd.Description,
				Type:        HookType(hd.Type),
			}
			if err := h.Validate(); err != nil {
				return err
			}
			tag.Hooks[pattern] = h
		}
		m.Tags[name] = tag
	}

	for name, hd := range doc.Hosts {
		if hd.Tags == nil {
			return errors.Newf(errors.ErrManifestInvalid,
				"Invalid host definition for %q: must have a list of tags", name).
				WithDetail("host", name)
		}
		m.Hosts[name] = NewHost(name, hd.Description, hd.Tags)
	}
	return nil
}

func entryFromDoc(rawKey string, ed entryDoc) (Entry, error) {
	typ := EntryType(ed.Type)
	if typ == "" {
		typ = TypeFile
	}

	switch typ {
	case TypeFile, TypeDirectory:
		attrs := Attributes{Mode: DefaultMode, Owner: DefaultOwner, Group: DefaultGroup}
		if ed.Mode != "" {
			mode, err := ParseMode(ed.Mode)
			if err != nil {
				return nil, err
			}
			attrs.Mode = mode
		}
		if ed.Owner != "" {
			attrs.Owner = ed.Owner
		}
		if ed.Group != "" {
			attrs.Group = ed.Group
		}
		if typ == TypeFile {
			return NewFile(rawKey, attrs), nil
		}
		return NewDirectory(rawKey, attrs), nil
	case TypeSymlink:
		if ed.Target == "" {
			return nil, errors.New(errors.ErrManifestInvalid, "missing target attribute for symlink")
		}
		return NewSymlink(rawKey, ed.Target), nil
	default:
		return nil, errors.Newf(errors.ErrManifestInvalid, "Unknown entry type %q", ed.Type)
	}
}

func (m *Manifest) toDocument() *document {
	doc := &document{
		Hosts: make(map[string]hostDoc, len(m.Hosts)),
		Tags:  make(map[string]tagDoc, len(m.Tags)),
	}
	for name, h := range m.Hosts {
		tags := h.Tags
		if tags == nil {
			tags = []string{}
		}
		doc.Hosts[name] = hostDoc{Description: h.Description, Tags: tags}
	}
	for name, t := range m.Tags {
		td := tagDoc{Description: t.Description}
		if len(t.Entries) > 0 {
			td.Entries = make(map[string]entryDoc, len(t.Entries))
			for key, e := range t.Entries {
				td.Entries[key] = entryToDoc(e)
			}
		}
		if len(t.Hooks) > 0 {
			td.Hooks = make(map[string]hookDoc, len(t.Hooks))
			for pattern, h := range t.Hooks {
				td.Hooks[pattern] = hookDoc{Command: h.Command, Description: h.Description, Type: string(h.Type)}
			}
		}
		doc.Tags[name] = td
	}
	return doc
}

func entryToDoc(e Entry) entryDoc {
	switch v := e.(type) {
	case *File:
		return entryDoc{Type: string(TypeFile), Mode: FormatMode(v.Mode), Owner: v.Owner, Group: v.Group}
	case *Directory:
		return entryDoc{Type: string(TypeDirectory), Mode: FormatMode(v.Mode), Owner: v.Owner, Group: v.Group}
	case *Symlink:
		return entryDoc{Type: string(TypeSymlink), Target: v.LinkTarget}
	default:
		panic("manifest: unknown entry variant")
	}
}
