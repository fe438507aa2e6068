package manifest

import (
	"github.com/arthur-debert/hamstercage/pkg/paths"
)

// Resolved pairs an in-scope entry with the tag that supplied it
type Resolved struct {
	Tag   *Tag
	Entry Entry
}

// ActiveTags selects the tags an invocation works on: the explicit list
// when given, otherwise the host's tags. An unknown host is not an error;
// it yields no tags and a warning for the caller to print.
func (m *Manifest) ActiveTags(explicit []string, hostname string) ([]*Tag, []string, error) {
	var warnings []string
	names := explicit
	if len(names) == 0 {
		host, ok := m.Hosts[hostname]
		if !ok {
			warnings = append(warnings, "No hostname entry for "+hostname)
		} else {
			names = host.Tags
		}
	}

	seen := make(map[string]bool, len(names))
	tags := make([]*Tag, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		t, err := m.Tag(name)
		if err != nil {
			return nil, warnings, err
		}
		tags = append(tags, t)
	}
	return tags, warnings, nil
}

// Filter restricts operations to a set of manifest keys. A nil or empty
// filter matches everything.
type Filter struct {
	keys []string
	set  map[string]bool
}

// NewFilter normalizes patterns against the resolver's target
func NewFilter(r *paths.Resolver, patterns []string) *Filter {
	f := &Filter{set: make(map[string]bool, len(patterns))}
	for _, p := range patterns {
		key := r.Key(p)
		if f.set[key] {
			continue
		}
		f.set[key] = true
		f.keys = append(f.keys, key)
	}
	return f
}

// Empty reports whether the filter lets everything through
func (f *Filter) Empty() bool {
	return f == nil || len(f.keys) == 0
}

// Matches reports whether key passes the filter
func (f *Filter) Matches(key string) bool {
	if f.Empty() {
		return true
	}
	return f.set[key]
}

// Keys returns the normalized patterns in the order given
func (f *Filter) Keys() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.keys...)
}

// Resolve yields the in-scope entries: tags in order, entries of each tag
// in sorted key order, first tag wins for a key
func Resolve(tags []*Tag, filter *Filter) []Resolved {
	seen := make(map[string]bool)
	var out []Resolved
	for _, t := range tags {
		for _, key := range t.Keys() {
			if !filter.Matches(key) || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Resolved{Tag: t, Entry: t.Entries[key]})
		}
	}
	return out
}

// Unmatched returns the filter keys no resolved entry accounts for
func Unmatched(filter *Filter, resolved []Resolved) []string {
	found := make(map[string]bool, len(resolved))
	for _, r := range resolved {
		found[r.Entry.Path()] = true
	}
	var missing []string
	for _, key := range filter.Keys() {
		if !found[key] {
			missing = append(missing, key)
		}
	}
	return missing
}
