package manifest

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/hamstercage/pkg/errors"
	"github.com/arthur-debert/hamstercage/pkg/paths"
)

// Tag is a named group of entries and hooks
type Tag struct {
	Name        string
	Description string
	Entries     map[string]Entry
	Hooks       map[string]*Hook
}

// NewTag creates an empty tag
func NewTag(name, description string) *Tag {
	return &Tag{
		Name:        name,
		Description: description,
		Entries:     make(map[string]Entry),
		Hooks:       make(map[string]*Hook),
	}
}

// Keys returns the entry keys in sorted order
func (t *Tag) Keys() []string {
	keys := make([]string, 0, len(t.Entries))
	for k := range t.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Entry returns the entry stored under key, normalizing key first
func (t *Tag) Entry(key string) (Entry, bool) {
	e, ok := t.Entries[paths.Key(key)]
	return e, ok
}

// Add inserts e. Unless replace is set an existing entry for the same key
// is a DUPLICATE_ENTRY error.
func (t *Tag) Add(e Entry, replace bool) error {
	if _, exists := t.Entries[e.Path()]; exists && !replace {
		return errors.Newf(errors.ErrDuplicateEntry,
			"Unable to add %s: already added to tag %s", e.Path(), t.Name).
			WithDetail("tag", t.Name).
			WithDetail("path", e.Path())
	}
	t.Entries[e.Path()] = e
	return nil
}

// Remove deletes the entry for key and returns it
func (t *Tag) Remove(key string) (Entry, error) {
	key = paths.Key(key)
	e, ok := t.Entries[key]
	if !ok {
		return nil, errors.Newf(errors.ErrMissingEntry,
			"Unable to remove %s: no such entry in tag %s", key, t.Name).
			WithDetail("tag", t.Name).
			WithDetail("path", key)
	}
	delete(t.Entries, key)
	return e, nil
}

// HookPatterns returns the lookup order for a command and step, most
// specific first
func HookPatterns(command, step string) []string {
	return []string{
		fmt.Sprintf("%s-%s", step, command),
		fmt.Sprintf("*-%s", command),
		fmt.Sprintf("%s-*", step),
		"*",
	}
}

// FindHook returns the best matching hook for command and step, or nil
func (t *Tag) FindHook(command, step string) *Hook {
	for _, pattern := range HookPatterns(command, step) {
		if h, ok := t.Hooks[pattern]; ok {
			return h
		}
	}
	return nil
}

func (t *Tag) String() string {
	return fmt.Sprintf("<Tag name=%s entries=%d>", t.Name, len(t.Entries))
}
