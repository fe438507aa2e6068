package manifest

// Host selects the tags active on one machine, in priority order
type Host struct {
	Name        string
	Description string
	Tags        []string
}

// NewHost creates a host with the given tags
func NewHost(name, description string, tags []string) *Host {
	return &Host{Name: name, Description: description, Tags: append([]string(nil), tags...)}
}
