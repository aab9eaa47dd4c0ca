package observe

// EndpointMeta describes a remote endpoint for telemetry purposes.
type EndpointMeta struct {
	ID      string // Fully qualified endpoint ID (group.name or just name)
	Group   string // Endpoint group, e.g. "users" (may be empty)
	Name    string // Endpoint name, e.g. "lists.league" (required)
	Version string // API version (optional)
	Path    string // Request path template (optional)
}

// SpanName returns the deterministic span name for this endpoint.
// Format: fetch.<group>.<name> or fetch.<name>
func (m EndpointMeta) SpanName() string {
	return "fetch." + m.EndpointID()
}

// EndpointID returns the fully qualified endpoint identifier.
// If ID field is set, returns it. Otherwise constructs from group and name.
func (m EndpointMeta) EndpointID() string {
	if m.ID != "" {
		return m.ID
	}
	if m.Group != "" {
		return m.Group + "." + m.Name
	}
	return m.Name
}

// Validate reports whether the metadata is usable.
func (m EndpointMeta) Validate() error {
	if m.Name == "" && m.ID == "" {
		return ErrMissingEndpointName
	}
	return nil
}
