package domain

// ProfileData is the read-only input supplied by the host's data layer
// for expression evaluation. The engine never mutates it.
type ProfileData struct {
	Owner         map[string]any   `json:"owner,omitempty"`
	Viewer        map[string]any   `json:"viewer,omitempty"`
	Posts         []map[string]any `json:"posts,omitempty"`
	Guestbook     []map[string]any `json:"guestbook,omitempty"`
	Relationships map[string]any   `json:"relationships,omitempty"`
	Capabilities  map[string]bool  `json:"capabilities,omitempty"`
}

// Lookup exposes the profile data under the namespace names templates
// use ("owner", "viewer", "posts", ...). Nil maps resolve to absent.
func (p *ProfileData) Lookup(name string) (any, bool) {
	if p == nil {
		return nil, false
	}
	switch name {
	case "owner":
		return p.Owner, p.Owner != nil
	case "viewer":
		return p.Viewer, p.Viewer != nil
	case "posts":
		return anySlice(p.Posts), p.Posts != nil
	case "guestbook":
		return anySlice(p.Guestbook), p.Guestbook != nil
	case "relationships":
		return p.Relationships, p.Relationships != nil
	case "capabilities":
		return p.Capabilities, p.Capabilities != nil
	}
	return nil, false
}

func anySlice(in []map[string]any) []any {
	out := make([]any, len(in))
	for i, m := range in {
		out[i] = m
	}
	return out
}

// Decoration is one entry of the host's decoration catalog: the metadata
// the grid snapper needs about a placeable item.
type Decoration struct {
	ID       string `yaml:"id" json:"id"`
	Category string `yaml:"category" json:"category"`
	// Width and Height are the item footprint in grid cells.
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}
