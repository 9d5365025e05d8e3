// Package model defines the internal data structures used by the
// reconciliation engine.
package model

// Definition is a sparse, optional-field projection of one component's
// metadata. Per-tool summarizers each produce one of these; the merge and
// aggregation engines combine them into a single reconciled record. Any
// field may be absent; absent is distinct from empty.
type Definition struct {
	// Coordinates is the component's opaque identity. The engine carries it
	// through unchanged and never merges or rewrites it.
	Coordinates string `json:"coordinates,omitempty"`

	Described *Described `json:"described,omitempty"`
	Licensed  *Licensed  `json:"licensed,omitempty"`

	// Files inventories individual files. Path is the unique key: two
	// entries with the same path never coexist after a merge.
	Files []*FileEntry `json:"files,omitempty"`
}

// Described holds facts about the component itself, independent of licensing.
type Described struct {
	ReleaseDate    string          `json:"releaseDate,omitempty"`
	ProjectWebsite string          `json:"projectWebsite,omitempty"`
	IssueTracker   string          `json:"issueTracker,omitempty"`
	SourceLocation *SourceLocation `json:"sourceLocation,omitempty"`

	// Hashes maps algorithm name (e.g. "sha1", "sha256") to digest.
	Hashes map[string]string `json:"hashes,omitempty"`

	// Facets maps a facet name (e.g. "tests", "examples") to the glob
	// patterns that scope files into it.
	Facets map[string][]string `json:"facets,omitempty"`

	// Files is the total number of files harvested, 0 when unknown.
	Files int `json:"files,omitempty"`

	// Tools lists the tool/version pairs that contributed to this record,
	// e.g. "scancode/30.1.0".
	Tools []string `json:"tools,omitempty"`
}

// SourceLocation pinpoints the source artifact a summary was computed from.
type SourceLocation struct {
	Type      string `json:"type,omitempty"`
	Provider  string `json:"provider,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Name      string `json:"name,omitempty"`
	Revision  string `json:"revision,omitempty"`
	URL       string `json:"url,omitempty"`
}

// Licensed holds the component's license statements. License expressions are
// carried as strings in the boundary grammar; the merge engine parses them
// on demand.
type Licensed struct {
	// Declared is the license the project says it is under, as a license
	// expression string ("" = absent, "NOASSERTION" = asserted unknown).
	Declared string `json:"declared,omitempty"`

	// Facets holds per-facet discovery summaries keyed by facet name.
	Facets map[string]*FacetInfo `json:"facets,omitempty"`
}

// FacetInfo summarizes what was discovered within one facet of the files.
type FacetInfo struct {
	Files       int              `json:"files,omitempty"`
	Attribution *AttributionInfo `json:"attribution,omitempty"`
	Discovered  *DiscoveredInfo  `json:"discovered,omitempty"`
}

// AttributionInfo aggregates copyright parties found in a facet.
type AttributionInfo struct {
	Parties []string `json:"parties,omitempty"`
	Unknown int      `json:"unknown,omitempty"`
}

// DiscoveredInfo aggregates license expressions found in a facet.
type DiscoveredInfo struct {
	Expressions []string `json:"expressions,omitempty"`
	Unknown     int      `json:"unknown,omitempty"`
}

// FileEntry is one file's metadata within a Definition.
type FileEntry struct {
	Path         string            `json:"path"`
	License      string            `json:"license,omitempty"`
	Attributions []string          `json:"attributions,omitempty"`
	Facets       []string          `json:"facets,omitempty"`
	Natures      []string          `json:"natures,omitempty"`
	Hashes       map[string]string `json:"hashes,omitempty"`
	Token        string            `json:"token,omitempty"`
}

// Clone returns a deep copy of the definition. The merge engine mutates its
// base in place, so callers that need to keep an input record intact fold
// into a clone.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	out := &Definition{Coordinates: d.Coordinates}
	if d.Described != nil {
		desc := *d.Described
		if d.Described.SourceLocation != nil {
			loc := *d.Described.SourceLocation
			desc.SourceLocation = &loc
		}
		desc.Hashes = cloneStringMap(d.Described.Hashes)
		if d.Described.Facets != nil {
			desc.Facets = make(map[string][]string, len(d.Described.Facets))
			for k, v := range d.Described.Facets {
				desc.Facets[k] = cloneStrings(v)
			}
		}
		desc.Tools = cloneStrings(d.Described.Tools)
		out.Described = &desc
	}
	if d.Licensed != nil {
		lic := Licensed{Declared: d.Licensed.Declared}
		if d.Licensed.Facets != nil {
			lic.Facets = make(map[string]*FacetInfo, len(d.Licensed.Facets))
			for name, info := range d.Licensed.Facets {
				lic.Facets[name] = info.clone()
			}
		}
		out.Licensed = &lic
	}
	for _, f := range d.Files {
		out.Files = append(out.Files, f.Clone())
	}
	return out
}

// Clone returns a deep copy of the file entry.
func (f *FileEntry) Clone() *FileEntry {
	if f == nil {
		return nil
	}
	out := *f
	out.Attributions = cloneStrings(f.Attributions)
	out.Facets = cloneStrings(f.Facets)
	out.Natures = cloneStrings(f.Natures)
	out.Hashes = cloneStringMap(f.Hashes)
	return &out
}

func (i *FacetInfo) clone() *FacetInfo {
	if i == nil {
		return nil
	}
	out := FacetInfo{Files: i.Files}
	if i.Attribution != nil {
		out.Attribution = &AttributionInfo{
			Parties: cloneStrings(i.Attribution.Parties),
			Unknown: i.Attribution.Unknown,
		}
	}
	if i.Discovered != nil {
		out.Discovered = &DiscoveredInfo{
			Expressions: cloneStrings(i.Discovered.Expressions),
			Unknown:     i.Discovered.Unknown,
		}
	}
	return &out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
