package toolchain

// Catalog lists the toolchain versions currently valid on a remote endpoint.
//
// Implementations must not return errors for reachability problems: an
// unreachable endpoint is reported as an empty version list, and resolution
// degrades to unverified pass-through rather than failing.
type Catalog interface {
	// ListVersions returns all valid versions on the endpoint, or an empty
	// slice if the endpoint is unreachable.
	ListVersions(endpoint string) []Version
	// DefaultVersion returns the endpoint's default version, or false if the
	// endpoint is unreachable or declares no default.
	DefaultVersion(endpoint string) (Version, bool)
}

// StaticCatalog is an in-memory Catalog. It serves the same version list for
// every endpoint, which is what offline tooling and tests need.
type StaticCatalog struct {
	versions []Version
}

// NewStaticCatalog builds a StaticCatalog from a fixed version list.
func NewStaticCatalog(versions []Version) *StaticCatalog {
	return &StaticCatalog{versions: versions}
}

// ListVersions implements Catalog.ListVersions.
func (c *StaticCatalog) ListVersions(string) []Version {
	return c.versions
}

// DefaultVersion implements Catalog.DefaultVersion. The default is the entry
// tagged "default".
func (c *StaticCatalog) DefaultVersion(string) (Version, bool) {
	for _, v := range c.versions {
		if v.IsDefault() {
			return v, true
		}
	}
	return Version{}, false
}

// UnreachableCatalog is a Catalog whose endpoint can never be reached. It
// exists for tests and for running fully offline.
type UnreachableCatalog struct{}

// ListVersions implements Catalog.ListVersions.
func (UnreachableCatalog) ListVersions(string) []Version { return nil }

// DefaultVersion implements Catalog.DefaultVersion.
func (UnreachableCatalog) DefaultVersion(string) (Version, bool) { return Version{}, false }
