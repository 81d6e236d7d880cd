package toolchain

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/modelkit/model-scorecard/pkg/logger"
)

// ResolveOptions controls how Resolve matches a version against the catalog.
type ResolveOptions struct {
	// DefaultIfMissing returns the catalog's default version when the
	// requested version has no catalog match, instead of failing.
	DefaultIfMissing bool
	// SkipCatalogValidation treats the input as an unvalidated version even
	// when the catalog is reachable. The result is flagged unverified.
	SkipCatalogValidation bool
}

// Resolved is the outcome of resolving a version or tag.
//
// Verified is false when the catalog was unreachable or validation was
// skipped; in that case the Version is an unvalidated pass-through of the
// caller's input.
type Resolved struct {
	Version
	Verified bool
}

// catalogEntry is the cached catalog state for one endpoint.
type catalogEntry struct {
	versions   []Version
	def        Version
	hasDefault bool
}

// reachable reports whether the endpoint answered with a non-empty list.
func (e *catalogEntry) reachable() bool {
	return len(e.versions) > 0
}

// Resolver resolves version strings and tags against a Catalog endpoint.
//
// Catalog results are cached per endpoint for the lifetime of the process.
// The cache is populated at most once per endpoint; concurrent lookups are
// collapsed with singleflight so population is idempotent.
type Resolver struct {
	catalog  Catalog
	endpoint string
	log      logger.ComponentLogger

	mu    sync.Mutex
	cache map[string]*catalogEntry
	group singleflight.Group
}

// NewResolver returns a Resolver for the given catalog and endpoint.
func NewResolver(catalog Catalog, endpoint string) *Resolver {
	return &Resolver{
		catalog:  catalog,
		endpoint: endpoint,
		log:      logger.New("toolchain"),
		cache:    make(map[string]*catalogEntry),
	}
}

// Reset clears the catalog cache. Intended for test isolation.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*catalogEntry)
}

// load returns the cached catalog state for the resolver's endpoint,
// fetching it on first use.
func (r *Resolver) load() *catalogEntry {
	r.mu.Lock()
	if entry, ok := r.cache[r.endpoint]; ok {
		r.mu.Unlock()
		return entry
	}
	r.mu.Unlock()

	v, _, _ := r.group.Do(r.endpoint, func() (any, error) {
		entry := &catalogEntry{versions: r.catalog.ListVersions(r.endpoint)}
		entry.def, entry.hasDefault = r.catalog.DefaultVersion(r.endpoint)

		r.mu.Lock()
		if existing, ok := r.cache[r.endpoint]; ok {
			entry = existing
		} else {
			r.cache[r.endpoint] = entry
		}
		r.mu.Unlock()
		return entry, nil
	})
	return v.(*catalogEntry)
}

// AllVersions returns every version known to the endpoint's catalog.
func (r *Resolver) AllVersions() []Version {
	return r.load().versions
}

// Resolve resolves a version string or tag.
//
// When the catalog is reachable and validation is not skipped, the input
// must match a catalog entry by tag or by Eq; a user-supplied flavor always
// overlays the matched entry (catalog entries carry no flavor). With
// DefaultIfMissing, an unmatched input falls back to the catalog default;
// otherwise it is an *UnsupportedVersionError.
//
// When the catalog is unreachable, the input degrades to an unverified
// pass-through rather than an error.
func (r *Resolver) Resolve(versionOrTag string, opts ResolveOptions) (Resolved, error) {
	parsed, parseErr := Parse(versionOrTag)
	entry := r.load()

	if !entry.reachable() || opts.SkipCatalogValidation {
		if !entry.reachable() {
			r.log.Warnf("version catalog unreachable at %q; using unverified version %q", r.endpoint, versionOrTag)
		}
		if parseErr != nil {
			// Not a version string. Carry the input as a tag if it is a
			// well-known tag name.
			v := Version{Patch: NoPatch}
			if isKnownTag(versionOrTag) {
				v.Tags = []string{versionOrTag}
			}
			return Resolved{Version: v}, nil
		}
		return Resolved{Version: parsed}, nil
	}

	var chosen *Version
	for i := range entry.versions {
		candidate := &entry.versions[i]
		if parseErr != nil {
			if candidate.HasTag(versionOrTag) {
				chosen = candidate
				break
			}
		} else if candidate.Eq(parsed) {
			chosen = candidate
			break
		}
	}

	if chosen == nil && opts.DefaultIfMissing && entry.hasDefault {
		chosen = &entry.def
	}
	if chosen == nil {
		return Resolved{}, &UnsupportedVersionError{Requested: versionOrTag, Known: entry.versions}
	}

	result := *chosen
	if parseErr == nil {
		// Catalog entries have flavor stripped; the user's flavor, if given,
		// takes precedence.
		result.Flavor = parsed.Flavor
	}
	return Resolved{Version: result, Verified: true}, nil
}

// Default resolves the catalog's default version.
func (r *Resolver) Default() (Resolved, error) {
	return r.Resolve(DefaultTag, ResolveOptions{})
}

// Latest resolves the catalog's latest version.
func (r *Resolver) Latest() (Resolved, error) {
	return r.Resolve(LatestTag, ResolveOptions{})
}

func isKnownTag(s string) bool {
	for _, t := range AllTags() {
		if s == t {
			return true
		}
	}
	return false
}
