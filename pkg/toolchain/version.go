// Package toolchain models compiler-toolchain versions and their resolution
// against a remote version catalog.
//
// Version strings follow the grammar v?MAJOR.MINOR[.PATCH][.IDENT][-FLAVOR].
// Major and minor are always present; the remaining fields act as wildcards
// when absent from either side of a comparison.
package toolchain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

const (
	// NoPatch marks an unset patch component.
	NoPatch = -1

	// DefaultTag is the catalog tag naming the default toolchain version.
	DefaultTag = "default"
	// LatestTag is the catalog tag naming the newest toolchain version.
	LatestTag = "latest"

	// HubFlag is the job flag used to select a toolchain version.
	HubFlag = "--toolchain_version"
)

// AllTags returns every known catalog tag name.
func AllTags() []string {
	return []string{DefaultTag, LatestTag}
}

// Version is a toolchain version parsed into components, plus any catalog
// tags attached to it. Construct with Parse, MustParse or New; the zero
// value is not meaningful.
type Version struct {
	Major  int
	Minor  int
	Patch  int // NoPatch when unset
	Ident  string
	Flavor string
	Tags   []string
}

// New returns a Version with only major and minor set.
func New(major, minor int) Version {
	return Version{Major: major, Minor: minor, Patch: NoPatch}
}

var versionPattern = regexp.MustCompile(
	`v?(?P<major>\d+)\.(?P<minor>\d+)(?P<patch>\.\d+)?(?P<ident>\.\d+_?\d+)?(?P<flavor>-.*)?`)

// Parse parses a version string. The string must contain a major.minor
// prefix; anything else is a *ParseError.
func Parse(text string) (Version, error) {
	m := versionPattern.FindStringSubmatch(text)
	if m == nil {
		return Version{}, &ParseError{Input: text}
	}

	groups := make(map[string]string, len(m))
	for i, name := range versionPattern.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}

	major, _ := strconv.Atoi(groups["major"])
	minor, _ := strconv.Atoi(groups["minor"])
	v := Version{Major: major, Minor: minor, Patch: NoPatch}
	if p := groups["patch"]; p != "" {
		v.Patch, _ = strconv.Atoi(p[1:])
	}
	if id := groups["ident"]; id != "" {
		v.Ident = id[1:]
	}
	if f := groups["flavor"]; f != "" {
		v.Flavor = f[1:]
	}
	return v, nil
}

// MustParse is Parse but panics on error. Intended for static tables.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// Eq returns true if this version matches the other version. Major and minor
// must match exactly. Patch matches if unset on either side. Ident matches
// if unset on either side or if one is a string prefix of the other. Flavor
// matches if unset on either side.
func (v Version) Eq(other Version) bool {
	return v.Major == other.Major &&
		v.Minor == other.Minor &&
		(v.Patch == NoPatch || other.Patch == NoPatch || v.Patch == other.Patch) &&
		(v.Ident == "" || other.Ident == "" ||
			strings.HasPrefix(other.Ident, v.Ident) || strings.HasPrefix(v.Ident, other.Ident)) &&
		(v.Flavor == "" || other.Flavor == "" || v.Flavor == other.Flavor)
}

// APIVersion is the major.minor form used to identify the version remotely.
func (v Version) APIVersion() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// FullVersion is the version including patch and ident, without flavor.
func (v Version) FullVersion() string {
	s := v.APIVersion()
	if v.Patch != NoPatch {
		s += fmt.Sprintf(".%d", v.Patch)
	}
	if v.Ident != "" {
		s += "." + v.Ident
	}
	return s
}

// FullVersionWithFlavor is the complete version string.
func (v Version) FullVersionWithFlavor() string {
	if v.Flavor != "" {
		return v.FullVersion() + "-" + v.Flavor
	}
	return v.FullVersion()
}

// String implements Stringer.String for Version.
func (v Version) String() string {
	return v.FullVersionWithFlavor()
}

// HasTag reports whether the version carries the given catalog tag.
func (v Version) HasTag(tag string) bool {
	for _, t := range v.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsDefault reports whether this is the catalog's default version.
func (v Version) IsDefault() bool {
	return v.HasTag(DefaultTag)
}

// HubOption is the flag string that selects this version on a job
// submission. The default version needs no flag.
func (v Version) HubOption() string {
	if v.IsDefault() {
		return ""
	}
	if len(v.Tags) > 0 {
		return HubFlag + " " + v.Tags[0]
	}
	return HubFlag + " " + v.APIVersion()
}

// ExplicitHubOption always uses the API version number, never a tag.
func (v Version) ExplicitHubOption() string {
	return HubFlag + " " + v.APIVersion()
}

// HubOptionArgs splits HubOption into argv form for job submission.
func (v Version) HubOptionArgs() ([]string, error) {
	opt := v.HubOption()
	if opt == "" {
		return nil, nil
	}
	return shellwords.Parse(opt)
}
