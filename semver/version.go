// Package semver computes semantic versions from conventional commits.
package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var ErrInvalidVersion = errors.New("invalid semantic version")

var versionPattern = regexp.MustCompile(`^v?(?P<major>\d+)\.(?P<minor>\d+)\.(?P<patch>\d+)(?:-(?P<pre>[0-9A-Za-z.]+))?(?:\+(?P<meta>.+))?$`)

// Version is a semantic version. Metadata takes no part in comparisons.
type Version struct {
	Major, Minor, Patch uint64

	PreRelease *PreRelease
	Metadata   string
}

// Parse parses "[v]MAJOR.MINOR.PATCH[-PRERELEASE][+METADATA]".
func Parse(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	var v Version
	for i, n := range []*uint64{&v.Major, &v.Minor, &v.Patch} {
		num, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, s, err)
		}
		*n = num
	}

	if pre := m[versionPattern.SubexpIndex("pre")]; pre != "" {
		pr, ok := parsePreRelease(pre)
		if !ok {
			return Version{}, fmt.Errorf("%w: %q: unknown pre-release %q", ErrInvalidVersion, s, pre)
		}
		v.PreRelease = &pr
	}
	v.Metadata = m[versionPattern.SubexpIndex("meta")]

	return v, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.PreRelease != nil {
		s += "-" + v.PreRelease.String()
	}
	if v.Metadata != "" {
		s += "+" + v.Metadata
	}
	return s
}

func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// Compare returns -1, 0 or +1. Versions are ordered by major, minor and
// patch; a pre-release sorts before the release it precedes.
func (v Version) Compare(other Version) int {
	for _, pair := range [][2]uint64{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	} {
		switch {
		case pair[0] < pair[1]:
			return -1
		case pair[0] > pair[1]:
			return 1
		}
	}

	switch {
	case v.PreRelease == nil && other.PreRelease == nil:
		return 0
	case v.PreRelease == nil:
		return 1
	case other.PreRelease == nil:
		return -1
	default:
		return v.PreRelease.Compare(*other.PreRelease)
	}
}

func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}
