package semver

import (
	"slices"
	"strconv"
	"strings"
)

// PreReleaseType is a pre-release stage. Stages are ordered
// Alpha < Beta < RC.
type PreReleaseType int

const (
	Alpha PreReleaseType = iota + 1
	Beta
	RC
)

// ParsePreReleaseType returns the stage named s, or false.
func ParsePreReleaseType(s string) (PreReleaseType, bool) {
	switch s {
	case "alpha":
		return Alpha, true
	case "beta":
		return Beta, true
	case "rc":
		return RC, true
	default:
		return 0, false
	}
}

func (t PreReleaseType) String() string {
	switch t {
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case RC:
		return "rc"
	default:
		return "unknown"
	}
}

// PreRelease is a chain of stages with an optional trailing number,
// as in "beta.2" or "alpha.rc".
type PreRelease struct {
	Types     []PreReleaseType
	Increment *uint64
}

func parsePreRelease(s string) (PreRelease, bool) {
	var pr PreRelease

	tokens := strings.Split(s, ".")
	for i, tok := range tokens {
		if t, ok := ParsePreReleaseType(tok); ok {
			pr.Types = append(pr.Types, t)
			continue
		}

		if i != len(tokens)-1 || i == 0 {
			return PreRelease{}, false
		}
		n, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return PreRelease{}, false
		}
		pr.Increment = &n
	}

	return pr, true
}

func (p PreRelease) clone() *PreRelease {
	c := PreRelease{Types: slices.Clone(p.Types)}
	if p.Increment != nil {
		n := *p.Increment
		c.Increment = &n
	}
	return &c
}

func (p PreRelease) String() string {
	parts := make([]string, 0, len(p.Types)+1)
	for _, t := range p.Types {
		parts = append(parts, t.String())
	}
	if p.Increment != nil {
		parts = append(parts, strconv.FormatUint(*p.Increment, 10))
	}
	return strings.Join(parts, ".")
}

func (p PreRelease) Equal(other PreRelease) bool {
	return p.Compare(other) == 0
}

// Compare orders pre-releases stage by stage. A chain that is a prefix of
// another is smaller. With equal chains, no increment is smaller than any
// increment.
func (p PreRelease) Compare(other PreRelease) int {
	if c := slices.Compare(p.Types, other.Types); c != 0 {
		return c
	}

	switch {
	case p.Increment == nil && other.Increment == nil:
		return 0
	case p.Increment == nil:
		return -1
	case other.Increment == nil:
		return 1
	case *p.Increment < *other.Increment:
		return -1
	case *p.Increment > *other.Increment:
		return 1
	default:
		return 0
	}
}
