package semver

import (
	"errors"
	"fmt"
	"math"

	"github.com/shu-go/git-cc/commit"
)

// Level is the part of a version a commit increments.
type Level int

const (
	None Level = iota
	Patch
	Minor
	Major
)

func (l Level) String() string {
	switch l {
	case Patch:
		return "patch"
	case Minor:
		return "minor"
	case Major:
		return "major"
	default:
		return "none"
	}
}

// LevelOf returns the increment c calls for. Breaking changes win over the
// commit type.
func LevelOf(c commit.Commit) Level {
	switch {
	case c.IsBreakingChange:
		return Major
	case c.Type.Kind() == commit.KindFeat:
		return Minor
	case c.Type.Kind() == commit.KindFix:
		return Patch
	default:
		return None
	}
}

// ErrOverflow is returned when a version number cannot be incremented.
var ErrOverflow = errors.New("version number overflow")

// TryBump increments v at level. Pre-release and metadata are kept.
func (v Version) TryBump(level Level) (Version, error) {
	next := v
	if v.PreRelease != nil {
		next.PreRelease = v.PreRelease.clone()
	}

	var n *uint64
	switch level {
	case Major:
		n = &next.Major
		next.Minor = 0
		next.Patch = 0
	case Minor:
		n = &next.Minor
		next.Patch = 0
	case Patch:
		n = &next.Patch
	default:
		return next, nil
	}

	if *n == math.MaxUint64 {
		return Version{}, fmt.Errorf("%w: %s at %s", ErrOverflow, level, v)
	}
	*n++
	return next, nil
}

// Bump is like TryBump but panics on overflow.
func (v Version) Bump(level Level) Version {
	next, err := v.TryBump(level)
	if err != nil {
		panic(err)
	}
	return next
}

// ApplyCommit returns the version that follows v once c is released.
// It panics if the incremented number overflows; see TryBump.
func ApplyCommit(v Version, c commit.Commit) Version {
	return v.Bump(LevelOf(c))
}
