package semver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shu-go/git-cc/commit"
)

func TestApplyCommit(t *testing.T) {
	base := MustParse("1.0.0")

	tests := []struct {
		name   string
		commit commit.Commit
		want   string
	}{
		{
			name:   "breaking fix",
			commit: commit.Commit{Type: commit.Fix, IsBreakingChange: true, Description: "Some big breaking change"},
			want:   "2.0.0",
		},
		{
			name:   "feat",
			commit: commit.Commit{Type: commit.Feat},
			want:   "1.1.0",
		},
		{
			name:   "fix",
			commit: commit.Commit{Type: commit.Fix},
			want:   "1.0.1",
		},
		{
			name:   "custom",
			commit: commit.Commit{Type: commit.Custom("docs")},
			want:   "1.0.0",
		},
		{
			name:   "breaking custom",
			commit: commit.Commit{Type: commit.Custom("refactor"), IsBreakingChange: true},
			want:   "2.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyCommit(base, tt.commit)
			assert.Equal(t, MustParse(tt.want), got)
		})
	}
}

func TestApplyCommit_Resets(t *testing.T) {
	v := MustParse("1.4.7")

	assert.Equal(t, "2.0.0", ApplyCommit(v, commit.Commit{Type: commit.Feat, IsBreakingChange: true}).String())
	assert.Equal(t, "1.5.0", ApplyCommit(v, commit.Commit{Type: commit.Feat}).String())
	assert.Equal(t, "1.4.8", ApplyCommit(v, commit.Commit{Type: commit.Fix}).String())
}

func TestApplyCommit_KeepsPreReleaseAndMetadata(t *testing.T) {
	v := MustParse("1.0.0-rc.1+build.5")

	got := ApplyCommit(v, commit.Commit{Type: commit.Feat})
	assert.Equal(t, "1.1.0-rc.1+build.5", got.String())
	assert.Equal(t, "build.5", got.Metadata)
}

func TestApplyCommit_ParsedMessages(t *testing.T) {
	v := MustParse("0.3.2")

	for _, msg := range []string{
		"fix(parser): handle CRLF",
		"feat: add next command",
		"docs: typo",
		"chore!: drop go 1.20\n\nBREAKING CHANGE: go 1.21 is required",
	} {
		c, err := commit.Parse(msg)
		require.NoError(t, err, msg)
		v = ApplyCommit(v, c)
	}

	assert.Equal(t, "1.0.0", v.String())
}

func TestLevelOf(t *testing.T) {
	assert.Equal(t, Major, LevelOf(commit.Commit{Type: commit.Custom("x"), IsBreakingChange: true}))
	assert.Equal(t, Minor, LevelOf(commit.Commit{Type: commit.Feat}))
	assert.Equal(t, Patch, LevelOf(commit.Commit{Type: commit.Fix}))
	assert.Equal(t, None, LevelOf(commit.Commit{Type: commit.Custom("ci")}))
	assert.Equal(t, "minor", Minor.String())
}

func TestBump_DoesNotShareThePreRelease(t *testing.T) {
	v := MustParse("1.0.0-beta.3")

	next := v.Bump(Minor)
	require.NotNil(t, next.PreRelease)
	assert.NotSame(t, v.PreRelease, next.PreRelease)
	assert.NotSame(t, v.PreRelease.Increment, next.PreRelease.Increment)

	*next.PreRelease.Increment = 9
	next.PreRelease.Types[0] = RC
	assert.Equal(t, "1.0.0-beta.3", v.String())
	assert.Equal(t, "1.1.0-rc.9", next.String())
}

func TestTryBump_Overflow(t *testing.T) {
	v := Version{Major: math.MaxUint64, Minor: math.MaxUint64, Patch: math.MaxUint64}

	for _, level := range []Level{Major, Minor, Patch} {
		_, err := v.TryBump(level)
		assert.ErrorIs(t, err, ErrOverflow, level.String())
	}

	same, err := v.TryBump(None)
	require.NoError(t, err)
	assert.Equal(t, v, same)

	assert.Panics(t, func() { ApplyCommit(v, commit.Commit{Type: commit.Fix}) })

	next, err := Version{Major: 1, Minor: math.MaxUint64}.TryBump(Major)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", next.String())
}
