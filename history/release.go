package history

import (
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/shu-go/git-cc/semver"
)

// Release is a tag named after a semantic version.
type Release struct {
	Tag     string
	Version semver.Version
	Commit  plumbing.Hash
}

// LatestRelease returns the release with the greatest version.
// Tags that are not versions are ignored.
func LatestRelease(repo *git.Repository) (*Release, error) {
	tags, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	var latest *Release
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()

		v, err := semver.Parse(name)
		if err != nil {
			return nil
		}

		hash, err := commitOf(repo, ref)
		if err != nil {
			return fmt.Errorf("tag %s: %w", name, err)
		}

		if latest == nil || latest.Version.Less(v) {
			latest = &Release{
				Tag:     name,
				Version: v,
				Commit:  hash,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return latest, nil
}

func commitOf(repo *git.Repository, ref *plumbing.Reference) (plumbing.Hash, error) {
	tag, err := repo.TagObject(ref.Hash())
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		// lightweight
		return ref.Hash(), nil
	}
	if err != nil {
		return plumbing.ZeroHash, err
	}

	c, err := tag.Commit()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return c.Hash, nil
}
