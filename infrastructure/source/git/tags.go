package git

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"golang.org/x/mod/semver"
)

type releaseTag struct {
	name string
	hash plumbing.Hash
}

// latestReleaseTag returns the commit and name of the newest
// semantic-version tag. Annotated tags are peeled to their target commit.
func (s *Source) latestReleaseTag() (plumbing.Hash, string, error) {
	iter, err := s.repo.Tags()
	if err != nil {
		return plumbing.ZeroHash, "", fmt.Errorf("failed to list tags: %w", err)
	}

	var tags []releaseTag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !semver.IsValid(normalizeVersion(name)) {
			return nil
		}
		hash := ref.Hash()
		if tagObj, tagErr := s.repo.TagObject(hash); tagErr == nil {
			hash = tagObj.Target
		}
		tags = append(tags, releaseTag{name: name, hash: hash})
		return nil
	})
	if err != nil {
		return plumbing.ZeroHash, "", fmt.Errorf("failed to list tags: %w", err)
	}

	if len(tags) == 0 {
		return plumbing.ZeroHash, "", errors.New(
			"no semantic-version tags found; pass the base revision explicitly",
		)
	}

	sortTagsDescending(tags)
	return tags[0].hash, tags[0].name, nil
}

// sortTagsDescending sorts tags newest-first by semantic version, falling
// back to string comparison for anything semver cannot order.
func sortTagsDescending(tags []releaseTag) {
	sort.Slice(tags, func(i, j int) bool {
		v1 := normalizeVersion(tags[i].name)
		v2 := normalizeVersion(tags[j].name)

		if semver.IsValid(v1) && semver.IsValid(v2) {
			return semver.Compare(v1, v2) > 0
		}
		return tags[i].name > tags[j].name
	})
}

// normalizeVersion ensures a tag name has the 'v' prefix semver expects.
func normalizeVersion(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
