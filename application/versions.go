package application

import (
	"github.com/Masterminds/semver/v3"

	"github.com/rios0rios0/versiongate/domain"
)

// VersionIncremented reports whether the head manifest's declared version is
// strictly greater than the base manifest's, per semantic-versioning rules.
// Unparsable versions resolve conservatively: an increment the gate cannot
// prove did not happen.
func VersionIncremented(baseVersion, headVersion string, log domain.Logger) bool {
	if headVersion == "" {
		return false
	}

	head, err := semver.NewVersion(headVersion)
	if err != nil {
		log.Warnf("Head version %q is not a valid semantic version: %v", headVersion, err)
		return false
	}

	// A version field appearing for the first time counts as an increment.
	if baseVersion == "" {
		return true
	}

	base, err := semver.NewVersion(baseVersion)
	if err != nil {
		log.Warnf("Base version %q is not a valid semantic version: %v", baseVersion, err)
		return false
	}

	return head.GreaterThan(base)
}
