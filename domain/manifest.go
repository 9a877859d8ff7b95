package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnparsableDocument is returned when a manifest or lockfile snapshot was
// fetched successfully but is not valid JSON.
var ErrUnparsableDocument = errors.New("unparsable document")

// Manifest is a parsed package manifest (package.json) snapshot.
type Manifest map[string]any

// productionSections are the manifest keys whose changes obligate a version
// bump. Everything outside these sections and devDependencies (version,
// description, scripts, ...) is never inspected: bump obligation is a
// function of the dependency surface only.
var productionSections = []string{
	"dependencies",
	"peerDependencies",
	"optionalDependencies",
	"bundleDependencies",
	"bundledDependencies",
}

const devSection = "devDependencies"

// ParseManifest decodes a manifest snapshot.
func ParseManifest(content string) (Manifest, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableDocument, err)
	}
	return doc, nil
}

// Version returns the declared version field, or "" when absent.
func (m Manifest) Version() string {
	version, _ := m["version"].(string)
	return version
}

// ClassifyManifestChange compares the dependency sections of two manifest
// snapshots. The first inequality in a production section settles
// ProductionChanged; devDependencies is compared independently, and
// includeDev folds a dev change into the production verdict.
func ClassifyManifestChange(base, head Manifest, includeDev bool) ChangeVerdict {
	var verdict ChangeVerdict

	for _, section := range productionSections {
		if !DeepEqual(base[section], head[section]) {
			verdict.ProductionChanged = true
			break
		}
	}

	if !DeepEqual(base[devSection], head[devSection]) {
		verdict.DevChanged = true
		if includeDev {
			verdict.ProductionChanged = true
		}
	}

	return verdict
}
