package domain

import (
	"encoding/json"
	"fmt"
)

// Lockfile is a parsed lockfile (package-lock.json) snapshot. Both known
// shapes are retained so that the shape choice can be made per comparison
// pair: the modern flat "packages" map wins if either snapshot carries it,
// otherwise comparison falls back to the legacy nested "dependencies" map.
type Lockfile struct {
	Packages     map[string]any
	Dependencies map[string]any
}

// identityFields are the lockfile entry fields that define the resolved
// dependency. A delta touching none of them (only dev/peer style flags) is
// metadata-only and dropped from consideration entirely.
var identityFields = []string{"version", "resolved", "integrity", "dependencies", "requires"}

// ParseLockfile decodes a lockfile snapshot.
func ParseLockfile(content string) (*Lockfile, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableDocument, err)
	}

	lock := &Lockfile{}
	if packages, ok := doc["packages"].(map[string]any); ok {
		lock.Packages = packages
	}
	if dependencies, ok := doc["dependencies"].(map[string]any); ok {
		lock.Dependencies = dependencies
	}
	return lock, nil
}

// ClassifyLockfileChange compares two lockfile snapshots. Lockfiles churn
// heavily on every install even when no dependency moved, so entries whose
// delta is metadata-only are discarded before any verdict is formed.
//
// Dev attribution only works on the packages shape; a legacy-shape real
// change set is conservatively treated as production-affecting because the
// legacy shape does not reliably carry a dev marker.
func ClassifyLockfileChange(base, head *Lockfile, includeDev bool) LockfileVerdict {
	baseEntries, headEntries, modern := chooseShape(base, head)

	var (
		verdict      LockfileVerdict
		realChanges  int
		devChanges   int
		metadataOnly int
	)

	for key := range keyUnion(baseEntries, headEntries) {
		// The empty-string key is the project itself, not a dependency.
		if key == "" {
			continue
		}

		baseEntry, inBase := baseEntries[key]
		headEntry, inHead := headEntries[key]
		if DeepEqual(baseEntry, headEntry) {
			continue
		}
		if isMetadataOnlyDelta(baseEntry, headEntry) {
			metadataOnly++
			continue
		}

		realChanges++
		if modern && isDevEntry(baseEntry, headEntry, inBase, inHead) {
			devChanges++
		}
	}

	if realChanges == 0 {
		verdict.AllMetadataOnly = metadataOnly > 0
		return verdict
	}

	if modern && devChanges == realChanges {
		verdict.DevChanged = true
		verdict.ProductionChanged = includeDev
		return verdict
	}

	verdict.ProductionChanged = true
	verdict.DevChanged = devChanges > 0
	return verdict
}

// chooseShape picks the entry maps to compare. The packages shape is
// preferred as soon as either snapshot carries it.
func chooseShape(base, head *Lockfile) (map[string]any, map[string]any, bool) {
	var basePackages, headPackages map[string]any
	if base != nil {
		basePackages = base.Packages
	}
	if head != nil {
		headPackages = head.Packages
	}
	if basePackages != nil || headPackages != nil {
		return basePackages, headPackages, true
	}

	var baseDeps, headDeps map[string]any
	if base != nil {
		baseDeps = base.Dependencies
	}
	if head != nil {
		headDeps = head.Dependencies
	}
	return baseDeps, headDeps, false
}

func keyUnion(a, b map[string]any) map[string]struct{} {
	union := make(map[string]struct{}, len(a)+len(b))
	for key := range a {
		union[key] = struct{}{}
	}
	for key := range b {
		union[key] = struct{}{}
	}
	return union
}

// isMetadataOnlyDelta reports whether two unequal entries differ only in
// auxiliary flags. Entries present on one side only are never metadata-only.
func isMetadataOnlyDelta(baseEntry, headEntry any) bool {
	baseRecord, baseOK := baseEntry.(map[string]any)
	headRecord, headOK := headEntry.(map[string]any)
	if !baseOK || !headOK {
		return false
	}
	for _, field := range identityFields {
		if !DeepEqual(baseRecord[field], headRecord[field]) {
			return false
		}
	}
	return true
}

// isDevEntry attributes dev-ness to a real change in the packages shape:
// the head entry's marker decides, and for removed entries the base entry's
// marker decides.
func isDevEntry(baseEntry, headEntry any, inBase, inHead bool) bool {
	if inHead {
		return hasDevMarker(headEntry)
	}
	return inBase && hasDevMarker(baseEntry)
}

func hasDevMarker(entry any) bool {
	record, ok := entry.(map[string]any)
	if !ok {
		return false
	}
	dev, _ := record["dev"].(bool)
	return dev
}
