package domain

import "strings"

// The exclusion tables are plain data consumed by one matcher so the
// linear-time property of IsRelevantPath stays easy to audit. No regular
// expressions run on the hot path: an adversarial filename (a long run of a
// repeated character before an extension) costs exactly one pass.
var (
	relevantExtensions = []string{".js", ".ts", ".jsx", ".tsx"}

	excludedDirSegments = []string{
		"test", "tests", "__tests__", "__mocks__",
		"doc", "docs",
		"example", "examples",
		"script", "scripts",
		"tools", "tooling",
		"build", "dist", "out", "coverage",
		"node_modules", ".github", ".vscode", ".idea",
	}

	excludedNameInfixes = []string{".test.", ".spec.", ".config."}

	excludedNamePrefixes = []string{"test.", "spec."}

	// Dependency documents are routed to the manifest/lockfile classifiers
	// instead; a bare extension match would wrongly flag every
	// metadata-only manifest edit as relevant.
	dependencyDocuments = []string{"package.json", "package-lock.json", "npm-shrinkwrap.json"}
)

// IsRelevantPath decides whether a changed path is in scope for triggering
// a version check at all.
func IsRelevantPath(path string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(path, "\\", "/"))
	segments := strings.Split(normalized, "/")
	filename := segments[len(segments)-1]

	if IsDependencyDocument(filename) {
		return false
	}
	if !hasRelevantExtension(filename) {
		return false
	}
	for _, segment := range segments[:len(segments)-1] {
		if containsString(excludedDirSegments, segment) {
			return false
		}
	}
	for _, infix := range excludedNameInfixes {
		if strings.Contains(filename, infix) {
			return false
		}
	}
	for _, prefix := range excludedNamePrefixes {
		if strings.HasPrefix(filename, prefix) {
			return false
		}
	}
	return true
}

// IsDependencyDocument reports whether a filename is one of the dependency
// documents handled by the classifiers.
func IsDependencyDocument(filename string) bool {
	return containsString(dependencyDocuments, strings.ToLower(filename))
}

func hasRelevantExtension(filename string) bool {
	for _, ext := range relevantExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

func containsString(list []string, value string) bool {
	for _, candidate := range list {
		if candidate == value {
			return true
		}
	}
	return false
}
