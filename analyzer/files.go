package analyzer

import "strings"

// relevantFiles names the build and dependency files worth returning,
// keyed by ecosystem. Matching is case-insensitive against the full path
// or any path suffix.
var relevantFiles = map[string][]string{
	"common": {
		"dockerfile", ".docker/dockerfile", "docker-compose.yml",
		"jenkinsfile", ".gitlab-ci.yml", "azure-pipelines.yml",
		".circleci/config.yml", "readme.md",
	},
	"node":   {"package.json", "yarn.lock", "pnpm-lock.yaml", "package-lock.json"},
	"python": {"requirements.txt", "pipfile", "pipfile.lock", "pyproject.toml", "poetry.lock"},
	"java":   {"pom.xml", "build.gradle", "settings.gradle", "gradlew", "gradlew.bat"},
}

var largeFileSuffixes = []string{
	".lock", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "poetry.lock",
}

// selectRelevant filters the repository tree down to recognised files,
// including GitHub Actions workflow definitions.
func selectRelevant(paths []string) []string {
	var selected []string
	for _, path := range paths {
		if isRelevant(path) {
			selected = append(selected, path)
		}
	}
	return selected
}

func isRelevant(path string) bool {
	lower := strings.ToLower(path)

	if strings.HasPrefix(lower, ".github/workflows/") &&
		(strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".yaml")) {
		return true
	}

	for _, names := range relevantFiles {
		for _, name := range names {
			if lower == name || strings.HasSuffix(lower, "/"+name) {
				return true
			}
		}
	}
	return false
}

// trimLockfile keeps lockfiles readable: lines naming versions or package
// identifiers are retained, the rest dropped, capped at maxLines. Files
// that are not lockfiles pass through untouched.
func trimLockfile(path, content string, maxLines int) string {
	lower := strings.ToLower(path)
	trim := false
	for _, suffix := range largeFileSuffixes {
		if strings.HasSuffix(lower, suffix) {
			trim = true
			break
		}
	}
	if !trim {
		return content
	}

	lines := strings.Split(content, "\n")
	var important []string
	for _, line := range lines {
		lowerLine := strings.ToLower(line)
		if strings.Contains(lowerLine, "version") || strings.Contains(line, "@") ||
			strings.Contains(lowerLine, "resolved") {
			important = append(important, line)
		}
	}

	selected := important
	if len(selected) == 0 {
		selected = lines
	}
	if len(selected) > maxLines {
		selected = selected[:maxLines]
	}
	return strings.Join(selected, "\n")
}
