package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pipelineai/auth-gateway/internal/errors"
)

func TestSelectRelevant(t *testing.T) {
	paths := []string{
		"Dockerfile",
		"docker-compose.yml",
		".github/workflows/release.yaml",
		".github/workflows/notes.txt",
		"backend/requirements.txt",
		"frontend/package.json",
		"pom.xml",
		"src/main/java/App.java",
		"docs/guide.md",
	}

	selected := selectRelevant(paths)
	require.ElementsMatch(t, []string{
		"Dockerfile",
		"docker-compose.yml",
		".github/workflows/release.yaml",
		"backend/requirements.txt",
		"frontend/package.json",
		"pom.xml",
	}, selected)
}

func TestIsRelevant(t *testing.T) {
	t.Run("matching is case-insensitive", func(t *testing.T) {
		require.True(t, isRelevant("DOCKERFILE"))
		require.True(t, isRelevant("services/api/Package.JSON"))
	})

	t.Run("workflow files need a yaml extension", func(t *testing.T) {
		require.True(t, isRelevant(".github/workflows/ci.yml"))
		require.False(t, isRelevant(".github/workflows/README"))
	})

	t.Run("suffix matches require a path separator", func(t *testing.T) {
		require.False(t, isRelevant("notpackage.json"))
		require.True(t, isRelevant("app/package.json"))
	})
}

func TestTrimLockfile(t *testing.T) {
	t.Run("non-lockfiles pass through", func(t *testing.T) {
		content := "line one\nline two"
		require.Equal(t, content, trimLockfile("README.md", content, 10))
	})

	t.Run("keeps version and identifier lines", func(t *testing.T) {
		content := "# header\n\nleft-pad@^1.3.0:\n  version \"1.3.0\"\n  resolved \"https://x\"\n  junk line"
		trimmed := trimLockfile("yarn.lock", content, 10)
		require.Equal(t, "left-pad@^1.3.0:\n  version \"1.3.0\"\n  resolved \"https://x\"", trimmed)
	})

	t.Run("falls back to the head when nothing matches", func(t *testing.T) {
		content := strings.Repeat("plain line\n", 50)
		trimmed := trimLockfile("poetry.lock", content, 10)
		require.Len(t, strings.Split(trimmed, "\n"), 10)
	})

	t.Run("caps matching lines at the limit", func(t *testing.T) {
		content := strings.Repeat("version 1\n", 50)
		trimmed := trimLockfile("Pipfile.lock", content, 10)
		require.Len(t, strings.Split(trimmed, "\n"), 10)
	})
}

func TestRequestValidate(t *testing.T) {
	pat := strings.Repeat("x", 40)

	t.Run("defaults branch and max_lines", func(t *testing.T) {
		req := Request{RepoURL: "https://github.com/psf/requests", GithubPAT: pat}
		owner, repo, err := req.validate()
		require.NoError(t, err)
		require.Equal(t, "psf", owner)
		require.Equal(t, "requests", repo)
		require.Equal(t, "main", req.Branch)
		require.Equal(t, 300, req.MaxLines)
	})

	t.Run("strips a trailing .git", func(t *testing.T) {
		req := Request{RepoURL: "https://github.com/psf/requests.git", GithubPAT: pat}
		_, repo, err := req.validate()
		require.NoError(t, err)
		require.Equal(t, "requests", repo)
	})

	t.Run("rejects non-GitHub and non-https URLs", func(t *testing.T) {
		for _, raw := range []string{
			"http://github.com/psf/requests",
			"https://gitlab.com/psf/requests",
			"https://github.com/psf",
			"https://github.com/psf/requests/tree/main",
		} {
			req := Request{RepoURL: raw, GithubPAT: pat}
			_, _, err := req.validate()
			require.ErrorIs(t, err, errors.ErrInvalidAnalysisRequest, raw)
		}
	})

	t.Run("rejects a short PAT", func(t *testing.T) {
		req := Request{RepoURL: "https://github.com/psf/requests", GithubPAT: "short"}
		_, _, err := req.validate()
		require.ErrorIs(t, err, errors.ErrInvalidAnalysisRequest)
	})

	t.Run("rejects max_lines outside the window", func(t *testing.T) {
		for _, n := range []int{5, 1001} {
			req := Request{RepoURL: "https://github.com/psf/requests", GithubPAT: pat, MaxLines: n}
			_, _, err := req.validate()
			require.ErrorIs(t, err, errors.ErrInvalidAnalysisRequest)
		}
	})
}
