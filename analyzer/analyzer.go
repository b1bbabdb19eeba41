package analyzer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pipelineai/auth-gateway/internal/config"
	"github.com/pipelineai/auth-gateway/internal/errors"
)

// Request describes one repository analysis. The PAT is used for the
// outbound GitHub calls only and never stored.
type Request struct {
	RepoURL   string `json:"repo_url"`
	Branch    string `json:"branch"`
	GithubPAT string `json:"github_pat"`
	MaxLines  int    `json:"max_lines"`
}

const (
	defaultBranch   = "main"
	defaultMaxLines = 300
	minMaxLines     = 10
	maxMaxLines     = 1000
	minPATLength    = 40
)

var repoURLPattern = regexp.MustCompile(`^https://github\.com/([a-zA-Z0-9_.-]+)/([a-zA-Z0-9_.-]+?)(?:\.git)?$`)

// validate normalizes defaults and extracts owner/repo from the URL.
func (r *Request) validate() (owner, repo string, err error) {
	if r.Branch == "" {
		r.Branch = defaultBranch
	}
	if r.MaxLines == 0 {
		r.MaxLines = defaultMaxLines
	}
	if r.MaxLines < minMaxLines || r.MaxLines > maxMaxLines {
		return "", "", errors.Wrapf(errors.ErrInvalidAnalysisRequest,
			"[validate] max_lines %d outside %d..%d", r.MaxLines, minMaxLines, maxMaxLines)
	}
	if len(r.GithubPAT) < minPATLength {
		return "", "", errors.Wrapf(errors.ErrInvalidAnalysisRequest, "[validate] github_pat too short")
	}

	m := repoURLPattern.FindStringSubmatch(strings.TrimSpace(r.RepoURL))
	if m == nil {
		return "", "", errors.Wrapf(errors.ErrInvalidAnalysisRequest, "[validate] repo_url %q", r.RepoURL)
	}
	return m[1], m[2], nil
}

// Analyzer fetches a repository's file tree and returns the CI/CD and
// dependency files it recognises, with oversized lockfiles trimmed to
// their version-relevant lines.
type Analyzer struct {
	apiURL string
	client *http.Client
}

func New(cfg config.OAuthConfig) *Analyzer {
	return &Analyzer{
		apiURL: strings.TrimRight(cfg.GetGithubAPIURL(), "/"),
		client: &http.Client{Timeout: cfg.GetProviderTimeout()},
	}
}

type treeResponse struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
	} `json:"tree"`
}

type contentResponse struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Analyze lists the repository tree, selects the recognised build and
// dependency files, and fetches each one. Individual file fetches that
// fail are skipped; only the tree listing is fatal.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (map[string]string, error) {
	owner, repo, err := req.validate()
	if err != nil {
		return nil, err
	}

	treeURL := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1",
		a.apiURL, owner, repo, url.PathEscape(req.Branch))
	resp, err := a.get(ctx, treeURL, req.GithubPAT)
	if err != nil {
		log.Error().Err(err).Str("repo", owner+"/"+repo).Msg("tree fetch failed")
		return nil, errors.Wrapf(err, "[Analyze] tree fetch")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, errors.ErrBadProviderToken
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.ErrRepoNotFound
	case resp.StatusCode != http.StatusOK:
		log.Error().Int("status", resp.StatusCode).Str("repo", owner+"/"+repo).Msg("tree fetch rejected")
		return nil, errors.ErrProviderUnavailable
	}

	var tree treeResponse
	if err := json.NewDecoder(resp.Body).Decode(&tree); err != nil {
		return nil, errors.Wrapf(err, "[Analyze] decode tree")
	}

	var paths []string
	for _, item := range tree.Tree {
		if item.Type == "blob" {
			paths = append(paths, item.Path)
		}
	}

	results := make(map[string]string)
	for _, path := range selectRelevant(paths) {
		content, ok := a.fetchContent(ctx, owner, repo, req, path)
		if !ok {
			continue
		}
		results[path] = trimLockfile(path, content, req.MaxLines)
	}
	return results, nil
}

// fetchContent loads one file via the contents API. Any failure skips the
// file rather than failing the whole analysis.
func (a *Analyzer) fetchContent(ctx context.Context, owner, repo string, req Request, path string) (string, bool) {
	contentURL := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		a.apiURL, owner, repo, path, url.QueryEscape(req.Branch))
	resp, err := a.get(ctx, contentURL, req.GithubPAT)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	var data contentResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil || data.Type != "file" {
		return "", false
	}

	// The contents API wraps base64 payloads across lines
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(data.Content, "\n", ""))
	if err != nil {
		return "", false
	}
	return string(decoded), true
}

func (a *Analyzer) get(ctx context.Context, rawURL, pat string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+pat)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", "RepoAnalyzer/1.0")
	return a.client.Do(req)
}
