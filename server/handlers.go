package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pipelineai/auth-gateway/analyzer"
	"github.com/pipelineai/auth-gateway/internal/errors"
)

// genericAuthError is the only failure detail the browser ever sees.
// Provider-specific errors are logged server-side.
const genericAuthError = "Authentication failed"

type githubAuthRequest struct {
	Code string `json:"code"`
}

type githubAuthResponse struct {
	User  map[string]any `json:"user"`
	Token string         `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GithubAuthHandler accepts {code} from the SPA and responds with the
// provider profile and access token, or a generic failure.
func (s *Server) GithubAuthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req githubAuthRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: genericAuthError})
			return
		}
		if strings.TrimSpace(req.Code) == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: genericAuthError})
			return
		}

		result, err := s.exchanger.Exchange(r.Context(), req.Code)
		if err != nil {
			log.Error().Err(err).Msg("github code exchange failed")
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: genericAuthError})
			return
		}

		writeJSON(w, http.StatusOK, githubAuthResponse{User: result.Profile, Token: result.Token})
	}
}

// AnalyzeHandler fetches and filters a repository's CI/CD and dependency
// files. Unlike the auth relay, analysis failures carry their cause: the
// caller supplied the repository and token, so the detail is theirs.
func (s *Server) AnalyzeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzer.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		results, err := s.analyzer.Analyze(r.Context(), req)
		if err != nil {
			status, detail := analyzeFailure(err)
			writeJSON(w, status, errorResponse{Error: detail})
			return
		}

		writeJSON(w, http.StatusOK, results)
	}
}

// analyzeFailure maps analysis errors onto the status and detail the
// caller sees. Unmatched errors are reachability problems on our side.
func analyzeFailure(err error) (int, string) {
	switch {
	case errors.Is(err, errors.ErrInvalidAnalysisRequest):
		return http.StatusBadRequest, errors.ErrInvalidAnalysisRequest.Error()
	case errors.Is(err, errors.ErrBadProviderToken):
		return http.StatusUnauthorized, errors.ErrBadProviderToken.Error()
	case errors.Is(err, errors.ErrRepoNotFound):
		return http.StatusNotFound, errors.ErrRepoNotFound.Error()
	case errors.Is(err, errors.ErrProviderUnavailable):
		return http.StatusBadGateway, errors.ErrProviderUnavailable.Error()
	default:
		log.Error().Err(err).Msg("repository analysis failed")
		return http.StatusInternalServerError, "failed to reach GitHub API"
	}
}

// PreflightHandler terminates CORS preflight requests; the CORS middleware
// has already written the headers by the time it runs.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

// IndexHandler reports service status at the root path.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "200 OK",
			"message": "Welcome to " + s.config.GetAppName(),
		})
	}
}

func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("failed to encode response body")
	}
}
