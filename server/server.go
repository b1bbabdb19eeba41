package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pipelineai/auth-gateway/analyzer"
	"github.com/pipelineai/auth-gateway/internal/config"
	"github.com/pipelineai/auth-gateway/relay"
)

// CodeExchanger trades an authorization code for a provider token and
// profile. The production implementation is relay.Exchanger; tests stub it.
type CodeExchanger interface {
	Exchange(ctx context.Context, code string) (relay.Result, error)
}

// RepoAnalyzer fetches and filters a repository's build and dependency
// files. The production implementation is analyzer.Analyzer.
type RepoAnalyzer interface {
	Analyze(ctx context.Context, req analyzer.Request) (map[string]string, error)
}

type Server struct {
	env       string // Environment (e.g., "DEV", "production")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	exchanger CodeExchanger
	analyzer  RepoAnalyzer
}

func New(config config.Config, exchanger CodeExchanger, analyzer RepoAnalyzer) (*Server, error) {
	if exchanger == nil {
		return nil, fmt.Errorf("[Server New] exchanger is required")
	}
	if analyzer == nil {
		return nil, fmt.Errorf("[Server New] analyzer is required")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    config,
		exchanger: exchanger,
		analyzer:  analyzer,
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
