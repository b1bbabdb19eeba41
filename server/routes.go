package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET /{$}", s.IndexHandler())
	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())

	// Credential exchange relay
	s.RegisterRouteHandler("POST "+RouteAuthGithub, ChainMiddleware(s.GithubAuthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteAuthGithub, ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))

	// Repository analysis
	s.RegisterRouteHandler("POST "+RouteAnalyze, ChainMiddleware(s.AnalyzeHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteAnalyze, ChainMiddleware(s.PreflightHandler(), s.APIMiddleware()...))

	// Embedded SPA assets, with index.html as the fallback for deep links
	s.RegisterRouteFunc("GET /", s.SPAFallbackHandler())
}
