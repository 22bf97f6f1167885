package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Chat
	mux.HandleFunc("/api/chat", s.app.ChatHandler.ChatHandler)
	mux.HandleFunc("/api/chat/reset", s.app.ChatHandler.ResetHandler)
	mux.HandleFunc("/api/chat/health", s.app.ChatHandler.HealthHandler)

	// API routes - Corpus
	mux.HandleFunc("/api/corpus/stats", s.app.CorpusHandler.StatsHandler)
	mux.HandleFunc("/api/corpus/categories", s.app.CorpusHandler.CategoriesHandler)
	mux.HandleFunc("/api/corpus/documents", s.app.CorpusHandler.DocumentsHandler)

	// API routes - Evaluation
	mux.HandleFunc("/api/eval/records", s.app.EvalHandler.RecordsHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// Unmatched API paths get a JSON 404
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path != "/" {
			s.app.APIHandler.NotFoundHandler(w, r)
			return
		}
		s.app.APIHandler.HealthHandler(w, r)
	})

	return mux
}
