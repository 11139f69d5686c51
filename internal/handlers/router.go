package handlers

import "net/http"

// NewRouter wires the API routes for both handlers
func NewRouter(words *WordHandler, sessions *SessionHandler) *http.ServeMux {
	mux := http.NewServeMux()

	// Word CRUD
	mux.HandleFunc("GET /api/words", words.ListWords)
	mux.HandleFunc("POST /api/words", words.AddWord)
	mux.HandleFunc("DELETE /api/words/{id}", words.DeleteWord)
	mux.HandleFunc("PUT /api/words/{id}/error", words.UpdateErrorCount)
	mux.HandleFunc("GET /api/folders", words.ListFolders)
	mux.HandleFunc("GET /api/search", words.Search)
	mux.HandleFunc("GET /api/errors", words.ListErrorWords)
	mux.HandleFunc("GET /api/statistics", words.Statistics)

	// Learning sessions
	mux.HandleFunc("POST /api/sessions", sessions.StartSession)
	mux.HandleFunc("GET /api/sessions/{id}", sessions.GetSession)
	mux.HandleFunc("POST /api/sessions/{id}/reveal", sessions.Reveal)
	mux.HandleFunc("POST /api/sessions/{id}/answer", sessions.SubmitAnswer)
	mux.HandleFunc("POST /api/sessions/{id}/next", sessions.Advance)
	mux.HandleFunc("DELETE /api/sessions/{id}", sessions.EndSession)

	return mux
}
