package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"vocabmaster/internal/service"
)

// SessionHandler manages learning sessions over HTTP. Sessions live in
// memory, keyed by an opaque token; the store only ever sees them
// through the repository's error-count updates.
type SessionHandler struct {
	wordService *service.WordService

	mu       sync.Mutex
	sessions map[string]*service.Session
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(wordService *service.WordService) *SessionHandler {
	return &SessionHandler{
		wordService: wordService,
		sessions:    make(map[string]*service.Session),
	}
}

// sessionState is the JSON shape of a session snapshot
type sessionState struct {
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
	Cursor    int    `json:"cursor"`
	Total     int    `json:"total"`
	Score     int    `json:"score,omitempty"`
	Complete  bool   `json:"complete"`

	// Current word, omitted once the session is complete. A quiz shows
	// the chinese prompt only; a flashcard shows english up front and
	// chinese after reveal.
	Word *sessionWord `json:"word,omitempty"`
}

type sessionWord struct {
	English    string `json:"english,omitempty"`
	Chinese    string `json:"chinese,omitempty"`
	Revealed   bool   `json:"revealed"`
	ErrorCount int    `json:"error_count"`
}

func snapshot(id string, s *service.Session) sessionState {
	state := sessionState{
		SessionID: id,
		Mode:      s.Mode().String(),
		Cursor:    s.Cursor(),
		Total:     s.Len(),
		Complete:  s.Complete(),
	}
	if s.Mode() == service.ModeQuiz {
		state.Score = s.Score()
	}

	current, err := s.Current()
	if err != nil {
		return state
	}

	word := &sessionWord{Revealed: s.Revealed(), ErrorCount: current.ErrorCount}
	switch s.Mode() {
	case service.ModeQuiz:
		word.Chinese = current.Chinese
	case service.ModeFlashcard:
		word.English = current.English
		if s.Revealed() {
			word.Chinese = current.Chinese
		}
	}
	state.Word = word

	return state
}

// StartSession creates a new flashcard or quiz session
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode        string `json:"mode"`
		Folder      string `json:"folder"`
		ErrorReview bool   `json:"error_review"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	var session *service.Session
	var err error
	switch {
	case req.ErrorReview:
		session, err = h.wordService.StartErrorReview()
	case req.Mode == "flashcard":
		session, err = h.wordService.StartFlashcards(req.Folder)
	case req.Mode == "quiz":
		session, err = h.wordService.StartQuiz(req.Folder)
	default:
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "mode must be flashcard or quiz"})
		return
	}
	if err != nil {
		respondWithError(w, err, "failed to start session")
		return
	}

	id := uuid.NewString()
	h.mu.Lock()
	h.sessions[id] = session
	h.mu.Unlock()

	respondJSON(w, http.StatusCreated, snapshot(id, session))
}

// GetSession returns the current session state
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, snapshot(id, session))
}

// Reveal flips the current flashcard
func (h *SessionHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	id, session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if _, err := session.Reveal(); err != nil {
		respondWithError(w, err, "failed to reveal card")
		return
	}

	respondJSON(w, http.StatusOK, snapshot(id, session))
}

// SubmitAnswer checks a quiz answer against the current word
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	id, session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	result, err := session.SubmitAnswer(req.Answer)
	if err != nil {
		respondWithError(w, err, "failed to submit answer")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"correct":        result.Correct,
		"correct_answer": result.CorrectAnswer,
		"score":          result.Score,
		"session":        snapshot(id, session),
	})
}

// Advance moves the session to the next word
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := session.Advance(); err != nil {
		respondWithError(w, err, "failed to advance session")
		return
	}

	respondJSON(w, http.StatusOK, snapshot(id, session))
}

// EndSession discards a session
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	h.mu.Lock()
	_, exists := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !exists {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// lookup resolves the session from the request path, responding with
// 404 when missing
func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (string, *service.Session, bool) {
	id := r.PathValue("id")

	h.mu.Lock()
	session, exists := h.sessions[id]
	h.mu.Unlock()

	if !exists {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return "", nil, false
	}
	return id, session, true
}
