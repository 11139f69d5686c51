package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vocabmaster/internal/models"
	"vocabmaster/internal/service"
)

// WordHandler handles the vocabulary CRUD API
type WordHandler struct {
	wordService *service.WordService
}

// NewWordHandler creates a new word handler
func NewWordHandler(wordService *service.WordService) *WordHandler {
	return &WordHandler{wordService: wordService}
}

// wordResponse is the JSON shape of a word
type wordResponse struct {
	ID           int64  `json:"id"`
	English      string `json:"english"`
	Chinese      string `json:"chinese"`
	Folder       string `json:"folder"`
	PartOfSpeech string `json:"part_of_speech,omitempty"`
	ErrorCount   int    `json:"error_count"`
}

func toWordResponse(w models.Word) wordResponse {
	return wordResponse{
		ID:           w.ID,
		English:      w.English,
		Chinese:      w.Chinese,
		Folder:       w.Folder,
		PartOfSpeech: w.PartOfSpeech,
		ErrorCount:   w.ErrorCount,
	}
}

func toWordResponses(words []models.Word) []wordResponse {
	out := make([]wordResponse, len(words))
	for i, w := range words {
		out[i] = toWordResponse(w)
	}
	return out
}

// ListWords returns all words, or one folder's words when the folder
// query parameter is set
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	folder := r.URL.Query().Get("folder")

	var words []models.Word
	var err error
	if folder != "" && folder != "all" {
		words, err = h.wordService.ListByFolder(folder)
	} else {
		words, err = h.wordService.List()
	}
	if err != nil {
		respondWithError(w, err, "failed to list words")
		return
	}

	respondJSON(w, http.StatusOK, toWordResponses(words))
}

// AddWord creates a new word
func (h *WordHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		English      string `json:"english"`
		Chinese      string `json:"chinese"`
		Folder       string `json:"folder"`
		PartOfSpeech string `json:"part_of_speech"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	word, err := h.wordService.Add(req.English, req.Chinese, req.Folder, req.PartOfSpeech)
	if err != nil {
		respondWithError(w, err, "failed to add word")
		return
	}

	respondJSON(w, http.StatusCreated, toWordResponse(*word))
}

// DeleteWord removes a word by id
func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid word id"})
		return
	}

	if err := h.wordService.Delete(id); err != nil {
		respondWithError(w, err, "failed to delete word")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateErrorCount sets a word's error count
func (h *WordHandler) UpdateErrorCount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid word id"})
		return
	}

	var req struct {
		ErrorCount int `json:"error_count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	if err := h.wordService.UpdateErrorCount(id, req.ErrorCount); err != nil {
		respondWithError(w, err, "failed to update error count")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListFolders returns the distinct folder names
func (h *WordHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.wordService.Folders()
	if err != nil {
		respondWithError(w, err, "failed to list folders")
		return
	}
	if folders == nil {
		folders = []string{}
	}

	respondJSON(w, http.StatusOK, folders)
}

// Search finds words by keyword
func (h *WordHandler) Search(w http.ResponseWriter, r *http.Request) {
	words, err := h.wordService.Search(r.URL.Query().Get("keyword"))
	if err != nil {
		respondWithError(w, err, "failed to search words")
		return
	}

	respondJSON(w, http.StatusOK, toWordResponses(words))
}

// ListErrorWords returns words with recorded quiz errors
func (h *WordHandler) ListErrorWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.wordService.ErrorWords()
	if err != nil {
		respondWithError(w, err, "failed to list error words")
		return
	}

	respondJSON(w, http.StatusOK, toWordResponses(words))
}

// Statistics returns collection statistics
func (h *WordHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.wordService.Statistics()
	if err != nil {
		respondWithError(w, err, "failed to compute statistics")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"total_words":       stats.TotalWords,
		"total_folders":     stats.TotalFolders,
		"words_with_errors": stats.WordsWithErrors,
		"total_errors":      stats.TotalErrors,
		"folder_counts":     stats.FolderCounts,
	})
}
