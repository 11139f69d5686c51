package service

import (
	"errors"
	"fmt"

	"vocabmaster/internal/models"
	"vocabmaster/internal/repository"
)

// ErrLibraryFull is returned when adding a word would exceed the
// configured capacity limit.
var ErrLibraryFull = errors.New("word library is full")

// WordService handles vocabulary business logic over the repository
type WordService struct {
	words    *repository.WordRepository
	maxWords int
}

// NewWordService creates a new word service. maxWords caps the
// collection size; 0 disables the limit.
func NewWordService(words *repository.WordRepository, maxWords int) *WordService {
	return &WordService{
		words:    words,
		maxWords: maxWords,
	}
}

// Add creates a new word after checking the capacity limit
func (s *WordService) Add(english, chinese, folder, partOfSpeech string) (*models.Word, error) {
	if s.maxWords > 0 {
		stats, err := s.words.GetStatistics()
		if err != nil {
			return nil, fmt.Errorf("failed to check capacity: %w", err)
		}
		if stats.TotalWords >= s.maxWords {
			return nil, fmt.Errorf("%w: limit is %d words", ErrLibraryFull, s.maxWords)
		}
	}

	return s.words.Add(english, chinese, folder, partOfSpeech)
}

// List returns every word ordered by (folder, english)
func (s *WordService) List() ([]models.Word, error) {
	return s.words.GetAll()
}

// ListByFolder returns the words in one folder
func (s *WordService) ListByFolder(folder string) ([]models.Word, error) {
	return s.words.GetByFolder(folder)
}

// Search finds words by keyword in english or chinese
func (s *WordService) Search(keyword string) ([]models.Word, error) {
	return s.words.Search(keyword)
}

// Delete removes a word by id
func (s *WordService) Delete(id int64) error {
	return s.words.Delete(id)
}

// UpdateErrorCount sets a word's error count
func (s *WordService) UpdateErrorCount(id int64, count int) error {
	return s.words.UpdateErrorCount(id, count)
}

// Folders returns the distinct folder names
func (s *WordService) Folders() ([]string, error) {
	return s.words.GetFolders()
}

// ErrorWords returns words with recorded quiz errors, most-missed first
func (s *WordService) ErrorWords() ([]models.Word, error) {
	return s.words.GetErrorWords()
}

// Statistics recomputes collection statistics from the store on every
// call, so an in-flight quiz session's error updates are reflected
// immediately.
func (s *WordService) Statistics() (*models.Statistics, error) {
	return s.words.GetStatistics()
}

// StartFlashcards builds a flashcard session from a folder, or from
// the whole collection when folder is empty.
func (s *WordService) StartFlashcards(folder string) (*Session, error) {
	words, err := s.wordsForFolder(folder)
	if err != nil {
		return nil, err
	}
	return StartSession(ModeFlashcard, words, s.words)
}

// StartQuiz builds a quiz session from a folder, or from the whole
// collection when folder is empty.
func (s *WordService) StartQuiz(folder string) (*Session, error) {
	words, err := s.wordsForFolder(folder)
	if err != nil {
		return nil, err
	}
	return StartSession(ModeQuiz, words, s.words)
}

// StartErrorReview builds a quiz session over the words with recorded
// errors.
func (s *WordService) StartErrorReview() (*Session, error) {
	words, err := s.words.GetErrorWords()
	if err != nil {
		return nil, err
	}
	return StartSession(ModeQuiz, words, s.words)
}

func (s *WordService) wordsForFolder(folder string) ([]models.Word, error) {
	if folder == "" || folder == "all" {
		return s.words.GetAll()
	}
	return s.words.GetByFolder(folder)
}
