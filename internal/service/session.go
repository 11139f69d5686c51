package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"vocabmaster/internal/models"
)

// Session engine error kinds
var (
	// ErrEmptyWordSet is returned when a session is started with no words
	ErrEmptyWordSet = errors.New("session needs at least one word")

	// ErrSessionComplete is returned when advance or submit is called
	// after the working set is exhausted
	ErrSessionComplete = errors.New("session already complete")

	// ErrAlreadyAnswered is returned when an answer is submitted twice
	// for the same word without an intervening advance
	ErrAlreadyAnswered = errors.New("answer already submitted for this word")

	// ErrWrongMode is returned when a quiz-only or flashcard-only
	// operation is called on a session in the other mode
	ErrWrongMode = errors.New("operation not valid in this session mode")
)

// SessionMode selects the learning activity
type SessionMode int

const (
	ModeFlashcard SessionMode = iota
	ModeQuiz
)

// String returns the mode name
func (m SessionMode) String() string {
	if m == ModeQuiz {
		return "quiz"
	}
	return "flashcard"
}

// ErrorCounter persists a word's error count. Satisfied by
// *repository.WordRepository; the session engine needs nothing else
// from the store.
type ErrorCounter interface {
	UpdateErrorCount(id int64, count int) error
}

// AnswerResult reports the outcome of one quiz answer
type AnswerResult struct {
	Correct       bool
	CorrectAnswer string
	Score         int
}

// Session walks an ordered, shuffled working set of words for one
// learning activity. It is a single-owner object; callers must not
// share it across goroutines.
type Session struct {
	mode     SessionMode
	words    []models.Word
	cursor   int
	score    int
	revealed bool
	answered bool
	counter  ErrorCounter
}

// StartSession copies words, shuffles the copy once, and returns an
// active session with the cursor at the first word. The order is fixed
// for the session's lifetime. counter may be nil, in which case wrong
// quiz answers are only tracked in memory.
func StartSession(mode SessionMode, words []models.Word, counter ErrorCounter) (*Session, error) {
	if len(words) == 0 {
		return nil, ErrEmptyWordSet
	}

	workingSet := make([]models.Word, len(words))
	copy(workingSet, words)

	rand.Shuffle(len(workingSet), func(i, j int) {
		workingSet[i], workingSet[j] = workingSet[j], workingSet[i]
	})

	return &Session{
		mode:    mode,
		words:   workingSet,
		counter: counter,
	}, nil
}

// Mode returns the session mode
func (s *Session) Mode() SessionMode {
	return s.mode
}

// Len returns the working set size
func (s *Session) Len() int {
	return len(s.words)
}

// Cursor returns the index of the current word
func (s *Session) Cursor() int {
	return s.cursor
}

// Score returns the number of correct quiz answers so far
func (s *Session) Score() int {
	return s.score
}

// Complete reports whether the working set is exhausted
func (s *Session) Complete() bool {
	return s.cursor >= len(s.words)
}

// Revealed reports whether the current flashcard is flipped
func (s *Session) Revealed() bool {
	return s.revealed
}

// Current returns the word at the cursor
func (s *Session) Current() (*models.Word, error) {
	if s.Complete() {
		return nil, ErrSessionComplete
	}
	return &s.words[s.cursor], nil
}

// Words returns the shuffled working set
func (s *Session) Words() []models.Word {
	return s.words
}

// Advance moves the cursor to the next word and resets the per-word
// revealed and answered flags. Returns ErrSessionComplete once the
// working set is exhausted.
func (s *Session) Advance() error {
	if s.Complete() {
		return ErrSessionComplete
	}
	s.cursor++
	s.revealed = false
	s.answered = false
	return nil
}

// Reveal toggles the current flashcard between front and back.
// It never moves the cursor or changes the score.
func (s *Session) Reveal() (bool, error) {
	if s.mode != ModeFlashcard {
		return false, ErrWrongMode
	}
	if s.Complete() {
		return false, ErrSessionComplete
	}
	s.revealed = !s.revealed
	return s.revealed, nil
}

// SubmitAnswer checks a typed answer against the current word. The
// comparison is on the trimmed, lower-cased input. A correct answer
// increments the score; a wrong answer increments the word's error
// count both in the working set and in the store. Submitting twice for
// the same word without an Advance fails with ErrAlreadyAnswered.
func (s *Session) SubmitAnswer(text string) (*AnswerResult, error) {
	if s.mode != ModeQuiz {
		return nil, ErrWrongMode
	}
	if s.Complete() {
		return nil, ErrSessionComplete
	}
	if s.answered {
		return nil, ErrAlreadyAnswered
	}

	word := &s.words[s.cursor]
	normalized := strings.ToLower(strings.TrimSpace(text))

	if normalized == word.English {
		s.answered = true
		s.score++
		return &AnswerResult{Correct: true, CorrectAnswer: word.English, Score: s.score}, nil
	}

	word.ErrorCount++
	if s.counter != nil {
		if err := s.counter.UpdateErrorCount(word.ID, word.ErrorCount); err != nil {
			word.ErrorCount--
			return nil, fmt.Errorf("failed to record error for %q: %w", word.English, err)
		}
	}

	s.answered = true
	return &AnswerResult{Correct: false, CorrectAnswer: word.English, Score: s.score}, nil
}
