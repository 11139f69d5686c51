package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"vocabmaster/internal/repository"
)

// BackupService exports and imports the word collection in the
// delimited text form, one word per line:
//
//	folder<TAB>english<TAB>chinese<TAB>error_count
//
// The error_count column is optional on import and defaults to 0.
type BackupService struct {
	words *repository.WordRepository
}

// NewBackupService creates a new backup service
func NewBackupService(words *repository.WordRepository) *BackupService {
	return &BackupService{words: words}
}

// ImportResult summarizes one import run
type ImportResult struct {
	Lines      int // non-blank lines processed
	Imported   int // words added
	Duplicates int // lines skipped because the (folder, english) pair existed
	Malformed  int // lines skipped for bad format or empty fields
}

// Export writes every word to w and returns the number of lines written
func (s *BackupService) Export(w io.Writer) (int, error) {
	words, err := s.words.GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to load words for export: %w", err)
	}

	bw := bufio.NewWriter(w)
	for _, word := range words {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\t%d\n",
			word.Folder, word.English, word.Chinese, word.ErrorCount); err != nil {
			return 0, fmt.Errorf("failed to write export line: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("failed to flush export: %w", err)
	}
	return len(words), nil
}

// ExportFile writes the collection to a file
func (s *BackupService) ExportFile(path string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	return s.Export(f)
}

// Import reads delimited lines from r and adds each word. Duplicate
// pairs and malformed lines are counted and skipped, never fatal, so
// re-importing an already-seen file is safe.
func (s *BackupService) Import(r io.Reader) (*ImportResult, error) {
	result := &ImportResult{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result.Lines++

		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			result.Malformed++
			continue
		}

		folder := parts[0]
		english := parts[1]
		chinese := parts[2]

		errorCount := 0
		if len(parts) >= 4 {
			if n, err := strconv.Atoi(strings.TrimSpace(parts[3])); err == nil && n > 0 {
				errorCount = n
			}
		}

		word, err := s.words.Add(english, chinese, folder, "")
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrDuplicateWord):
				result.Duplicates++
			case errors.Is(err, repository.ErrInvalidArgument):
				result.Malformed++
			default:
				return result, fmt.Errorf("import failed at line %d: %w", result.Lines, err)
			}
			continue
		}

		if errorCount > 0 {
			if err := s.words.UpdateErrorCount(word.ID, errorCount); err != nil {
				return result, fmt.Errorf("failed to restore error count for %q: %w", word.English, err)
			}
		}

		result.Imported++
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("failed to read import data: %w", err)
	}
	return result, nil
}

// ImportFile reads the collection from a file
func (s *BackupService) ImportFile(path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	return s.Import(f)
}
