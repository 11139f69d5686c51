package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"vocabmaster/internal/database"
	"vocabmaster/internal/models"
)

// WordRepository handles all database operations for vocabulary words
type WordRepository struct {
	db database.DBTX
}

// NewWordRepository creates a new word repository
func NewWordRepository(db database.DBTX) *WordRepository {
	return &WordRepository{db: db}
}

// Add inserts a new word. English and folder are normalized before the
// duplicate check, so "Run" and "run " in the same folder are the same
// word. Returns ErrDuplicateWord when the (folder, english) pair exists.
func (r *WordRepository) Add(english, chinese, folder, partOfSpeech string) (*models.Word, error) {
	word := models.Word{
		English:      english,
		Chinese:      chinese,
		Folder:       folder,
		PartOfSpeech: partOfSpeech,
	}
	word.Normalize()

	if word.English == "" {
		return nil, fmt.Errorf("%w: english is required", ErrInvalidArgument)
	}
	if word.Chinese == "" {
		return nil, fmt.Errorf("%w: chinese is required", ErrInvalidArgument)
	}
	if word.Folder == "" {
		return nil, fmt.Errorf("%w: folder is required", ErrInvalidArgument)
	}

	var existingID int64
	err := r.db.QueryRow("SELECT id FROM words WHERE folder = ? AND english = ?",
		word.Folder, word.English).Scan(&existingID)
	if err == nil {
		return nil, fmt.Errorf("%w: %q in folder %q", ErrDuplicateWord, word.English, word.Folder)
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check for duplicate word: %w", err)
	}

	id, err := r.db.ExecReturningID(
		"INSERT INTO words (english, chinese, folder, part_of_speech, error_count) VALUES (?, ?, ?, ?, 0)",
		word.English, word.Chinese, word.Folder, word.PartOfSpeech)
	if err != nil {
		return nil, fmt.Errorf("failed to insert word: %w", err)
	}

	word.ID = id
	word.ErrorCount = 0
	word.CreatedAt = time.Now()

	return &word, nil
}

// GetAll returns every word ordered by (folder, english)
func (r *WordRepository) GetAll() ([]models.Word, error) {
	query := `
		SELECT id, english, chinese, folder, part_of_speech, error_count, created_at
		FROM words
		ORDER BY folder, english
	`
	return r.queryWords(query)
}

// GetByFolder returns the words in a folder ordered by english.
// An unknown folder yields an empty slice, not an error.
func (r *WordRepository) GetByFolder(folder string) ([]models.Word, error) {
	query := `
		SELECT id, english, chinese, folder, part_of_speech, error_count, created_at
		FROM words
		WHERE folder = ?
		ORDER BY english
	`
	return r.queryWords(query, models.NormalizeFolder(folder))
}

// GetByID retrieves a single word by id
func (r *WordRepository) GetByID(id int64) (*models.Word, error) {
	query := `
		SELECT id, english, chinese, folder, part_of_speech, error_count, created_at
		FROM words
		WHERE id = ?
	`
	var word models.Word
	err := r.db.QueryRow(query, id).Scan(
		&word.ID,
		&word.English,
		&word.Chinese,
		&word.Folder,
		&word.PartOfSpeech,
		&word.ErrorCount,
		&word.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return &word, nil
}

// Search returns words whose english contains the keyword
// (case-insensitive) or whose chinese contains it (case-sensitive),
// ordered by (folder, english). An empty keyword returns an empty
// slice rather than an error.
func (r *WordRepository) Search(keyword string) ([]models.Word, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []models.Word{}, nil
	}

	query := `
		SELECT id, english, chinese, folder, part_of_speech, error_count, created_at
		FROM words
		WHERE english LIKE ? OR chinese LIKE ?
		ORDER BY folder, english
	`
	// English is stored lower-cased, so lower-casing the keyword makes
	// the english match case-insensitive on every dialect.
	englishPattern := "%" + strings.ToLower(keyword) + "%"
	chinesePattern := "%" + keyword + "%"

	return r.queryWords(query, englishPattern, chinesePattern)
}

// UpdateErrorCount sets a word's error count. Setting the same value
// twice is a no-op the second time. Returns ErrNotFound for an unknown
// id and ErrInvalidArgument for a negative count.
func (r *WordRepository) UpdateErrorCount(id int64, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: error count must not be negative", ErrInvalidArgument)
	}

	// Existence check first: MySQL reports zero affected rows for an
	// update that leaves the value unchanged, so RowsAffected alone
	// cannot distinguish "missing" from "already set".
	var existingID int64
	err := r.db.QueryRow("SELECT id FROM words WHERE id = ?", id).Scan(&existingID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to check word: %w", err)
	}

	_, err = r.db.Exec("UPDATE words SET error_count = ? WHERE id = ?", count, id)
	if err != nil {
		return fmt.Errorf("failed to update error count: %w", err)
	}
	return nil
}

// Delete removes a word by id. Returns ErrNotFound when the id does
// not exist, so a second delete of the same id fails.
func (r *WordRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM words WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// GetFolders returns the distinct folder names in ascending order
func (r *WordRepository) GetFolders() ([]string, error) {
	rows, err := r.db.Query("SELECT DISTINCT folder FROM words ORDER BY folder")
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer rows.Close()

	var folders []string
	for rows.Next() {
		var folder string
		if err := rows.Scan(&folder); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	return folders, rows.Err()
}

// GetErrorWords returns words with at least one recorded error,
// most-missed first, ties broken by english ascending
func (r *WordRepository) GetErrorWords() ([]models.Word, error) {
	query := `
		SELECT id, english, chinese, folder, part_of_speech, error_count, created_at
		FROM words
		WHERE error_count > 0
		ORDER BY error_count DESC, english
	`
	return r.queryWords(query)
}

// GetStatistics recomputes collection statistics from the store.
// All counts are zero (never null) on an empty collection.
func (r *WordRepository) GetStatistics() (*models.Statistics, error) {
	stats := &models.Statistics{
		FolderCounts: make(map[string]int),
	}

	query := `
		SELECT COUNT(*),
		       COUNT(DISTINCT folder),
		       COALESCE(SUM(CASE WHEN error_count > 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(error_count), 0)
		FROM words
	`
	err := r.db.QueryRow(query).Scan(
		&stats.TotalWords,
		&stats.TotalFolders,
		&stats.WordsWithErrors,
		&stats.TotalErrors,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query statistics: %w", err)
	}

	rows, err := r.db.Query("SELECT folder, COUNT(*) FROM words GROUP BY folder ORDER BY folder")
	if err != nil {
		return nil, fmt.Errorf("failed to query folder counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var folder string
		var count int
		if err := rows.Scan(&folder, &count); err != nil {
			return nil, fmt.Errorf("failed to scan folder count: %w", err)
		}
		stats.FolderCounts[folder] = count
	}

	return stats, rows.Err()
}

// queryWords runs a SELECT over the words table and scans the rows
func (r *WordRepository) queryWords(query string, args ...interface{}) ([]models.Word, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	words := []models.Word{}
	for rows.Next() {
		var word models.Word
		if err := rows.Scan(
			&word.ID,
			&word.English,
			&word.Chinese,
			&word.Folder,
			&word.PartOfSpeech,
			&word.ErrorCount,
			&word.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, word)
	}

	return words, rows.Err()
}
