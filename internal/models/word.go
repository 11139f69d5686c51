package models

import (
	"strings"
	"time"
)

// Word represents a vocabulary entry in a folder
type Word struct {
	ID           int64
	English      string
	Chinese      string
	Folder       string
	PartOfSpeech string
	ErrorCount   int
	CreatedAt    time.Time
}

// NormalizeEnglish lowercases and trims an english headword.
// The stored value is always normalized, so lookups and duplicate
// checks compare normalized forms.
func NormalizeEnglish(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeFolder lowercases and trims a folder name. Folders are
// case-insensitive groupings, normalized on write.
func NormalizeFolder(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeChinese trims a meaning. Case is preserved.
func NormalizeChinese(s string) string {
	return strings.TrimSpace(s)
}

// Normalize applies the field normalization rules in place.
func (w *Word) Normalize() {
	w.English = NormalizeEnglish(w.English)
	w.Chinese = NormalizeChinese(w.Chinese)
	w.Folder = NormalizeFolder(w.Folder)
	w.PartOfSpeech = strings.TrimSpace(w.PartOfSpeech)
}

// Statistics summarizes the word collection
type Statistics struct {
	TotalWords      int
	TotalFolders    int
	WordsWithErrors int
	TotalErrors     int
	FolderCounts    map[string]int
}
