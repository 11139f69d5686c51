package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocabmaster/internal/database"
	"vocabmaster/internal/repository"
	"vocabmaster/internal/service"
)

func setupTestApp(t *testing.T, input string) (*App, *bytes.Buffer, *service.WordService) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test_cli.db")

	db, err := database.Initialize(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations("../../migrations"))

	words := service.NewWordService(repository.NewWordRepository(db), 0)

	var out bytes.Buffer
	return New(words, strings.NewReader(input), &out), &out, words
}

func TestRunQuitsCleanly(t *testing.T) {
	app, out, _ := setupTestApp(t, "7\n")

	require.NoError(t, app.Run())
	assert.Contains(t, out.String(), "Vocabulary Trainer")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunInvalidChoice(t *testing.T) {
	app, out, _ := setupTestApp(t, "99\n7\n")

	require.NoError(t, app.Run())
	assert.Contains(t, out.String(), "Please enter a number from 1 to 7.")
}

func TestRunStopsOnEOF(t *testing.T) {
	app, _, _ := setupTestApp(t, "")

	require.NoError(t, app.Run())
}

func TestAddWordsMenu(t *testing.T) {
	input := strings.Join([]string{
		"1",           // add words
		"Verbs",       // folder
		"Run\t跑",      // tab separated
		"jump 跳",      // space separated
		"run 奔跑",      // duplicate after normalization
		"nonsense",    // malformed
		"end",         // stop adding
		"7",           // quit
	}, "\n") + "\n"

	app, out, words := setupTestApp(t, input)
	require.NoError(t, app.Run())

	assert.Contains(t, out.String(), "Added: run - 跑 (folder: verbs)")
	assert.Contains(t, out.String(), "Added: jump - 跳 (folder: verbs)")
	assert.Contains(t, out.String(), "'run' already exists in folder 'Verbs'.")
	assert.Contains(t, out.String(), "Invalid format")

	stored, err := words.List()
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestAddWordsEmptyFolderRejected(t *testing.T) {
	input := "1\n\nverbs\nrun 跑\nend\n7\n"

	app, out, words := setupTestApp(t, input)
	require.NoError(t, app.Run())

	assert.Contains(t, out.String(), "Folder name cannot be empty.")

	stored, err := words.List()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "verbs", stored[0].Folder)
}

func TestFlashcardsFlow(t *testing.T) {
	app, out, words := setupTestApp(t, "2\n99\n\n7\n")

	_, err := words.Add("run", "跑", "verbs", "")
	require.NoError(t, err)

	require.NoError(t, app.Run())

	assert.Contains(t, out.String(), "English: run")
	assert.Contains(t, out.String(), "Chinese: 跑")
	assert.Contains(t, out.String(), "That was the last card.")
}

func TestFlashcardsQuitEarly(t *testing.T) {
	app, out, words := setupTestApp(t, "2\n99\nq\n7\n")

	_, err := words.Add("run", "跑", "verbs", "")
	require.NoError(t, err)
	_, err = words.Add("jump", "跳", "verbs", "")
	require.NoError(t, err)

	require.NoError(t, app.Run())
	assert.Contains(t, out.String(), "Leaving flashcards.")
}

func TestFlashcardsNoWords(t *testing.T) {
	app, out, _ := setupTestApp(t, "2\n7\n")

	require.NoError(t, app.Run())
	assert.Contains(t, out.String(), "No words yet. Add some first.")
}

func TestQuizFlow(t *testing.T) {
	// One word, so the shuffled order is fixed. Answer correctly.
	app, out, words := setupTestApp(t, "3\n1\nrun\n7\n")

	_, err := words.Add("run", "跑", "verbs", "")
	require.NoError(t, err)

	require.NoError(t, app.Run())

	assert.Contains(t, out.String(), "Quiz started, 1 questions.")
	assert.Contains(t, out.String(), "Correct! Score: 1/1")
	assert.Contains(t, out.String(), "Final score: 1/1 (100.0%)")
}

func TestQuizWrongAnswerRecordsError(t *testing.T) {
	app, out, words := setupTestApp(t, "3\n99\nwrong\n7\n")

	added, err := words.Add("run", "跑", "verbs", "")
	require.NoError(t, err)

	require.NoError(t, app.Run())

	assert.Contains(t, out.String(), "Wrong. The answer is: run")
	assert.Contains(t, out.String(), "Final score: 0/1")

	errorWords, err := words.ErrorWords()
	require.NoError(t, err)
	require.Len(t, errorWords, 1)
	assert.Equal(t, added.ID, errorWords[0].ID)
	assert.Equal(t, 1, errorWords[0].ErrorCount)
}

func TestReviewMistakes(t *testing.T) {
	app, out, words := setupTestApp(t, "4\ny\nrun\n7\n")

	added, err := words.Add("run", "跑", "verbs", "")
	require.NoError(t, err)
	require.NoError(t, words.UpdateErrorCount(added.ID, 2))

	require.NoError(t, app.Run())

	assert.Contains(t, out.String(), "1 words with mistakes:")
	assert.Contains(t, out.String(), "Review started, 1 questions.")
	assert.Contains(t, out.String(), "Correct! Score: 1/1")
}

func TestReviewMistakesEmpty(t *testing.T) {
	app, out, _ := setupTestApp(t, "4\n7\n")

	require.NoError(t, app.Run())
	assert.Contains(t, out.String(), "No mistakes recorded. Well done!")
}

func TestSearchMenu(t *testing.T) {
	app, out, words := setupTestApp(t, "5\nFLY\n7\n")

	_, err := words.Add("butterfly", "蝴蝶", "unit1", "")
	require.NoError(t, err)
	_, err = words.Add("run", "跑", "unit1", "")
	require.NoError(t, err)

	require.NoError(t, app.Run())

	assert.Contains(t, out.String(), "1 matches:")
	assert.Contains(t, out.String(), "butterfly")
}

func TestSearchNoMatch(t *testing.T) {
	app, out, _ := setupTestApp(t, "5\nzzz\n7\n")

	require.NoError(t, app.Run())
	assert.Contains(t, out.String(), "No words match 'zzz'.")
}

func TestStatisticsMenu(t *testing.T) {
	app, out, words := setupTestApp(t, "6\n7\n")

	_, err := words.Add("run", "跑", "verbs", "")
	require.NoError(t, err)
	_, err = words.Add("apple", "蘋果", "fruit", "")
	require.NoError(t, err)

	require.NoError(t, app.Run())

	assert.Contains(t, out.String(), "Total words:       2")
	assert.Contains(t, out.String(), "Folders:           2")
	assert.Contains(t, out.String(), "Words per folder:")
	assert.Contains(t, out.String(), "fruit")
	assert.Contains(t, out.String(), "verbs")
}

func TestSplitEntry(t *testing.T) {
	tests := []struct {
		input   string
		english string
		chinese string
		ok      bool
	}{
		{"run\t跑", "run", "跑", true},
		{"run 跑", "run", "跑", true},
		{"give up\t放棄", "give up", "放棄", true},
		{"run", "", "", false},
		{"run\t", "", "", false},
		{"\t跑", "", "", false},
	}

	for _, tt := range tests {
		english, chinese, ok := splitEntry(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.Equal(t, tt.english, english, "input %q", tt.input)
			assert.Equal(t, tt.chinese, chinese, "input %q", tt.input)
		}
	}
}
