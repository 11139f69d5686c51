// Package cli implements the interactive terminal front end. All input
// and output go through the injected reader and writer so the menu loop
// can be driven from tests.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"vocabmaster/internal/models"
	"vocabmaster/internal/repository"
	"vocabmaster/internal/service"
)

// App is the terminal application. It holds no state of its own beyond
// the input scanner; every menu action goes straight to the service.
type App struct {
	words *service.WordService
	in    *bufio.Scanner
	out   io.Writer
}

// New creates a terminal app reading from in and writing to out
func New(words *service.WordService, in io.Reader, out io.Writer) *App {
	return &App{
		words: words,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

// Run drives the main menu loop until the user quits or input ends
func (a *App) Run() error {
	for {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, strings.Repeat("=", 40))
		fmt.Fprintln(a.out, "Vocabulary Trainer")
		fmt.Fprintln(a.out, strings.Repeat("=", 40))
		fmt.Fprintln(a.out, "1. Add words")
		fmt.Fprintln(a.out, "2. Flashcards")
		fmt.Fprintln(a.out, "3. Quiz")
		fmt.Fprintln(a.out, "4. Review mistakes")
		fmt.Fprintln(a.out, "5. Search")
		fmt.Fprintln(a.out, "6. Statistics")
		fmt.Fprintln(a.out, "7. Quit")

		choice, ok := a.prompt("Choose 1-7: ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			a.addWords()
		case "2":
			a.runFlashcards()
		case "3":
			a.runQuiz()
		case "4":
			a.reviewMistakes()
		case "5":
			a.search()
		case "6":
			a.statistics()
		case "7":
			fmt.Fprintln(a.out, "Bye! Remember to review.")
			return nil
		default:
			fmt.Fprintln(a.out, "Please enter a number from 1 to 7.")
		}
	}
}

// prompt prints a prompt and reads one trimmed line. ok is false when
// the input is exhausted.
func (a *App) prompt(msg string) (string, bool) {
	fmt.Fprint(a.out, msg)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *App) addWords() {
	var folder string
	for {
		input, ok := a.prompt("Folder name: ")
		if !ok {
			return
		}
		if input != "" {
			folder = input
			break
		}
		fmt.Fprintln(a.out, "Folder name cannot be empty.")
	}

	fmt.Fprintln(a.out, "Enter words as: english<Tab or space>chinese")
	fmt.Fprintln(a.out, "Type 'end' to stop.")

	for {
		input, ok := a.prompt("> ")
		if !ok {
			return
		}
		if strings.EqualFold(input, "end") {
			fmt.Fprintln(a.out, "Done adding words.")
			return
		}

		english, chinese, valid := splitEntry(input)
		if !valid {
			fmt.Fprintln(a.out, "Invalid format, use: english<Tab or space>chinese")
			continue
		}

		word, err := a.words.Add(english, chinese, folder, "")
		switch {
		case errors.Is(err, repository.ErrDuplicateWord):
			fmt.Fprintf(a.out, "'%s' already exists in folder '%s'.\n", english, folder)
		case errors.Is(err, service.ErrLibraryFull):
			fmt.Fprintln(a.out, "The word library is full.")
			return
		case errors.Is(err, repository.ErrInvalidArgument):
			fmt.Fprintln(a.out, "English and chinese must both be non-empty.")
		case err != nil:
			fmt.Fprintf(a.out, "Failed to add word: %v\n", err)
		default:
			fmt.Fprintf(a.out, "Added: %s - %s (folder: %s)\n", word.English, word.Chinese, word.Folder)
		}
	}
}

// splitEntry splits an "english chinese" line on the first tab, or on
// whitespace when there is no tab.
func splitEntry(input string) (english, chinese string, ok bool) {
	var parts []string
	if strings.Contains(input, "\t") {
		parts = strings.SplitN(input, "\t", 2)
	} else {
		parts = strings.SplitN(input, " ", 2)
	}
	if len(parts) < 2 {
		return "", "", false
	}
	english = strings.TrimSpace(parts[0])
	chinese = strings.TrimSpace(parts[1])
	return english, chinese, english != "" && chinese != ""
}

// chooseFolder lists the known folders and reads a selection. It
// returns the chosen folder name, "" for the whole collection, and
// ok=false when the user backs out.
func (a *App) chooseFolder() (string, bool) {
	folders, err := a.words.Folders()
	if err != nil {
		fmt.Fprintf(a.out, "Failed to list folders: %v\n", err)
		return "", false
	}
	if len(folders) == 0 {
		fmt.Fprintln(a.out, "No words yet. Add some first.")
		return "", false
	}

	fmt.Fprintln(a.out, "\nChoose a folder:")
	for i, folder := range folders {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, folder)
	}
	fmt.Fprintln(a.out, "99. All words")
	fmt.Fprintln(a.out, "0. Back")

	for {
		input, ok := a.prompt("Folder: ")
		if !ok {
			return "", false
		}
		n, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintln(a.out, "Please enter a number.")
			continue
		}
		switch {
		case n == 0:
			return "", false
		case n == 99:
			return "", true
		case n >= 1 && n <= len(folders):
			return folders[n-1], true
		default:
			fmt.Fprintln(a.out, "Invalid choice.")
		}
	}
}

func (a *App) runFlashcards() {
	folder, ok := a.chooseFolder()
	if !ok {
		return
	}

	session, err := a.words.StartFlashcards(folder)
	if err != nil {
		fmt.Fprintf(a.out, "Cannot start flashcards: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "\n%d cards. Press Enter to flip, 'q' to leave.\n", session.Len())

	for !session.Complete() {
		word, err := session.Current()
		if err != nil {
			return
		}

		fmt.Fprintf(a.out, "\n[%d/%d]\n", session.Cursor()+1, session.Len())
		fmt.Fprintf(a.out, "English: %s\n", word.English)

		input, ok := a.prompt("Press Enter to show the meaning... ")
		if !ok || strings.EqualFold(input, "q") {
			fmt.Fprintln(a.out, "Leaving flashcards.")
			return
		}

		if _, err := session.Reveal(); err != nil {
			fmt.Fprintf(a.out, "Failed to flip card: %v\n", err)
			return
		}
		fmt.Fprintf(a.out, "Chinese: %s\n", word.Chinese)
		if word.ErrorCount > 0 {
			fmt.Fprintf(a.out, "(missed %d times before)\n", word.ErrorCount)
		}

		if err := session.Advance(); err != nil {
			return
		}
	}

	fmt.Fprintln(a.out, "\nThat was the last card.")
}

func (a *App) runQuiz() {
	folder, ok := a.chooseFolder()
	if !ok {
		return
	}

	session, err := a.words.StartQuiz(folder)
	if err != nil {
		fmt.Fprintf(a.out, "Cannot start quiz: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "\nQuiz started, %d questions.\n", session.Len())
	a.playQuiz(session)
}

// playQuiz runs an already-started quiz session to completion
func (a *App) playQuiz(session *service.Session) {
	total := session.Len()

	for !session.Complete() {
		word, err := session.Current()
		if err != nil {
			return
		}

		fmt.Fprintf(a.out, "\n%d. %s\n", session.Cursor()+1, word.Chinese)
		answer, ok := a.prompt("English: ")
		if !ok {
			return
		}
		if strings.EqualFold(answer, "q") {
			fmt.Fprintln(a.out, "Leaving the quiz.")
			return
		}

		result, err := session.SubmitAnswer(answer)
		if err != nil {
			fmt.Fprintf(a.out, "Failed to check answer: %v\n", err)
			return
		}

		if result.Correct {
			fmt.Fprintf(a.out, "Correct! Score: %d/%d\n", result.Score, session.Cursor()+1)
		} else {
			fmt.Fprintf(a.out, "Wrong. The answer is: %s\n", result.CorrectAnswer)
			fmt.Fprintf(a.out, "Score: %d/%d\n", result.Score, session.Cursor()+1)
		}

		if err := session.Advance(); err != nil {
			return
		}
	}

	score := session.Score()
	fmt.Fprintln(a.out, strings.Repeat("=", 40))
	fmt.Fprintf(a.out, "Quiz finished! Final score: %d/%d (%.1f%%)\n",
		score, total, float64(score)/float64(total)*100)
}

func (a *App) reviewMistakes() {
	words, err := a.words.ErrorWords()
	if err != nil {
		fmt.Fprintf(a.out, "Failed to load mistakes: %v\n", err)
		return
	}
	if len(words) == 0 {
		fmt.Fprintln(a.out, "No mistakes recorded. Well done!")
		return
	}

	fmt.Fprintf(a.out, "\n%d words with mistakes:\n", len(words))
	a.printWords(words)

	input, ok := a.prompt("Quiz these words now? (y/n): ")
	if !ok || !strings.EqualFold(input, "y") {
		return
	}

	session, err := a.words.StartErrorReview()
	if err != nil {
		fmt.Fprintf(a.out, "Cannot start review: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "\nReview started, %d questions.\n", session.Len())
	a.playQuiz(session)
}

func (a *App) search() {
	keyword, ok := a.prompt("Keyword: ")
	if !ok {
		return
	}
	if keyword == "" {
		fmt.Fprintln(a.out, "Keyword cannot be empty.")
		return
	}

	words, err := a.words.Search(keyword)
	if err != nil {
		fmt.Fprintf(a.out, "Search failed: %v\n", err)
		return
	}
	if len(words) == 0 {
		fmt.Fprintf(a.out, "No words match '%s'.\n", keyword)
		return
	}

	fmt.Fprintf(a.out, "\n%d matches:\n", len(words))
	a.printWords(words)
}

func (a *App) statistics() {
	stats, err := a.words.Statistics()
	if err != nil {
		fmt.Fprintf(a.out, "Failed to load statistics: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "\nStatistics")
	fmt.Fprintf(a.out, "Total words:       %d\n", stats.TotalWords)
	fmt.Fprintf(a.out, "Folders:           %d\n", stats.TotalFolders)
	fmt.Fprintf(a.out, "Words with errors: %d\n", stats.WordsWithErrors)
	fmt.Fprintf(a.out, "Total errors:      %d\n", stats.TotalErrors)

	if len(stats.FolderCounts) > 0 {
		folders := make([]string, 0, len(stats.FolderCounts))
		for folder := range stats.FolderCounts {
			folders = append(folders, folder)
		}
		sort.Strings(folders)

		fmt.Fprintln(a.out, "\nWords per folder:")
		for _, folder := range folders {
			fmt.Fprintf(a.out, "  %-20s %d\n", folder, stats.FolderCounts[folder])
		}
	}
}

func (a *App) printWords(words []models.Word) {
	for _, word := range words {
		line := fmt.Sprintf("  %-20s %s (folder: %s", word.English, word.Chinese, word.Folder)
		if word.ErrorCount > 0 {
			line += fmt.Sprintf(", errors: %d", word.ErrorCount)
		}
		fmt.Fprintln(a.out, line+")")
	}
}
