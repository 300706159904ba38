// Package notes appends transcriptions to daily markdown files, one
// file per day, each entry preceded by an HTML-comment timestamp so
// the rendered note stays clean.
package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Book struct {
	Dir string
	now func() time.Time
}

func NewBook(dir string) *Book {
	return &Book{Dir: dir, now: time.Now}
}

// Append writes text to today's note, creating the file with a date
// heading if needed. Returns the note's path.
func (b *Book) Append(text string) (string, error) {
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return "", fmt.Errorf("notes dir: %w", err)
	}

	now := b.now()
	day := now.Format("2006-01-02")
	path := filepath.Join(b.Dir, day+".md")

	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open note: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintf(f, "# %s\n\n", day); err != nil {
			return "", err
		}
	}
	if _, err := fmt.Fprintf(f, "<!-- %s -->\n%s\n\n", now.Format("15:04"), text); err != nil {
		return "", err
	}
	return path, nil
}
