package notes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppendCreatesDailyFile(t *testing.T) {
	dir := t.TempDir()
	b := NewBook(dir)
	b.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 0, 0, time.Local)
	}

	path, err := b.Append("first thought")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if filepath.Base(path) != "2026-03-14.md" {
		t.Errorf("path = %s, want 2026-03-14.md", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "# 2026-03-14\n\n<!-- 09:26 -->\nfirst thought\n\n"
	if string(data) != want {
		t.Errorf("note content = %q, want %q", data, want)
	}
}

func TestAppendAddsToExistingDay(t *testing.T) {
	dir := t.TempDir()
	b := NewBook(dir)
	clock := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	b.now = func() time.Time { return clock }

	if _, err := b.Append("morning"); err != nil {
		t.Fatal(err)
	}
	clock = clock.Add(6 * time.Hour)
	path, err := b.Append("afternoon")
	if err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	s := string(data)
	if strings.Count(s, "# 2026-03-14") != 1 {
		t.Errorf("heading written more than once:\n%s", s)
	}
	if !strings.Contains(s, "<!-- 09:00 -->\nmorning") || !strings.Contains(s, "<!-- 15:00 -->\nafternoon") {
		t.Errorf("entries missing:\n%s", s)
	}
}
