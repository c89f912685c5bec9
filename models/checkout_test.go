package models_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"brightwork/api/models"
)

func TestClampNotesUnderLimitUnchanged(t *testing.T) {
	notes := "prefers mornings"
	if got := models.ClampNotes(notes); got != notes {
		t.Fatalf("expected short notes untouched, got %q", got)
	}
	if got := models.ClampNotes(""); got != "" {
		t.Fatalf("expected empty notes untouched, got %q", got)
	}
}

func TestClampNotesExactLimitUnchanged(t *testing.T) {
	notes := strings.Repeat("a", models.MaxNotesLen)
	got := models.ClampNotes(notes)
	if got != notes {
		t.Fatalf("expected notes at the limit untouched, got %d chars", utf8.RuneCountInString(got))
	}
}

func TestClampNotesOverLimitTruncated(t *testing.T) {
	notes := strings.Repeat("a", models.MaxNotesLen+100)
	got := models.ClampNotes(notes)
	if utf8.RuneCountInString(got) != models.MaxNotesLen {
		t.Fatalf("expected %d chars, got %d", models.MaxNotesLen, utf8.RuneCountInString(got))
	}
	if !strings.HasPrefix(notes, got) {
		t.Fatalf("expected a prefix of the input")
	}
}

// The limit counts Unicode code points: truncation never splits a
// multi-byte character, and characters outside the Basic Multilingual
// Plane count as one each.
func TestClampNotesMultiByteRunes(t *testing.T) {
	notes := strings.Repeat("é", models.MaxNotesLen+1)
	got := models.ClampNotes(notes)
	if !utf8.ValidString(got) {
		t.Fatalf("expected valid UTF-8 after truncation")
	}
	if utf8.RuneCountInString(got) != models.MaxNotesLen {
		t.Fatalf("expected %d chars, got %d", models.MaxNotesLen, utf8.RuneCountInString(got))
	}

	astral := strings.Repeat("\U0001F680", models.MaxNotesLen+5)
	got = models.ClampNotes(astral)
	if utf8.RuneCountInString(got) != models.MaxNotesLen {
		t.Fatalf("expected %d astral chars, got %d", models.MaxNotesLen, utf8.RuneCountInString(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("expected valid UTF-8 after truncation")
	}
}
