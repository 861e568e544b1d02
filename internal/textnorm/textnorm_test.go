package textnorm

import (
	"testing"
)

func TestFoldLowercaseAndSpaces(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		opts Options
		want string
	}{
		{"lowercase", "Daily Note", Options{Lowercase: true}, "daily note"},
		{"strip spaces", "Daily Note", Options{StripSpaces: true}, "DailyNote"},
		{"both", " Daily\tNote ", Options{Lowercase: true, StripSpaces: true}, "dailynote"},
		{"noop", "Daily Note", Options{}, "Daily Note"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Fold(tc.in, tc.opts); got != tc.want {
				t.Fatalf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFoldStripDiacritics(t *testing.T) {
	t.Parallel()

	got := Fold("Jalapeño Résumé", Options{Lowercase: true, StripDiacritics: true})
	if got != "jalapeno resume" {
		t.Fatalf("folded to %q, want %q", got, "jalapeno resume")
	}

	// Combining marks already present in the source fold away too.
	got = Fold("étude", Options{StripDiacritics: true})
	if got != "etude" {
		t.Fatalf("folded to %q, want %q", got, "etude")
	}
}

func TestFoldStripEmoji(t *testing.T) {
	t.Parallel()

	got := Fold("\U0001f525 hot takes", Options{StripEmoji: true, StripSpaces: true})
	if got != "hottakes" {
		t.Fatalf("folded to %q, want %q", got, "hottakes")
	}
}

func TestFoldWithMapTracksOriginalIndices(t *testing.T) {
	t.Parallel()

	folded, idx := FoldWithMap("A bé", Options{Lowercase: true, StripSpaces: true, StripDiacritics: true})
	if folded != "abe" {
		t.Fatalf("folded to %q, want %q", folded, "abe")
	}
	want := []int{0, 2, 3}
	if len(idx) != len(want) {
		t.Fatalf("index map %v, want %v", idx, want)
	}
	for i := range want {
		if idx[i] != want[i] {
			t.Fatalf("index map %v, want %v", idx, want)
		}
	}
}

func TestFoldWithMapEmojiIsOneUnit(t *testing.T) {
	t.Parallel()

	// A surrogate-pair emoji must fold as a single rune mapped to index 0.
	folded, idx := FoldWithMap("\U0001f4ddnotes", Options{Lowercase: true})
	if folded != "\U0001f4ddnotes" {
		t.Fatalf("folded to %q", folded)
	}
	if idx[0] != 0 || idx[1] != 1 {
		t.Fatalf("index map starts %v, want [0 1 ...]", idx[:2])
	}
}

func TestByteToRuneOffset(t *testing.T) {
	t.Parallel()

	text := "\U0001f4dd notés"

	cases := []struct {
		byteOffset int
		want       int
	}{
		{0, 0},
		{4, 1},  // after the 4-byte emoji
		{5, 2},  // after the space
		{2, 0},  // inside the emoji sequence
		{99, 7}, // clamped to the rune length
	}

	for _, tc := range cases {
		if got := ByteToRuneOffset(text, tc.byteOffset); got != tc.want {
			t.Errorf("ByteToRuneOffset(%d) = %d, want %d", tc.byteOffset, got, tc.want)
		}
	}
}
