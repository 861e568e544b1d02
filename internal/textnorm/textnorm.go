// Package textnorm provides the Unicode-aware folding primitives used by the
// switcher matchers. All folding iterates by code point so multi-byte symbols
// and emoji behave as single units, and every folded rune can be mapped back
// to its index in the original text for highlighting.
package textnorm

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Options selects which folds to apply.
type Options struct {
	Lowercase       bool
	StripSpaces     bool
	StripDiacritics bool
	StripEmoji      bool
}

// Fold returns the folded form of text.
func Fold(text string, opts Options) string {
	folded, _ := FoldWithMap(text, opts)
	return folded
}

// FoldWithMap returns the folded form of text together with an index map:
// indexMap[i] is the rune index in the original text that produced rune i of
// the folded string. Folding never reorders runes, so the map is
// non-decreasing.
func FoldWithMap(text string, opts Options) (string, []int) {
	out := make([]rune, 0, len(text))
	indexMap := make([]int, 0, len(text))

	pos := 0
	for _, r := range text {
		for _, fr := range foldRune(r, opts) {
			out = append(out, fr)
			indexMap = append(indexMap, pos)
		}
		pos++
	}

	return string(out), indexMap
}

func foldRune(r rune, opts Options) []rune {
	if opts.StripSpaces && unicode.IsSpace(r) {
		return nil
	}
	if opts.StripEmoji && IsEmoji(r) {
		return nil
	}

	runes := []rune{r}
	if opts.StripDiacritics {
		runes = stripMarks(r)
	}

	if opts.Lowercase {
		for i, fr := range runes {
			runes[i] = unicode.ToLower(fr)
		}
	}
	return runes
}

// stripMarks decomposes a single rune and drops its combining marks. A rune
// that is itself a combining mark folds to nothing.
func stripMarks(r rune) []rune {
	if unicode.Is(unicode.Mn, r) {
		return nil
	}
	if r < utf8.RuneSelf {
		return []rune{r}
	}

	decomposed := norm.NFD.String(string(r))
	out := make([]rune, 0, 2)
	for _, dr := range decomposed {
		if unicode.Is(unicode.Mn, dr) {
			continue
		}
		out = append(out, dr)
	}
	return out
}

// emojiRanges covers the pictographic blocks stripped by Options.StripEmoji.
// Variation selectors and the zero-width joiner are included so composed
// emoji sequences strip cleanly.
var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x200d, Hi: 0x200d, Stride: 1},
		{Lo: 0x2600, Hi: 0x27bf, Stride: 1},
		{Lo: 0x2b00, Hi: 0x2bff, Stride: 1},
		{Lo: 0xfe0e, Hi: 0xfe0f, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1f1e6, Hi: 0x1f1ff, Stride: 1},
		{Lo: 0x1f300, Hi: 0x1f5ff, Stride: 1},
		{Lo: 0x1f600, Hi: 0x1f64f, Stride: 1},
		{Lo: 0x1f680, Hi: 0x1f6ff, Stride: 1},
		{Lo: 0x1f900, Hi: 0x1f9ff, Stride: 1},
		{Lo: 0x1fa00, Hi: 0x1faff, Stride: 1},
	},
}

// IsEmoji reports whether the rune falls in an emoji codepoint block.
func IsEmoji(r rune) bool {
	return unicode.Is(emojiRanges, r)
}

// ByteToRuneOffset converts a byte offset produced by a byte-oriented tool
// (ripgrep output, for example) into a rune offset within text. Offsets past
// the end of the string clamp to the rune length; offsets landing inside a
// multi-byte sequence resolve to the rune containing them.
func ByteToRuneOffset(text string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(text) {
		return utf8.RuneCountInString(text)
	}

	idx := 0
	for i := range text {
		if i == byteOffset {
			return idx
		}
		if i > byteOffset {
			// The offset landed mid-sequence inside the previous rune.
			return idx - 1
		}
		idx++
	}
	return idx - 1
}
