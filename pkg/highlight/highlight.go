// Package highlight maps slang terms onto the text they were found in and
// partitions that text into plain and highlighted segments.
//
// All offsets are rune offsets into the text. Spans are half-open: Start is
// the first rune of the span and End is one past the last.
package highlight

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/slangscope/slangscope/pkg/models"
)

var ErrInvalidSpan = errors.New("invalid span")

type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Part is one piece of a split text. Index is the position of the span the
// part covers in the spans passed to Split, or -1 for plain text.
type Part struct {
	Text  string
	Index int
}

func (p Part) Highlighted() bool {
	return p.Index >= 0
}

// Split partitions text into alternating plain and highlighted parts, left to
// right. Spans may be given in any order but must be in bounds and must not
// overlap. Empty spans produce no part. Concatenating the parts' Text
// reproduces text exactly.
func Split(text string, spans []Span) ([]Part, error) {
	runes := []rune(text)

	order := make([]int, len(spans))
	for i, s := range spans {
		if s.Start < 0 || s.End > len(runes) || s.Start > s.End {
			return nil, fmt.Errorf("%w: [%d, %d) in text of length %d", ErrInvalidSpan, s.Start, s.End, len(runes))
		}
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return spans[order[a]].Start < spans[order[b]].Start
	})

	parts := make([]Part, 0, 2*len(spans)+1)
	pos := 0
	for _, i := range order {
		s := spans[i]
		if s.Start == s.End {
			continue
		}
		if s.Start < pos {
			return nil, fmt.Errorf("%w: [%d, %d) overlaps a preceding span", ErrInvalidSpan, s.Start, s.End)
		}
		if s.Start > pos {
			parts = append(parts, Part{Text: string(runes[pos:s.Start]), Index: -1})
		}
		parts = append(parts, Part{Text: string(runes[s.Start:s.End]), Index: i})
		pos = s.End
	}
	if pos < len(runes) {
		parts = append(parts, Part{Text: string(runes[pos:]), Index: -1})
	}

	return parts, nil
}

// Normalize returns a copy of terms with indices that are guaranteed to point
// at the term in text. A term keeps its indices when the text at that span
// matches the term case-insensitively. Otherwise the first unclaimed
// occurrence of the term is used. Terms that can't be found get -1 indices.
// No two located terms overlap.
func Normalize(text string, terms []models.SlangTerm) []models.SlangTerm {
	haystack := foldRunes(text)
	claimed := make([]Span, 0, len(terms))
	free := func(s Span) bool {
		for _, c := range claimed {
			if c.overlaps(s) {
				return false
			}
		}
		return true
	}

	out := make([]models.SlangTerm, len(terms))
	for i, term := range terms {
		out[i] = term
		out[i].StartIndex, out[i].EndIndex = -1, -1

		needle := foldRunes(strings.TrimSpace(term.Term))
		if len(needle) == 0 {
			continue
		}

		given := Span{Start: term.StartIndex, End: term.EndIndex}
		if given.End-given.Start == len(needle) && matchAt(haystack, needle, given.Start) && free(given) {
			claimed = append(claimed, given)
			out[i].StartIndex, out[i].EndIndex = given.Start, given.End
			continue
		}

		for start := 0; start+len(needle) <= len(haystack); start++ {
			s := Span{Start: start, End: start + len(needle)}
			if matchAt(haystack, needle, start) && free(s) {
				claimed = append(claimed, s)
				out[i].StartIndex, out[i].EndIndex = s.Start, s.End
				break
			}
		}
	}

	return out
}

// Match is an occurrence of terms[Term] in a text.
type Match struct {
	Span
	Term int
}

// Locate finds every case-insensitive occurrence of every term in text.
// Scanning left to right, the longest term that matches at a position wins and
// matching resumes after it, so the returned matches never overlap. Matches
// are ordered by position.
func Locate(text string, terms []string) []Match {
	type candidate struct {
		needle []rune
		term   int
	}

	seen := make(map[string]bool, len(terms))
	candidates := make([]candidate, 0, len(terms))
	for i, t := range terms {
		needle := foldRunes(strings.TrimSpace(t))
		key := string(needle)
		if len(needle) == 0 || seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, candidate{needle: needle, term: i})
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return len(candidates[a].needle) > len(candidates[b].needle)
	})

	haystack := foldRunes(text)
	var matches []Match
	for pos := 0; pos < len(haystack); {
		matched := false
		for _, c := range candidates {
			if matchAt(haystack, c.needle, pos) {
				matches = append(matches, Match{
					Span: Span{Start: pos, End: pos + len(c.needle)},
					Term: c.term,
				})
				pos += len(c.needle)
				matched = true
				break
			}
		}
		if !matched {
			pos++
		}
	}

	return matches
}

// Highlight splits text into segments, attaching the matching term to every
// occurrence of each term's text.
func Highlight(text string, terms []models.SlangTerm) []models.Segment {
	words := make([]string, len(terms))
	for i, t := range terms {
		words[i] = t.Term
	}

	matches := Locate(text, words)
	spans := make([]Span, len(matches))
	for i, m := range matches {
		spans[i] = m.Span
	}

	// Locate never returns overlapping or out of bounds spans.
	parts, err := Split(text, spans)
	if err != nil {
		return []models.Segment{{Text: text}}
	}

	segments := make([]models.Segment, len(parts))
	for i, p := range parts {
		segments[i] = models.Segment{Text: p.Text}
		if p.Highlighted() {
			term := terms[matches[p.Index].Term]
			segments[i].Term = &term
		}
	}

	return segments
}

// foldRunes lower-cases text rune by rune so offsets are preserved.
func foldRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

func matchAt(haystack, needle []rune, start int) bool {
	if start < 0 || start+len(needle) > len(haystack) {
		return false
	}
	for i, r := range needle {
		if haystack[start+i] != r {
			return false
		}
	}
	return true
}
