package highlight

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slangscope/slangscope/pkg/models"
)

const testText = "That new track is fire, it really slaps. No cap."

func joinParts(parts []Part) string {
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		spans    []Span
		expected []Part
	}{
		{
			name:     "no spans",
			text:     "plain text",
			expected: []Part{{Text: "plain text", Index: -1}},
		},
		{
			name:     "empty text",
			text:     "",
			expected: []Part{},
		},
		{
			name:  "middle",
			text:  "it really slaps today",
			spans: []Span{{Start: 10, End: 15}},
			expected: []Part{
				{Text: "it really ", Index: -1},
				{Text: "slaps", Index: 0},
				{Text: " today", Index: -1},
			},
		},
		{
			name:  "edges and adjacency, unordered",
			text:  "lowkey bussin",
			spans: []Span{{Start: 7, End: 13}, {Start: 0, End: 6}, {Start: 6, End: 7}},
			expected: []Part{
				{Text: "lowkey", Index: 1},
				{Text: " ", Index: 2},
				{Text: "bussin", Index: 0},
			},
		},
		{
			name:     "empty span",
			text:     "no cap fr",
			spans:    []Span{{Start: 3, End: 3}},
			expected: []Part{{Text: "no cap fr", Index: -1}},
		},
		{
			name:  "empty span inside and beside spans",
			text:  "no cap fr",
			spans: []Span{{Start: 3, End: 6}, {Start: 4, End: 4}, {Start: 9, End: 9}, {Start: 0, End: 0}},
			expected: []Part{
				{Text: "no ", Index: -1},
				{Text: "cap", Index: 0},
				{Text: " fr", Index: -1},
			},
		},
		{
			name:  "multibyte runes",
			text:  "c'est ouf 🔥 grave",
			spans: []Span{{Start: 10, End: 11}, {Start: 12, End: 17}},
			expected: []Part{
				{Text: "c'est ouf ", Index: -1},
				{Text: "🔥", Index: 0},
				{Text: " ", Index: -1},
				{Text: "grave", Index: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := Split(tt.text, tt.spans)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, parts)
			assert.Equal(t, tt.text, joinParts(parts))
		})
	}
}

func TestSplit_InvalidSpans(t *testing.T) {
	tests := []struct {
		name  string
		spans []Span
	}{
		{name: "negative start", spans: []Span{{Start: -1, End: 2}}},
		{name: "past end", spans: []Span{{Start: 3, End: 99}}},
		{name: "reversed", spans: []Span{{Start: 4, End: 2}}},
		{name: "overlap", spans: []Span{{Start: 0, End: 4}, {Start: 3, End: 6}}},
		{name: "duplicate", spans: []Span{{Start: 1, End: 3}, {Start: 1, End: 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split("no cap fr fr", tt.spans)
			assert.ErrorIs(t, err, ErrInvalidSpan)
		})
	}
}

func TestSplit_ReproducesText(t *testing.T) {
	faker := gofakeit.New(42)

	for i := 0; i < 200; i++ {
		text := faker.Sentence(faker.Number(0, 30))
		if i%5 == 0 {
			text += " ¡Qué chévere! 你好 🔥"
		}
		length := len([]rune(text))

		var spans []Span
		pos := 0
		for pos < length {
			start := pos + faker.Number(0, 6)
			end := start + faker.Number(0, 8)
			if end > length {
				break
			}
			spans = append(spans, Span{Start: start, End: end})
			pos = end
		}

		parts, err := Split(text, spans)
		require.NoError(t, err, "text %q spans %v", text, spans)
		assert.Equal(t, text, joinParts(parts))

		highlighted := 0
		for _, p := range parts {
			if p.Highlighted() {
				highlighted++
			}
		}
		nonEmpty := 0
		for _, s := range spans {
			if s.End > s.Start {
				nonEmpty++
			}
		}
		assert.Equal(t, nonEmpty, highlighted)
	}
}

func slangTerms(words ...string) []models.SlangTerm {
	terms := make([]models.SlangTerm, len(words))
	for i, w := range words {
		terms[i] = models.SlangTerm{Term: w, Meaning: "m", CountryOfOrigin: "US", EstimatedAgeRange: "16-30"}
	}
	return terms
}

func TestNormalize(t *testing.T) {
	t.Run("correct indices are kept", func(t *testing.T) {
		terms := slangTerms("fire", "slaps", "No cap")
		terms[0].StartIndex, terms[0].EndIndex = 18, 22
		terms[1].StartIndex, terms[1].EndIndex = 34, 39
		terms[2].StartIndex, terms[2].EndIndex = 41, 47

		got := Normalize(testText, terms)
		assert.Equal(t, terms, got)
	})

	t.Run("wrong indices are repaired", func(t *testing.T) {
		terms := slangTerms("slaps", "NO CAP")
		terms[0].StartIndex, terms[0].EndIndex = 0, 5
		terms[1].StartIndex, terms[1].EndIndex = 40, 46

		got := Normalize(testText, terms)
		assert.Equal(t, 34, got[0].StartIndex)
		assert.Equal(t, 39, got[0].EndIndex)
		assert.Equal(t, 41, got[1].StartIndex)
		assert.Equal(t, 47, got[1].EndIndex)
		// input is not modified
		assert.Equal(t, 0, terms[0].StartIndex)
	})

	t.Run("missing terms get -1", func(t *testing.T) {
		got := Normalize(testText, slangTerms("rizz", " "))
		for _, term := range got {
			assert.Equal(t, -1, term.StartIndex)
			assert.Equal(t, -1, term.EndIndex)
			assert.False(t, term.Located())
		}
	})

	t.Run("repeated term claims the next occurrence", func(t *testing.T) {
		text := "fr fr that's facts"
		got := Normalize(text, slangTerms("fr", "fr", "fr"))
		assert.Equal(t, []int{0, 2}, []int{got[0].StartIndex, got[0].EndIndex})
		assert.Equal(t, []int{3, 5}, []int{got[1].StartIndex, got[1].EndIndex})
		assert.Equal(t, []int{-1, -1}, []int{got[2].StartIndex, got[2].EndIndex})
	})

	t.Run("overlapping term is searched again", func(t *testing.T) {
		text := "no cap, cap"
		terms := slangTerms("no cap", "cap")
		terms[0].StartIndex, terms[0].EndIndex = 0, 6
		terms[1].StartIndex, terms[1].EndIndex = 3, 6

		got := Normalize(text, terms)
		assert.Equal(t, []int{0, 6}, []int{got[0].StartIndex, got[0].EndIndex})
		assert.Equal(t, []int{8, 11}, []int{got[1].StartIndex, got[1].EndIndex})
	})

	t.Run("rune offsets", func(t *testing.T) {
		text := "¡Qué chévere!"
		got := Normalize(text, slangTerms("chévere"))
		assert.Equal(t, 5, got[0].StartIndex)
		assert.Equal(t, 12, got[0].EndIndex)
	})
}

func TestNormalize_NeverInvalid(t *testing.T) {
	faker := gofakeit.New(7)

	for i := 0; i < 200; i++ {
		text := faker.Sentence(faker.Number(1, 25))
		words := strings.Fields(text)

		terms := make([]models.SlangTerm, faker.Number(0, 8))
		for j := range terms {
			terms[j].Term = words[faker.Number(0, len(words)-1)]
			if j%3 == 0 {
				terms[j].Term = faker.Word()
			}
			terms[j].StartIndex = faker.Number(-5, 200)
			terms[j].EndIndex = faker.Number(-5, 200)
		}

		got := Normalize(text, terms)
		require.Len(t, got, len(terms))

		var spans []Span
		for _, term := range got {
			if term.StartIndex == -1 {
				assert.Equal(t, -1, term.EndIndex)
				continue
			}
			spans = append(spans, Span{Start: term.StartIndex, End: term.EndIndex})
			assert.True(
				t,
				strings.EqualFold(term.Term, string([]rune(text)[term.StartIndex:term.EndIndex])),
			)
		}

		parts, err := Split(text, spans)
		require.NoError(t, err, "text %q spans %v", text, spans)
		assert.Equal(t, text, joinParts(parts))
	}
}

func TestLocate(t *testing.T) {
	t.Run("every occurrence, case-insensitive", func(t *testing.T) {
		got := Locate("Fire fire FIRE", []string{"fire"})
		assert.Equal(t, []Match{
			{Span: Span{Start: 0, End: 4}, Term: 0},
			{Span: Span{Start: 5, End: 9}, Term: 0},
			{Span: Span{Start: 10, End: 14}, Term: 0},
		}, got)
	})

	t.Run("longest term first", func(t *testing.T) {
		got := Locate("no cap, just cap", []string{"cap", "no cap"})
		assert.Equal(t, []Match{
			{Span: Span{Start: 0, End: 6}, Term: 1},
			{Span: Span{Start: 13, End: 16}, Term: 0},
		}, got)
	})

	t.Run("leftmost match wins", func(t *testing.T) {
		got := Locate("xabc", []string{"abc", "xa"})
		assert.Equal(t, []Match{{Span: Span{Start: 0, End: 2}, Term: 1}}, got)
	})

	t.Run("blank and duplicate terms", func(t *testing.T) {
		got := Locate("bet", []string{"", "  ", "bet", "BET"})
		assert.Equal(t, []Match{{Span: Span{Start: 0, End: 3}, Term: 2}}, got)
	})

	t.Run("regex metacharacters are literal", func(t *testing.T) {
		got := Locate("that's a W (big win) lol", []string{"(big win)", "w"})
		assert.Equal(t, []Match{
			{Span: Span{Start: 9, End: 10}, Term: 1},
			{Span: Span{Start: 11, End: 20}, Term: 0},
		}, got)
	})
}

func TestHighlight(t *testing.T) {
	terms := slangTerms("fire", "slaps", "No cap")
	terms[0].Meaning = "Excellent."

	segments := Highlight(testText, terms)

	var sb strings.Builder
	var highlighted []string
	for _, s := range segments {
		sb.WriteString(s.Text)
		if s.Term != nil {
			highlighted = append(highlighted, s.Text)
		}
	}
	assert.Equal(t, testText, sb.String())
	assert.Equal(t, []string{"fire", "slaps", "No cap"}, highlighted)
	assert.Equal(t, "Excellent.", segments[1].Term.Meaning)
}

func TestHighlight_NoTerms(t *testing.T) {
	segments := Highlight(testText, nil)
	assert.Equal(t, []models.Segment{{Text: testText}}, segments)
}
