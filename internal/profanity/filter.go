// Package profanity flags chat text containing words from a lexicon.
package profanity

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

//go:embed words.txt
var defaultLexicon string

// Filter matches whole words against an Aho-Corasick automaton built from
// the lexicon. Text and lexicon go through the same folding, so "Sh1t" and
// "$HIT" match "shit" while "shitake" does not.
type Filter struct {
	matcher *goahocorasick.Machine
}

// New builds a filter for words. An empty word list yields a filter that
// never flags anything.
func New(words []string) (*Filter, error) {
	patterns := lo.Uniq(lo.FilterMap(words, func(w string, _ int) (string, bool) {
		folded := strings.TrimSpace(fold(w))
		return " " + folded + " ", folded != ""
	}))
	if len(patterns) == 0 {
		return &Filter{}, nil
	}
	sort.Strings(patterns)

	m := new(goahocorasick.Machine)
	if err := m.Build(lo.Map(patterns, func(p string, _ int) []rune {
		return []rune(p)
	})); err != nil {
		return nil, fmt.Errorf("build profanity matcher: %w", err)
	}
	return &Filter{matcher: m}, nil
}

// NewDefault builds a filter from the embedded lexicon.
func NewDefault() (*Filter, error) {
	words, err := ParseWords(strings.NewReader(defaultLexicon))
	if err != nil {
		return nil, err
	}
	return New(words)
}

// NewFromFile builds a filter from a newline-separated lexicon file.
func NewFromFile(path string) (*Filter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()

	words, err := ParseWords(f)
	if err != nil {
		return nil, err
	}
	return New(words)
}

// ParseWords reads one word per line, skipping blanks and # comments.
func ParseWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return words, nil
}

// IsProfane reports whether text contains a lexicon word.
func (f *Filter) IsProfane(text string) bool {
	if f == nil || f.matcher == nil {
		return false
	}
	folded := []rune(" " + fold(text) + " ")
	return len(f.matcher.MultiPatternSearch(folded, true)) > 0
}

// fold lower-cases letters, maps leet-speak substitutes back to letters and
// collapses every other character run into a single space.
func fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		r = simplifyRune(r)
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
			space = false
			continue
		}
		if !space {
			b.WriteRune(' ')
			space = true
		}
	}
	return b.String()
}

func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	case '7':
		return 't'
	default:
		return r
	}
}
