package lexer

import (
	"regexp/syntax"
	"unicode"
	"unicode/utf8"
)

// byteSet holds the bytes a token of one rule can start with.
type byteSet [256]bool

func (s *byteSet) addAll() {
	for i := range s {
		s[i] = true
	}
}

func (s *byteSet) addRune(r rune) {
	var buf [utf8.UTFMax]byte
	utf8.EncodeRune(buf[:], r)
	s[buf[0]] = true
}

// addRange adds the first bytes of every rune in [lo, hi]. Non-ASCII runes
// add every byte >= 0x80, which also covers invalid UTF-8 in byte input.
func (s *byteSet) addRange(lo, hi rune) {
	for r := lo; r <= hi && r < utf8.RuneSelf; r++ {
		s[r] = true
	}
	if hi >= utf8.RuneSelf {
		for b := utf8.RuneSelf; b < len(s); b++ {
			s[b] = true
		}
	}
}

// firstBytes returns the bytes a match of pattern can start with. ok is
// false if pattern can match the empty string or cannot be analyzed; then
// no byte rules a match out.
func firstBytes(pattern string) (set *byteSet, ok bool) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, false
	}
	set = new(byteSet)
	if nullable := addFirst(set, re); nullable {
		return nil, false
	}
	return set, true
}

// literalFirstBytes returns the first bytes of words.
func literalFirstBytes(words []string) *byteSet {
	set := new(byteSet)
	for _, w := range words {
		if w != "" {
			set[w[0]] = true
		}
	}
	return set
}

// addFirst adds the possible first bytes of re to set and reports whether
// re can match the empty string.
func addFirst(set *byteSet, re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpNoMatch:
		return false
	case syntax.OpEmptyMatch, syntax.OpBeginLine, syntax.OpEndLine,
		syntax.OpBeginText, syntax.OpEndText, syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	case syntax.OpLiteral:
		if len(re.Rune) == 0 {
			return true
		}
		r := re.Rune[0]
		set.addRune(r)
		if re.Flags&syntax.FoldCase != 0 {
			for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
				set.addRune(f)
			}
		}
		return false
	case syntax.OpCharClass:
		for i := 0; i+1 < len(re.Rune); i += 2 {
			set.addRange(re.Rune[i], re.Rune[i+1])
		}
		return false
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		set.addAll()
		return false
	case syntax.OpCapture:
		return addFirst(set, re.Sub[0])
	case syntax.OpStar, syntax.OpQuest:
		addFirst(set, re.Sub[0])
		return true
	case syntax.OpPlus:
		return addFirst(set, re.Sub[0])
	case syntax.OpRepeat:
		return addFirst(set, re.Sub[0]) || re.Min == 0
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			if !addFirst(set, sub) {
				return false
			}
		}
		return true
	case syntax.OpAlternate:
		nullable := false
		for _, sub := range re.Sub {
			if addFirst(set, sub) {
				nullable = true
			}
		}
		return nullable
	}
	set.addAll()
	return true
}
