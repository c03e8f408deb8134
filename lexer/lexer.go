// Package lexer tokenizes text with an ordered list of regex and keyword
// rules, on complete buffers or on streams read incrementally.
//
// Each rule becomes an rxparse capture parser; the rules are combined with
// parser.Alt, so the first rule matching at the current position wins and
// a rule that cannot decide on the buffered data yet makes the lexer read
// more input instead of falling through to a later rule.
package lexer

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	"github.com/coregx/rxparse"
	"github.com/coregx/rxparse/parser"
	"github.com/coregx/rxparse/stream"
)

// Token is one lexed token.
//
// Groups holds capture groups 1..n of the rule. A group that did not take
// part in the match is an empty string in Groups and its number is listed
// in Unset.
type Token struct {
	Kind   string   `json:"kind"`
	Text   string   `json:"text"`
	Offset int64    `json:"offset"`
	Groups []string `json:"groups,omitempty"`
	Unset  []int    `json:"unset,omitempty"`
}

// SyntaxError reports input no rule matches.
type SyntaxError struct {
	Offset int64
	Near   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("lexer: no rule matches at offset %d near %q", e.Offset, e.Near)
}

const nearLen = 16

// Lexer is a compiled rule set. It is safe for concurrent use.
type Lexer struct {
	rules []Rule
	next  parser.Parser[[]byte, Token]
}

// New compiles rules.
func New(rules *Rules) (*Lexer, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	alts := make([]parser.Parser[[]byte, Token], 0, len(rules.Rules))
	for _, r := range rules.Rules {
		p, err := compileRule(r)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %q", r.Name)
		}
		alts = append(alts, p)
	}

	return &Lexer{
		rules: append([]Rule(nil), rules.Rules...),
		next:  parser.Alt(alts...),
	}, nil
}

func compileRule(r Rule) (parser.Parser[[]byte, Token], error) {
	var (
		m     *rxparse.Matcher[[]byte]
		first *byteSet
		err   error
	)
	if len(r.Literals) > 0 {
		m, err = rxparse.CompileLiterals[[]byte](r.Literals...)
		first = literalFirstBytes(r.Literals)
	} else {
		m, err = rxparse.Compile[[]byte]("^(?:" + r.Pattern + ")")
		first, _ = firstBytes(r.Pattern)
	}
	if err != nil {
		return nil, err
	}

	kind, skip := r.Name, r.Skip
	capture := m.Capture()
	return parser.Func[[]byte, Token](func(in stream.Stream[[]byte]) (Token, error) {
		// A token cannot start here whatever follows.
		if h := in.PeekFinish(); first != nil && len(h) > 0 && !first[h[0]] {
			return Token{}, parser.Backtrack(in)
		}

		offset := in.Offset()
		caps, err := capture.ParseNext(in)
		if err != nil {
			return Token{}, err
		}

		tok := Token{Kind: kind, Text: string(caps.Match()), Offset: offset}
		if !skip && caps.Len() > 1 {
			tok.Groups = make([]string, caps.Len()-1)
			for i := 1; i < caps.Len(); i++ {
				g, err := caps.Get(i)
				switch {
				case err == nil:
					tok.Groups[i-1] = string(g)
				case errors.Is(err, rxparse.ErrGroupNotMatched):
					tok.Unset = append(tok.Unset, i)
				default:
					return Token{}, err
				}
			}
		}
		return tok, nil
	}), nil
}

// Rules returns the rules the lexer was built from.
func (lx *Lexer) Rules() []Rule {
	return append([]Rule(nil), lx.rules...)
}

// Next lexes one token, including tokens of skip rules.
func (lx *Lexer) Next(in stream.Stream[[]byte]) (Token, error) {
	return lx.next.ParseNext(in)
}

func (lx *Lexer) skipped(kind string) bool {
	for _, r := range lx.rules {
		if r.Name == kind {
			return r.Skip
		}
	}
	return false
}

// Tokenize lexes complete input and returns the non-skipped tokens.
func (lx *Lexer) Tokenize(input []byte) ([]Token, error) {
	var toks []Token
	in := stream.New(input)
	for in.Len() > 0 {
		tok, err := lx.step(in)
		if err != nil {
			return toks, err
		}
		if !lx.skipped(tok.Kind) {
			toks = append(toks, tok)
		}
	}
	return toks, nil
}

func (lx *Lexer) step(in stream.Stream[[]byte]) (Token, error) {
	start := in.Offset()
	tok, err := lx.Next(in)
	if err != nil {
		return Token{}, lx.syntaxError(in, err)
	}
	if in.Offset() == start {
		return Token{}, errors.Wrapf(parser.ErrNoProgress, "rule %q matched the empty string at offset %d", tok.Kind, start)
	}
	return tok, nil
}

func (lx *Lexer) syntaxError(in stream.Stream[[]byte], err error) error {
	if !errors.Is(err, parser.ErrBacktrack) {
		return err
	}
	near := in.PeekFinish()
	if len(near) > nearLen {
		near = near[:nearLen]
	}
	return &SyntaxError{Offset: in.Offset(), Near: string(near)}
}

// Run lexes r incrementally and calls emit for each non-skipped token.
//
// Rules are tried in order at each position. A rule whose pattern cannot
// start with the next byte is skipped at once. A rule that could still match
// once more data arrives, such as a token touching the end of the buffer,
// holds the lexer back until more data arrives or the reader reaches io.EOF.
// A rule whose pattern can match the empty string is never skipped early;
// if such a rule can also fail, as `[a-z]*$` does before the end of input,
// it holds the lexer back at every position.
//
// Run emits the token sequence Tokenize returns for the whole input, unless
// a position stays undecided while more than cfg.MaxBuffered bytes are
// buffered; Run then fails with stream.ErrBufferLimit.
func (lx *Lexer) Run(ctx context.Context, r io.Reader, cfg stream.Config, emit func(Token) error) error {
	src, err := stream.NewReader(r, cfg)
	if err != nil {
		return errors.Wrap(err, "stream config")
	}

	log := commonlog.GetLogger("rxparse.lexer")
	var count int
	err = parser.Drive(ctx, src, lx.next, func(tok Token) error {
		if lx.skipped(tok.Kind) {
			log.Debugf("skip %s at %d", tok.Kind, tok.Offset)
			return nil
		}
		count++
		return emit(tok)
	})
	log.Debugf("lexed %d tokens from %d reads", count, src.Reads())

	switch {
	case err == nil:
		return nil
	case errors.Is(err, parser.ErrBacktrack):
		return lx.syntaxError(src, err)
	case errors.Is(err, parser.ErrNoProgress):
		return errors.Wrapf(err, "empty token at offset %d", src.Offset())
	default:
		return err
	}
}
