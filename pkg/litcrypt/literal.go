package litcrypt

import (
	"errors"
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"
	"unicode/utf8"
)

var (
	ErrArgumentCount = errors.New("expected exactly one literal argument")
	ErrArgumentKind  = errors.New("expected a string literal argument")
)

// LiteralKind identifies the surface syntax a Literal was written in.
type LiteralKind uint8

const (
	// PlainLiteral is a double-quoted string, with escape sequences interpreted.
	PlainLiteral LiteralKind = iota + 1
	// RawLiteral is a back-quoted string, taken byte for byte.
	RawLiteral
)

func (k LiteralKind) String() string {
	switch k {
	case PlainLiteral:
		return "plain"
	case RawLiteral:
		return "raw"
	default:
		return fmt.Sprintf("LiteralKind(%d)", uint8(k))
	}
}

// Literal is the text of one transformation site, normalized from its surface syntax.
// Value is what gets screened, regardless of Kind.
type Literal struct {
	Kind   LiteralKind
	Source string
	Value  string
}

func (l Literal) validate() error {
	switch l.Kind {
	case PlainLiteral, RawLiteral:
		return nil
	default:
		return fmt.Errorf("%w: unknown literal kind %s", ErrArgumentKind, l.Kind)
	}
}

type scannedToken struct {
	tok token.Token
	lit string
}

// ParseLiteral parses src as exactly one Go string literal token.
// Zero or several tokens are reported with ErrArgumentCount, and anything other than a well-formed string literal with ErrArgumentKind.
// A literal whose escapes produce invalid UTF-8, like "\xff", is also an ErrArgumentKind.
func ParseLiteral(src string) (Literal, error) {
	var (
		s       scanner.Scanner
		fset    = token.NewFileSet()
		file    = fset.AddFile("literal", fset.Base(), len(src))
		scanErr error
		tokens  []scannedToken
	)
	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		if scanErr == nil {
			scanErr = fmt.Errorf("%w: column %d: %s", ErrArgumentKind, pos.Column, msg)
		}
	}, 0)
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		if tok == token.SEMICOLON && lit == "\n" {
			// Inserted automatically after the last token.
			continue
		}
		tokens = append(tokens, scannedToken{tok: tok, lit: lit})
	}
	if scanErr != nil {
		return Literal{}, scanErr
	}
	if len(tokens) != 1 {
		return Literal{}, fmt.Errorf("%w, got %d", ErrArgumentCount, len(tokens))
	}
	t := tokens[0]
	if t.tok != token.STRING {
		desc := t.tok.String()
		if t.lit != "" {
			desc = t.lit
		}
		return Literal{}, fmt.Errorf("%w, got %s", ErrArgumentKind, desc)
	}
	value, err := strconv.Unquote(t.lit)
	if err != nil {
		return Literal{}, fmt.Errorf("%w: %v", ErrArgumentKind, err)
	}
	if !utf8.ValidString(value) {
		return Literal{}, fmt.Errorf("%w: %s is not valid UTF-8 text", ErrArgumentKind, t.lit)
	}
	kind := PlainLiteral
	if t.lit[0] == '`' {
		kind = RawLiteral
	}
	return Literal{
		Kind:   kind,
		Source: t.lit,
		Value:  value,
	}, nil
}
