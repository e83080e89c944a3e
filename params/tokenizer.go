package params

import (
	"unicode"
	"unicode/utf8"
)

// TokenType identifies the kind of a [Token].
type TokenType string

// Token types produced by the [Tokenizer].
const (
	TokenIdent      TokenType = "ident"
	TokenOpenParen  TokenType = "("
	TokenCloseParen TokenType = ")"
	TokenComma      TokenType = ","
	TokenEquals     TokenType = "="
	TokenStar       TokenType = "*"
	TokenFunction   TokenType = "function"
	TokenClass      TokenType = "class"
	TokenEOF        TokenType = "EOF"
)

// Token is a single lexical unit of a function or class signature.
type Token struct {
	Type  TokenType
	Value string
	// Offset is the byte offset of the token in the source.
	Offset int
}

// Flags change how [Tokenizer.Next] scans the next token.
type Flags uint8

const (
	// None is the default scanning mode.
	None Flags = 0

	// Dumb disables default-value skipping after "=".
	// It is used while scanning class bodies, which are not parameter lists.
	Dumb Flags = 1
)

// Tokenizer scans the source text of a function or class declaration.
//
// It only knows enough about the language to find parameter names:
// everything that is not an identifier, a keyword or one of the punctuation
// tokens is skipped.
type Tokenizer struct {
	src   string
	pos   int
	depth int
	flags Flags
	tok   Token
}

// NewTokenizer returns a Tokenizer positioned at the start of src.
func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{
		src: src,
		tok: Token{Type: TokenEOF},
	}
}

// Next advances to the next token and returns it.
func (t *Tokenizer) Next(flags Flags) Token {
	t.flags = flags
	t.advance()
	return t.tok
}

// Done reports whether the last token returned was EOF.
func (t *Tokenizer) Done() bool {
	return t.tok.Type == TokenEOF
}

// Depth returns the current parenthesis nesting depth.
func (t *Tokenizer) Depth() int {
	return t.depth
}

func (t *Tokenizer) emit(typ TokenType, value string, offset int) {
	t.tok = Token{Type: typ, Value: value, Offset: offset}
}

func (t *Tokenizer) advance() {
	for t.pos < len(t.src) {
		start := t.pos
		r, size := utf8.DecodeRuneInString(t.src[t.pos:])

		switch {
		case unicode.IsSpace(r):
			t.pos += size

		case r == '(':
			t.pos++
			t.depth++
			t.emit(TokenOpenParen, "(", start)
			return

		case r == ')':
			t.pos++
			t.depth--
			t.emit(TokenCloseParen, ")", start)
			return

		case r == ',':
			t.pos++
			t.emit(TokenComma, ",", start)
			return

		case r == '*':
			t.pos++
			t.emit(TokenStar, "*", start)
			return

		case r == '=':
			t.pos++
			if t.flags&Dumb == 0 {
				t.skipExpression()
			}
			t.emit(TokenEquals, "=", start)
			return

		case r == '/':
			t.skipComment()

		case isQuote(r):
			t.skipString()

		case isIdentStart(r):
			value := t.scanIdent()
			switch value {
			case "function":
				t.emit(TokenFunction, value, start)
			case "class":
				t.emit(TokenClass, value, start)
			default:
				t.emit(TokenIdent, value, start)
			}
			return

		default:
			t.pos += size
		}
	}

	t.emit(TokenEOF, "", len(t.src))
}

func (t *Tokenizer) scanIdent() string {
	start := t.pos
	for t.pos < len(t.src) {
		r, size := utf8.DecodeRuneInString(t.src[t.pos:])
		if !isIdentPart(r) {
			break
		}
		t.pos += size
	}
	return t.src[start:t.pos]
}

// skipComment skips a comment starting at the current position,
// or only the slash when it does not start a comment.
func (t *Tokenizer) skipComment() {
	if t.pos+1 >= len(t.src) {
		t.pos++
		return
	}

	switch t.src[t.pos+1] {
	case '/':
		t.pos += 2
		for t.pos < len(t.src) && t.src[t.pos] != '\n' {
			t.pos++
		}
		return

	case '*':
		t.pos += 2
		for t.pos < len(t.src) {
			if t.src[t.pos] == '*' && t.pos+1 < len(t.src) && t.src[t.pos+1] == '/' {
				t.pos += 2
				return
			}
			t.pos++
		}
		return
	}

	t.pos++
}

// skipExpression skips a default-value expression.
//
// It stops in front of the first comma or closing paren at the depth the
// expression started, so the next token is the one terminating the parameter.
// Nested brackets and literals are skipped as a whole.
func (t *Tokenizer) skipExpression() {
	root := t.depth
	nested := 0

	for t.pos < len(t.src) {
		ch := t.src[t.pos]

		switch ch {
		case ',':
			if t.depth == root && nested == 0 {
				return
			}
		case '(':
			t.depth++
		case ')':
			if t.depth == root {
				return
			}
			t.depth--
		case '[', '{':
			nested++
		case ']', '}':
			if nested > 0 {
				nested--
			}
		case '\'', '"', '`':
			t.skipString()
			continue
		case '/':
			if t.pos+1 < len(t.src) && (t.src[t.pos+1] == '/' || t.src[t.pos+1] == '*') {
				t.skipComment()
				continue
			}
		}

		t.pos++
	}
}

// skipString skips a quoted string or template literal starting at the
// current position, including any ${...} interpolations.
func (t *Tokenizer) skipString() {
	quote := t.src[t.pos]
	t.pos++

	for t.pos < len(t.src) {
		ch := t.src[t.pos]

		switch {
		case ch == '\\':
			t.pos += 2
			continue
		case ch == quote:
			t.pos++
			return
		case quote == '`' && ch == '$' && t.pos+1 < len(t.src) && t.src[t.pos+1] == '{':
			t.pos += 2
			t.skipInterpolation()
			continue
		}

		t.pos++
	}
}

func (t *Tokenizer) skipInterpolation() {
	braces := 1

	for t.pos < len(t.src) {
		switch t.src[t.pos] {
		case '\'', '"', '`':
			t.skipString()
			continue
		case '{':
			braces++
		case '}':
			braces--
			if braces == 0 {
				t.pos++
				return
			}
		}

		t.pos++
	}
}

func isQuote(r rune) bool {
	return r == '\'' || r == '"' || r == '`'
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
