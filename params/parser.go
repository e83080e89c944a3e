package params

import (
	"fmt"
)

// Parameter is a single declared parameter of a function or constructor.
type Parameter struct {
	Name string
	// Optional is true when the parameter declares a default value.
	Optional bool
}

// SyntaxError is returned when the parser meets a token it does not expect.
type SyntaxError struct {
	Type   TokenType
	Value  string
	Offset int
}

func (e *SyntaxError) Error() string {
	if e.Value != "" && e.Value != string(e.Type) {
		return fmt.Sprintf("parsing parameter list: unexpected %s token (%s) at offset %d", e.Type, e.Value, e.Offset)
	}
	return fmt.Sprintf("parsing parameter list: unexpected %s token at offset %d", e.Type, e.Offset)
}

// Parse returns the parameters declared by the function or class source text.
//
// For a class declaration the parameters of its constructor are returned.
// If the class does not declare a constructor, Parse returns a nil slice and
// a nil error: the caller decides whether to look at a parent class (see
// [ParseInherited]). Zero parameters are returned as an empty, non-nil slice.
func Parse(src string) ([]Parameter, error) {
	p := &parser{tokens: NewTokenizer(src)}
	return p.parse()
}

// ParseInherited parses a class hierarchy, ordered from the derived class to
// the root base class, and returns the parameters of the first constructor found.
//
// A hierarchy without any constructor has no parameters.
func ParseInherited(sources ...string) ([]Parameter, error) {
	for _, src := range sources {
		params, err := Parse(src)
		if err != nil {
			return nil, err
		}
		if params != nil {
			return params, nil
		}
	}

	return []Parameter{}, nil
}

type parser struct {
	tokens *Tokenizer
	tok    Token
	params []Parameter
}

func (p *parser) next(flags Flags) Token {
	p.tok = p.tokens.Next(flags)
	return p.tok
}

func (p *parser) unexpected() error {
	return &SyntaxError{
		Type:   p.tok.Type,
		Value:  p.tok.Value,
		Offset: p.tok.Offset,
	}
}

func (p *parser) parse() ([]Parameter, error) {
	p.params = []Parameter{}
	p.next(None)

	for !p.tokens.Done() {
		switch p.tok.Type {
		case TokenClass:
			if !p.skipUntilConstructor() {
				return nil, nil
			}
			p.next(None)

		case TokenFunction:
			// Skip the generator star and the function name, if present.
			if p.next(None).Type == TokenStar {
				p.next(None)
			}
			if p.tok.Type == TokenIdent {
				p.next(None)
			}

		case TokenOpenParen:
			if err := p.parseParams(); err != nil {
				return nil, err
			}

		case TokenCloseParen:
			return p.params, nil

		case TokenIdent:
			// A paren-less arrow function has exactly one parameter.
			name := p.tok.Value
			if name == "async" {
				if p.next(None).Type != TokenEquals {
					continue
				}
			}
			p.params = append(p.params, Parameter{Name: name})
			return p.params, nil

		default:
			return nil, p.unexpected()
		}
	}

	return p.params, nil
}

func (p *parser) skipUntilConstructor() bool {
	for !p.tokens.Done() {
		if p.tok.Type == TokenIdent && p.tok.Value == "constructor" {
			return true
		}
		p.next(Dumb)
	}
	return false
}

// parseParams consumes a parameter list up to and including the closing paren.
func (p *parser) parseParams() error {
	var last *Parameter

	for !p.tokens.Done() {
		switch p.next(None).Type {
		case TokenIdent:
			p.params = append(p.params, Parameter{Name: p.tok.Value})
			last = &p.params[len(p.params)-1]

		case TokenEquals:
			if last == nil {
				return p.unexpected()
			}
			last.Optional = true

		case TokenComma:
			last = nil

		case TokenCloseParen:
			return nil

		case TokenEOF:
			return nil

		default:
			return p.unexpected()
		}
	}

	return nil
}
