package spdx

import "strings"

// Visitor resolves a raw identifier token to its canonical form.
// Returning "" rejects the token as unrecognized.
type Visitor func(id string) string

// ExceptionPolicy decides what happens to a leaf whose WITH clause names an
// exception identifier the exception visitor rejects.
type ExceptionPolicy int

const (
	// DropException keeps the base license and discards the unrecognized
	// exception clause. A recognized base license is still real signal.
	DropException ExceptionPolicy = iota

	// DegradeLeaf turns the whole leaf into Unknown when its exception
	// identifier is rejected.
	DegradeLeaf
)

type parseConfig struct {
	visit           Visitor
	visitException  Visitor
	exceptionPolicy ExceptionPolicy
}

// Option configures a single Parse/Normalize call.
type Option func(*parseConfig)

// WithVisitor replaces the default license-identifier visitor
// (case-insensitive canonical-table lookup with LicenseRef passthrough).
func WithVisitor(v Visitor) Option {
	return func(c *parseConfig) { c.visit = v }
}

// WithExceptionVisitor replaces the default exception-identifier visitor.
func WithExceptionVisitor(v Visitor) Option {
	return func(c *parseConfig) { c.visitException = v }
}

// WithExceptionPolicy sets the handling of rejected exception identifiers.
func WithExceptionPolicy(p ExceptionPolicy) Option {
	return func(c *parseConfig) { c.exceptionPolicy = p }
}

// Parse parses license-expression text into an expression tree.
//
// Grammar (keywords case-insensitive, whitespace-insensitive):
//
//	expr        := orExpr
//	orExpr      := andExpr ( "OR" andExpr )*      -- left-associative
//	andExpr     := term ( "AND" term )*           -- binds tighter than OR
//	term        := "(" expr ")" | licenseAtom
//	licenseAtom := IDENTIFIER ["+"] ["WITH" EXCEPTION_ID]
//
// Parse never fails hard: any syntax error (unbalanced parens, missing
// operand, malformed token) yields Unknown{} for the whole input, and a leaf
// whose identifier the visitor rejects becomes an Unknown leaf without
// aborting the surrounding expression.
func Parse(text string, opts ...Option) Expression {
	cfg := parseConfig{
		visit:           LookupLicense,
		visitException:  LookupException,
		exceptionPolicy: DropException,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	toks, ok := lex(text)
	if !ok || len(toks) == 0 {
		return Unknown{}
	}

	p := &parser{toks: toks, cfg: cfg}
	expr, ok := p.parseOr()
	if !ok || p.pos != len(p.toks) {
		return Unknown{}
	}
	return expr
}

// ---- lexer ----

type tokenKind int

const (
	tokWord tokenKind = iota
	tokLParen
	tokRParen
	tokPlus
)

type token struct {
	kind tokenKind
	text string
}

// lex splits expression text into parens, identifier words and trailing-plus
// markers. Returns ok=false on any character that cannot start a token.
func lex(text string) ([]token, bool) {
	var toks []token
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen})
			i++
		case isIdentByte(c):
			start := i
			for i < len(text) && isIdentByte(text[i]) {
				i++
			}
			toks = append(toks, token{kind: tokWord, text: text[start:i]})
			// A '+' glued to the identifier is the or-later marker.
			if i < len(text) && text[i] == '+' {
				toks = append(toks, token{kind: tokPlus})
				i++
			}
		default:
			return nil, false
		}
	}
	return toks, true
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '-' || c == '.' || c == ':' || c == '_'
}

// ---- recursive-descent parser ----

type parser struct {
	toks []token
	pos  int
	cfg  parseConfig
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

// keyword consumes the next token if it is the given keyword
// (case-insensitive) and reports whether it did.
func (p *parser) keyword(kw string) bool {
	tok, ok := p.peek()
	if !ok || tok.kind != tokWord || !strings.EqualFold(tok.text, kw) {
		return false
	}
	p.pos++
	return true
}

func (p *parser) parseOr() (Expression, bool) {
	left, ok := p.parseAnd()
	if !ok {
		return nil, false
	}
	for p.keyword("OR") {
		right, ok := p.parseAnd()
		if !ok {
			return nil, false
		}
		left = Binary{Left: left, Right: right, Op: Or}
	}
	return left, true
}

func (p *parser) parseAnd() (Expression, bool) {
	left, ok := p.parseTerm()
	if !ok {
		return nil, false
	}
	for p.keyword("AND") {
		right, ok := p.parseTerm()
		if !ok {
			return nil, false
		}
		left = Binary{Left: left, Right: right, Op: And}
	}
	return left, true
}

func (p *parser) parseTerm() (Expression, bool) {
	tok, ok := p.peek()
	if !ok {
		return nil, false
	}
	if tok.kind == tokLParen {
		p.pos++
		expr, ok := p.parseOr()
		if !ok {
			return nil, false
		}
		closing, ok := p.peek()
		if !ok || closing.kind != tokRParen {
			return nil, false
		}
		p.pos++
		return expr, true
	}
	return p.parseLeaf()
}

func (p *parser) parseLeaf() (Expression, bool) {
	tok, ok := p.peek()
	if !ok || tok.kind != tokWord {
		return nil, false
	}
	// Keywords cannot stand in for an identifier; "MIT AND OR X" is a
	// syntax error, not a license named OR.
	if strings.EqualFold(tok.text, "AND") || strings.EqualFold(tok.text, "OR") || strings.EqualFold(tok.text, "WITH") {
		return nil, false
	}
	p.pos++

	plus := false
	if next, ok := p.peek(); ok && next.kind == tokPlus {
		plus = true
		p.pos++
	}

	exception := ""
	degraded := false
	if p.keyword("WITH") {
		exTok, ok := p.peek()
		if !ok || exTok.kind != tokWord {
			return nil, false
		}
		p.pos++
		exception = p.cfg.visitException(exTok.text)
		if exception == "" {
			// Rejected exception id: the clause was syntactically valid,
			// so this is a recognition problem, handled per policy.
			if p.cfg.exceptionPolicy == DegradeLeaf {
				degraded = true
			}
		}
	}

	id := p.cfg.visit(tok.text)
	if id == "" || degraded {
		// Unrecognized leaf: Unknown in place, the rest of the
		// expression still parses.
		return Unknown{}, true
	}
	return Leaf{ID: id, Plus: plus, Exception: exception}, true
}
