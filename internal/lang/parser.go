package lang

import (
	"fmt"
	"strconv"
)

var opKeywords = map[string]Op{
	"+": OpAdd, "-": OpSub, "*": OpMul, "/": OpDiv,
	"max": OpMax, "min": OpMin, "maxwrap": OpMaxWrap,
	">": OpGt, "<": OpLt, "==": OpEquiv,
	":=": OpBind, "bind": OpBind,
	"let":  OpLet,
	"if":   OpIf,
	"!if":  OpNotIf,
	"ewma": OpEwma,
}

// parser consumes a pre-lexed token stream and builds a Prog, installing
// any (def ...) declarations into scope as it goes.
type parser struct {
	toks  []token
	pos   int
	scope *Scope
}

// Parse lexes and parses src, returning the program body and the Scope
// populated with its def declarations plus the fixed primitive/implicit
// registers.
func Parse(src []byte) (*Prog, *Scope, error) {
	l := newLexer(src)
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, nil, err
		}
		toks = append(toks, tok)
		if tok.typ == tokenEOF {
			break
		}
	}

	p := &parser{toks: toks, scope: NewScope()}
	if err := p.parseOptionalDefBlock(); err != nil {
		return nil, nil, err
	}

	var exprs []*Expr
	for p.peek().typ != tokenEOF {
		e, err := p.parseExpr()
		if err != nil {
			return nil, nil, err
		}
		exprs = append(exprs, e)
	}
	return &Prog{Exprs: exprs}, p.scope, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos+n]
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(typ tokenType, what string) (token, error) {
	t := p.peek()
	if t.typ != typ {
		return token{}, newSyntaxError(t.line, t.col, what, fmt.Errorf("unexpected token %q", t.lexeme))
	}
	return p.advance(), nil
}

// parseOptionalDefBlock parses the leading `(def (name num)+)` form, if
// present, installing each declaration into p.scope.
func (p *parser) parseOptionalDefBlock() error {
	if p.peek().typ != tokenLParen || p.peekAt(1).typ != tokenAtom || p.peekAt(1).lexeme != "def" {
		return nil
	}
	p.advance() // (
	p.advance() // def

	if p.peek().typ != tokenLParen {
		t := p.peek()
		return newSyntaxError(t.line, t.col, "def", fmt.Errorf("expected at least one declaration"))
	}
	for p.peek().typ == tokenLParen {
		if err := p.parseDecl(); err != nil {
			return err
		}
	}
	if _, err := p.expect(tokenRParen, "def"); err != nil {
		return err
	}
	return nil
}

// parseDecl parses a single `(NAME NUM)` declaration.
func (p *parser) parseDecl() error {
	if _, err := p.expect(tokenLParen, "decl"); err != nil {
		return err
	}
	nameTok, err := p.expect(tokenAtom, "decl")
	if err != nil {
		return err
	}
	if isNum(nameTok.lexeme) || isBool(nameTok.lexeme) {
		return newSyntaxError(nameTok.line, nameTok.col, "decl", fmt.Errorf("expected a name, got %q", nameTok.lexeme))
	}
	numTok, err := p.expect(tokenAtom, "decl")
	if err != nil {
		return err
	}
	initial, err := strconv.ParseUint(numTok.lexeme, 10, 64)
	if err != nil {
		return newSyntaxError(numTok.line, numTok.col, "decl", fmt.Errorf("non-numeric initial value %q", numTok.lexeme))
	}
	if _, err := p.expect(tokenRParen, "decl"); err != nil {
		return err
	}
	if _, err := p.scope.DeclarePerm(nameTok.lexeme, initial); err != nil {
		return newSyntaxError(nameTok.line, nameTok.col, "decl", err)
	}
	return nil
}

// parseExpr parses one `atom | '(' op expr expr ')'` expression.
func (p *parser) parseExpr() (*Expr, error) {
	t := p.peek()
	switch t.typ {
	case tokenAtom:
		p.advance()
		return atomExpr(t), nil
	case tokenLParen:
		p.advance()
		opTok, err := p.expect(tokenAtom, "expr")
		if err != nil {
			return nil, err
		}
		op, ok := opKeywords[opTok.lexeme]
		if !ok {
			return nil, newSyntaxError(opTok.line, opTok.col, "expr", fmt.Errorf("unknown operator %q", opTok.lexeme))
		}
		left, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenRParen, "expr"); err != nil {
			return nil, err
		}
		return sexpExpr(op, left, right), nil
	default:
		return nil, newSyntaxError(t.line, t.col, "expr", fmt.Errorf("unexpected token %q", t.lexeme))
	}
}

func atomExpr(t token) *Expr {
	switch {
	case isBool(t.lexeme):
		return boolExpr(t.lexeme == "true")
	case isNum(t.lexeme):
		n, _ := strconv.ParseUint(t.lexeme, 10, 64)
		return numExpr(n)
	default:
		return nameExpr(t.lexeme)
	}
}

func isBool(s string) bool { return s == "true" || s == "false" }

func isNum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
