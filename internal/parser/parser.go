package parser

import (
	"fmt"

	"graft/internal/diag"
	"graft/internal/lexer"
	"graft/internal/source"
	"graft/internal/syntax"
	"graft/internal/token"
)

// Options configures a parse run.
type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter

	currentErrors uint
}

// Enough reports whether the error limit was reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.currentErrors >= o.MaxErrors
}

// Result of parsing one file.
type Result struct {
	File syntax.NodeID
	Bag  *diag.Bag
}

// Parser holds per-file parse state. The produced tree is full-fidelity:
// every token the lexer hands out lands in the tree exactly once, so the
// file node renders back to the input byte-for-byte.
type Parser struct {
	lx   *lexer.Lexer
	b    *syntax.Builder
	fs   *source.FileSet
	opts Options
}

// ParseFile is the entry point for parsing one file. Syntax errors are
// reported as diagnostics, never panics; the tree is always produced.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	b *syntax.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:   lx,
		b:    b,
		fs:   fs,
		opts: opts,
	}

	file := p.parseFile()

	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File: file,
		Bag:  bag,
	}
}

// Parse is a convenience wrapper: register content as a virtual file, lex,
// and parse it, returning the tree and the diagnostic bag.
func Parse(fs *source.FileSet, b *syntax.Builder, name string, content []byte) Result {
	id := fs.AddVirtual(name, content)
	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})
	return ParseFile(fs, lx, b, Options{Reporter: reporter})
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) bump() syntax.NodeID {
	return p.b.Leaf(p.lx.Next())
}

// expect consumes a token of kind k or reports code and returns NoNodeID
// without consuming.
func (p *Parser) expect(k token.Kind, code diag.Code) syntax.NodeID {
	if p.at(k) {
		return p.bump()
	}
	got := p.lx.Peek()
	p.emit(code, diag.SevError, got.Span, fmt.Sprintf("expected %v, found %v", k, got.Kind))
	return syntax.NoNodeID
}

func (p *Parser) emit(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev >= diag.SevError {
		p.opts.currentErrors++
	}
	if p.opts.Reporter != nil && !p.opts.Enough() {
		p.opts.Reporter.Report(diag.New(sev, code, sp, msg))
	}
}

func (p *Parser) parseFile() syntax.NodeID {
	var children []syntax.NodeID
	for !p.at(token.EOF) {
		item, ok := p.parseItem()
		// Partial nodes stay in the tree so rendering remains lossless.
		if item.IsValid() {
			children = append(children, item)
		}
		if ok {
			continue
		}
		children = append(children, p.resync(false))
	}
	children = append(children, p.bump()) // EOF leaf keeps final trivia
	return p.b.New(syntax.KindFile, children...)
}

// resync consumes tokens up to and including the next ';', or up to the next
// item start, and wraps them in an error node so rendering stays lossless.
// With stopAtRBrace set (inside a block) a '}' also ends the skip without
// being consumed, so the enclosing block can close itself.
func (p *Parser) resync(stopAtRBrace bool) syntax.NodeID {
	var skipped []syntax.NodeID
	for {
		switch p.lx.Peek().Kind {
		case token.EOF, token.KwLet, token.KwFn, token.Hash:
			// Next item starts here; let the caller pick it up.
			return p.b.New(syntax.KindError, skipped...)
		case token.RBrace:
			if stopAtRBrace {
				return p.b.New(syntax.KindError, skipped...)
			}
			skipped = append(skipped, p.bump())
		case token.Semicolon:
			skipped = append(skipped, p.bump())
			return p.b.New(syntax.KindError, skipped...)
		default:
			skipped = append(skipped, p.bump())
		}
	}
}

func (p *Parser) parseItem() (syntax.NodeID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwLet:
		return p.parseLetItem()
	case token.KwFn:
		return p.parseFnItem()
	case token.Hash:
		return p.parseMacroItem()
	default:
		return p.parseExprStmt()
	}
}

// parseLetItem := 'let' Ident '=' Expr ';'
func (p *Parser) parseLetItem() (syntax.NodeID, bool) {
	children := []syntax.NodeID{p.bump()} // 'let'

	name := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !name.IsValid() {
		return p.b.New(syntax.KindLetItem, children...), false
	}
	children = append(children, name)

	eq := p.expect(token.Assign, diag.SynUnexpectedToken)
	if !eq.IsValid() {
		return p.b.New(syntax.KindLetItem, children...), false
	}
	children = append(children, eq)

	value, ok := p.parseExpr(0)
	if !ok {
		return p.b.New(syntax.KindLetItem, children...), false
	}
	children = append(children, value)

	semi := p.expect(token.Semicolon, diag.SynExpectSemicolon)
	if !semi.IsValid() {
		return p.b.New(syntax.KindLetItem, children...), false
	}
	children = append(children, semi)

	return p.b.New(syntax.KindLetItem, children...), true
}

// parseFnItem := 'fn' Ident ParamList Block
func (p *Parser) parseFnItem() (syntax.NodeID, bool) {
	children := []syntax.NodeID{p.bump()} // 'fn'

	name := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !name.IsValid() {
		return p.b.New(syntax.KindFnItem, children...), false
	}
	children = append(children, name)

	params, ok := p.parseParamList()
	children = append(children, params)
	if !ok {
		return p.b.New(syntax.KindFnItem, children...), false
	}

	block, ok := p.parseBlock()
	children = append(children, block)
	return p.b.New(syntax.KindFnItem, children...), ok
}

// parseParamList := '(' (Ident (',' Ident)*)? ')'
func (p *Parser) parseParamList() (syntax.NodeID, bool) {
	lp := p.expect(token.LParen, diag.SynUnexpectedToken)
	if !lp.IsValid() {
		return p.b.New(syntax.KindParamList), false
	}
	children := []syntax.NodeID{lp}

	for !p.at(token.RParen) {
		name := p.expect(token.Ident, diag.SynExpectIdentifier)
		if !name.IsValid() {
			return p.b.New(syntax.KindParamList, children...), false
		}
		children = append(children, name)
		if p.at(token.Comma) {
			children = append(children, p.bump())
			continue
		}
		break
	}

	rp := p.expect(token.RParen, diag.SynUnclosedParen)
	if !rp.IsValid() {
		return p.b.New(syntax.KindParamList, children...), false
	}
	children = append(children, rp)
	return p.b.New(syntax.KindParamList, children...), true
}

// parseBlock := '{' Stmt* '}'
func (p *Parser) parseBlock() (syntax.NodeID, bool) {
	lb := p.expect(token.LBrace, diag.SynUnexpectedToken)
	if !lb.IsValid() {
		return p.b.New(syntax.KindBlock), false
	}
	children := []syntax.NodeID{lb}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, ok := p.parseStmt()
		if stmt.IsValid() {
			children = append(children, stmt)
		}
		if ok {
			continue
		}
		children = append(children, p.resync(true))
		if p.at(token.RBrace) || p.at(token.EOF) {
			break
		}
	}

	rb := p.expect(token.RBrace, diag.SynUnclosedBrace)
	if !rb.IsValid() {
		return p.b.New(syntax.KindBlock, children...), false
	}
	children = append(children, rb)
	return p.b.New(syntax.KindBlock, children...), true
}

func (p *Parser) parseStmt() (syntax.NodeID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwLet:
		return p.parseLetItem()
	case token.Hash:
		return p.parseMacroItem()
	default:
		return p.parseExprStmt()
	}
}

// parseExprStmt := Expr ';'
func (p *Parser) parseExprStmt() (syntax.NodeID, bool) {
	expr, ok := p.parseExpr(0)
	if !ok {
		if expr.IsValid() {
			return p.b.New(syntax.KindExprStmt, expr), false
		}
		return syntax.NoNodeID, false
	}
	children := []syntax.NodeID{expr}

	semi := p.expect(token.Semicolon, diag.SynExpectSemicolon)
	if !semi.IsValid() {
		return p.b.New(syntax.KindExprStmt, children...), false
	}
	children = append(children, semi)
	return p.b.New(syntax.KindExprStmt, children...), true
}

// parseMacroItem := MacroExpr ';'?
// The semicolon is optional in item position so a freestanding invocation
// can stand on its own line.
func (p *Parser) parseMacroItem() (syntax.NodeID, bool) {
	inv, ok := p.parseMacroExpr()
	children := []syntax.NodeID{inv}
	if ok && p.at(token.Semicolon) {
		children = append(children, p.bump())
	}
	return p.b.New(syntax.KindMacroItem, children...), ok
}
