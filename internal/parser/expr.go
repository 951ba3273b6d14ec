package parser

import (
	"fmt"

	"graft/internal/diag"
	"graft/internal/syntax"
	"graft/internal/token"
)

// binaryPower returns the left-binding power of an infix operator, or 0 when
// the token is not one.
func binaryPower(k token.Kind) int {
	switch k {
	case token.Plus, token.Minus:
		return 10
	case token.Star, token.Slash:
		return 20
	default:
		return 0
	}
}

// parseExpr parses an expression with precedence climbing.
func (p *Parser) parseExpr(minPower int) (syntax.NodeID, bool) {
	lhs, ok := p.parseUnary()
	if !ok {
		return lhs, false
	}

	for {
		power := binaryPower(p.lx.Peek().Kind)
		if power == 0 || power <= minPower {
			return lhs, true
		}
		op := p.bump()
		rhs, ok := p.parseExpr(power)
		if !ok {
			return p.b.New(syntax.KindBinaryExpr, lhs, op), false
		}
		lhs = p.b.New(syntax.KindBinaryExpr, lhs, op, rhs)
	}
}

func (p *Parser) parseUnary() (syntax.NodeID, bool) {
	if p.at(token.Minus) {
		op := p.bump()
		operand, ok := p.parseUnary()
		if !ok {
			return p.b.New(syntax.KindUnaryExpr, op), false
		}
		return p.b.New(syntax.KindUnaryExpr, op, operand), true
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by call argument lists.
func (p *Parser) parsePostfix() (syntax.NodeID, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return expr, false
	}
	for p.at(token.LParen) {
		args, argsOK := p.parseArgList()
		expr = p.b.New(syntax.KindCallExpr, expr, args)
		if !argsOK {
			return expr, false
		}
	}
	return expr, true
}

func (p *Parser) parsePrimary() (syntax.NodeID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit, token.StringLit:
		return p.b.New(syntax.KindLiteralExpr, p.bump()), true

	case token.Ident:
		return p.b.New(syntax.KindNameExpr, p.bump()), true

	case token.Hash:
		return p.parseMacroExpr()

	case token.LParen:
		return p.parseParenExpr()

	default:
		p.emit(diag.SynExpectExpression, diag.SevError, tok.Span,
			fmt.Sprintf("expected expression, found %v", tok.Kind))
		return syntax.NoNodeID, false
	}
}

// parseParenExpr := '(' Expr (',' Expr)* ')'
// A single parenthesized expression is grouping; more than one makes a tuple.
func (p *Parser) parseParenExpr() (syntax.NodeID, bool) {
	children := []syntax.NodeID{p.bump()} // '('

	for {
		expr, ok := p.parseExpr(0)
		if !ok {
			return p.b.New(syntax.KindParenExpr, children...), false
		}
		children = append(children, expr)
		if p.at(token.Comma) {
			children = append(children, p.bump())
			continue
		}
		break
	}

	rp := p.expect(token.RParen, diag.SynUnclosedParen)
	if !rp.IsValid() {
		return p.b.New(syntax.KindParenExpr, children...), false
	}
	children = append(children, rp)
	return p.b.New(syntax.KindParenExpr, children...), true
}

// parseMacroExpr := '#' Ident ArgList?
func (p *Parser) parseMacroExpr() (syntax.NodeID, bool) {
	children := []syntax.NodeID{p.bump()} // '#'

	name := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !name.IsValid() {
		return p.b.New(syntax.KindMacroExpr, children...), false
	}
	children = append(children, name)

	if p.at(token.LParen) {
		args, ok := p.parseArgList()
		children = append(children, args)
		if !ok {
			return p.b.New(syntax.KindMacroExpr, children...), false
		}
	}
	return p.b.New(syntax.KindMacroExpr, children...), true
}

// parseArgList := '(' (Expr (',' Expr)*)? ')'
func (p *Parser) parseArgList() (syntax.NodeID, bool) {
	children := []syntax.NodeID{p.bump()} // '('

	for !p.at(token.RParen) {
		expr, ok := p.parseExpr(0)
		if !ok {
			return p.b.New(syntax.KindArgList, children...), false
		}
		children = append(children, expr)
		if p.at(token.Comma) {
			children = append(children, p.bump())
			continue
		}
		break
	}

	rp := p.expect(token.RParen, diag.SynUnclosedParen)
	if !rp.IsValid() {
		return p.b.New(syntax.KindArgList, children...), false
	}
	children = append(children, rp)
	return p.b.New(syntax.KindArgList, children...), true
}
