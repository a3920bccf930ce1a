package syntax

import (
	"strconv"

	"github.com/arsoniv/axenc/ast"
)

// operatorPrecedence returns the binding power of a binary operator token,
// or -1 if the token is not a binary operator.
func operatorPrecedence(kind int) int {
	switch kind {
	case TOK_STAR, TOK_SLASH:
		return 20
	case TOK_PLUS, TOK_MINUS:
		return 10
	case TOK_LT, TOK_GT:
		return 5
	case TOK_ASSIGN: // '==' is lexed as two '=' tokens
		return 3
	default:
		return -1
	}
}

// tokenToBinaryOp maps an operator token kind to its BinOp kind.
func (p *Parser) tokenToBinaryOp(kind int) int {
	switch kind {
	case TOK_PLUS:
		return ast.OpAdd
	case TOK_MINUS:
		return ast.OpSub
	case TOK_STAR:
		return ast.OpMul
	case TOK_SLASH:
		return ast.OpDiv
	case TOK_LT:
		return ast.OpLess
	case TOK_GT:
		return ast.OpGreater
	case TOK_ASSIGN:
		return ast.OpEqual
	default:
		p.raiseSemanticError("Invalid binary operator")
		return ast.OpAdd // unreachable
	}
}

// parseExpression parses an expression terminated by the given token kind.
// The terminator is not consumed.
func (p *Parser) parseExpression(terminator int) ast.Expr {
	lhs := p.parsePrimaryExpression(terminator)
	return p.parseBinaryOpRHS(0, lhs, terminator)
}

// parsePrimaryExpression parses a primary expression: a literal, a negated
// literal, a call, a parenthesized expression, or a value chain.
func (p *Parser) parsePrimaryExpression(terminator int) ast.Expr {
	switch p.lexer.Peek(0).Kind {
	case TOK_INTLIT:
		return &ast.IntLit{Value: parseIntValue(p, p.expect(TOK_INTLIT).Value)}

	case TOK_STRINGLIT:
		return &ast.StringLit{Value: p.expect(TOK_STRINGLIT).Value}

	case TOK_FLOATLIT:
		return &ast.FloatLit{Value: parseFloatValue(p, p.expect(TOK_FLOATLIT).Value)}

	case TOK_MINUS:
		// unary minus applies literally to the literal
		p.lexer.Consume()
		if p.lexer.PeekKind(TOK_FLOATLIT, 0) {
			return &ast.FloatLit{Value: -parseFloatValue(p, p.expect(TOK_FLOATLIT).Value)}
		}
		return &ast.IntLit{Value: -parseIntValue(p, p.expect(TOK_INTLIT).Value)}

	case TOK_AMP, TOK_DOLLAR, TOK_IDENT:
		if p.lexer.PeekKind(TOK_IDENT, 0) && p.lexer.PeekKind(TOK_LPAREN, 1) {
			return p.parseCall()
		}

		// intdef constants substitute as integer literals
		if p.lexer.PeekKind(TOK_IDENT, 0) {
			if value, ok := p.intDefs[p.lexer.Peek(0).Value]; ok {
				p.lexer.Consume()
				return &ast.IntLit{Value: value}
			}
		}

		expr, _ := p.parseValue()
		return expr

	case TOK_LPAREN:
		p.expect(TOK_LPAREN)
		expr := p.parseExpression(TOK_RPAREN)
		p.expect(TOK_RPAREN)
		return expr

	default:
		p.raiseSyntaxError("Unexpected token in expression")
		return nil // unreachable
	}
}

// parseBinaryOpRHS performs operator precedence parsing of the operator
// sequence following lhs.  A single '=' in expression position is rejected
// with a hint; '==' is consumed as a pair of '=' tokens.
func (p *Parser) parseBinaryOpRHS(exprPrec int, lhs ast.Expr, terminator int) ast.Expr {
	isTerminator := func() bool {
		kind := p.lexer.Peek(0).Kind
		if kind == terminator {
			return true
		}
		// argument expressions end at the closing paren as well
		return terminator == TOK_COMMA && kind == TOK_RPAREN
	}

	for !isTerminator() {
		tokKind := p.lexer.Peek(0).Kind

		if tokKind == TOK_ASSIGN && !p.lexer.PeekKind(TOK_ASSIGN, 1) {
			p.raiseSemanticError("Variable assignment is not an expression, did you mean '=='?")
		}

		tokPrec := operatorPrecedence(tokKind)
		if tokPrec < exprPrec {
			return lhs
		}

		if tokKind == TOK_ASSIGN {
			p.lexer.Consume()
			p.lexer.Consume()
		} else {
			p.lexer.Consume()
		}

		rhs := p.parsePrimaryExpression(terminator)

		if !isTerminator() {
			nextKind := p.lexer.Peek(0).Kind
			if nextKind == TOK_ASSIGN && !p.lexer.PeekKind(TOK_ASSIGN, 1) {
				// single '=' is rejected on the next loop iteration
			} else if operatorPrecedence(nextKind) > tokPrec {
				rhs = p.parseBinaryOpRHS(tokPrec+1, rhs, terminator)
			}
		}

		if lhs.Signed() != rhs.Signed() {
			p.raiseSemanticError("Cannot create binary operation with types of different signedness")
		}

		lhs = &ast.BinOp{
			Op:       p.tokenToBinaryOp(tokKind),
			Lhs:      lhs,
			Rhs:      rhs,
			IsSigned: lhs.Signed(),
		}
	}

	return lhs
}

// parseFloatValue parses a float literal token value.
func parseFloatValue(p *Parser, lit string) float64 {
	value, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		p.raiseSyntaxError("Invalid float literal '%s'", lit)
	}

	return value
}
