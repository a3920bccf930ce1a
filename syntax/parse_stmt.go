package syntax

import (
	"strings"

	"github.com/arsoniv/axenc/ast"
)

// parseStatement consumes a single statement.
//
// Statement forms:
//
//	return [EXPR] ';'
//	if '(' EXPR ')' '{' STMTS '}' ['else' '{' STMTS '}']
//	while '(' EXPR ')' '{' STMTS '}'
//	TYPE NAME ['=' EXPR] ';'
//	NAME '(' ARGS ')' ';'
//	LVALUE '=' EXPR ';'
//	LVALUE '.' METHOD '(' ARGS ')' ';'
func (p *Parser) parseStatement() ast.Stmt {
	switch p.lexer.Peek(0).Kind {
	case TOK_RETURN:
		p.lexer.Consume()

		if p.lexer.PeekKind(TOK_SEMI, 0) {
			p.lexer.Consume()
			return &ast.Return{}
		}

		returnValue := p.parseExpression(TOK_SEMI)
		p.expect(TOK_SEMI)
		return &ast.Return{Value: returnValue}

	case TOK_IF:
		p.lexer.Consume()

		p.expect(TOK_LPAREN)
		condition := p.parseExpression(TOK_RPAREN)
		p.expect(TOK_RPAREN)

		p.expect(TOK_LBRACE)

		var trueBody, falseBody []ast.Stmt

		for !p.lexer.PeekKind(TOK_RBRACE, 0) {
			trueBody = append(trueBody, p.parseStatement())
		}
		p.expect(TOK_RBRACE)

		if p.lexer.PeekKind(TOK_ELSE, 0) {
			p.lexer.Consume()
			p.expect(TOK_LBRACE)

			// note: a nil falseBody means no else arm, so an empty else arm
			// must still produce a non-nil slice
			falseBody = []ast.Stmt{}
			for !p.lexer.PeekKind(TOK_RBRACE, 0) {
				falseBody = append(falseBody, p.parseStatement())
			}
			p.expect(TOK_RBRACE)
		}

		return &ast.If{Cond: condition, Then: trueBody, Else: falseBody}

	case TOK_WHILE:
		p.lexer.Consume()

		p.expect(TOK_LPAREN)
		condition := p.parseExpression(TOK_RPAREN)
		p.expect(TOK_RPAREN)

		p.expect(TOK_LBRACE)

		var body []ast.Stmt
		for !p.lexer.PeekKind(TOK_RBRACE, 0) {
			body = append(body, p.parseStatement())
		}
		p.expect(TOK_RBRACE)

		return &ast.While{Cond: condition, Body: body}
	}

	// attempt to consume a type: if one parses this is a variable
	// declaration with an optional initializer
	if typ := p.parseType(); typ != nil {
		nameToken := p.expect(TOK_IDENT)
		p.validateIdentifier(nameToken.Value)
		name := nameToken.Value

		if p.scopes.ExistsInCurrent(name) {
			p.raiseSemanticError("Redeclaration of variable '%s'", name)
		}

		var initialValue ast.Expr
		if p.lexer.PeekKind(TOK_ASSIGN, 0) {
			p.lexer.Consume()
			initialValue = p.parseExpression(TOK_SEMI)
		}

		p.expect(TOK_SEMI)

		p.scopes.Declare(name, typ)

		return &ast.VarDecl{Type: typ, Name: name, Init: initialValue}
	}

	// check for a detached function call statement
	if p.lexer.PeekKind(TOK_IDENT, 0) && p.lexer.PeekKind(TOK_LPAREN, 1) {
		call := p.parseCall()
		p.expect(TOK_SEMI)
		return &ast.ExprStmt{X: call}
	}

	// parse an l-value
	target, _ := p.parseValue()

	// a method call parses as a complete statement on its own
	if call, ok := target.(*ast.Call); ok {
		p.expect(TOK_SEMI)
		return &ast.ExprStmt{X: call}
	}

	lvalue, ok := target.(ast.LValue)
	if !ok {
		p.raiseSemanticError("Expression is not assignable")
	}

	p.expect(TOK_ASSIGN)

	newValue := p.parseExpression(TOK_SEMI)
	p.expect(TOK_SEMI)

	return &ast.Assign{Target: lvalue, Value: newValue}
}

// parseCall parses a call of a named function: the callee must already have
// been declared.  Calling a mangled method of the current class without an
// instance is rejected.
func (p *Parser) parseCall() *ast.Call {
	nameToken := p.expect(TOK_IDENT)
	p.validateIdentifier(nameToken.Value)
	name := nameToken.Value
	p.expect(TOK_LPAREN)

	var args []ast.Expr
	for !p.lexer.PeekKind(TOK_RPAREN, 0) {
		args = append(args, p.parseExpression(TOK_COMMA))
		if p.lexer.PeekKind(TOK_COMMA, 0) {
			p.lexer.Consume()
		}
	}
	p.lexer.Consume()

	returnType := p.lookupFunctionReturnType(name)
	if returnType == nil {
		p.raiseSemanticError("Call to undefined function '%s'", name)
	}

	// member functions must be called through an instance
	if p.currentClassName != "" && strings.Contains(name, "_") {
		if strings.HasPrefix(name, p.currentClassName+"_") {
			p.raiseSemanticError("Cannot call member function '%s' without an instance of the class", name)
		}
	}

	return &ast.Call{Name: name, Args: args, IsSigned: returnType.Signed()}
}
