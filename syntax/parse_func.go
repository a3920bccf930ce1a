package syntax

import (
	"github.com/arsoniv/axenc/ast"
	"github.com/arsoniv/axenc/typing"
)

// parseFunction parses a function header and, if present, its body.  Inside
// a class the name is mangled to `ClassName_name` and an implicit `this`
// parameter typed pointer-to-current-class is prepended.  A body is either a
// brace-enclosed statement list or absent (external declaration).
func (p *Parser) parseFunction() *ast.Function {
	isDetached := p.currentClassName == ""

	// return type (along with all type modifiers)
	returnType := p.parseType()
	if returnType == nil {
		p.raiseSyntaxError("Unknown type name '%s'", p.lexer.Peek(0).Value)
	}

	nameToken := p.expect(TOK_IDENT)
	p.validateIdentifier(nameToken.Value)

	name := nameToken.Value
	if !isDetached {
		name = p.currentClassName + "_" + name
	}

	p.expect(TOK_LPAREN)

	var params []ast.Param

	// add the implicit 'this' parameter for member functions
	if !isDetached {
		if thisType := p.registry.Lookup(p.currentClassName); thisType != nil {
			params = append(params, ast.Param{
				Name: "this",
				Type: &typing.PointerType{Target: thisType},
			})
		}
	}

	for !p.lexer.PeekKind(TOK_RPAREN, 0) {
		paramType := p.parseType()
		if paramType == nil {
			p.raiseSyntaxError("Unknown type name '%s'", p.lexer.Peek(0).Value)
		}

		token := p.expect(TOK_IDENT)
		p.validateIdentifier(token.Value)

		for _, param := range params {
			if param.Name == token.Value {
				p.raiseSemanticError("Duplicate parameter name '%s'", token.Value)
			}
		}

		params = append(params, ast.Param{Name: token.Value, Type: paramType})

		if p.lexer.PeekKind(TOK_COMMA, 0) {
			p.lexer.Consume()
		}
	}

	p.expect(TOK_RPAREN)

	var body []ast.Stmt
	hasBody := false

	// the function may be bodyless: only parse a body if one exists
	if p.lexer.Consume().Kind == TOK_LBRACE {
		hasBody = true

		p.scopes.Push()

		// index the parameters into the function scope
		for _, param := range params {
			p.scopes.Declare(param.Name, param.Type)
		}

		for !p.lexer.PeekKind(TOK_RBRACE, 0) {
			body = append(body, p.parseStatement())
		}
		p.expect(TOK_RBRACE)

		p.scopes.Pop()
	}

	return &ast.Function{
		Name:       name,
		ReturnType: returnType,
		Params:     params,
		Body:       body,
		HasBody:    hasBody,
		Public:     true,
		Detached:   isDetached,
	}
}
