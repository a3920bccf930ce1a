package syntax

import "github.com/arsoniv/axenc/typing"

// parseType consumes a type (including all type modifiers) and returns its
// descriptor.  Leading `ptr` tokens accumulate pointer levels, then an
// identifier naming a registered type, then an optional `[ INT ]` array
// suffix.  Pointer wrapping is applied first; the array wraps the whole.
// It returns nil if the identifier does not name a registered type.
func (p *Parser) parseType() typing.Type {
	ptrs := 0
	for p.lexer.PeekKind(TOK_PTR, 0) {
		ptrs++
		p.lexer.Consume()
	}

	newType := p.registry.Lookup(p.lexer.Peek(0).Value)
	if newType == nil {
		return nil
	}

	p.lexer.Consume()

	// zero length means not an array
	arrayLen := int64(0)

	if p.lexer.PeekKind(TOK_LBRACKET, 0) {
		p.lexer.Consume()
		arrayLen = parseIntValue(p, p.expect(TOK_INTLIT).Value)
		p.expect(TOK_RBRACKET)
	}

	for i := 0; i < ptrs; i++ {
		newType = &typing.PointerType{Target: newType}
	}

	if arrayLen != 0 {
		newType = &typing.ArrayType{Elem: newType, Len: int(arrayLen)}
	}

	return newType
}

// nextTypeLength peeks tokens to find the length of the next type without
// consuming anything.
func (p *Parser) nextTypeLength() int {
	i := 0

	for p.lexer.PeekKind(TOK_PTR, i) {
		i++
	}

	if p.lexer.PeekKind(TOK_IDENT, i) {
		i++
	}

	if p.lexer.PeekKind(TOK_LBRACKET, i) {
		i++

		if p.lexer.PeekKind(TOK_INTLIT, i) {
			i++
		}

		if p.lexer.PeekKind(TOK_RBRACKET, i) {
			i++
		}
	}

	return i
}
