package syntax

import (
	"github.com/arsoniv/axenc/ast"
	"github.com/arsoniv/axenc/typing"
)

// parseValue parses a value chain: optional prefix `$` dereferences and a
// single `&` address-of, an identifier resolving either to a local variable
// or to a member of the implicit `this`, then a postfix loop over `.field`,
// `.method(args)`, `[index]`, and member-interior `$` dereferences.  A `.`
// applied to a pointer-to-class value auto-dereferences a single pointer
// level.  It returns the resulting expression along with its type.
func (p *Parser) parseValue() (ast.Expr, typing.Type) {
	// prefix dereferences
	drefs := 0
	for p.lexer.PeekKind(TOK_DOLLAR, 0) {
		drefs++
		p.lexer.Consume()
	}

	// address-of operator
	addressOf := false
	if p.lexer.PeekKind(TOK_AMP, 0) {
		addressOf = true
		p.lexer.Consume()
	}

	nameToken := p.expect(TOK_IDENT)
	p.validateIdentifier(nameToken.Value)
	name := nameToken.Value

	derivedType := p.scopes.Lookup(name)
	var target ast.Expr

	if derivedType != nil {
		// a local (non-member) variable
		target = &ast.VarRef{Name: name, IsSigned: derivedType.Signed()}
	} else {
		// in a method, a bare identifier may be a member of the implicit
		// `this` pointer
		if thisType := p.scopes.Lookup("this"); thisType != nil {
			if thisPtrType, ok := thisType.(*typing.PointerType); ok {
				if classRefType, ok := thisPtrType.Target.(*typing.ClassRef); ok {
					if fieldType := classRefType.Decl.MemberType(name); fieldType != nil {
						thisRef := &ast.VarRef{Name: "this", IsSigned: thisType.Signed()}
						derefThis := &ast.Dref{
							Target:      thisRef,
							DerivedType: thisPtrType.Target,
							IsSigned:    thisPtrType.Target.Signed(),
						}
						target = &ast.StructAccess{
							Target:    derefThis,
							Member:    name,
							Class:     classRefType.Decl.Name(),
							IsSigned:  fieldType.Signed(),
							ClassType: classRefType,
						}
						derivedType = fieldType
					}
				}
			}
		}

		if derivedType == nil {
			p.raiseSemanticError("Undefined variable '%s'", name)
		}
	}

	// apply the prefix dereferences
	for i := 0; i < drefs; i++ {
		target, derivedType = p.derefValue(target, derivedType)
	}

	// postfix operations
	for {
		if p.lexer.PeekKind(TOK_DOT, 0) {
			p.lexer.Consume()

			classType, _ := derivedType.(*typing.ClassRef)

			// auto-dereference a single pointer level when '.' is applied to
			// a pointer to a class
			if classType == nil {
				if ptrType, ok := derivedType.(*typing.PointerType); ok {
					if ptrClassType, ok := ptrType.Target.(*typing.ClassRef); ok {
						classType = ptrClassType
						derivedType = ptrType.Target
						target = &ast.Dref{
							Target:      target,
							DerivedType: derivedType,
							IsSigned:    derivedType.Signed(),
						}
					}
				}
			}

			if classType == nil {
				p.raiseSemanticError("Cannot access member of non-class type")
			}

			// postfix dereferences on the member
			memDrefs := 0
			for p.lexer.PeekKind(TOK_DOLLAR, 0) {
				memDrefs++
				p.lexer.Consume()
			}

			fieldToken := p.expect(TOK_IDENT)
			p.validateIdentifier(fieldToken.Value)
			fieldName := fieldToken.Value

			// member method call
			if p.lexer.PeekKind(TOK_LPAREN, 0) {
				return p.parseMethodCall(target, derivedType, classType, fieldName)
			}

			classDecl := classType.Decl
			fieldType := classDecl.MemberType(fieldName)
			if fieldType == nil {
				p.raiseSemanticError("Class '%s' has no member '%s'", classDecl.Name(), fieldName)
			}

			target = &ast.StructAccess{
				Target:    target,
				Member:    fieldName,
				Class:     classDecl.Name(),
				IsSigned:  fieldType.Signed(),
				ClassType: classType,
			}
			derivedType = fieldType

			for i := 0; i < memDrefs; i++ {
				target, derivedType = p.derefValue(target, derivedType)
			}
		} else if p.lexer.PeekKind(TOK_LBRACKET, 0) {
			p.lexer.Consume()

			arrayType, _ := derivedType.(*typing.ArrayType)
			ptrType, _ := derivedType.(*typing.PointerType)

			if arrayType == nil && ptrType == nil {
				p.raiseSemanticError("Cannot apply subscript operator to non-array/non-pointer type")
			}

			indexExpr := p.parseExpression(TOK_RBRACKET)
			p.expect(TOK_RBRACKET)

			if arrayType != nil {
				target = &ast.ArrayAccess{
					Target:   target,
					Index:    indexExpr,
					IsSigned: arrayType.Signed(),
					ArrType:  arrayType,
				}
				derivedType = arrayType.Elem
			} else {
				target = &ast.PtrIndexAccess{
					Target:   target,
					Index:    indexExpr,
					IsSigned: ptrType.Signed(),
					PtrType:  ptrType,
				}
				derivedType = ptrType.Target
			}
		} else {
			break
		}
	}

	// apply the address-of operator
	if addressOf {
		lvalue, ok := target.(ast.LValue)
		if !ok {
			p.raiseSemanticError("Cannot take the address of a non-addressable expression")
		}

		return &ast.AddressOf{Target: lvalue, IsSigned: derivedType.Signed()},
			&typing.PointerType{Target: derivedType}
	}

	return target, derivedType
}

// derefValue wraps target in a dereference, rejecting non-pointer types.
func (p *Parser) derefValue(target ast.Expr, derivedType typing.Type) (ast.Expr, typing.Type) {
	ptrType, ok := derivedType.(*typing.PointerType)
	if !ok {
		p.raiseSemanticError("Cannot dereference non-pointer type")
	}

	return &ast.Dref{
		Target:      target,
		DerivedType: ptrType.Target,
		IsSigned:    ptrType.Target.Signed(),
	}, ptrType.Target
}

// parseMethodCall parses `target.method(args)`: the call is lowered to a
// call of the mangled name with the address of the receiver prepended to the
// argument list.
func (p *Parser) parseMethodCall(target ast.Expr, derivedType typing.Type, classType *typing.ClassRef, fieldName string) (ast.Expr, typing.Type) {
	methodName := classType.Decl.Name() + "_" + fieldName

	p.lexer.Consume() // consume '('

	receiver, ok := target.(ast.LValue)
	if !ok {
		p.raiseSemanticError("Cannot call a method on a non-addressable value")
	}

	args := []ast.Expr{&ast.AddressOf{Target: receiver, IsSigned: derivedType.Signed()}}

	for !p.lexer.PeekKind(TOK_RPAREN, 0) {
		args = append(args, p.parseExpression(TOK_COMMA))
		if p.lexer.PeekKind(TOK_COMMA, 0) {
			p.lexer.Consume()
		}
	}
	p.lexer.Consume() // consume ')'

	returnType := p.lookupFunctionReturnType(methodName)
	if returnType == nil {
		p.raiseSemanticError("Call to undefined member method '%s'", methodName)
	}

	return &ast.Call{Name: methodName, Args: args, IsSigned: returnType.Signed()}, returnType
}
