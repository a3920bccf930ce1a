package syntax

import (
	"path/filepath"
	"strconv"

	"github.com/arsoniv/axenc/typing"
)

// processImports consumes and resolves the `import` statements at the top of
// the current file.  Each imported file is fully parsed (including its own
// transitive imports) before the importer's own declarations, so later code
// sees all imported names.  A canonical-path set deduplicates re-imports.
func (p *Parser) processImports() {
	savedLexer := p.lexer
	savedFileName := p.currentFileName

	for !p.lexer.PeekKind(TOK_EOF, 0) {
		if !p.lexer.PeekKind(TOK_IMPORT, 0) {
			break
		}

		p.lexer.Consume()
		importFile := p.expect(TOK_STRINGLIT).Value
		p.expect(TOK_SEMI)

		importPath := importFile
		if !filepath.IsAbs(importPath) && savedFileName != "" {
			importPath = filepath.Join(filepath.Dir(savedFileName), importPath)
		}

		canonical := canonicalPath(importPath)
		if _, ok := p.importedFiles[canonical]; ok {
			continue
		}

		if p.loader == nil {
			p.raiseSemanticError("Cannot import nonexistent file: '%s'", importFile)
		}

		sourceCode, err := p.loader(importPath)
		if err != nil {
			p.raiseSemanticError("Cannot import nonexistent file: '%s'", importFile)
		}

		p.importedFiles[canonical] = struct{}{}

		p.lexer = NewLexer(sourceCode)
		p.currentFileName = canonical

		p.processImports()
		p.parseFile()

		p.lexer = savedLexer
		p.currentFileName = savedFileName
	}
}

// parseFile parses the top-level declarations of the current file: already
// processed imports are skipped syntactically, typedefs and intdefs update
// the registries, classes run the two-pass class parser, and anything else
// is a detached function.
func (p *Parser) parseFile() {
	for !p.lexer.PeekKind(TOK_EOF, 0) {
		switch p.lexer.Peek(0).Kind {
		case TOK_IMPORT:
			p.lexer.Consume()
			p.expect(TOK_STRINGLIT)
			p.expect(TOK_SEMI)

		case TOK_TYPEDEF:
			p.expect(TOK_TYPEDEF)
			alias := p.expect(TOK_IDENT).Value
			targetType := p.expect(TOK_IDENT).Value
			p.insertTypeDef(alias, targetType)
			p.expect(TOK_SEMI)

		case TOK_INTDEF:
			p.expect(TOK_INTDEF)
			alias := p.expect(TOK_IDENT).Value
			p.intDefs[alias] = parseIntValue(p, p.expect(TOK_INTLIT).Value)
			p.expect(TOK_SEMI)

		case TOK_CLASS:
			p.lexer.Consume()
			classNameToken := p.expect(TOK_IDENT)
			p.validateIdentifier(classNameToken.Value)
			p.currentClassName = classNameToken.Value
			p.expect(TOK_LBRACE)
			p.parseClass()
			p.expect(TOK_RBRACE)
			p.currentClassName = ""

		default:
			// detached function (top-level function outside any class)
			p.functions = append(p.functions, p.parseFunction())
		}
	}
}

// parseIntValue parses an integer literal token value, in base 16 when it
// carries a `0x`/`0X` prefix and base 10 otherwise.  Parsing stops at the
// first character invalid for the base, so a literal like `123.` yields 123.
func parseIntValue(p *Parser, lit string) int64 {
	base := 10
	digits := lit
	if len(lit) > 2 && lit[0] == '0' && (lit[1] == 'x' || lit[1] == 'X') {
		base = 16
		digits = lit[2:]
	}

	end := 0
	for end < len(digits) {
		c := digits[end]
		if base == 16 && !isHexDigit(c) || base == 10 && !isDigit(c) {
			break
		}
		end++
	}

	value, err := strconv.ParseInt(digits[:end], base, 64)
	if err != nil {
		p.raiseSyntaxError("Invalid integer literal '%s'", lit)
	}

	return value
}

// parseClass parses a class body in two passes bracketed by a save/restore
// of the lexer state.  The first pass collects the data members (skipping
// over function parameter lists and balanced brace bodies) so that method
// bodies parsed in the second pass may reference any sibling member
// regardless of textual order.
func (p *Parser) parseClass() {
	savedState := p.lexer.SaveState()

	var members []typing.Member

	// first pass, parse member variables
	for !p.lexer.PeekKind(TOK_EOF, 0) && !p.lexer.PeekKind(TOK_RBRACE, 0) {
		typ := p.parseType()
		if typ == nil {
			p.raiseSyntaxError("Unknown type name '%s'", p.lexer.Peek(0).Value)
		}

		token := p.expect(TOK_IDENT)
		p.validateIdentifier(token.Value)

		if !p.lexer.PeekKind(TOK_LPAREN, 0) {
			p.expect(TOK_SEMI)
			members = append(members, typing.Member{Name: token.Value, Type: typ})
			continue
		}

		// skip functions: type and identifier have already been consumed
		p.expect(TOK_LPAREN)
		for !p.lexer.PeekKind(TOK_RPAREN, 0) {
			if !p.lexer.PeekKind(TOK_COMMA, 0) {
				if paramType := p.parseType(); paramType == nil {
					p.raiseSyntaxError("Unknown type name '%s'", p.lexer.Peek(0).Value)
				}
				paramName := p.expect(TOK_IDENT)
				p.validateIdentifier(paramName.Value)
			}

			if p.lexer.PeekKind(TOK_COMMA, 0) {
				p.lexer.Consume()
			}
		}
		p.expect(TOK_RPAREN)

		if p.lexer.PeekKind(TOK_LBRACE, 0) {
			p.lexer.Consume()
			braceDepth := 1
			for braceDepth > 0 && !p.lexer.PeekKind(TOK_EOF, 0) {
				switch p.lexer.Peek(0).Kind {
				case TOK_LBRACE:
					braceDepth++
				case TOK_RBRACE:
					braceDepth--
				}
				p.lexer.Consume()
			}
		} else {
			p.expect(TOK_SEMI)
		}
	}

	// register the data members; a class introduced by an earlier file (or
	// earlier in this file) is re-opened and extended
	if p.currentClassName != "" {
		if existing := p.registry.Lookup(p.currentClassName); existing != nil {
			if classRef, ok := existing.(*typing.ClassRef); ok {
				classRef.Decl.AddMembers(members)
			}
		} else {
			decl := typing.NewClassDecl(p.currentClassName, members)
			p.classes = append(p.classes, decl)
			p.registerClassType(p.currentClassName, decl)
		}
	}

	// second pass to parse functions
	p.lexer.RestoreState(savedState)
	p.parseClassFunctions()
}

// parseClassFunctions runs the second pass over a class body: it parses the
// member functions and skips over the data members recorded by the first
// pass.
func (p *Parser) parseClassFunctions() {
	for !p.lexer.PeekKind(TOK_EOF, 0) && !p.lexer.PeekKind(TOK_RBRACE, 0) {
		if p.lexer.PeekKind(TOK_LPAREN, p.nextTypeLength()+1) {
			p.functions = append(p.functions, p.parseFunction())
			continue
		}

		// must be a class data member, skip it
		p.parseType()
		p.expect(TOK_IDENT)
		p.expect(TOK_SEMI)
	}
}
