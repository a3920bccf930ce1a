package syntax

import (
	"path/filepath"
	"strings"

	"github.com/arsoniv/axenc/ast"
	"github.com/arsoniv/axenc/report"
	"github.com/arsoniv/axenc/typing"
)

// SourceLoader supplies source text for a path.  The parser calls it once
// per imported file; the driver installs a loader backed by the filesystem.
type SourceLoader func(path string) (string, error)

// Parser is the whole-program parser for Axen.  It performs syntax analysis,
// typed AST construction, type registration, scope tracking, method name
// mangling, and import resolution in a single pass.  All parsing functions
// assume they begin positioned on the first token of their production and
// consume every token of it.
type Parser struct {
	sourceCode   string
	rootFilePath string

	lexer  *Lexer
	loader SourceLoader

	registry *typing.Registry
	scopes   *typing.ScopeStack

	functions []*ast.Function
	classes   []*typing.ClassDecl

	// intDefs holds the compile-time integer constants introduced by
	// `intdef` declarations.
	intDefs map[string]int64

	// importedFiles is the canonical-path set used to deduplicate imports.
	importedFiles map[string]struct{}

	currentClassName string
	currentFileName  string
}

// NewParser creates a parser for the given root source text.  filePath may
// be empty when the source does not come from a file (eg. in tests); loader
// may be nil if the source contains no imports.
func NewParser(sourceCode, filePath string, loader SourceLoader) *Parser {
	return &Parser{
		sourceCode:    sourceCode,
		rootFilePath:  filePath,
		loader:        loader,
		registry:      typing.NewRegistry(),
		scopes:        &typing.ScopeStack{},
		intDefs:       make(map[string]int64),
		importedFiles: make(map[string]struct{}),
	}
}

// Parse parses the root file and its transitive imports.
func (p *Parser) Parse() {
	p.lexer = NewLexer(p.sourceCode)
	p.currentFileName = p.rootFilePath

	if p.rootFilePath != "" {
		p.importedFiles[canonicalPath(p.rootFilePath)] = struct{}{}
	}

	p.processImports()
	p.parseFile()
}

// Functions returns the parsed functions in declaration order.
func (p *Parser) Functions() []*ast.Function {
	return p.functions
}

// Classes returns the parsed class declarations in declaration order.
func (p *Parser) Classes() []*typing.ClassDecl {
	return p.classes
}

// canonicalPath normalizes a path for import deduplication.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}

	return abs
}

// -----------------------------------------------------------------------------

// expect asserts that the next token has the given kind and consumes it.
func (p *Parser) expect(kind int) Token {
	if !p.lexer.PeekKind(kind, 0) {
		p.raiseSyntaxError("Expected token: '%s'", kindRepr[kind])
	}

	return p.lexer.Consume()
}

// validateIdentifier rejects user identifiers containing an underscore:
// the underscore is reserved for method name mangling.
func (p *Parser) validateIdentifier(id string) {
	if strings.Contains(id, "_") {
		p.raiseSyntaxError("Invalid identifier '%s': underscores are not allowed in identifiers", id)
	}
}

func (p *Parser) raiseSyntaxError(msg string, args ...interface{}) {
	report.Raise(report.KindSyntax, p.currentLocation(), msg, args...)
}

func (p *Parser) raiseSemanticError(msg string, args ...interface{}) {
	report.Raise(report.KindSemantic, p.currentLocation(), msg, args...)
}

func (p *Parser) currentLocation() *report.Location {
	tok := p.lexer.Peek(0)
	return &report.Location{
		File:  p.currentFileName,
		Class: p.currentClassName,
		Line:  tok.Line,
		Col:   tok.Col,
		Token: tok.Value,
	}
}

// -----------------------------------------------------------------------------

// lookupFunctionReturnType returns the return type of the named function, or
// nil if no such function has been parsed.
func (p *Parser) lookupFunctionReturnType(name string) typing.Type {
	for _, fn := range p.functions {
		if fn.Name == name {
			return fn.ReturnType
		}
	}

	return nil
}

// registerClassType binds a class name to a reference of its declaration.
func (p *Parser) registerClassType(name string, decl *typing.ClassDecl) {
	p.registry.Register(name, &typing.ClassRef{Decl: decl})
}

// insertTypeDef copies the descriptor bound to targetName under alias.  Only
// primitive and class types can be aliased.
func (p *Parser) insertTypeDef(alias, targetName string) {
	targetType := p.registry.Lookup(targetName)

	switch v := targetType.(type) {
	case *typing.PrimType:
		p.registry.Register(alias, v)
	case *typing.ClassRef:
		p.registry.Register(alias, v)
	default:
		p.raiseSyntaxError("Invalid target type in typedef")
	}
}
