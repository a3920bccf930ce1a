package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arsoniv/axenc/report"
)

// catchDiagnostic runs fn and returns the diagnostic it raises, or nil if
// none is raised.
func catchDiagnostic(fn func()) (d *report.Diagnostic) {
	defer func() {
		if x := recover(); x != nil {
			var ok bool
			if d, ok = x.(*report.Diagnostic); !ok {
				panic(x)
			}
		}
	}()

	fn()
	return nil
}

func lexAll(src string) []Token {
	l := NewLexer(src)

	var toks []Token
	for {
		tok := l.Consume()
		toks = append(toks, tok)
		if tok.Kind == TOK_EOF {
			return toks
		}
	}
}

func kindsOf(toks []Token) []int {
	kinds := make([]int, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestLexerTokenStream(t *testing.T) {
	testDatas := []struct {
		src   string
		kinds []int
	}{
		{
			src:   "int main ( ) { }",
			kinds: []int{TOK_IDENT, TOK_IDENT, TOK_LPAREN, TOK_RPAREN, TOK_LBRACE, TOK_RBRACE, TOK_EOF},
		},
		{
			src:   "return if else while break continue ptr import class typedef intdef",
			kinds: []int{TOK_RETURN, TOK_IF, TOK_ELSE, TOK_WHILE, TOK_BREAK, TOK_CONTINUE, TOK_PTR, TOK_IMPORT, TOK_CLASS, TOK_TYPEDEF, TOK_INTDEF, TOK_EOF},
		},
		{
			src:   "a.b[3] = $p + &q;",
			kinds: []int{TOK_IDENT, TOK_DOT, TOK_IDENT, TOK_LBRACKET, TOK_INTLIT, TOK_RBRACKET, TOK_ASSIGN, TOK_DOLLAR, TOK_IDENT, TOK_PLUS, TOK_AMP, TOK_IDENT, TOK_SEMI, TOK_EOF},
		},
		{
			src:   "1 + 2.5 * 0x1F / x % y",
			kinds: []int{TOK_INTLIT, TOK_PLUS, TOK_FLOATLIT, TOK_STAR, TOK_INTLIT, TOK_SLASH, TOK_IDENT, TOK_PERCENT, TOK_IDENT, TOK_EOF},
		},
		{
			src:   "a == b < c > d",
			kinds: []int{TOK_IDENT, TOK_ASSIGN, TOK_ASSIGN, TOK_IDENT, TOK_LT, TOK_IDENT, TOK_GT, TOK_IDENT, TOK_EOF},
		},
	}

	for _, testData := range testDatas {
		assert.Equal(t, testData.kinds, kindsOf(lexAll(testData.src)), "src: %s", testData.src)
	}
}

func TestLexerComments(t *testing.T) {
	src := `
// line comment with tokens: class { }
int /* block
comment */ x;
`
	toks := lexAll(src)
	assert.Equal(t, []int{TOK_IDENT, TOK_IDENT, TOK_SEMI, TOK_EOF}, kindsOf(toks))
	assert.Equal(t, "int", toks[0].Value)
	assert.Equal(t, "x", toks[1].Value)
}

func TestLexerRowColTracking(t *testing.T) {
	l := NewLexer("int\n  x;")

	intTok := l.Consume()
	assert.Equal(t, 1, intTok.Line)
	assert.Equal(t, 1, intTok.Col)

	xTok := l.Consume()
	assert.Equal(t, 2, xTok.Line)
	assert.Equal(t, 3, xTok.Col)
}

func TestLexerStringEscapes(t *testing.T) {
	testDatas := []struct {
		src      string
		expected string
	}{
		{`"hello"`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"a\"b"`, "a\"b"},
		{`"a\\b"`, "a\\b"},
		// any other backslash pair yields the second character literally
		{`"a\qb"`, "aqb"},
	}

	for _, testData := range testDatas {
		tok := NewLexer(testData.src).Consume()
		assert.Equal(t, TOK_STRINGLIT, tok.Kind)
		assert.Equal(t, testData.expected, tok.Value, "src: %s", testData.src)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	d := catchDiagnostic(func() {
		NewLexer(`"never closed`).Consume()
	})

	require.NotNil(t, d)
	assert.Equal(t, report.KindSyntax, d.Kind)
}

func TestLexerInvalidCharacter(t *testing.T) {
	d := catchDiagnostic(func() {
		NewLexer("int x; #").Consume()
	})
	assert.Nil(t, d)

	d = catchDiagnostic(func() {
		lexAll("int x; #")
	})
	require.NotNil(t, d)
	assert.Equal(t, report.KindSyntax, d.Kind)
}

func TestLexerNumericLiterals(t *testing.T) {
	toks := lexAll("42 3.14 0x10 0XFF 7.")

	assert.Equal(t, TOK_INTLIT, toks[0].Kind)
	assert.Equal(t, "42", toks[0].Value)

	assert.Equal(t, TOK_FLOATLIT, toks[1].Kind)
	assert.Equal(t, "3.14", toks[1].Value)

	assert.Equal(t, TOK_INTLIT, toks[2].Kind)
	assert.Equal(t, "0x10", toks[2].Value)

	assert.Equal(t, TOK_INTLIT, toks[3].Kind)
	assert.Equal(t, "0XFF", toks[3].Value)

	// a '.' not followed by digits does not make a float
	assert.Equal(t, TOK_INTLIT, toks[4].Kind)
}

// Every token the parser consumes equals the token Peek reported just
// before.
func TestLexerPeekConsumeAgreement(t *testing.T) {
	l := NewLexer("class C { int a; int sum() { return a + 1; } }")

	for {
		peeked := l.Peek(0)
		consumed := l.Consume()
		require.Equal(t, peeked, consumed)

		if consumed.Kind == TOK_EOF {
			break
		}
	}
}

// After a restore, the token sequence is byte-identical to the sequence that
// followed the save.
func TestLexerSaveRestore(t *testing.T) {
	src := "class C { int a; int f() { return a; } }"
	l := NewLexer(src)

	// move into the stream and warm up the look-ahead deque
	l.Consume()
	l.Consume()
	l.Peek(4)

	state := l.SaveState()

	var first []Token
	for i := 0; i < 10; i++ {
		first = append(first, l.Consume())
	}

	l.RestoreState(state)

	var second []Token
	for i := 0; i < 10; i++ {
		second = append(second, l.Consume())
	}

	assert.Equal(t, first, second)
}

func TestLexerPeekOffset(t *testing.T) {
	l := NewLexer("a b c")

	assert.Equal(t, "c", l.Peek(2).Value)
	assert.Equal(t, "a", l.Peek(0).Value)
	assert.True(t, l.PeekKind(TOK_IDENT, 1))
	assert.True(t, l.PeekKind(TOK_EOF, 3))

	assert.Equal(t, "a", l.Consume().Value)
	assert.Equal(t, "b", l.Peek(0).Value)
}
