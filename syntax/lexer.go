package syntax

import (
	"github.com/arsoniv/axenc/report"
)

// Lexer tokenizes a single source string.  It produces tokens on demand into
// a look-ahead deque so the parser can peek arbitrarily far forward, and its
// entire state can be saved and restored byte-exactly, which the two-pass
// class parser relies on.
type Lexer struct {
	src    string
	cursor int

	// lookAhead is the deque of tokens produced but not yet consumed.
	lookAhead []Token

	// consumed counts the tokens handed out by Consume.
	consumed int

	line, col int
}

// LexerState is a snapshot of the complete lexer state.
type LexerState struct {
	cursor    int
	lookAhead []Token
	consumed  int
	line, col int
}

// NewLexer creates a new lexer over the given source text.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Peek returns the token at the given look-ahead offset without consuming
// anything.  Peek(0) is the next token Consume would return.
func (l *Lexer) Peek(offset int) Token {
	for len(l.lookAhead) <= offset {
		l.lookAhead = append(l.lookAhead, l.nextToken())
	}

	return l.lookAhead[offset]
}

// PeekKind returns whether the token at the given look-ahead offset has the
// given kind.
func (l *Lexer) PeekKind(kind, offset int) bool {
	return l.Peek(offset).Kind == kind
}

// Consume removes and returns the next token.
func (l *Lexer) Consume() Token {
	if len(l.lookAhead) == 0 {
		l.lookAhead = append(l.lookAhead, l.nextToken())
	}

	tok := l.lookAhead[0]
	l.lookAhead = l.lookAhead[1:]
	l.consumed++
	return tok
}

// SaveState snapshots the lexer.  The look-ahead deque is copied by value so
// later peeks cannot disturb the snapshot.
func (l *Lexer) SaveState() LexerState {
	lookAhead := make([]Token, len(l.lookAhead))
	copy(lookAhead, l.lookAhead)

	return LexerState{
		cursor:    l.cursor,
		lookAhead: lookAhead,
		consumed:  l.consumed,
		line:      l.line,
		col:       l.col,
	}
}

// RestoreState rewinds the lexer to a previously saved state.  Every
// subsequent peek/consume sequence is byte-identical to the sequence
// following the save.
func (l *Lexer) RestoreState(state LexerState) {
	l.cursor = state.cursor
	l.lookAhead = make([]Token, len(state.lookAhead))
	copy(l.lookAhead, state.lookAhead)
	l.consumed = state.consumed
	l.line = state.line
	l.col = state.col
}

// -----------------------------------------------------------------------------

// nextToken scans the next token from the source text.
func (l *Lexer) nextToken() Token {
	for l.cursor < len(l.src) {
		c := l.peekChar(0)

		if c == '\n' || c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f' {
			l.consumeChar()
			continue
		}

		// comments
		if c == '/' && l.cursor+1 < len(l.src) {
			if l.peekChar(1) == '/' {
				l.consumeChar()
				l.consumeChar()
				for l.cursor < len(l.src) && l.peekChar(0) != '\n' {
					l.consumeChar()
				}
				continue
			} else if l.peekChar(1) == '*' {
				l.consumeChar()
				l.consumeChar()
				for l.cursor+1 < len(l.src) {
					if l.peekChar(0) == '*' && l.peekChar(1) == '/' {
						l.consumeChar()
						l.consumeChar()
						break
					}
					l.consumeChar()
				}
				continue
			}
		}

		line, col := l.line, l.col

		if kind, ok := symbolPatterns[c]; ok {
			l.consumeChar()
			return Token{Kind: kind, Value: string(c), Line: line, Col: col}
		}

		if isDigit(c) {
			return l.lexNumericLit(line, col)
		}

		if c == '"' {
			return l.lexStringLit(line, col)
		}

		if isIdentStart(c) {
			return l.lexIdentOrKeyword(line, col)
		}

		report.Raise(report.KindSyntax, &report.Location{Line: line, Col: col, Token: string(c)},
			"Invalid character found during lexing: '%c'", c)
	}

	return Token{Kind: TOK_EOF, Line: l.line, Col: l.col}
}

// lexNumericLit lexes an integer or float literal.  Hex literals keep their
// `0x` prefix in the token value; the base is decided downstream.
func (l *Lexer) lexNumericLit(line, col int) Token {
	var buff []byte
	kind := TOK_INTLIT

	buff = append(buff, l.consumeChar())

	// hex literal
	if buff[0] == '0' && l.cursor < len(l.src) && (l.peekChar(0) == 'x' || l.peekChar(0) == 'X') {
		buff = append(buff, l.consumeChar())
		for l.cursor < len(l.src) && isHexDigit(l.peekChar(0)) {
			buff = append(buff, l.consumeChar())
		}

		return Token{Kind: TOK_INTLIT, Value: string(buff), Line: line, Col: col}
	}

	for l.cursor < len(l.src) && isDigit(l.peekChar(0)) {
		buff = append(buff, l.consumeChar())
	}

	if l.cursor < len(l.src) && l.peekChar(0) == '.' {
		buff = append(buff, l.consumeChar())
		for l.cursor < len(l.src) && isDigit(l.peekChar(0)) {
			buff = append(buff, l.consumeChar())
			kind = TOK_FLOATLIT
		}
	}

	return Token{Kind: kind, Value: string(buff), Line: line, Col: col}
}

// lexStringLit lexes a double-quoted string literal, processing the escape
// pairs `\n`, `\t`, `\"`, and `\\`.  Any other backslash pair yields the
// second character literally.
func (l *Lexer) lexStringLit(line, col int) Token {
	l.consumeChar() // consume opening quote

	var buff []byte
	for l.cursor < len(l.src) && l.peekChar(0) != '"' {
		if l.peekChar(0) == '\\' && l.cursor+1 < len(l.src) {
			l.consumeChar() // consume backslash
			escaped := l.consumeChar()
			switch escaped {
			case 'n':
				buff = append(buff, '\n')
			case 't':
				buff = append(buff, '\t')
			case '"':
				buff = append(buff, '"')
			case '\\':
				buff = append(buff, '\\')
			default:
				buff = append(buff, escaped)
			}
		} else {
			buff = append(buff, l.consumeChar())
		}
	}

	if l.cursor >= len(l.src) {
		report.Raise(report.KindSyntax, &report.Location{Line: line, Col: col},
			"Unterminated string literal")
	}

	l.consumeChar() // consume closing quote
	return Token{Kind: TOK_STRINGLIT, Value: string(buff), Line: line, Col: col}
}

// lexIdentOrKeyword lexes an identifier or keyword.
func (l *Lexer) lexIdentOrKeyword(line, col int) Token {
	var buff []byte
	for l.cursor < len(l.src) && isIdentChar(l.peekChar(0)) {
		buff = append(buff, l.consumeChar())
	}

	value := string(buff)
	if kind, ok := keywordPatterns[value]; ok {
		return Token{Kind: kind, Value: value, Line: line, Col: col}
	}

	return Token{Kind: TOK_IDENT, Value: value, Line: line, Col: col}
}

// -----------------------------------------------------------------------------

func (l *Lexer) peekChar(offset int) byte {
	return l.src[l.cursor+offset]
}

func (l *Lexer) consumeChar() byte {
	c := l.src[l.cursor]
	l.cursor++

	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return c
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func isIdentStart(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
