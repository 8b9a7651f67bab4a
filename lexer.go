package odatafilter

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// guidPattern matches the 8-4-4-4-12 hex form at the start of the remaining
// input. Guid literals are the only literals that begin with a digit but are
// not numbers, so the lexer checks for them before scanning a number.
var guidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// Lexer tokenizes OData filter expressions. Input is UTF-8; token offsets
// are byte offsets. A Lexer is single-use; re-scan the same text by
// constructing a new one.
type Lexer struct {
	input string
	pos   int
	ch    rune
	width int
}

// NewLexer creates a new lexer over the given filter text.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		pos:   0,
	}
	if len(input) > 0 {
		l.ch, l.width = utf8.DecodeRuneInString(input)
	}
	return l
}

// advance moves to the next character
func (l *Lexer) advance() {
	l.pos += l.width
	if l.pos >= len(l.input) {
		l.ch = 0 // EOF
		l.width = 0
		return
	}
	l.ch, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
}

// peek looks ahead without advancing
func (l *Lexer) peek() rune {
	if l.pos+l.width >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos+l.width:])
	return r
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.advance()
	}
}

// readString reads a quoted string. The opening quote has already been seen.
// OData doubles the quote character to escape it inside the literal.
func (l *Lexer) readString() (string, error) {
	quote := l.ch
	start := l.pos
	l.advance() // skip opening quote

	var result strings.Builder
	for l.ch != 0 {
		if l.ch == quote {
			if l.peek() == quote {
				result.WriteRune(quote)
				l.advance()
				l.advance()
				continue
			}
			l.advance() // skip closing quote
			return result.String(), nil
		}
		result.WriteRune(l.ch)
		l.advance()
	}

	return "", &LexError{Offset: start, Message: "unterminated string literal"}
}

// readNumber reads an integer or decimal number, optionally signed and with
// an optional exponent.
func (l *Lexer) readNumber() string {
	var result strings.Builder

	if l.ch == '-' || l.ch == '+' {
		result.WriteRune(l.ch)
		l.advance()
	}

	for unicode.IsDigit(l.ch) {
		result.WriteRune(l.ch)
		l.advance()
	}

	if l.ch == '.' {
		result.WriteRune(l.ch)
		l.advance()
		for unicode.IsDigit(l.ch) {
			result.WriteRune(l.ch)
			l.advance()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		result.WriteRune(l.ch)
		l.advance()
		if l.ch == '+' || l.ch == '-' {
			result.WriteRune(l.ch)
			l.advance()
		}
		for unicode.IsDigit(l.ch) {
			result.WriteRune(l.ch)
			l.advance()
		}
	}

	return result.String()
}

// readIdentifier reads an identifier. Identifiers admit letters, digits,
// underscores, dots (namespace-qualified function names like geo.distance),
// and a leading '$' for range-variable markers.
func (l *Lexer) readIdentifier() string {
	var result strings.Builder

	if l.ch == '$' {
		result.WriteRune(l.ch)
		l.advance()
	}

	for l.ch != 0 && (unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' || l.ch == '.') {
		result.WriteRune(l.ch)
		l.advance()
	}

	return result.String()
}

// NextToken returns the next token
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	if l.ch == 0 {
		return Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	pos := l.pos

	if token, err := l.tokenizeString(pos); token != nil || err != nil {
		if err != nil {
			return Token{}, err
		}
		return *token, nil
	}

	if token := l.tokenizeGuid(pos); token != nil {
		return *token, nil
	}

	if token := l.tokenizeNumber(pos); token != nil {
		return *token, nil
	}

	if token := l.tokenizeSpecialChar(pos); token != nil {
		return *token, nil
	}

	if token, err := l.tokenizeIdentifierOrKeyword(pos); token != nil || err != nil {
		if err != nil {
			return Token{}, err
		}
		return *token, nil
	}

	return Token{}, &LexError{Offset: l.pos, Message: "unexpected character '" + string(l.ch) + "'"}
}

// tokenizeString tokenizes string literals
func (l *Lexer) tokenizeString(pos int) (*Token, error) {
	if l.ch == '\'' || l.ch == '"' {
		value, err := l.readString()
		if err != nil {
			return nil, err
		}
		return &Token{Type: TokenString, Value: value, Pos: pos}, nil
	}
	return nil, nil
}

// tokenizeGuid tokenizes guid literals in 8-4-4-4-12 hex form
func (l *Lexer) tokenizeGuid(pos int) *Token {
	if !unicode.IsDigit(l.ch) && !isHexLetter(l.ch) {
		return nil
	}
	match := guidPattern.FindString(l.input[l.pos:])
	if match == "" {
		return nil
	}
	for range match {
		l.advance()
	}
	return &Token{Type: TokenGuid, Value: match, Pos: pos}
}

func isHexLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// tokenizeNumber tokenizes numeric literals, optionally signed
func (l *Lexer) tokenizeNumber(pos int) *Token {
	if unicode.IsDigit(l.ch) || ((l.ch == '-' || l.ch == '+') && unicode.IsDigit(l.peek())) {
		value := l.readNumber()
		return &Token{Type: TokenNumber, Value: value, Pos: pos}
	}
	return nil
}

// tokenizeSpecialChar tokenizes parentheses, commas, and path separators
func (l *Lexer) tokenizeSpecialChar(pos int) *Token {
	switch l.ch {
	case '(':
		l.advance()
		return &Token{Type: TokenLParen, Value: "(", Pos: pos}
	case ')':
		l.advance()
		return &Token{Type: TokenRParen, Value: ")", Pos: pos}
	case ',':
		l.advance()
		return &Token{Type: TokenComma, Value: ",", Pos: pos}
	case '/':
		l.advance()
		return &Token{Type: TokenSlash, Value: "/", Pos: pos}
	}
	return nil
}

// tokenizeIdentifierOrKeyword tokenizes identifiers, keywords, and the
// geography/geometry quoted literal forms.
func (l *Lexer) tokenizeIdentifierOrKeyword(pos int) (*Token, error) {
	if !unicode.IsLetter(l.ch) && l.ch != '_' && l.ch != '$' {
		return nil, nil
	}

	value := l.readIdentifier()
	lower := strings.ToLower(value)

	// geography'SRID=4326;POINT(...)' and geometry'...' literals
	if (lower == "geography" || lower == "geometry") && l.ch == '\'' {
		body, err := l.readString()
		if err != nil {
			return nil, err
		}
		return &Token{Type: TokenGeography, Value: body, Pos: pos}, nil
	}

	if token := l.classifyKeyword(lower, pos); token != nil {
		return token, nil
	}

	// Function names like geo.distance are identifiers that the parser
	// recognizes as calls when followed by '('.
	return &Token{Type: TokenIdentifier, Value: value, Pos: pos}, nil
}

// classifyKeyword classifies a keyword and returns the appropriate token
func (l *Lexer) classifyKeyword(lower string, pos int) *Token {
	switch lower {
	case "and":
		return &Token{Type: TokenLogical, Value: "and", Pos: pos}
	case "or":
		return &Token{Type: TokenLogical, Value: "or", Pos: pos}
	case "not":
		return &Token{Type: TokenNot, Value: "not", Pos: pos}
	case "true", "false":
		return &Token{Type: TokenBoolean, Value: lower, Pos: pos}
	case "null":
		return &Token{Type: TokenNull, Value: "null", Pos: pos}
	case "eq", "ne", "gt", "ge", "lt", "le":
		return &Token{Type: TokenOperator, Value: lower, Pos: pos}
	}
	return nil
}

// TokenizeAll returns all tokens from the input, ending with an EOF token.
func (l *Lexer) TokenizeAll() ([]Token, error) {
	var tokens []Token

	for {
		token, err := l.NextToken()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)

		if token.Type == TokenEOF {
			break
		}
	}

	return tokens, nil
}
