package odatafilter

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdentifier
	TokenString
	TokenNumber
	TokenGuid
	TokenGeography
	TokenBoolean
	TokenNull
	TokenOperator
	TokenLogical
	TokenNot
	TokenLParen
	TokenRParen
	TokenComma
	TokenSlash
)

// String returns a readable name for the token type, used in syntax errors.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of expression"
	case TokenIdentifier:
		return "identifier"
	case TokenString:
		return "string literal"
	case TokenNumber:
		return "numeric literal"
	case TokenGuid:
		return "guid literal"
	case TokenGeography:
		return "geography literal"
	case TokenBoolean:
		return "boolean literal"
	case TokenNull:
		return "null"
	case TokenOperator:
		return "comparison operator"
	case TokenLogical:
		return "logical operator"
	case TokenNot:
		return "'not'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenComma:
		return "','"
	case TokenSlash:
		return "'/'"
	}
	return "unknown token"
}

// Token represents a single token in the filter expression. Tokens are
// immutable once produced by the lexer.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}
