package odatafilter

import (
	"errors"
	"testing"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:  "Simple comparison",
			input: "Price gt 100",
			expected: []TokenType{
				TokenIdentifier,
				TokenOperator,
				TokenNumber,
				TokenEOF,
			},
		},
		{
			name:  "With parentheses",
			input: "(Price gt 100)",
			expected: []TokenType{
				TokenLParen,
				TokenIdentifier,
				TokenOperator,
				TokenNumber,
				TokenRParen,
				TokenEOF,
			},
		},
		{
			name:  "Logical AND",
			input: "Price gt 100 and Category eq 'Electronics'",
			expected: []TokenType{
				TokenIdentifier,
				TokenOperator,
				TokenNumber,
				TokenLogical,
				TokenIdentifier,
				TokenOperator,
				TokenString,
				TokenEOF,
			},
		},
		{
			name:  "NOT operator",
			input: "not (Active eq true)",
			expected: []TokenType{
				TokenNot,
				TokenLParen,
				TokenIdentifier,
				TokenOperator,
				TokenBoolean,
				TokenRParen,
				TokenEOF,
			},
		},
		{
			name:  "Namespace-qualified function call",
			input: "geo.distance(Home, Office) lt 0.5",
			expected: []TokenType{
				TokenIdentifier,
				TokenLParen,
				TokenIdentifier,
				TokenComma,
				TokenIdentifier,
				TokenRParen,
				TokenOperator,
				TokenNumber,
				TokenEOF,
			},
		},
		{
			name:  "Range variable path",
			input: "$it/Home",
			expected: []TokenType{
				TokenIdentifier,
				TokenSlash,
				TokenIdentifier,
				TokenEOF,
			},
		},
		{
			name:  "Guid literal",
			input: "Id eq 01234567-89ab-cdef-0123-456789abcdef",
			expected: []TokenType{
				TokenIdentifier,
				TokenOperator,
				TokenGuid,
				TokenEOF,
			},
		},
		{
			name:  "Geography literal",
			input: "geography'SRID=4326;POINT(-122.3 47.6)'",
			expected: []TokenType{
				TokenGeography,
				TokenEOF,
			},
		},
		{
			name:  "Null literal",
			input: "Name ne null",
			expected: []TokenType{
				TokenIdentifier,
				TokenOperator,
				TokenNull,
				TokenEOF,
			},
		},
		{
			name:  "Negative decimal",
			input: "Price lt -12.5",
			expected: []TokenType{
				TokenIdentifier,
				TokenOperator,
				TokenNumber,
				TokenEOF,
			},
		},
		{
			name:  "Positive signed integer",
			input: "Price gt +5",
			expected: []TokenType{
				TokenIdentifier,
				TokenOperator,
				TokenNumber,
				TokenEOF,
			},
		},
		{
			name:  "Multi-byte identifier",
			input: "Größe gt 5",
			expected: []TokenType{
				TokenIdentifier,
				TokenOperator,
				TokenNumber,
				TokenEOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer(tt.input)
			tokens, err := lexer.TokenizeAll()
			if err != nil {
				t.Fatalf("Tokenization failed: %v", err)
			}

			if len(tokens) != len(tt.expected) {
				t.Fatalf("Expected %d tokens, got %d: %v", len(tt.expected), len(tokens), tokens)
			}

			for i, token := range tokens {
				if token.Type != tt.expected[i] {
					t.Errorf("Token %d: expected type %v, got %v (value %q)",
						i, tt.expected[i], token.Type, token.Value)
				}
			}
		})
	}
}

func TestLexerValues(t *testing.T) {
	lexer := NewLexer("geo.distance(Home, Office) lt 0.5")
	tokens, err := lexer.TokenizeAll()
	if err != nil {
		t.Fatalf("Tokenization failed: %v", err)
	}

	if tokens[0].Value != "geo.distance" {
		t.Errorf("Expected function identifier 'geo.distance', got %q", tokens[0].Value)
	}
	if tokens[0].Pos != 0 {
		t.Errorf("Expected offset 0, got %d", tokens[0].Pos)
	}
	if tokens[6].Value != "lt" || tokens[6].Pos != 27 {
		t.Errorf("Expected 'lt' at offset 27, got %q at %d", tokens[6].Value, tokens[6].Pos)
	}
	if tokens[7].Value != "0.5" {
		t.Errorf("Expected number '0.5', got %q", tokens[7].Value)
	}
}

func TestLexerSignedNumberValues(t *testing.T) {
	tokens, err := NewLexer("Price gt +5 or Price lt -5").TokenizeAll()
	if err != nil {
		t.Fatalf("Tokenization failed: %v", err)
	}
	if tokens[2].Value != "+5" {
		t.Errorf("Expected number '+5', got %q", tokens[2].Value)
	}
	if tokens[6].Value != "-5" {
		t.Errorf("Expected number '-5', got %q", tokens[6].Value)
	}
}

func TestLexerMultiByteIdentifier(t *testing.T) {
	tokens, err := NewLexer("Größe gt 5").TokenizeAll()
	if err != nil {
		t.Fatalf("Tokenization failed: %v", err)
	}
	if tokens[0].Value != "Größe" {
		t.Errorf("Expected identifier 'Größe', got %q", tokens[0].Value)
	}
	// Offsets are byte offsets: "Größe" occupies 7 bytes.
	if tokens[1].Value != "gt" || tokens[1].Pos != 8 {
		t.Errorf("Expected 'gt' at byte offset 8, got %q at %d", tokens[1].Value, tokens[1].Pos)
	}
}

func TestLexerEscapedQuote(t *testing.T) {
	lexer := NewLexer("Name eq 'O''Brien'")
	tokens, err := lexer.TokenizeAll()
	if err != nil {
		t.Fatalf("Tokenization failed: %v", err)
	}
	if tokens[2].Value != "O'Brien" {
		t.Errorf("Expected unescaped string \"O'Brien\", got %q", tokens[2].Value)
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOffset int
	}{
		{
			name:       "Unexpected character",
			input:      "Price # 100",
			wantOffset: 6,
		},
		{
			name:       "Unterminated string",
			input:      "Name eq 'Electronics",
			wantOffset: 8,
		},
		{
			name:       "Unterminated geography literal",
			input:      "geography'POINT(1 2)",
			wantOffset: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer(tt.input)
			_, err := lexer.TokenizeAll()
			if err == nil {
				t.Fatal("Expected a lex error")
			}

			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("Expected *LexError, got %T: %v", err, err)
			}
			if lexErr.Offset != tt.wantOffset {
				t.Errorf("Expected offset %d, got %d", tt.wantOffset, lexErr.Offset)
			}
		})
	}
}

func TestLexerIsRestartable(t *testing.T) {
	const input = "Price gt 100 and Active eq true"

	first, err := NewLexer(input).TokenizeAll()
	if err != nil {
		t.Fatalf("Tokenization failed: %v", err)
	}
	second, err := NewLexer(input).TokenizeAll()
	if err != nil {
		t.Fatalf("Tokenization failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Re-scan produced %d tokens, first scan %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Token %d differs between scans: %+v vs %+v", i, first[i], second[i])
		}
	}
}
