package odatafilter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nlstn/go-odata-filter/edm"
)

var (
	boolType    = edm.NewTypeReference(edm.Boolean)
	stringType  = edm.NewTypeReference(edm.String)
	untypedNull = edm.TypeReference{Name: edm.Untyped, Nullable: true}
)

// parser builds the typed expression tree from the token stream, consulting
// the schema resolver for every identifier, property segment, and function
// call as it goes. One token of lookahead; grammar, lowest precedence first:
//
//	expr        := orExpr
//	orExpr      := andExpr ('or' andExpr)*
//	andExpr     := notExpr ('and' notExpr)*
//	notExpr     := ['not'] comparison
//	comparison  := primary [compOp primary]
//	primary     := literal | propertyPath | functionCall | '(' expr ')'
type parser struct {
	tokens   []Token
	current  int
	resolver SchemaResolver
	rangeVar *RangeVariable
}

func newParser(tokens []Token, resolver SchemaResolver, rangeVar *RangeVariable) *parser {
	return &parser{
		tokens:   tokens,
		current:  0,
		resolver: resolver,
		rangeVar: rangeVar,
	}
}

// currentToken returns the current token
func (p *parser) currentToken() Token {
	if p.current >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.current]
}

// advance moves to the next token
func (p *parser) advance() Token {
	token := p.currentToken()
	if p.current < len(p.tokens)-1 {
		p.current++
	}
	return token
}

// describeToken renders a token for syntax error messages.
func describeToken(t Token) string {
	if t.Type == TokenEOF {
		return "end of expression"
	}
	return fmt.Sprintf("'%s'", t.Value)
}

// expect checks that the current token has the given type and advances.
func (p *parser) expect(tokenType TokenType) (Token, error) {
	token := p.currentToken()
	if token.Type != tokenType {
		return Token{}, &SyntaxError{
			Offset:   token.Pos,
			Expected: tokenType.String(),
			Got:      describeToken(token),
		}
	}
	p.advance()
	return token, nil
}

// parse parses the tokens into a typed expression tree and verifies all
// input was consumed.
func (p *parser) parse() (ExpressionNode, error) {
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if tok := p.currentToken(); tok.Type != TokenEOF {
		return nil, &SyntaxError{
			Offset:   tok.Pos,
			Expected: "end of expression",
			Got:      describeToken(tok),
		}
	}

	return node, nil
}

// parseOr handles OR expressions (lowest precedence)
func (p *parser) parseOr() (ExpressionNode, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == TokenLogical && p.currentToken().Value == "or" {
		op := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left, err = p.newLogicalNode(op, left, right)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// parseAnd handles AND expressions
func (p *parser) parseAnd() (ExpressionNode, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == TokenLogical && p.currentToken().Value == "and" {
		op := p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left, err = p.newLogicalNode(op, left, right)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

// newLogicalNode builds an and/or node, requiring boolean operands.
func (p *parser) newLogicalNode(op Token, left, right ExpressionNode) (ExpressionNode, error) {
	if left.TypeRef().Family() != edm.FamilyBoolean || right.TypeRef().Family() != edm.FamilyBoolean {
		return nil, &TypeMismatchError{
			Offset:   op.Pos,
			Operator: op.Value,
			Left:     left.TypeRef(),
			Right:    right.TypeRef(),
		}
	}
	return &BinaryOperatorNode{
		Operator: binaryOperatorKinds[op.Value],
		Left:     left,
		Right:    right,
		Type:     boolType,
	}, nil
}

// parseNot handles NOT expressions
func (p *parser) parseNot() (ExpressionNode, error) {
	if p.currentToken().Type == TokenNot {
		op := p.advance()
		operand, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		if operand.TypeRef().Family() != edm.FamilyBoolean {
			return nil, &TypeMismatchError{
				Offset:   op.Pos,
				Operator: op.Value,
				Left:     operand.TypeRef(),
				Right:    boolType,
			}
		}
		return &UnaryOperatorNode{
			Operator: UnaryNot,
			Operand:  operand,
			Type:     boolType,
		}, nil
	}

	return p.parseComparison()
}

// parseComparison handles comparison expressions. Comparisons are
// non-associative: a second comparison operator in the same production is a
// syntax error.
func (p *parser) parseComparison() (ExpressionNode, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if p.currentToken().Type != TokenOperator {
		return left, nil
	}

	op := p.advance()
	right, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if tok := p.currentToken(); tok.Type == TokenOperator {
		return nil, &SyntaxError{
			Offset:   tok.Pos,
			Expected: "'and', 'or', ')', ',' or end of expression",
			Got:      describeToken(tok),
		}
	}

	kind := binaryOperatorKinds[op.Value]
	lf, rf := left.TypeRef().Family(), right.TypeRef().Family()
	comparable := edm.OrderComparable(lf, rf)
	if kind.IsEquality() {
		comparable = edm.EqualityComparable(lf, rf)
	}
	if !comparable {
		return nil, &TypeMismatchError{
			Offset:   op.Pos,
			Operator: op.Value,
			Left:     left.TypeRef(),
			Right:    right.TypeRef(),
		}
	}

	return &BinaryOperatorNode{
		Operator: kind,
		Left:     left,
		Right:    right,
		Type:     boolType,
	}, nil
}

// parsePrimary handles literals, property paths, function calls, and
// parenthesized subexpressions.
func (p *parser) parsePrimary() (ExpressionNode, error) {
	tok := p.currentToken()

	switch tok.Type {
	case TokenLParen:
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil

	case TokenNumber:
		p.advance()
		value, typeRef, err := edm.ParseNumericLiteral(tok.Value)
		if err != nil {
			return nil, &LexError{Offset: tok.Pos, Message: err.Error()}
		}
		return &LiteralNode{Raw: tok.Value, Value: value, Type: typeRef}, nil

	case TokenString:
		p.advance()
		return &LiteralNode{Raw: tok.Value, Value: tok.Value, Type: stringType}, nil

	case TokenGuid:
		p.advance()
		value, typeRef, err := edm.ParseGuidLiteral(tok.Value)
		if err != nil {
			return nil, &LexError{Offset: tok.Pos, Message: err.Error()}
		}
		return &LiteralNode{Raw: tok.Value, Value: value, Type: typeRef}, nil

	case TokenGeography:
		p.advance()
		value, typeRef, err := edm.ParseGeographyLiteral(tok.Value)
		if err != nil {
			return nil, &LexError{Offset: tok.Pos, Message: err.Error()}
		}
		return &LiteralNode{Raw: tok.Value, Value: value, Type: typeRef}, nil

	case TokenBoolean:
		p.advance()
		return &LiteralNode{Raw: tok.Value, Value: tok.Value == "true", Type: boolType}, nil

	case TokenNull:
		p.advance()
		return &LiteralNode{Raw: tok.Value, Value: nil, Type: untypedNull}, nil

	case TokenIdentifier:
		p.advance()
		if p.currentToken().Type == TokenLParen {
			return p.parseFunctionCall(tok)
		}
		return p.parsePropertyPath(tok)
	}

	return nil, &SyntaxError{
		Offset:   tok.Pos,
		Expected: "literal, property path, function call or '('",
		Got:      describeToken(tok),
	}
}

// parseFunctionCall parses a call like geo.distance(Home, Office). Arguments
// are parsed and fully typed depth-first before the overload is resolved.
// Each argument is a primary expression; boolean-valued arguments need
// explicit parentheses, which keeps a stray operator inside an argument list
// a syntax error at that operator rather than a type error further in.
func (p *parser) parseFunctionCall(nameTok Token) (ExpressionNode, error) {
	p.advance() // consume '('

	var args []ExpressionNode

	if p.currentToken().Type != TokenRParen {
		for {
			arg, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.currentToken().Type == TokenComma {
				p.advance()
			} else {
				break
			}
		}
	}

	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	argTypes := make([]edm.TypeReference, len(args))
	for i, arg := range args {
		argTypes[i] = arg.TypeRef()
	}

	signature, err := p.resolver.ResolveFunction(nameTok.Value, argTypes)
	if err != nil {
		return nil, annotateOffset(err, nameTok.Pos)
	}

	return &FunctionCallNode{
		Name:      nameTok.Value,
		Type:      signature.ReturnType,
		Args:      args,
		Signature: signature,
	}, nil
}

// parsePropertyPath parses a property path rooted at the range variable,
// threading the running type reference through the resolver segment by
// segment. A leading $-identifier must name the bound range variable.
func (p *parser) parsePropertyPath(firstTok Token) (ExpressionNode, error) {
	var source ExpressionNode = &RangeVariableReferenceNode{Variable: p.rangeVar}

	name := firstTok.Value
	offset := firstTok.Pos

	if strings.HasPrefix(name, "$") {
		if name != p.rangeVar.Name {
			return nil, &UnknownIdentifierError{Offset: firstTok.Pos, Name: name}
		}
		if p.currentToken().Type != TokenSlash {
			// A bare range variable reference.
			return source, nil
		}
		p.advance()
		segTok, err := p.expect(TokenIdentifier)
		if err != nil {
			return nil, err
		}
		name = segTok.Value
		offset = segTok.Pos
	}

	propType, err := p.resolver.ResolveProperty(source.TypeRef(), name)
	if err != nil {
		return nil, annotateOffset(err, offset)
	}
	node := &PropertyAccessNode{Source: source, Property: name, Type: propType}

	for p.currentToken().Type == TokenSlash {
		p.advance()
		segTok, err := p.expect(TokenIdentifier)
		if err != nil {
			return nil, err
		}
		propType, err := p.resolver.ResolveProperty(node.TypeRef(), segTok.Value)
		if err != nil {
			return nil, annotateOffset(err, segTok.Pos)
		}
		node = &PropertyAccessNode{Source: node, Property: segTok.Value, Type: propType}
	}

	return node, nil
}

// annotateOffset stamps the source offset onto resolver errors, which are
// produced without position information. The matched error is copied before
// stamping so that resolvers returning shared error values are never
// mutated across parses.
func annotateOffset(err error, pos int) error {
	var identErr *UnknownIdentifierError
	if errors.As(err, &identErr) && identErr.Offset == 0 {
		stamped := *identErr
		stamped.Offset = pos
		return &stamped
	}
	var propErr *UnknownPropertyError
	if errors.As(err, &propErr) && propErr.Offset == 0 {
		stamped := *propErr
		stamped.Offset = pos
		return &stamped
	}
	var funcErr *UnknownFunctionError
	if errors.As(err, &funcErr) && funcErr.Offset == 0 {
		stamped := *funcErr
		stamped.Offset = pos
		return &stamped
	}
	var typeErr *TypeMismatchError
	if errors.As(err, &typeErr) && typeErr.Offset == 0 {
		stamped := *typeErr
		stamped.Offset = pos
		return &stamped
	}
	return err
}
