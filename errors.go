package odatafilter

import (
	"fmt"
	"strings"

	"github.com/nlstn/go-odata-filter/edm"
)

// The parser reports exactly one error per invocation: the first failure in
// left-to-right, depth-first order. All error types carry the byte offset of
// the offending token where one is known; resolver-produced errors are
// annotated with the offset by the parser before being returned.

// LexError indicates an unrecognized character or unterminated literal.
type LexError struct {
	Offset  int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at position %d", e.Message, e.Offset)
}

// SyntaxError indicates a grammar violation such as an unexpected token,
// missing closing punctuation, or a chained comparison.
type SyntaxError struct {
	Offset   int
	Expected string
	Got      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected %s, got %s at position %d", e.Expected, e.Got, e.Offset)
}

// UnknownIdentifierError indicates a range variable name that is not bound in
// the current scope.
type UnknownIdentifierError struct {
	Offset int
	Name   string
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("unknown identifier '%s' at position %d", e.Name, e.Offset)
}

// UnknownPropertyError indicates a property lookup failure against a source
// type.
type UnknownPropertyError struct {
	Offset     int
	Name       string
	SourceType string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("type '%s' has no property '%s' (position %d)", e.SourceType, e.Name, e.Offset)
}

// UnknownFunctionError indicates that no function overload matches the given
// name and argument types.
type UnknownFunctionError struct {
	Offset        int
	Name          string
	ArgumentTypes []edm.TypeReference
}

func (e *UnknownFunctionError) Error() string {
	args := make([]string, len(e.ArgumentTypes))
	for i, a := range e.ArgumentTypes {
		args[i] = a.String()
	}
	return fmt.Sprintf("no overload of function '%s' accepts (%s) (position %d)",
		e.Name, strings.Join(args, ", "), e.Offset)
}

// TypeMismatchError indicates incompatible operand types for an operator or
// function argument.
type TypeMismatchError struct {
	Offset   int
	Operator string
	Left     edm.TypeReference
	Right    edm.TypeReference
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("operator '%s' cannot be applied to operands of type %s and %s (position %d)",
		e.Operator, e.Left.String(), e.Right.String(), e.Offset)
}
