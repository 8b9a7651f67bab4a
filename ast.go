package odatafilter

import "github.com/nlstn/go-odata-filter/edm"

// ExpressionNode represents a node in the typed filter expression tree.
// The node set is closed: processors switch exhaustively over the concrete
// types below. Every node carries a fully resolved type reference; the parser
// never produces a partially typed node.
type ExpressionNode interface {
	exprNode()

	// TypeRef returns the resolved type of the value this node produces.
	TypeRef() edm.TypeReference
}

// RangeVariable is the implicit "current item" binding (conventionally $it)
// in scope while evaluating a filter. One instance exists per query scope;
// every reference node within the same FilterQueryOption points at the same
// instance.
type RangeVariable struct {
	Name             string
	NavigationSource string
	Type             edm.TypeReference
}

// RangeVariableReferenceNode references the range variable of the enclosing
// scope. The reference is non-owning; ownership of the variable lies with the
// FilterQueryOption.
type RangeVariableReferenceNode struct {
	Variable *RangeVariable
}

func (n *RangeVariableReferenceNode) exprNode() {}

// TypeRef returns the entity type bound to the range variable.
func (n *RangeVariableReferenceNode) TypeRef() edm.TypeReference { return n.Variable.Type }

// PropertyAccessNode reads a named property from a source value.
type PropertyAccessNode struct {
	Source   ExpressionNode
	Property string
	Type     edm.TypeReference
}

func (n *PropertyAccessNode) exprNode() {}

// TypeRef returns the declared type of the accessed property.
func (n *PropertyAccessNode) TypeRef() edm.TypeReference { return n.Type }

// FunctionCallNode invokes a schema-declared function over fully typed
// arguments. Signature is the overload matched during resolution.
type FunctionCallNode struct {
	Name      string
	Type      edm.TypeReference
	Args      []ExpressionNode
	Signature *edm.FunctionSignature
}

func (n *FunctionCallNode) exprNode() {}

// TypeRef returns the resolved return type of the matched overload.
func (n *FunctionCallNode) TypeRef() edm.TypeReference { return n.Type }

// BinaryOperatorKind enumerates comparison and logical operator kinds.
type BinaryOperatorKind int

const (
	BinaryOr BinaryOperatorKind = iota
	BinaryAnd
	BinaryEqual
	BinaryNotEqual
	BinaryGreaterThan
	BinaryGreaterThanOrEqual
	BinaryLessThan
	BinaryLessThanOrEqual
)

// String returns the operator kind name used in diagnostic dumps.
func (k BinaryOperatorKind) String() string {
	switch k {
	case BinaryOr:
		return "Or"
	case BinaryAnd:
		return "And"
	case BinaryEqual:
		return "Equal"
	case BinaryNotEqual:
		return "NotEqual"
	case BinaryGreaterThan:
		return "GreaterThan"
	case BinaryGreaterThanOrEqual:
		return "GreaterThanOrEqual"
	case BinaryLessThan:
		return "LessThan"
	case BinaryLessThanOrEqual:
		return "LessThanOrEqual"
	}
	return "Unknown"
}

// IsLogical reports whether the kind is 'and' or 'or'.
func (k BinaryOperatorKind) IsLogical() bool {
	return k == BinaryAnd || k == BinaryOr
}

// IsEquality reports whether the kind is eq or ne.
func (k BinaryOperatorKind) IsEquality() bool {
	return k == BinaryEqual || k == BinaryNotEqual
}

// binaryOperatorKinds maps keyword operator spellings to their kinds.
var binaryOperatorKinds = map[string]BinaryOperatorKind{
	"or":  BinaryOr,
	"and": BinaryAnd,
	"eq":  BinaryEqual,
	"ne":  BinaryNotEqual,
	"gt":  BinaryGreaterThan,
	"ge":  BinaryGreaterThanOrEqual,
	"lt":  BinaryLessThan,
	"le":  BinaryLessThanOrEqual,
}

// BinaryOperatorNode applies a comparison or logical operator to two typed
// operands.
type BinaryOperatorNode struct {
	Operator BinaryOperatorKind
	Left     ExpressionNode
	Right    ExpressionNode
	Type     edm.TypeReference
}

func (n *BinaryOperatorNode) exprNode() {}

// TypeRef returns the operator's result type, always Edm.Boolean for the
// operator set supported here.
func (n *BinaryOperatorNode) TypeRef() edm.TypeReference { return n.Type }

// UnaryOperatorKind enumerates unary operator kinds. Only logical negation
// exists in the filter grammar.
type UnaryOperatorKind int

// UnaryNot is the 'not' operator.
const UnaryNot UnaryOperatorKind = iota

// String returns the operator kind name used in diagnostic dumps.
func (k UnaryOperatorKind) String() string {
	if k == UnaryNot {
		return "Not"
	}
	return "Unknown"
}

// UnaryOperatorNode applies 'not' to a boolean operand.
type UnaryOperatorNode struct {
	Operator UnaryOperatorKind
	Operand  ExpressionNode
	Type     edm.TypeReference
}

func (n *UnaryOperatorNode) exprNode() {}

// TypeRef returns the operator's result type.
func (n *UnaryOperatorNode) TypeRef() edm.TypeReference { return n.Type }

// LiteralNode holds a constant value. Raw preserves the source spelling for
// diagnostics; Value holds the parsed Go representation (int64,
// decimal.Decimal, string, bool, uuid.UUID, orb geometry, or nil).
type LiteralNode struct {
	Raw   string
	Value interface{}
	Type  edm.TypeReference
}

func (n *LiteralNode) exprNode() {}

// TypeRef returns the literal's resolved type.
func (n *LiteralNode) TypeRef() edm.TypeReference { return n.Type }
