package odatafilter

import (
	"fmt"
	"strings"

	"github.com/nlstn/go-odata-filter/edm"
)

// Render produces the diagnostic dump of a parsed filter: one header line per
// node, followed by indented "Key = Value" attribute lines, followed by child
// node blocks one level deeper. The output is a pure function of the tree and
// byte-stable across runs, which makes it suitable for golden-file tests.
//
// A key that introduces a child block is written "Key =" with the child on
// the following lines; an optional value that is absent is written "Key ="
// with nothing after it, so no line ever carries trailing whitespace.
func Render(f *FilterQueryOption) string {
	var b strings.Builder

	writeLine(&b, 0, "FilterQueryOption")
	writeAttr(&b, 1, "ItemType", f.ItemType.String())
	writeLine(&b, 1, "RangeVariable =")
	writeRangeVariable(&b, 1, f.RangeVariable)
	writeLine(&b, 1, "Expression =")
	writeNode(&b, 1, f.Expression)

	return b.String()
}

const indentStep = "    "

func writeLine(b *strings.Builder, depth int, text string) {
	b.WriteString(strings.Repeat(indentStep, depth))
	b.WriteString(text)
	b.WriteString("\n")
}

func writeAttr(b *strings.Builder, depth int, key, value string) {
	writeLine(b, depth, key+" = "+value)
}

func writeRangeVariable(b *strings.Builder, depth int, rv *RangeVariable) {
	writeLine(b, depth, "EntityRangeVariable")
	writeAttr(b, depth+1, "Name", rv.Name)
	writeAttr(b, depth+1, "NavigationSource", rv.NavigationSource)
	writeAttr(b, depth+1, "TypeReference", rv.Type.String())
}

func writeNode(b *strings.Builder, depth int, node ExpressionNode) {
	switch n := node.(type) {
	case *RangeVariableReferenceNode:
		writeLine(b, depth, "EntityRangeVariableReferenceNode")
		writeAttr(b, depth+1, "Name", n.Variable.Name)
		writeAttr(b, depth+1, "TypeReference", n.Variable.Type.String())

	case *PropertyAccessNode:
		writeLine(b, depth, "SingleValuePropertyAccessNode")
		writeAttr(b, depth+1, "Property", n.Property)
		writeAttr(b, depth+1, "TypeReference", n.Type.String())
		writeLine(b, depth+1, "Source =")
		writeNode(b, depth+1, n.Source)

	case *FunctionCallNode:
		writeLine(b, depth, "SingleValueFunctionCallNode")
		writeAttr(b, depth+1, "Name", n.Name)
		writeAttr(b, depth+1, "TypeReference", n.Type.String())
		// The Source slot is reserved for bound function invocations,
		// which the grammar here never produces.
		writeLine(b, depth+1, "Source =")
		if n.Signature != nil {
			writeAttr(b, depth+1, "Function", n.Signature.String())
		} else {
			writeLine(b, depth+1, "Function =")
		}
		writeLine(b, depth+1, "Arguments =")
		for _, arg := range n.Args {
			writeNode(b, depth+1, arg)
		}

	case *BinaryOperatorNode:
		writeLine(b, depth, "BinaryOperatorNode")
		writeAttr(b, depth+1, "OperatorKind", n.Operator.String())
		writeAttr(b, depth+1, "TypeReference", n.Type.String())
		writeLine(b, depth+1, "Left =")
		writeNode(b, depth+1, n.Left)
		writeLine(b, depth+1, "Right =")
		writeNode(b, depth+1, n.Right)

	case *UnaryOperatorNode:
		writeLine(b, depth, "UnaryOperatorNode")
		writeAttr(b, depth+1, "OperatorKind", n.Operator.String())
		writeAttr(b, depth+1, "TypeReference", n.Type.String())
		writeLine(b, depth+1, "Operand =")
		writeNode(b, depth+1, n.Operand)

	case *LiteralNode:
		writeLine(b, depth, "ConstantNode")
		writeAttr(b, depth+1, "Value", renderLiteral(n))
		writeAttr(b, depth+1, "TypeReference", n.Type.String())

	default:
		writeLine(b, depth, fmt.Sprintf("UnknownNode(%T)", node))
	}
}

// renderLiteral prints the literal's source spelling; strings are re-quoted
// so the dump stays unambiguous.
func renderLiteral(n *LiteralNode) string {
	if n.Type.Name == edm.String {
		return "'" + n.Raw + "'"
	}
	return n.Raw
}
