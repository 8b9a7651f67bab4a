// Package apply translates parsed filter trees into SQL conditions on a GORM
// query. Only scalar comparisons, logical combinators, and a small set of
// portable scalar functions are translatable; geography functions have no
// portable SQL form and are rejected.
package apply

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	gormschema "gorm.io/gorm/schema"

	odatafilter "github.com/nlstn/go-odata-filter"
	"github.com/nlstn/go-odata-filter/edm"
)

// comparisonSQL maps operator kinds to their SQL spellings.
var comparisonSQL = map[odatafilter.BinaryOperatorKind]string{
	odatafilter.BinaryEqual:              "=",
	odatafilter.BinaryNotEqual:           "<>",
	odatafilter.BinaryGreaterThan:        ">",
	odatafilter.BinaryGreaterThanOrEqual: ">=",
	odatafilter.BinaryLessThan:           "<",
	odatafilter.BinaryLessThanOrEqual:    "<=",
}

// scalarFunctionSQL maps schema function names to portable SQL function
// names. Works for sqlite and postgres.
var scalarFunctionSQL = map[string]string{
	"tolower": "LOWER",
	"toupper": "UPPER",
	"trim":    "TRIM",
	"length":  "LENGTH",
}

// Filter appends the filter's condition to the query with bound parameters.
func Filter(db *gorm.DB, f *odatafilter.FilterQueryOption) (*gorm.DB, error) {
	if f == nil || f.Expression == nil {
		return db, nil
	}
	cond, args, err := buildCondition(f.Expression)
	if err != nil {
		return nil, err
	}
	return db.Where(cond, args...), nil
}

// buildCondition renders a boolean-typed node as a SQL condition fragment.
func buildCondition(node odatafilter.ExpressionNode) (string, []interface{}, error) {
	switch n := node.(type) {
	case *odatafilter.BinaryOperatorNode:
		if n.Operator.IsLogical() {
			left, leftArgs, err := buildCondition(n.Left)
			if err != nil {
				return "", nil, err
			}
			right, rightArgs, err := buildCondition(n.Right)
			if err != nil {
				return "", nil, err
			}
			op := "AND"
			if n.Operator == odatafilter.BinaryOr {
				op = "OR"
			}
			return fmt.Sprintf("(%s %s %s)", left, op, right), append(leftArgs, rightArgs...), nil
		}
		return buildComparison(n)

	case *odatafilter.UnaryOperatorNode:
		operand, args, err := buildCondition(n.Operand)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("NOT (%s)", operand), args, nil

	case *odatafilter.PropertyAccessNode:
		// A bare boolean property used as a condition.
		col, err := columnRef(n)
		if err != nil {
			return "", nil, err
		}
		return col, nil, nil
	}

	return "", nil, fmt.Errorf("cannot translate %T to a SQL condition", node)
}

func buildComparison(n *odatafilter.BinaryOperatorNode) (string, []interface{}, error) {
	op, ok := comparisonSQL[n.Operator]
	if !ok {
		return "", nil, fmt.Errorf("unsupported comparison operator %s", n.Operator)
	}

	// Null comparisons use IS NULL / IS NOT NULL.
	if lit, ok := n.Right.(*odatafilter.LiteralNode); ok && lit.Value == nil {
		left, leftArgs, err := buildOperand(n.Left)
		if err != nil {
			return "", nil, err
		}
		switch n.Operator {
		case odatafilter.BinaryEqual:
			return left + " IS NULL", leftArgs, nil
		case odatafilter.BinaryNotEqual:
			return left + " IS NOT NULL", leftArgs, nil
		}
	}

	left, leftArgs, err := buildOperand(n.Left)
	if err != nil {
		return "", nil, err
	}
	right, rightArgs, err := buildOperand(n.Right)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%s %s %s", left, op, right), append(leftArgs, rightArgs...), nil
}

// buildOperand renders a value-producing node as a SQL expression fragment.
func buildOperand(node odatafilter.ExpressionNode) (string, []interface{}, error) {
	switch n := node.(type) {
	case *odatafilter.PropertyAccessNode:
		col, err := columnRef(n)
		if err != nil {
			return "", nil, err
		}
		return col, nil, nil

	case *odatafilter.LiteralNode:
		return "?", []interface{}{literalValue(n)}, nil

	case *odatafilter.FunctionCallNode:
		if n.TypeRef().Family() == edm.FamilyGeography || strings.HasPrefix(n.Name, "geo.") {
			return "", nil, fmt.Errorf("function %s has no SQL translation", n.Name)
		}
		sqlName, ok := scalarFunctionSQL[n.Name]
		if !ok {
			return "", nil, fmt.Errorf("function %s has no SQL translation", n.Name)
		}
		parts := make([]string, 0, len(n.Args))
		var args []interface{}
		for _, arg := range n.Args {
			frag, fragArgs, err := buildOperand(arg)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, frag)
			args = append(args, fragArgs...)
		}
		return fmt.Sprintf("%s(%s)", sqlName, strings.Join(parts, ", ")), args, nil
	}

	return "", nil, fmt.Errorf("cannot translate %T to a SQL operand", node)
}

// namer maps property names to column names exactly as GORM's migrator
// does, so properties with acronyms (SKU, ID) resolve to the migrated
// column rather than a near-miss.
var namer = gormschema.NamingStrategy{}

// columnRef maps a property access to a quoted column name. Only single-level
// paths rooted at the range variable have a column: nested paths would need
// joins, which this translator does not emit.
func columnRef(n *odatafilter.PropertyAccessNode) (string, error) {
	if _, ok := n.Source.(*odatafilter.RangeVariableReferenceNode); !ok {
		return "", fmt.Errorf("property path through %q is not translatable without joins", n.Property)
	}
	return quoteIdent(namer.ColumnName("", n.Property)), nil
}

// quoteIdent safely quotes identifiers in a portable way (double quotes work
// for sqlite and postgres). Embedded double quotes are escaped by doubling
// them per SQL standard.
func quoteIdent(ident string) string {
	escaped := strings.ReplaceAll(ident, "\"", "\"\"")
	return "\"" + escaped + "\""
}

// literalValue unwraps a literal into a driver-friendly value.
// decimal.Decimal and uuid.UUID implement driver.Valuer, so they pass
// through as-is.
func literalValue(n *odatafilter.LiteralNode) interface{} {
	return n.Value
}
