package parse

import (
	"strconv"
	"strings"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/src-d/go-lattice.v0/sql"
	"gopkg.in/src-d/go-lattice.v0/sql/expression"
	"gopkg.in/src-d/go-lattice.v0/sql/plan"
	"gopkg.in/src-d/go-vitess.v1/vt/sqlparser"
)

var (
	// ErrUnsupportedSyntax is thrown when a specific syntax is not already supported
	ErrUnsupportedSyntax = errors.NewKind("unsupported syntax: %#v")

	// ErrUnsupportedFeature is thrown when a feature is not already supported
	ErrUnsupportedFeature = errors.NewKind("unsupported feature: %s")

	// ErrInvalidSQLValType is returned when a SQLVal type is not valid.
	ErrInvalidSQLValType = errors.NewKind("invalid SQLVal of type: %d")
)

// Parse parses the given lattice query and returns the corresponding
// relational tree. A lattice query is a single SELECT whose FROM clause is a
// tree of joins over tables resolved against the given catalog.
//
// Column references in join conditions and in the projection are resolved to
// fields with global indexes, assigned to each table in left-to-right
// discovery order. Table aliases are preserved in the tree, so callers
// recover aliases from the same traversal that discovers the tables.
func Parse(ctx *sql.Context, catalog sql.Catalog, query string) (sql.Node, error) {
	span, _ := ctx.Span("parse", opentracing.Tag{Key: "query", Value: query})
	defer span.Finish()

	s := strings.TrimSpace(query)
	if strings.HasSuffix(s, ";") {
		s = s[:len(s)-1]
	}
	if s == "" {
		return nil, ErrUnsupportedSyntax.New(query)
	}

	logrus.WithField("query", s).Debug("parsing lattice query")

	stmt, err := sqlparser.Parse(s)
	if err != nil {
		return nil, err
	}

	sel, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil, ErrUnsupportedSyntax.New(stmt)
	}

	c := &converter{catalog: catalog}
	return c.convertSelect(sel)
}

// leaf is a table discovered in the FROM clause. start is the global index
// of its first field.
type leaf struct {
	alias  string
	schema sql.Schema
	start  int
}

type converter struct {
	catalog sql.Catalog
	leaves  []*leaf
	fields  int
}

func (c *converter) convertSelect(s *sqlparser.Select) (sql.Node, error) {
	switch {
	case s.Distinct != "":
		return nil, ErrUnsupportedFeature.New("DISTINCT in lattice query")
	case s.Where != nil:
		return nil, ErrUnsupportedFeature.New("WHERE clause in lattice query")
	case len(s.GroupBy) != 0:
		return nil, ErrUnsupportedFeature.New("GROUP BY clause in lattice query")
	case s.Having != nil:
		return nil, ErrUnsupportedFeature.New("HAVING clause in lattice query")
	case len(s.OrderBy) != 0:
		return nil, ErrUnsupportedFeature.New("ORDER BY clause in lattice query")
	case s.Limit != nil:
		return nil, ErrUnsupportedFeature.New("LIMIT clause in lattice query")
	}

	from, err := c.convertTableExprs(s.From)
	if err != nil {
		return nil, err
	}

	projections, err := c.convertSelectExprs(s.SelectExprs)
	if err != nil {
		return nil, err
	}

	return plan.NewProject(projections, from), nil
}

func (c *converter) convertTableExprs(te sqlparser.TableExprs) (sql.Node, error) {
	if len(te) == 0 {
		return nil, ErrUnsupportedFeature.New("zero tables in FROM")
	}

	var nodes []sql.Node
	for _, t := range te {
		n, err := c.convertTableExpr(t)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, n)
	}

	if len(nodes) == 1 {
		return nodes[0], nil
	}

	join := sql.Node(plan.NewCrossJoin(nodes[0], nodes[1]))
	for i := 2; i < len(nodes); i++ {
		join = plan.NewCrossJoin(join, nodes[i])
	}

	return join, nil
}

func (c *converter) convertTableExpr(te sqlparser.TableExpr) (sql.Node, error) {
	switch t := te.(type) {
	case *sqlparser.AliasedTableExpr:
		tn, ok := t.Expr.(sqlparser.TableName)
		if !ok {
			return nil, ErrUnsupportedSyntax.New(te)
		}

		table, err := c.catalog.Table(tn.Name.String())
		if err != nil {
			return nil, err
		}

		node := sql.Node(plan.NewResolvedTable(table))
		alias := table.Name()
		if !t.As.IsEmpty() {
			alias = t.As.String()
			node = plan.NewTableAlias(alias, node)
		}
		c.addLeaf(alias, node.Schema())

		return node, nil
	case *sqlparser.ParenTableExpr:
		return c.convertTableExprs(t.Exprs)
	case *sqlparser.JoinTableExpr:
		if len(t.Condition.Using) > 0 {
			return nil, ErrUnsupportedFeature.New("USING clause on join")
		}

		left, err := c.convertTableExpr(t.LeftExpr)
		if err != nil {
			return nil, err
		}

		right, err := c.convertTableExpr(t.RightExpr)
		if err != nil {
			return nil, err
		}

		var cond sql.Expression
		if t.Condition.On != nil {
			cond, err = c.exprToExpression(t.Condition.On)
			if err != nil {
				return nil, err
			}
		}

		switch t.Join {
		case sqlparser.JoinStr:
			if cond == nil {
				return plan.NewCrossJoin(left, right), nil
			}
			return plan.NewInnerJoin(left, right, cond), nil
		case sqlparser.LeftJoinStr:
			return plan.NewLeftJoin(left, right, cond), nil
		case sqlparser.RightJoinStr:
			return plan.NewRightJoin(left, right, cond), nil
		default:
			return nil, ErrUnsupportedFeature.New(t.Join)
		}
	default:
		return nil, ErrUnsupportedSyntax.New(te)
	}
}

func (c *converter) addLeaf(alias string, schema sql.Schema) {
	c.leaves = append(c.leaves, &leaf{
		alias:  alias,
		schema: schema,
		start:  c.fields,
	})
	c.fields += len(schema)
}

func (c *converter) convertSelectExprs(se sqlparser.SelectExprs) ([]sql.Expression, error) {
	var exprs []sql.Expression
	for _, e := range se {
		switch v := e.(type) {
		case *sqlparser.StarExpr:
			exprs = append(exprs, expression.NewStar())
		case *sqlparser.AliasedExpr:
			expr, err := c.exprToExpression(v.Expr)
			if err != nil {
				return nil, err
			}

			if !v.As.IsEmpty() {
				expr = expression.NewAlias(expr, v.As.String())
			}
			exprs = append(exprs, expr)
		default:
			return nil, ErrUnsupportedSyntax.New(e)
		}
	}
	return exprs, nil
}

func (c *converter) exprToExpression(e sqlparser.Expr) (sql.Expression, error) {
	switch v := e.(type) {
	case *sqlparser.ColName:
		return c.resolveColumn(v.Qualifier.Name.String(), v.Name.String())
	case *sqlparser.ParenExpr:
		return c.exprToExpression(v.Expr)
	case *sqlparser.AndExpr:
		lhs, err := c.exprToExpression(v.Left)
		if err != nil {
			return nil, err
		}

		rhs, err := c.exprToExpression(v.Right)
		if err != nil {
			return nil, err
		}

		return expression.NewAnd(lhs, rhs), nil
	case *sqlparser.OrExpr:
		lhs, err := c.exprToExpression(v.Left)
		if err != nil {
			return nil, err
		}

		rhs, err := c.exprToExpression(v.Right)
		if err != nil {
			return nil, err
		}

		return expression.NewOr(lhs, rhs), nil
	case *sqlparser.ComparisonExpr:
		return c.comparisonExprToExpression(v)
	case *sqlparser.BinaryExpr:
		return c.binaryExprToExpression(v)
	case *sqlparser.SQLVal:
		return convertVal(v)
	default:
		return nil, ErrUnsupportedSyntax.New(e)
	}
}

func (c *converter) comparisonExprToExpression(e *sqlparser.ComparisonExpr) (sql.Expression, error) {
	left, err := c.exprToExpression(e.Left)
	if err != nil {
		return nil, err
	}

	right, err := c.exprToExpression(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case sqlparser.EqualStr:
		return expression.NewEquals(left, right), nil
	case sqlparser.LessThanStr:
		return expression.NewLessThan(left, right), nil
	case sqlparser.GreaterThanStr:
		return expression.NewGreaterThan(left, right), nil
	case sqlparser.NotEqualStr:
		return expression.NewNotEquals(left, right), nil
	default:
		return nil, ErrUnsupportedFeature.New(e.Operator)
	}
}

func (c *converter) binaryExprToExpression(e *sqlparser.BinaryExpr) (sql.Expression, error) {
	left, err := c.exprToExpression(e.Left)
	if err != nil {
		return nil, err
	}

	right, err := c.exprToExpression(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "+", "-", "*", "/":
		return expression.NewArithmetic(left, right, e.Operator), nil
	default:
		return nil, ErrUnsupportedFeature.New(e.Operator)
	}
}

// resolveColumn resolves a column reference against the tables discovered so
// far and returns a field reference with a global index.
func (c *converter) resolveColumn(qualifier, name string) (sql.Expression, error) {
	if qualifier != "" {
		for _, l := range c.leaves {
			if l.alias != qualifier {
				continue
			}
			idx := l.schema.IndexOfName(name)
			if idx < 0 {
				return nil, sql.ErrColumnNotFound.New(name)
			}
			col := l.schema[idx]
			return expression.NewGetFieldWithTable(
				l.start+idx, col.Type, l.alias, name, col.Nullable,
			), nil
		}
		return nil, sql.ErrTableNotFound.New(qualifier)
	}

	var found *expression.GetField
	var tables []string
	for _, l := range c.leaves {
		idx := l.schema.IndexOfName(name)
		if idx < 0 {
			continue
		}
		tables = append(tables, l.alias)
		col := l.schema[idx]
		found = expression.NewGetFieldWithTable(
			l.start+idx, col.Type, l.alias, name, col.Nullable,
		)
	}

	switch len(tables) {
	case 0:
		return nil, sql.ErrColumnNotFound.New(name)
	case 1:
		return found, nil
	default:
		return nil, sql.ErrAmbiguousColumnName.New(name, strings.Join(tables, ", "))
	}
}

func convertVal(v *sqlparser.SQLVal) (sql.Expression, error) {
	switch v.Type {
	case sqlparser.StrVal:
		return expression.NewLiteral(string(v.Val), sql.Text), nil
	case sqlparser.IntVal:
		i, err := strconv.ParseInt(string(v.Val), 10, 64)
		if err != nil {
			return nil, err
		}
		return expression.NewLiteral(i, sql.Int64), nil
	case sqlparser.FloatVal:
		f, err := strconv.ParseFloat(string(v.Val), 64)
		if err != nil {
			return nil, err
		}
		return expression.NewLiteral(f, sql.Float64), nil
	default:
		return nil, ErrInvalidSQLValType.New(v.Type)
	}
}
