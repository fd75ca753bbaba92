package postgres

import (
	"fmt"
	"strings"

	"marketplace-core/app/domain"
)

var sqlOps = map[domain.FilterOp]string{
	domain.OpEqual:        "=",
	domain.OpNotEqual:     "<>",
	domain.OpLess:         "<",
	domain.OpLessEqual:    "<=",
	domain.OpGreater:      ">",
	domain.OpGreaterEqual: ">=",
}

// buildFilterClause translates a filter conjunction into JSONB predicates.
// String values compare as text, everything else numerically; the
// argument list continues from startArg.
func buildFilterClause(filters []domain.Filter, startArg int) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	var clauses []string
	var args []any
	arg := startArg
	for _, f := range filters {
		op, ok := sqlOps[f.Op]
		if !ok {
			return "", nil, fmt.Errorf("unsupported filter operator: %q", f.Op)
		}

		switch v := f.Value.(type) {
		case string:
			clauses = append(clauses, fmt.Sprintf("data->>%s %s $%d", quoteLiteral(f.Field), op, arg))
			args = append(args, v)
		case bool:
			clauses = append(clauses, fmt.Sprintf("(data->>%s)::boolean %s $%d", quoteLiteral(f.Field), op, arg))
			args = append(args, v)
		default:
			clauses = append(clauses, fmt.Sprintf("(data->>%s)::numeric %s $%d", quoteLiteral(f.Field), op, arg))
			args = append(args, v)
		}
		arg++
	}
	return " AND " + strings.Join(clauses, " AND "), args, nil
}

// quoteLiteral quotes a JSON field name for use as a SQL string literal.
// Field names come from code, not users, but quoting keeps them inert.
func quoteLiteral(field string) string {
	return "'" + strings.ReplaceAll(field, "'", "''") + "'"
}
