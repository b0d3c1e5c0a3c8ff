package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
)

// rowVar names the whole row inside a filter expression, for columns whose
// names are not valid identifiers: row["Units Sold"] > 100.
const rowVar = "row"

// Filter is a compiled boolean expression over a row's columns.
type Filter struct {
	source  string
	program *vm.Program
}

// Compile parses expression. Columns are referenced by name; unknown names
// evaluate to nil.
func Compile(expression string) (*Filter, error) {
	program, err := expr.Compile(expression, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}
	return &Filter{source: expression, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string { return f.source }

// Match evaluates the filter against r. A nil result counts as false; any
// other non-boolean result is an error.
func (f *Filter) Match(r models.Row) (bool, error) {
	env := r.Map()
	env[rowVar] = r.Map()

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate filter %q: %w", f.source, err)
	}
	if result == nil {
		return false, nil
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q evaluated to %T, expected bool", f.source, result)
	}
	return b, nil
}

// Select returns the rows of p whose values match f, keeping the projection's
// columns.
func (f *Filter) Select(p *Projection, t *models.Table) (*Projection, error) {
	out := &Projection{Records: []models.Row{}, Columns: p.Columns}
	for i, rec := range p.Records {
		ok, err := f.Match(t.Row(i))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if ok {
			out.Records = append(out.Records, rec)
		}
	}
	return out, nil
}
