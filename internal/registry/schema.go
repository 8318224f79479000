// Package registry loads the tabular inputs of a prioritization run: the rule
// table, the patient panel, the task lists, the classifier examples, and the
// structured documentation fields.
package registry

import (
	"fmt"
	"strings"

	"github.com/sells-group/panel-triage/internal/fetcher"
)

// SchemaError reports a table that lacks required columns. It is fatal for
// the run.
type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("registry: table %s missing required columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

// requireColumns returns a *SchemaError when tbl lacks any of cols.
func requireColumns(tbl *fetcher.Table, cols ...string) error {
	if missing := tbl.Missing(cols...); len(missing) > 0 {
		return &SchemaError{Table: tbl.Name, Missing: missing}
	}
	return nil
}

// firstColumn returns the first of candidates present in tbl.
func firstColumn(tbl *fetcher.Table, candidates ...string) (string, bool) {
	for _, c := range candidates {
		if tbl.Has(c) {
			return c, true
		}
	}
	return "", false
}
