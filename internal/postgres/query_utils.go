package postgres

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

func tableColumn(table, column string) string {
	return fmt.Sprintf("%s.%s", table, column)
}

func tableColumns(table string, columns []string) []string {
	return lo.Map(columns, func(c string, _ int) string {
		return tableColumn(table, c)
	})
}

// returning builds a RETURNING clause selecting columns qualified by table.
func returning(table string, columns []string) string {
	return "RETURNING " + strings.Join(tableColumns(table, columns), ", ")
}
