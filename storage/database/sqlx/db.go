package sqlxrepos

import (
	"fmt"
	"strings"

	"github.com/trezcool/chuo/core"
)

// orderClause renders an ORDER BY suffix for the given ordering, or a
// creation-time default when none is provided.
func orderClause(ordering []core.DBOrdering) string {
	if len(ordering) == 0 {
		return " ORDER BY created_at ASC"
	}
	orderList := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		orderList = append(orderList, ord.String())
	}
	return " ORDER BY " + strings.Join(orderList, ", ")
}

// inArgs renders a ($n,$n+1,...) placeholder list starting at the given index.
func inArgs(start, n int) string {
	ph := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ph = append(ph, fmt.Sprintf("$%d", start+i))
	}
	return "(" + strings.Join(ph, ",") + ")"
}
