package sqlxrepos

import (
	"fmt"

	"github.com/edulab/peerreview/core"
)

// appendPage appends LIMIT/OFFSET clauses for the parts of page that are set.
// A zero limit must not be rendered: Postgres reads "LIMIT 0" as zero rows,
// while an absent limit means the full set.
func appendPage(q string, args []interface{}, page core.Page) (string, []interface{}) {
	if page.Limit > 0 {
		args = append(args, page.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if page.Offset > 0 {
		args = append(args, page.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return q, args
}
