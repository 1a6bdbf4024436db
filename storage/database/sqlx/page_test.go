package sqlxrepos

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edulab/peerreview/core"
)

func TestAppendPage(t *testing.T) {
	tests := []struct {
		name     string
		page     core.Page
		wantQ    string
		wantArgs []interface{}
	}{
		{"zero page leaves the query alone", core.Page{}, "ORDER BY id", nil},
		{"limit only", core.Page{Limit: 5}, "ORDER BY id LIMIT $1", []interface{}{5}},
		{"offset only must not render LIMIT 0", core.Page{Offset: 3}, "ORDER BY id OFFSET $1", []interface{}{3}},
		{"limit and offset", core.Page{Limit: 5, Offset: 3}, "ORDER BY id LIMIT $1 OFFSET $2", []interface{}{5, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args := appendPage("ORDER BY id", nil, tt.page)
			assert.Equal(t, tt.wantQ, q)
			assert.Equal(t, tt.wantArgs, args)
		})
	}

	t.Run("placeholders continue after existing args", func(t *testing.T) {
		q, args := appendPage("WHERE x = $1", []interface{}{7}, core.Page{Limit: 2, Offset: 4})
		assert.Equal(t, "WHERE x = $1 LIMIT $2 OFFSET $3", q)
		assert.Equal(t, []interface{}{7, 2, 4}, args)
	})
}
