package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Offset(t *testing.T) {
	tests := []struct {
		name   string
		params PaginationParams
		want   int
	}{
		{"first page", PaginationParams{Page: 1, PageSize: 20}, 0},
		{"third page", PaginationParams{Page: 3, PageSize: 10}, 20},
		{"zero page", PaginationParams{Page: 0, PageSize: 10}, 0},
		{"zero size", PaginationParams{Page: 5, PageSize: 0}, 0},
		{"huge page saturates", PaginationParams{Page: math.MaxInt, PageSize: 100}, math.MaxInt},
		{"just past the edge", PaginationParams{Page: math.MaxInt/100 + 2, PageSize: 100}, math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.Offset())
		})
	}
}

func TestPaginationParams_Limit(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{PageSize: -5}.Limit())
	assert.Equal(t, 25, PaginationParams{PageSize: 25}.Limit())
}
