package utils

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUniqueID(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z0-9]{10}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := GenerateUniqueID(10)
		require.Regexp(t, re, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name        string
		page, limit string
		want        Pagination
	}{
		{"defaults", "", "", Pagination{Page: 1, Limit: 10}},
		{"explicit", "3", "25", Pagination{Page: 3, Limit: 25}},
		{"clamped", "1", "500", Pagination{Page: 1, Limit: 100}},
		{"garbage", "x", "-4", Pagination{Page: 1, Limit: 10}},
		{"huge page", "9223372036854775807", "10", Pagination{Page: math.MaxInt32, Limit: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.page, tt.limit, 10, 100))
		})
	}
}

func TestPaginationMeta(t *testing.T) {
	first := Pagination{Page: 1, Limit: 2}.Meta(5)
	assert.Equal(t, 0, Pagination{Page: 1, Limit: 2}.Offset())
	require.NotNil(t, first.Next)
	assert.Equal(t, 2, *first.Next)
	assert.Nil(t, first.Previous)

	last := Pagination{Page: 3, Limit: 2}.Meta(5)
	assert.Equal(t, 4, Pagination{Page: 3, Limit: 2}.Offset())
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)
	assert.Equal(t, 2, *last.Previous)
}

func TestPaginationHugePage(t *testing.T) {
	p := NewPagination("9223372036854775807", "10", 10, 100)

	assert.Equal(t, (math.MaxInt32-1)*10, p.Offset())
	assert.Greater(t, p.Offset(), 0)

	meta := p.Meta(25)
	assert.Nil(t, meta.Next)
	require.NotNil(t, meta.Previous)
	assert.Equal(t, math.MaxInt32-1, *meta.Previous)
}
