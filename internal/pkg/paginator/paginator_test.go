package paginator_test

import (
	"testing"

	"yatube/internal/pkg/paginator"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		count    int64
		raw      string
		number   int
		numPages int
		offset   int
	}{
		{"missing page", 13, "", 1, 2, 0},
		{"first page", 13, "1", 1, 2, 0},
		{"second page", 13, "2", 2, 2, 10},
		{"non numeric", 13, "abc", 1, 2, 0},
		{"zero", 13, "0", 1, 2, 0},
		{"negative", 13, "-3", 1, 2, 0},
		{"past last", 13, "99", 2, 2, 10},
		{"empty set", 0, "5", 1, 1, 0},
		{"exact multiple", 20, "2", 2, 2, 10},
		{"exact multiple past", 20, "3", 2, 2, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := paginator.New(tt.count, tt.raw, paginator.DefaultPerPage)
			assert.Equal(t, tt.number, w.Number)
			assert.Equal(t, tt.numPages, w.NumPages)
			assert.Equal(t, tt.offset, w.Offset)
			assert.Equal(t, paginator.DefaultPerPage, w.Limit)
		})
	}
}

func TestNavigation(t *testing.T) {
	first := paginator.New(13, "1", 10)
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())
	assert.Equal(t, 2, first.NextNumber())

	last := paginator.New(13, "2", 10)
	assert.False(t, last.HasNext())
	assert.True(t, last.HasPrevious())
	assert.Equal(t, 1, last.PreviousNumber())
	assert.True(t, last.HasOtherPages())

	single := paginator.New(3, "", 10)
	assert.False(t, single.HasOtherPages())
}

func TestDefaultPerPage(t *testing.T) {
	w := paginator.New(25, "3", 0)
	assert.Equal(t, 10, w.PerPage)
	assert.Equal(t, 3, w.Number)
	assert.Equal(t, 20, w.Offset)
}
