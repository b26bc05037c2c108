package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	p := New(3, 25)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Offset)
}

func TestParams_Valid(t *testing.T) {
	assert.True(t, New(1, 1).Valid())
	assert.True(t, New(1, MaxLimit).Valid())
	assert.False(t, New(0, 20).Valid())
	assert.False(t, New(1, 0).Valid())
	assert.False(t, New(1, MaxLimit+1).Valid())
}

func TestMetaFor(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		total      int64
		totalPages int64
	}{
		{"exact fit", 20, 40, 2},
		{"partial last page rounds up", 20, 41, 3},
		{"empty set", 20, 0, 0},
		{"single row", 20, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := MetaFor(New(1, tt.limit), tt.total)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
		})
	}
}
