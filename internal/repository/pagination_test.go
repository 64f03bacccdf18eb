package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffsetFor(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		perPage int
		want    int
	}{
		{"first page", 1, 10, 0},
		{"second page", 2, 10, 10},
		{"third page smaller size", 3, 5, 10},
		{"zero page clamps", 0, 10, 0},
		{"negative page clamps", -4, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, offsetFor(tt.page, tt.perPage))
		})
	}
}
