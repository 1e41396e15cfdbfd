package pagesearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_CapLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		maxLimit int
		want     int
	}{
		{"zero uses default", 0, 50, DefaultLimit},
		{"zero with small cap", 0, 3, 3},
		{"negative passes through", -10, 50, -10},
		{"within max unchanged", 7, 50, 7},
		{"equal max unchanged", 50, 50, 50},
		{"above max capped", 51, 50, 50},
		{"unset max falls back", 1000, 0, MaxLimit},
		{"one", 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CapLimit(tt.limit, tt.maxLimit))
		})
	}
}
