package pagesearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_levenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"age", "age", 0},
		{"", "teamName", 8},
		{"username", "", 8},
		{"usrname", "username", 1},
		{"teamname", "teamName", 1},
		{"memberID", "memberId", 1},
		{"kitten", "sitting", 3},
		{"abcd", "abdc", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"->"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, levenshtein([]rune(tt.a), []rune(tt.b)))
			assert.Equal(t, tt.want, levenshtein([]rune(tt.b), []rune(tt.a)))
		})
	}
}
